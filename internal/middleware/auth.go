package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/auth"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
)

const (
	ContextUser = "currentUser"

	SessionCookie = "session"
)

// SessionMiddleware resolves the session cookie to a user. It fails open:
// no cookie, an unknown token or an expired session all just leave the
// request anonymous.
func SessionMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			if user := authService.ResolveSession(c.Request.Context(), token); user != nil {
				c.Set(ContextUser, user)
			}
		}
		c.Next()
	}
}

// RequireAuth enforces a resolved session, optionally restricted to a
// role set. No session is 401; a session with the wrong role is 403.
func RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "Sign in to continue.")
			c.Abort()
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if user.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				httperr.Forbidden(c, httperr.CodeForbidden, "You do not have access to this resource.")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
