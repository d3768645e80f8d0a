package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/auth"
	"github.com/LupryM/Barbershop-Durban/internal/config"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/middleware"
)

type AuthHandler struct {
	auth   *auth.Service
	config *config.Config
}

func NewAuthHandler(authService *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: authService, config: cfg}
}

// --------- Requests ---------

type SendOtpRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// --------- Handlers ---------

func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Phone number is required.")
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if !phonePattern.MatchString(phone) {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Phone number looks invalid.")
		return
	}

	code, err := h.auth.RequestCode(c.Request.Context(), phone)
	if err != nil {
		httperr.Internal(c, "failed_to_send_otp", "Could not send the code. Try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent successfully",
		// Echoed while the SMS provider is stubbed; remove once a real
		// provider is wired in. TODO(LupryM): drop when Clickatell goes live.
		"code": code,
	})
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Phone and code are required.")
		return
	}

	user, session, err := h.auth.VerifyCode(
		c.Request.Context(),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Code),
		strings.TrimSpace(req.Name),
	)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_verify_otp", "Could not verify the code. Try again.")
		return
	}

	c.SetCookie(
		middleware.SessionCookie,
		session.Token,
		int(auth.SessionTTL.Seconds()),
		"/",
		"",
		h.config.CookieSecure,
		true, // httpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    user.ID,
			"phone": user.Phone,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err == nil {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			httperr.Internal(c, "failed_to_logout", "Could not log out. Try again.")
			return
		}
	}

	// expire the cookie either way
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.config.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
