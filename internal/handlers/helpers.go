package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LupryM/Barbershop-Durban/internal/httperr"
)

// writeBusiness maps a domain failure to its HTTP shape. Returns false
// when err carries no business code, leaving the caller to treat it as
// an internal error.
func writeBusiness(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	switch code {
	case httperr.CodeUnauthorized:
		httperr.Unauthorized(c, code, "Sign in to continue.")
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, "You do not have access to this resource.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "Not found.")
	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, code, "That slot has just been taken. Pick another time.")
	case httperr.CodeInvalidTransition:
		httperr.BadRequest(c, code, "The appointment cannot move to that status.")
	case httperr.CodeInvalidOrExpiredCode:
		httperr.BadRequest(c, code, "Invalid or expired code.")
	default:
		httperr.BadRequest(c, code, "Invalid request.")
	}

	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
