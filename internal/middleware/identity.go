package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// UserID returns the authenticated user id, if any.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// Role returns the authenticated role, if any.
func Role(c echo.Context) (model.Role, bool) {
	s, ok := c.Get(ctxRole).(string)
	if !ok || s == "" {
		return "", false
	}
	return model.Role(s), true
}

// currentUserID is the user part of rate limit keys; "anon" for guests.
func currentUserID(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
