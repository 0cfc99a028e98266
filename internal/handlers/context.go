package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/tahmid11/socialbook/backend/internal/auth"
)

// getClaimsFromContext returns the validated claims set by the auth
// middleware, or nil for anonymous requests.
func getClaimsFromContext(c echo.Context) *auth.Claims {
	claims, _ := c.Get("user").(*auth.Claims)
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request is anonymous.
func getUserIDFromContext(c echo.Context) uint {
	if claims := getClaimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}
