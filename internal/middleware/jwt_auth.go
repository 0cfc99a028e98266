package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tahmid11/socialbook/backend/internal/auth"
)

// userContextKey is where validated claims are stored on the echo context.
const userContextKey = "user"

// RequireAuth rejects requests without a valid bearer token and stores the
// claims in the request context.
func RequireAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromHeader(c, tokens)
			if err != nil {
				return err
			}
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth stores claims when a valid bearer token is presented but lets
// anonymous requests through. Endpoints behind it enforce their own write
// policy. A presented-but-invalid token is still a 401.
func OptionalAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromHeader(c, tokens)
			if err != nil {
				return err
			}
			if claims != nil {
				c.Set(userContextKey, claims)
			}
			return next(c)
		}
	}
}

// claimsFromHeader parses the Authorization header. It returns (nil, nil)
// when no header is present.
func claimsFromHeader(c echo.Context, tokens *auth.TokenManager) (*auth.Claims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}

	claims, err := tokens.Parse(parts[1])
	if err != nil {
		if err == auth.ErrTokenRevoked {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Token has been revoked")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}
