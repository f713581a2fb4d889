package middleware

import (
	"net/http"
	"strings"

	"maison-heritage-store/internal/auth"

	"github.com/labstack/echo/v4"
)

// Authenticate resolves the bearer token into user context when present. It
// never rejects; anonymous shoppers browse and buy without an account.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				claims, err := jwtService.ValidateToken(token)
				if err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("user_email", claims.Email)
					c.Set("user_role", claims.Role)
				}
			}
			return next(c)
		}
	}
}

// RequireUser gates routes that need a signed-in account.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := c.Get("user_id").(string); !ok || userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the admin surface.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("user_role").(string)
			if role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
