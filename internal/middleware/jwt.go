// Package middleware contains reusable HTTP middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rakhadjo/nusatrip/internal/utils"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// JWTAuth validates a Bearer credential and attaches the identity it
// encodes to the request context. Credentials remain valid until their
// 30-day expiry regardless of server-side state; there is no revocation.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ident, err := utils.VerifyToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, ident.UserID)
			c.Set(CtxEmail, ident.Email)
			c.Set(CtxRole, ident.Role)
			return next(c)
		}
	}
}
