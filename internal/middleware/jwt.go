package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated identity is stored. Handlers
// read these via c.Get().
const (
	ContextAccountID = "account_id"
	ContextRole      = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context.
// The provided secret must match the one used when issuing tokens. This
// middleware wraps protected routes so that handlers can access the
// authenticated account via c.Get(ContextAccountID) (uint64) and
// c.Get(ContextRole) (string).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing
			// method so an attacker cannot downgrade the algorithm.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid claims"})
			}

			// JSON numbers decode as float64; tolerate string-encoded
			// subjects from other issuers.
			var accountID uint64
			switch sub := claims["sub"].(type) {
			case float64:
				accountID = uint64(sub)
			case string:
				if parsed, err := strconv.ParseUint(sub, 10, 64); err == nil {
					accountID = parsed
				}
			}
			role, _ := claims["role"].(string)
			if accountID == 0 || role == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid claims"})
			}

			c.Set(ContextAccountID, accountID)
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}
