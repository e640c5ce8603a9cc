package middleware

import (
	"errors"

	"foodgarden/internal/logging"
	"foodgarden/internal/services"
	"foodgarden/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// Rejection codes returned by the access gate. Stable across every
// protected route so clients can branch on them.
const (
	CodeNoToken      = "no_token"
	CodeInvalidToken = "invalid_token"
	CodeExpiredToken = "expired_token"
)

// RequireAuth verifies the session cookie before the handler runs.
// On success the authenticated email is stored in c.Locals("user_email")
// for downstream handlers; on failure the request short-circuits with 401.
func RequireAuth(sessions *auth.SessionAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookieName)
		if token == "" {
			recordRejection(CodeNoToken)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    CodeNoToken,
				"message": "Unauthorized, no session cookie found",
			})
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			code := CodeInvalidToken
			if errors.Is(err, auth.ErrTokenExpired) {
				code = CodeExpiredToken
			}
			logging.WithRequest(c.Method(), c.Path(), "").Warn("Session token rejected",
				"code", code, "error", err)
			recordRejection(code)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    code,
				"message": "Invalid or expired session token",
			})
		}

		c.Locals("user_email", claims.Email)
		return c.Next()
	}
}

// recordRejection increments the rejection counter once metrics exist.
func recordRejection(reason string) {
	if m := services.GetMetrics(); m != nil {
		m.RecordAuthRejection(reason)
	}
}
