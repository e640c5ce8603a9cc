package handlers

import (
	"log"
	"strings"

	"foodgarden/internal/models"
	"foodgarden/internal/services"
	"foodgarden/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles session issuance and logout
type AuthHandler struct {
	sessions *auth.SessionAuth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *auth.SessionAuth) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// IssueToken signs a session token for the claimed email and sets it
// as the session cookie.
// POST /jwt
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req models.IssueTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Invalid request body",
		})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Email is required",
		})
	}

	token, err := h.sessions.Issue(req.Email)
	if err != nil {
		log.Printf("❌ Failed to issue session token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to issue session token",
		})
	}

	c.Cookie(h.sessions.SessionCookie(token))

	if m := services.GetMetrics(); m != nil {
		m.RecordSessionIssued()
	}

	log.Printf("✅ Session issued for %s", req.Email)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "token sent",
	})
}

// Logout instructs the client to discard the session cookie. It never
// fails and does not check whether a credential existed.
// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.sessions.ExpiredSessionCookie())

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
