package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the document store connection is alive.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Handle responds with server health status
// GET /
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	db := "up"
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		db = "down"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"database":  db,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
