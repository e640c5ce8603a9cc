package handlers

import (
	"context"
	"errors"
	"time"

	"foodgarden/internal/logging"
	"foodgarden/internal/models"
	"foodgarden/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FoodStore is the collection contract the food handlers depend on.
// *services.FoodService implements it; tests substitute an in-memory fake.
type FoodStore interface {
	List(ctx context.Context) ([]models.Food, error)
	Get(ctx context.Context, id string) (*models.Food, error)
	Create(ctx context.Context, food *models.Food) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	AddNote(ctx context.Context, id string, note models.Note) error
}

// FoodHandler handles food CRUD requests
type FoodHandler struct {
	foods FoodStore
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(foods FoodStore) *FoodHandler {
	return &FoodHandler{foods: foods}
}

// userEmail returns the authenticated identity stamped by the access gate.
func userEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}

// List returns all food items. Public by contract: browsing listings
// requires no session.
// GET /foods
func (h *FoodHandler) List(c *fiber.Ctx) error {
	foods, err := h.foods.List(c.Context())
	if err != nil {
		logging.WithRequest(c.Method(), c.Path(), "").Error("failed to fetch foods", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch foods",
		})
	}

	return c.JSON(foods)
}

// Get returns a single food item.
// GET /foods/:id
func (h *FoodHandler) Get(c *fiber.Ctx) error {
	food, err := h.foods.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.storeError(c, err, "Failed to fetch food")
	}

	return c.JSON(food)
}

// Create inserts a new food item. The owner stamp and creation time are
// server-assigned: whatever the body carried for them is discarded.
// POST /foods
func (h *FoodHandler) Create(c *fiber.Ctx) error {
	var food models.Food
	if err := c.BodyParser(&food); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Invalid request body",
		})
	}

	food.UserEmail = userEmail(c)
	food.AddedAt = time.Now()
	food.Notes = nil

	id, err := h.foods.Create(c.Context(), &food)
	if err != nil {
		logging.WithRequest(c.Method(), c.Path(), food.UserEmail).Error("failed to add food", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to add food item",
		})
	}

	recordMutation("create")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Food item added successfully!",
		"insertedId": id,
	})
}

// Update applies a partial field set to a food item. Server-assigned
// fields are stripped by the store layer so they survive any update.
// PUT /foods/:id
func (h *FoodHandler) Update(c *fiber.Ctx) error {
	fields := map[string]interface{}{}
	if err := c.BodyParser(&fields); err != nil || len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Request body must carry fields to update",
		})
	}

	if err := h.foods.Update(c.Context(), c.Params("id"), fields); err != nil {
		return h.storeError(c, err, "Failed to update food item")
	}

	recordMutation("update")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Food item updated successfully!",
	})
}

// Delete removes a food item.
// DELETE /foods/:id
func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	if err := h.foods.Delete(c.Context(), c.Params("id")); err != nil {
		return h.storeError(c, err, "Failed to delete food item")
	}

	recordMutation("delete")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Food item deleted successfully!",
	})
}

// AddNote appends a note to a food item. PostedBy is stamped from the
// authenticated identity, never from the body.
// POST /foods/notes/:id
func (h *FoodHandler) AddNote(c *fiber.Ctx) error {
	var req models.AddNoteRequest
	if err := c.BodyParser(&req); err != nil || req.Note == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Note text is required",
		})
	}

	note := models.Note{
		ID:       uuid.NewString(),
		Note:     req.Note,
		PostedBy: userEmail(c),
		PostedAt: time.Now(),
	}

	if err := h.foods.AddNote(c.Context(), c.Params("id"), note); err != nil {
		return h.storeError(c, err, "Failed to add note")
	}

	recordMutation("add_note")

	return c.Status(fiber.StatusCreated).JSON(note)
}

// recordMutation increments the mutation counter once metrics exist.
func recordMutation(operation string) {
	if m := services.GetMetrics(); m != nil {
		m.RecordFoodMutation(operation)
	}
}

// storeError maps store-layer sentinels onto the response taxonomy:
// invalid id -> 400, missing document -> 404, anything else -> 500.
func (h *FoodHandler) storeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "validation_error",
			"message": "Invalid food id",
		})
	case errors.Is(err, services.ErrFoodNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Food item not found",
		})
	default:
		logging.WithRequest(c.Method(), c.Path(), userEmail(c)).Error("store call failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}
