package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"foodgarden/internal/database"
	"foodgarden/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors checked with errors.Is at the handler boundary.
var (
	ErrFoodNotFound = errors.New("food not found")
	ErrInvalidID    = errors.New("invalid food id")
)

// protectedFields are server-assigned and must survive client updates.
var protectedFields = map[string]bool{
	"_id":       true,
	"userEmail": true,
	"addedAt":   true,
	"notes":     true,
}

// FoodService handles food document operations using MongoDB
type FoodService struct {
	mongoDB *database.MongoDB
}

// NewFoodService creates a new food service
func NewFoodService(mongoDB *database.MongoDB) *FoodService {
	return &FoodService{mongoDB: mongoDB}
}

func (s *FoodService) collection() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionFoods)
}

// parseID converts a hex route parameter into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return objID, nil
}

// List returns all food documents, newest first.
func (s *FoodService) List(ctx context.Context) ([]models.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer cursor.Close(ctx)

	foods := []models.Food{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}

	return foods, nil
}

// Get returns a single food document by its hex identifier.
func (s *FoodService) Get(ctx context.Context, id string) (*models.Food, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var food models.Food
	err = s.collection().FindOne(ctx, bson.M{"_id": objID}).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return &food, nil
}

// Create inserts a new food document and returns its hex identifier.
// Callers stamp UserEmail and AddedAt before calling.
func (s *FoodService) Create(ctx context.Context, food *models.Food) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	food.ID = primitive.NewObjectID()
	if _, err := s.collection().InsertOne(ctx, food); err != nil {
		return "", fmt.Errorf("failed to insert food: %w", err)
	}

	return food.ID.Hex(), nil
}

// stripProtectedFields drops server-assigned keys from a client update.
func stripProtectedFields(fields map[string]interface{}) bson.M {
	updateFields := bson.M{}
	for key, value := range fields {
		if !protectedFields[key] {
			updateFields[key] = value
		}
	}
	return updateFields
}

// Update applies a partial $set of client-supplied fields. Protected
// fields (owner stamp, creation time, notes, id) are stripped so a
// partial update can never rewrite them. A matched-but-unchanged
// document still counts as success; a missing document never does,
// even when the strip leaves nothing to set.
func (s *FoodService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	updateFields := stripProtectedFields(fields)
	if len(updateFields) == 0 {
		count, err := s.collection().CountDocuments(ctx, bson.M{"_id": objID})
		if err != nil {
			return fmt.Errorf("failed to check food: %w", err)
		}
		if count == 0 {
			return ErrFoodNotFound
		}
		return nil
	}

	result, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updateFields})
	if err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrFoodNotFound
	}

	return nil
}

// Delete removes a food document by its hex identifier.
func (s *FoodService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrFoodNotFound
	}

	log.Printf("🗑️ [FOOD] Deleted food %s", id)
	return nil
}

// AddNote appends a note to a food item. Notes are append-only: $push
// preserves every earlier note and insertion order.
func (s *FoodService) AddNote(ctx context.Context, id string, note models.Note) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"notes": note}})
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrFoodNotFound
	}

	return nil
}
