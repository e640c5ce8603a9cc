package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food represents a food listing document.
// UserEmail and AddedAt are server-assigned on creation; client-supplied
// values for them are discarded.
type Food struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Origin      string             `bson:"origin,omitempty" json:"origin,omitempty"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UserEmail   string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"` // Owner stamp
	AddedAt     time.Time          `bson:"addedAt,omitempty" json:"addedAt,omitempty"`
	Notes       []Note             `bson:"notes,omitempty" json:"notes,omitempty"` // Append-only
}

// Note is a sub-record appended to a food item. PostedBy is stamped
// from the authenticated identity, never taken from the request body.
type Note struct {
	ID       string    `bson:"id,omitempty" json:"id,omitempty"`
	Note     string    `bson:"note" json:"note"`
	PostedBy string    `bson:"postedBy" json:"postedBy"`
	PostedAt time.Time `bson:"postedAt" json:"postedAt"`
}

// IssueTokenRequest is the request body for session issuance
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// AddNoteRequest is the request body for appending a note
type AddNoteRequest struct {
	Note string `json:"note"`
}
