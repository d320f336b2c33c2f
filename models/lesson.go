package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a purchasable catalog item with bounded availability.
type Lesson struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Subject   string    `json:"subject" bson:"subject"`
	Location  string    `json:"location" bson:"location"`
	Price     float64   `json:"price" bson:"price"`
	Spaces    int       `json:"spaces" bson:"spaces"`
	Image     string    `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
