package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is an immutable record of lessons purchased by a customer.
type Order struct {
	ID        uuid.UUID   `json:"id" bson:"_id"`
	UserID    uuid.UUID   `json:"user_id" bson:"user_id"`
	Name      string      `json:"name" bson:"name"`
	Phone     string      `json:"phone" bson:"phone"`
	Items     []OrderItem `json:"items" bson:"items"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// OrderItem references a lesson and the quantity of spaces bought.
type OrderItem struct {
	LessonID uuid.UUID `json:"lessonId" bson:"lesson_id"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Price    float64   `json:"price" bson:"price"`
}
