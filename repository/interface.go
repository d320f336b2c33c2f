package repository

import (
	"context"

	"learnhub-backend/models"

	"github.com/google/uuid"
)

// LessonRepo defines the lesson persistence operations used by the services.
// It uses plain Go types (no mongo-driver types) to make swapping adapters easier.
type LessonRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	FindAll(ctx context.Context) ([]models.Lesson, error)
	Search(ctx context.Context, query string) ([]models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	CreateMany(ctx context.Context, lessons []models.Lesson) error
	// Update applies a partial field update; returns the matched count.
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	// DecrementSpaces atomically decrements spaces by qty, only when the
	// lesson has at least qty spaces left. Returns false when no document
	// matched (missing lesson or insufficient spaces).
	DecrementSpaces(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementSpaces releases previously decremented spaces.
	IncrementSpaces(ctx context.Context, id uuid.UUID, qty int) error
}

// OrderRepo defines the order persistence operations.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// UserRepo defines the user persistence operations.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	EnsureIndexes(ctx context.Context) error
}
