package services

import (
	"context"
	"fmt"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/common/logger"
	"learnhub-backend/models"
	"learnhub-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// LessonService defines the lesson catalog business logic.
type LessonService interface {
	ListLessons(ctx context.Context) ([]models.Lesson, *apperrors.Error)
	GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, *apperrors.Error)
	UpdateLesson(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Lesson, *apperrors.Error)
	SearchLessons(ctx context.Context, query string) ([]models.Lesson, *apperrors.Error)
}

type lessonServiceImpl struct {
	repo repository.LessonRepo
}

// NewLessonService creates a new LessonService.
func NewLessonService(repo repository.LessonRepo) LessonService {
	return &lessonServiceImpl{repo: repo}
}

func (s *lessonServiceImpl) ListLessons(ctx context.Context) ([]models.Lesson, *apperrors.Error) {
	lessons, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.Error(ctx, "ListLessons failed", err)
		return nil, apperrors.Internal(err)
	}
	return lessons, nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, *apperrors.Error) {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error(ctx, "GetLesson failed", err, zap.String("id", id.String()))
		return nil, apperrors.Internal(err)
	}
	return lesson, nil
}

// updatableLessonFields whitelists the fields a PUT may change.
var updatableLessonFields = map[string]bool{
	"subject":  true,
	"location": true,
	"price":    true,
	"spaces":   true,
	"image":    true,
}

func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Lesson, *apperrors.Error) {
	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	sanitized := map[string]interface{}{}
	for field, value := range updates {
		if !updatableLessonFields[field] {
			return nil, apperrors.Validation(fmt.Sprintf("Unknown field %q", field))
		}
		switch field {
		case "spaces":
			spaces, ok := toNonNegativeInt(value)
			if !ok {
				return nil, apperrors.Validation("spaces must be a non-negative integer")
			}
			sanitized[field] = spaces
		case "price":
			price, ok := value.(float64)
			if !ok || price < 0 {
				return nil, apperrors.Validation("price must be a non-negative number")
			}
			sanitized[field] = price
		default:
			str, ok := value.(string)
			if !ok || str == "" {
				return nil, apperrors.Validation(fmt.Sprintf("%s must be a non-empty string", field))
			}
			sanitized[field] = str
		}
	}

	matched, err := s.repo.Update(ctx, id, sanitized)
	if err != nil {
		logger.Error(ctx, "UpdateLesson failed", err, zap.String("id", id.String()))
		return nil, apperrors.Internal(err)
	}
	if matched == 0 {
		return nil, apperrors.ErrLessonNotFound
	}

	return s.GetLesson(ctx, id)
}

func (s *lessonServiceImpl) SearchLessons(ctx context.Context, query string) ([]models.Lesson, *apperrors.Error) {
	lessons, err := s.repo.Search(ctx, query)
	if err != nil {
		logger.Error(ctx, "SearchLessons failed", err, zap.String("query", query))
		return nil, apperrors.Internal(err)
	}
	return lessons, nil
}

// toNonNegativeInt accepts the numeric shapes a decoded JSON body or a typed
// caller can produce for an integer field.
func toNonNegativeInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v >= 0 {
			return v, true
		}
	case int64:
		if v >= 0 {
			return int(v), true
		}
	case float64:
		if v >= 0 && v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}
