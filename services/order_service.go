package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/common/logger"
	"learnhub-backend/models"
	"learnhub-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// OrderCreateRequest is the payload accepted for a new order.
type OrderCreateRequest struct {
	Name  string             `json:"name" binding:"required"`
	Phone string             `json:"phone" binding:"required"`
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// OrderItemRequest is a single lesson reference with a quantity.
type OrderItemRequest struct {
	LessonID uuid.UUID `json:"lessonId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required"`
}

// OrderService defines the order business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req OrderCreateRequest) (*models.Order, *apperrors.Error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *apperrors.Error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *apperrors.Error)
}

type orderServiceImpl struct {
	orders  repository.OrderRepo
	lessons repository.LessonRepo
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepo, lessons repository.LessonRepo) OrderService {
	return &orderServiceImpl{orders: orders, lessons: lessons}
}

var phonePattern = regexp.MustCompile(`^[0-9]+$`)

// CreateOrder validates the request, reserves spaces on each referenced
// lesson with an atomic conditional decrement, and persists the order.
// When a later item cannot be reserved, the earlier decrements are released
// before the error is returned.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uuid.UUID, req OrderCreateRequest) (*models.Order, *apperrors.Error) {
	if appErr := validateOrderRequest(req); appErr != nil {
		return nil, appErr
	}

	reserved := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		ok, err := s.lessons.DecrementSpaces(ctx, item.LessonID, item.Quantity)
		if err != nil {
			s.release(ctx, reserved)
			logger.Error(ctx, "CreateOrder reserve failed", err, zap.String("lesson_id", item.LessonID.String()))
			return nil, apperrors.Internal(err)
		}
		if !ok {
			s.release(ctx, reserved)
			return nil, s.reserveFailure(ctx, item)
		}

		lesson, err := s.lessons.FindByID(ctx, item.LessonID)
		if err != nil {
			s.release(ctx, reserved)
			s.releaseOne(ctx, item.LessonID, item.Quantity)
			logger.Error(ctx, "CreateOrder lesson lookup failed", err, zap.String("lesson_id", item.LessonID.String()))
			return nil, apperrors.Internal(err)
		}

		reserved = append(reserved, models.OrderItem{
			LessonID: item.LessonID,
			Quantity: item.Quantity,
			Price:    lesson.Price,
		})
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Phone:  req.Phone,
		Items:  reserved,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, reserved)
		logger.Error(ctx, "CreateOrder insert failed", err)
		return nil, apperrors.Internal(err)
	}

	logger.Info(ctx, "Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Order not found")
		}
		logger.Error(ctx, "GetOrder failed", err, zap.String("order_id", orderID.String()))
		return nil, apperrors.Internal(err)
	}
	// Orders are only visible to their owner.
	if order.UserID != userID {
		return nil, apperrors.NotFound("Order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *apperrors.Error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "ListOrders failed", err, zap.String("user_id", userID.String()))
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// reserveFailure distinguishes a missing lesson from exhausted spaces after a
// conditional decrement matched nothing.
func (s *orderServiceImpl) reserveFailure(ctx context.Context, item OrderItemRequest) *apperrors.Error {
	_, err := s.lessons.FindByID(ctx, item.LessonID)
	switch {
	case err == mongo.ErrNoDocuments:
		return apperrors.NotFound(fmt.Sprintf("Lesson %s not found", item.LessonID))
	case err != nil:
		logger.Error(ctx, "reserveFailure lookup failed", err, zap.String("lesson_id", item.LessonID.String()))
		return apperrors.Internal(err)
	}
	return apperrors.ErrInsufficientSpaces
}

func (s *orderServiceImpl) release(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		s.releaseOne(ctx, item.LessonID, item.Quantity)
	}
}

func (s *orderServiceImpl) releaseOne(ctx context.Context, lessonID uuid.UUID, qty int) {
	if err := s.lessons.IncrementSpaces(ctx, lessonID, qty); err != nil {
		logger.Error(ctx, "Failed to release reserved spaces", err,
			zap.String("lesson_id", lessonID.String()),
			zap.Int("quantity", qty),
		)
	}
}

func validateOrderRequest(req OrderCreateRequest) *apperrors.Error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("Name is required")
	}
	if !phonePattern.MatchString(req.Phone) {
		return apperrors.Validation("Phone must contain digits only")
	}
	if len(req.Items) == 0 {
		return apperrors.Validation("Order must contain at least one item")
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if item.LessonID == uuid.Nil {
			return apperrors.Validation("lessonId is required")
		}
		if item.Quantity < 1 {
			return apperrors.Validation("quantity must be at least 1")
		}
		if seen[item.LessonID] {
			return apperrors.Validation(fmt.Sprintf("Duplicate lesson %s in order", item.LessonID))
		}
		seen[item.LessonID] = true
	}
	return nil
}
