package controllers

import (
	"net/http"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/middleware"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderController handles HTTP requests for orders.
type OrderController struct {
	orderService services.OrderService
	cache        *CacheManager
}

// NewOrderController creates a new OrderController.
func NewOrderController(svc services.OrderService, cache *CacheManager) *OrderController {
	return &OrderController{orderService: svc, cache: cache}
}

// CreateOrder handles POST /orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.Unauthorized("Unauthorized"))
		return
	}

	var req services.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation("Invalid JSON body"))
		return
	}

	order, appErr := oc.orderService.CreateOrder(c.Request.Context(), userID, req)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	// Spaces changed, so cached catalog listings are stale.
	oc.cache.InvalidateAsync()
	c.JSON(http.StatusCreated, order)
}

// GetOrders handles GET /orders and returns the caller's own orders.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.Unauthorized("Unauthorized"))
		return
	}

	orders, appErr := oc.orderService.ListOrders(c.Request.Context(), userID)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles GET /orders/:id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.Unauthorized("Unauthorized"))
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("Invalid order ID"))
		return
	}

	order, appErr := oc.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	c.JSON(http.StatusOK, order)
}
