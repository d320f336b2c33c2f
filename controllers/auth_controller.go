package controllers

import (
	"net/http"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
)

// Struct to represent the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Struct for user signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// AuthController handles signup and login requests.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(svc services.AuthService) *AuthController {
	return &AuthController{authService: svc}
}

// Signup handles POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation("A valid email and password are required"))
		return
	}

	result, appErr := ac.authService.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation("A valid email and password are required"))
		return
	}

	result, appErr := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}
