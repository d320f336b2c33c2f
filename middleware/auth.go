package middleware

import (
	"errors"
	"strings"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UserContextKey = "userID"

// AuthMiddleware validates the bearer token and stores the caller's user ID
// in the gin context.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, appErr *apperrors.Error) {
	c.AbortWithStatusJSON(appErr.Code, appErr)
}

// GetUserID returns the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}
