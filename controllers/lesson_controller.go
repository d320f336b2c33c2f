package controllers

import (
	"net/http"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LessonController handles HTTP requests for the lesson catalog.
type LessonController struct {
	lessonService services.LessonService
	cache         *CacheManager
}

// NewLessonController creates a new LessonController.
func NewLessonController(svc services.LessonService, cache *CacheManager) *LessonController {
	return &LessonController{lessonService: svc, cache: cache}
}

// GetLessons handles GET /lessons
func (lc *LessonController) GetLessons(c *gin.Context) {
	if lessons, ok := lc.cache.GetLessonList(c.Request.Context(), ""); ok {
		c.JSON(http.StatusOK, lessons)
		return
	}

	lessons, appErr := lc.lessonService.ListLessons(c.Request.Context())
	if appErr != nil {
		c.Error(appErr)
		return
	}

	lc.cache.SetLessonListAsync("", lessons)
	c.JSON(http.StatusOK, lessons)
}

// GetLessonByID handles GET /lessons/:id
func (lc *LessonController) GetLessonByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		zap.L().Warn("Invalid lesson ID format", zap.String("id", c.Param("id")))
		c.Error(apperrors.Validation("Invalid lesson ID"))
		return
	}

	lesson, appErr := lc.lessonService.GetLesson(c.Request.Context(), id)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson handles PUT /lessons/:id
func (lc *LessonController) UpdateLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("Invalid lesson ID"))
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.Error(apperrors.Validation("Invalid JSON body"))
		return
	}

	lesson, appErr := lc.lessonService.UpdateLesson(c.Request.Context(), id, updates)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	lc.cache.InvalidateAsync()
	c.JSON(http.StatusOK, lesson)
}

// SearchLessons handles GET /search?q=
func (lc *LessonController) SearchLessons(c *gin.Context) {
	query := c.Query("q")

	if lessons, ok := lc.cache.GetLessonList(c.Request.Context(), query); ok {
		c.JSON(http.StatusOK, lessons)
		return
	}

	lessons, appErr := lc.lessonService.SearchLessons(c.Request.Context(), query)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	lc.cache.SetLessonListAsync(query, lessons)
	c.JSON(http.StatusOK, lessons)
}
