package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/models"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type fakeLessonService struct {
	lessons       []models.Lesson
	lesson        *models.Lesson
	err           *apperrors.Error
	lastUpdates   map[string]interface{}
	lastQuery     string
	searchQueries int
}

func (f *fakeLessonService) ListLessons(ctx context.Context) ([]models.Lesson, *apperrors.Error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons, nil
}

func (f *fakeLessonService) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, *apperrors.Error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lesson, nil
}

func (f *fakeLessonService) UpdateLesson(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Lesson, *apperrors.Error) {
	f.lastUpdates = updates
	if f.err != nil {
		return nil, f.err
	}
	return f.lesson, nil
}

func (f *fakeLessonService) SearchLessons(ctx context.Context, query string) ([]models.Lesson, *apperrors.Error) {
	f.searchQueries++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons, nil
}

// newTestRedisClient returns a client whose connections always fail, so the
// cache layer misses without needing a Redis server.
func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func newLessonRouter(svc services.LessonService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewLessonController(svc, NewCacheManager(newTestRedisClient()))
	router := gin.New()
	router.Use(apperrors.ErrorMiddleware())
	router.GET("/lessons", controller.GetLessons)
	router.GET("/lessons/:id", controller.GetLessonByID)
	router.PUT("/lessons/:id", controller.UpdateLesson)
	router.GET("/search", controller.SearchLessons)
	return router
}

func TestGetLessons(t *testing.T) {
	fake := &fakeLessonService{lessons: []models.Lesson{
		{ID: uuid.New(), Subject: "Math", Location: "London", Price: 100, Spaces: 5},
		{ID: uuid.New(), Subject: "Art", Location: "Bristol", Price: 70, Spaces: 3},
	}}
	router := newLessonRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var lessons []models.Lesson
	if err := json.Unmarshal(recorder.Body.Bytes(), &lessons); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}
}

func TestGetLessonByIDInvalidUUID(t *testing.T) {
	router := newLessonRouter(&fakeLessonService{})

	req := httptest.NewRequest(http.MethodGet, "/lessons/not-a-uuid", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestGetLessonByIDNotFound(t *testing.T) {
	fake := &fakeLessonService{err: apperrors.ErrLessonNotFound}
	router := newLessonRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/lessons/"+uuid.NewString(), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestUpdateLessonForwardsBody(t *testing.T) {
	lesson := &models.Lesson{ID: uuid.New(), Subject: "Math", Spaces: 3}
	fake := &fakeLessonService{lesson: lesson}
	router := newLessonRouter(fake)

	body, _ := json.Marshal(map[string]interface{}{"spaces": 3})
	req := httptest.NewRequest(http.MethodPut, "/lessons/"+lesson.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if fake.lastUpdates["spaces"] != float64(3) {
		t.Fatalf("expected spaces update to reach the service, got %v", fake.lastUpdates)
	}
}

func TestUpdateLessonServiceErrorSurfaced(t *testing.T) {
	fake := &fakeLessonService{err: apperrors.Validation("spaces must be a non-negative integer")}
	router := newLessonRouter(fake)

	body, _ := json.Marshal(map[string]interface{}{"spaces": -1})
	req := httptest.NewRequest(http.MethodPut, "/lessons/"+uuid.NewString(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var errBody map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if errBody["message"] != "spaces must be a non-negative integer" {
		t.Fatalf("unexpected error message: %v", errBody["message"])
	}
}

func TestSearchLessonsPassesQuery(t *testing.T) {
	fake := &fakeLessonService{lessons: []models.Lesson{}}
	router := newLessonRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/search?q=london", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if fake.searchQueries != 1 || fake.lastQuery != "london" {
		t.Fatalf("expected search to be called with %q, got %q (%d calls)", "london", fake.lastQuery, fake.searchQueries)
	}
}
