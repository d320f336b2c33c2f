package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware())
	return router
}

func TestErrorMiddlewareWritesAppError(t *testing.T) {
	router := newErrorRouter()
	router.GET("/missing", func(c *gin.Context) {
		c.Error(NotFound("Lesson not found"))
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusNotFound), body["code"])
	assert.Equal(t, "Lesson not found", body["message"])
}

func TestErrorMiddlewareWrapsUnknownErrors(t *testing.T) {
	router := newErrorRouter()
	router.GET("/boom", func(c *gin.Context) {
		c.Error(fmt.Errorf("connection reset"))
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["message"])
}

func TestErrorMiddlewareLeavesSuccessAlone(t *testing.T) {
	router := newErrorRouter()
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "OK")
}

func TestFrom(t *testing.T) {
	appErr := Conflict("taken")
	assert.Same(t, appErr, From(appErr))

	wrapped := From(fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, http.StatusInternalServerError, wrapped.Code)
	assert.Equal(t, "Internal server error", wrapped.Message)
}
