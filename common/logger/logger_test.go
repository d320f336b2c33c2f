package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	previous := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = previous })
	return logs
}

func requestIDField(t *testing.T, entry observer.LoggedEntry) string {
	t.Helper()
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			return field.String
		}
	}
	t.Fatalf("log entry %q carries no request_id field", entry.Message)
	return ""
}

func TestRequestIDReachesDownstreamLogs(t *testing.T) {
	logs := captureLogs(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/lessons", func(c *gin.Context) {
		// Services receive c.Request.Context(), not the gin context.
		Info(c.Request.Context(), "listing lessons")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	req.Header.Set("X-Request-ID", "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("listing lessons").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-42", requestIDField(t, entries[0]))

	completed := logs.FilterMessage("Request completed").All()
	assert.Len(t, completed, 1)
	assert.Equal(t, "req-42", requestIDField(t, completed[0]))
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	logs := captureLogs(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/lessons", func(c *gin.Context) {
		Warn(c.Request.Context(), "slow lookup")
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons", nil))

	entries := logs.FilterMessage("slow lookup").All()
	assert.Len(t, entries, 1)
	assert.NotEmpty(t, requestIDField(t, entries[0]))
	assert.NotEqual(t, "unknown", requestIDField(t, entries[0]))
}

func TestHelpersOutsideRequestScope(t *testing.T) {
	logs := captureLogs(t)

	Error(context.Background(), "startup failed", assert.AnError)

	entries := logs.FilterMessage("startup failed").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "unknown", requestIDField(t, entries[0]))
}
