package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldplot/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	var logs bytes.Buffer
	r := gin.New()
	r.Use(ErrorHandler(slog.New(slog.NewTextHandler(&logs, nil))))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/err", func(c *gin.Context) { panic(assert.AnError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "kaboom", resp.Error.Message)
	assert.Contains(t, logs.String(), "panic recovered")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var logs bytes.Buffer
	r := gin.New()
	r.Use(Logger(slog.New(slog.NewTextHandler(&logs, nil))))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "path=/ok")
	assert.Contains(t, logs.String(), "status=200")
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithOptions(cors.Options{
		AllowedOrigins: []string{"http://example.com"},
		AllowedMethods: []string{http.MethodPost},
	}))
	r.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api", nil)
	req.Header.Set("Origin", "http://example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightKeepsConfiguredStatus(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithOptions(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodPost},
		OptionsSuccessStatus: http.StatusOK,
	}))
	called := false
	r.POST("/api", func(c *gin.Context) { called = true })
	r.OPTIONS("/api", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, called)
}
