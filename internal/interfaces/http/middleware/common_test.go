package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an ID when none is supplied", func(t *testing.T) {
		engine := gin.New()
		engine.Use(RequestID())
		var seen string
		engine.GET("/", func(c *gin.Context) {
			seen = GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("honours a caller-supplied ID", func(t *testing.T) {
		engine := gin.New()
		engine.Use(RequestID())
		engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "trace-me-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "trace-me-123", w.Header().Get("X-Request-ID"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(cfg CORSConfig) *gin.Engine {
		engine := gin.New()
		engine.Use(CORSWithConfig(cfg))
		engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return engine
	}

	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://portal.example.com"}

	t.Run("sets headers for a whitelisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		w := httptest.NewRecorder()
		newEngine(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://portal.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("omits headers for an unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		newEngine(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		w := httptest.NewRecorder()
		newEngine(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://portal.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("rejects everything with the default empty whitelist", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		w := httptest.NewRecorder()
		newEngine(DefaultCORSConfig()).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSFromConfig(t *testing.T) {
	cfg := CORSFromConfig(config.HTTPConfig{
		CORSAllowOrigins: []string{"https://portal.example.com"},
		CORSAllowMethods: []string{"GET", "POST"},
	})
	assert.Equal(t, []string{"https://portal.example.com"}, cfg.AllowOrigins)
	assert.Equal(t, []string{"GET", "POST"}, cfg.AllowMethods)
	// Unset fields keep defaults
	assert.NotEmpty(t, cfg.AllowHeaders)
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Secure())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
