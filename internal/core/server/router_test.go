package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cutconnect/internal/core/config"
)

func preflight(r http.Handler, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/barbers", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouterOpenCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), config.CORS{})

	w := preflight(r, "https://any.example")
	assert.Equal(t, "https://any.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNewRouterRestrictedCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), config.CORS{AllowOrigins: []string{"https://app.example"}})

	assert.Equal(t, "https://app.example", preflight(r, "https://app.example").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight(r, "https://evil.example").Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouterRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), config.CORS{})
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(Addr("0.0.0.0", 8000), http.NewServeMux(), zap.NewNop(), time.Second, 2*time.Second, 3*time.Second)
	assert.Equal(t, "0.0.0.0:8000", srv.Addr)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.NotNil(t, srv.ErrorLog)
}
