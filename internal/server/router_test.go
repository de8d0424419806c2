package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/midgard/midgard-core/internal/auth"
	"github.com/midgard/midgard-core/internal/config"
)

func TestRouterServesLivenessAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	router := NewRouter(Dependencies{
		Config: cfg,
		Tokens: auth.NewJWTService("router-test-secret", time.Hour),
	})

	live := httptest.NewRecorder()
	router.ServeHTTP(live, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if live.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/live, got %d", live.Code)
	}

	metricsResp := httptest.NewRecorder()
	router.ServeHTTP(metricsResp, httptest.NewRequest(http.MethodGet, cfg.Metrics.PrometheusPath, nil))
	if metricsResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", metricsResp.Code)
	}
	if metricsResp.Body.Len() == 0 {
		t.Fatalf("expected metrics body, got empty")
	}
}
