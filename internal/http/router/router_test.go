package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/httpkit"
	"transit_console_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

func newTestApp(health apphttp.HealthChecker) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config: &config.Config{
			CORSOrigins:    []string{"http://localhost:4200"},
			RateLimitRPS:   100,
			RateLimitBurst: 100,
		},
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	}
}

func TestNew_MountsModulesUnderV1(t *testing.T) {
	engine := New(newTestApp(nil))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("expected pong, got %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(httpkit.HeaderRequestID) == "" {
		t.Fatal("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
}

func TestNew_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	New(newTestApp(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without health checker, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	New(newTestApp(fakeHealth{err: errors.New("down")})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when a dependency is down, got %d", rec.Code)
	}
}

func TestNew_CORSPreflight(t *testing.T) {
	engine := New(newTestApp(nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:4200" {
		t.Fatalf("expected allowed origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
