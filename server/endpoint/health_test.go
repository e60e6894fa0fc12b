package endpoint_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/protokoll/observability"
	"github.com/skillsenselab/protokoll/server/endpoint"
)

func serveHealth(t *testing.T, checker endpoint.HealthChecker) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health", endpoint.Health("protokolld", "dev", checker))

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return rr, body
}

func TestHealth_AllUp(t *testing.T) {
	checker := func(_ context.Context) []observability.Health {
		return []observability.Health{
			{Name: "redis", Status: observability.HealthStatusUp},
			{Name: "pyannote", Status: observability.HealthStatusUp},
		}
	}

	rr, body := serveHealth(t, checker)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["status"] != "up" {
		t.Errorf("expected status up, got %v", body["status"])
	}
	if body["service"] != "protokolld" {
		t.Errorf("expected service protokolld, got %v", body["service"])
	}
}

func TestHealth_ComponentDown(t *testing.T) {
	checker := func(_ context.Context) []observability.Health {
		return []observability.Health{
			{Name: "redis", Status: observability.HealthStatusUp},
			{Name: "whisper", Status: observability.HealthStatusDown, Message: "connection refused"},
		}
	}

	rr, body := serveHealth(t, checker)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if body["status"] != "down" {
		t.Errorf("expected status down, got %v", body["status"])
	}
}

func TestHealth_NilChecker(t *testing.T) {
	rr, body := serveHealth(t, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["status"] != "up" {
		t.Errorf("expected status up, got %v", body["status"])
	}
}
