package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func okPing(context.Context) error   { return nil }
func downPing(context.Context) error { return errors.New("connection refused") }

func readiness(t *testing.T, deps ...Dependency) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewHealthDependenciesHandler(deps...).Readiness(c); err != nil {
		t.Fatalf("Readiness returned error: %v", err)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return rec.Code, body
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("Liveness returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	code, body := readiness(t,
		Dependency{Name: "postgres", Required: true, Ping: okPing},
		Dependency{Name: "redis", Ping: okPing},
	)
	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected ok/200, got %s/%d", body.Status, code)
	}
}

func TestReadiness_OptionalDown(t *testing.T) {
	code, body := readiness(t,
		Dependency{Name: "postgres", Required: true, Ping: okPing},
		Dependency{Name: "redis", Ping: downPing},
	)
	if code != http.StatusOK || body.Status != "degraded" {
		t.Fatalf("expected degraded/200, got %s/%d", body.Status, code)
	}
	if body.Dependencies["redis"].Error == "" {
		t.Fatalf("expected redis error to be reported")
	}
}

func TestReadiness_RequiredDown(t *testing.T) {
	code, body := readiness(t,
		Dependency{Name: "postgres", Required: true, Ping: downPing},
	)
	if code != http.StatusServiceUnavailable || body.Status != "unavailable" {
		t.Fatalf("expected unavailable/503, got %s/%d", body.Status, code)
	}
}
