package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/contracthub/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, body
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	rr, body := serveHealth(t, httpx.HealthChecks{
		"database":  &stubChecker{},
		"redis":     &stubChecker{},
		"event_bus": &stubChecker{},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body.Status != "ok" {
		t.Errorf("status: got %q, want ok", body.Status)
	}
	if len(body.Checks) != 3 {
		t.Errorf("expected 3 checks, got %v", body.Checks)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	down := errors.New("conn refused")
	tests := []struct {
		name   string
		checks httpx.HealthChecks
		failed []string
	}{
		{
			name:   "database down",
			checks: httpx.HealthChecks{"database": &stubChecker{err: down}, "redis": &stubChecker{}},
			failed: []string{"database"},
		},
		{
			name:   "event bus down",
			checks: httpx.HealthChecks{"database": &stubChecker{}, "event_bus": &stubChecker{err: down}},
			failed: []string{"event_bus"},
		},
		{
			name: "all down",
			checks: httpx.HealthChecks{
				"database":  &stubChecker{err: down},
				"redis":     &stubChecker{err: down},
				"event_bus": &stubChecker{err: down},
			},
			failed: []string{"database", "redis", "event_bus"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := serveHealth(t, tt.checks)
			if rr.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rr.Code)
			}
			if body.Status != "degraded" {
				t.Errorf("status: got %q", body.Status)
			}
			for _, name := range tt.failed {
				if body.Checks[name] != "unreachable" {
					t.Errorf("%s: got %q, want unreachable", name, body.Checks[name])
				}
			}
		})
	}
}
