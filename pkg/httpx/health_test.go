package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/voiceshop/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		"database":       &stubChecker{},
		"redis":          &stubChecker{},
		"event_bus":      &stubChecker{},
		"snapshot_store": &stubChecker{},
	})

	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["status"] != "ok" || resp["snapshot_store"] != "ok" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_ComponentDown(t *testing.T) {
	for _, name := range []string{"database", "redis", "event_bus", "snapshot_store"} {
		t.Run(name, func(t *testing.T) {
			checks := httpx.HealthChecks{
				"database":       &stubChecker{},
				"redis":          &stubChecker{},
				"event_bus":      &stubChecker{},
				"snapshot_store": &stubChecker{},
			}
			checks[name] = &stubChecker{err: errors.New("timeout")}

			code, resp := serveHealth(t, checks)
			if code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", code)
			}
			if resp["status"] != "degraded" || resp[name] != "unreachable" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestHealthHandler_DisabledComponentsStayHealthy(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{
		"database":       nil,
		"redis":          nil,
		"event_bus":      &stubChecker{},
		"snapshot_store": &stubChecker{},
	})

	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["database"] != "disabled" || resp["redis"] != "disabled" {
		t.Errorf("expected disabled components: %+v", resp)
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.HealthHandler(httpx.HealthChecks{"event_bus": &stubChecker{}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
