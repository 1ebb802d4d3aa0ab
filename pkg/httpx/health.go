package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (Database, RedisClient, EventBus, snapshot stores all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a component name (reported as a response key) to its
// checker. A nil checker marks a component that is not configured; it is
// reported as "disabled" and never degrades the status.
type HealthChecks map[string]HealthChecker

// HealthHandler returns an http.HandlerFunc that checks all registered
// HealthCheckers and reports degraded status if any of them fail.
//
//	{"status":"ok","database":"disabled","redis":"ok","snapshot_store":"ok"}
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := map[string]string{"status": "ok"}
		for name, checker := range checks {
			switch {
			case checker == nil:
				resp[name] = "disabled"
			case checker.Ping(ctx) != nil:
				resp[name] = "unreachable"
				resp["status"] = "degraded"
			default:
				resp[name] = "ok"
			}
		}

		status := http.StatusOK
		if resp["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
