package httpx

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

const healthProbeTimeout = 2 * time.Second

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, cache.RedisClient, events.EventBus).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a component name (as reported in the JSON body) to its probe.
type HealthChecks map[string]HealthChecker

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// LivenessHandler answers 200 with an empty body. It touches no dependency so
// orchestrators can tell a wedged process from a degraded one.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)
}

// HealthHandler returns an http.HandlerFunc that probes every registered
// HealthChecker concurrently and reports degraded status (503) if any fail.
// Nil checkers are reported as "disabled" and do not degrade the status.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Components: make(map[string]string, len(names))}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for _, name := range names {
			checker := checks[name]
			if checker == nil {
				resp.Components[name] = "disabled"
				continue
			}
			wg.Add(1)
			go func(name string, checker HealthChecker) {
				defer wg.Done()
				state := "ok"
				if err := checker.Ping(ctx); err != nil {
					state = "unreachable"
				}
				mu.Lock()
				resp.Components[name] = state
				if state != "ok" {
					resp.Status = "degraded"
				}
				mu.Unlock()
			}(name, checker)
		}
		wg.Wait()

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
