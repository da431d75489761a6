package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker defines interface for health checking
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function to HealthChecker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// DatabaseHealthChecker checks database health
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// HealthStatus represents the health status
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
	AIMode    string                 `json:"aiMode,omitempty"`
}

// CheckStatus represents individual check status
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func runChecks(ctx context.Context, checkers map[string]HealthChecker) (map[string]CheckStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	healthy := true
	out := make(map[string]CheckStatus, len(checkers))
	for name, checker := range checkers {
		if err := checker.Check(ctx); err != nil {
			healthy = false
			out[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			continue
		}
		out[name] = CheckStatus{Status: "healthy"}
	}
	return out, healthy
}

// HealthHandler reports every dependency. aiMode is "provider" or
// "fallback" and is informational only.
func HealthHandler(checkers map[string]HealthChecker, aiMode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks, ok := runChecks(r.Context(), checkers)
		health := HealthStatus{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Checks:    checks,
			AIMode:    aiMode,
		}
		code := http.StatusOK
		if !ok {
			health.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, health)
	}
}

// ReadinessHandler returns 503 until every checker passes.
func ReadinessHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := runChecks(r.Context(), checkers)
		status := HealthStatus{Status: "ready", Timestamp: time.Now().UTC()}
		code := http.StatusOK
		if !ok {
			status.Status = "not_ready"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

// LivenessHandler creates a liveness check handler (simplest check)
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
