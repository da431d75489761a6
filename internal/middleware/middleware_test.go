package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

type stubTokens map[string]uuid.UUID

func (s stubTokens) Verify(token string) (uuid.UUID, error) {
	id, ok := s[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

type stubUsers map[uuid.UUID]*users.User

func (s stubUsers) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	if u, ok := UserFromContext(r.Context()); ok {
		_, _ = w.Write([]byte(u.Email))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
}

func TestSession(t *testing.T) {
	alice := &users.User{ID: uuid.New(), Email: "alice@example.com"}
	ghost := uuid.New()
	tokens := stubTokens{"good": alice.ID, "deleted": ghost}
	h := Session("token", tokens, stubUsers{alice.ID: alice}, zap.NewNop())(http.HandlerFunc(whoAmI))

	cases := []struct {
		name   string
		cookie string
		want   string
	}{
		{"valid cookie", "good", "alice@example.com"},
		{"no cookie", "", "anonymous"},
		{"forged token", "forged", "anonymous"},
		{"deleted user", "deleted", "anonymous"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func TestRequireUser(t *testing.T) {
	h := RequireUser(http.HandlerFunc(whoAmI))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &users.User{ID: uuid.New(), Email: "bob@example.com"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob@example.com", rec.Body.String())
}

func TestTokenBucket(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewTokenBucket(2, 1, now)

	ok, _ := b.Allow(now)
	assert.True(t, ok)
	ok, _ = b.Allow(now)
	assert.True(t, ok)
	ok, wait := b.Allow(now)
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	ok, _ = b.Allow(now.Add(time.Second))
	assert.True(t, ok)
}

func TestRateLimitKeysByUserThenIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := RateLimit(rl)(http.HandlerFunc(whoAmI))

	do := func(remote string, u *users.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-problem", nil)
		req.RemoteAddr = remote
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234", nil).Code)
	limited := do("10.0.0.1:5678", nil)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// same IP, but authenticated callers get their own bucket
	u := &users.User{ID: uuid.New()}
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234", u).Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234", nil).Code)
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(5, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(5 * time.Minute)
	rl.Allow("b")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.buckets, 1)
	assert.Contains(t, rl.buckets, "b")
}

type signup struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Stage    string `json:"stage" validate:"stage"`
}

func TestValidate(t *testing.T) {
	ok := signup{Name: "Asha", Email: "asha@example.com", Password: "longenough"}
	require.NoError(t, Validate(ok))

	cases := []struct {
		name string
		in   signup
		want string
	}{
		{"blank name", signup{Name: "  ", Email: ok.Email, Password: ok.Password}, "name is required"},
		{"bad email", signup{Name: "A", Email: "nope", Password: ok.Password}, "email must be a valid email address"},
		{"short password", signup{Name: "A", Email: ok.Email, Password: "short"}, "password must be at least 8 characters"},
		{"unknown stage", signup{Name: "A", Email: ok.Email, Password: ok.Password, Stage: "launch"}, "stage is not a known project stage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tc.want, apperr.Message(err))
		})
	}
}

func TestValidateSection(t *testing.T) {
	assert.NoError(t, ValidateSection("competitor_analysis"))
	assert.Error(t, ValidateSection("Bad-Name"))
	assert.Error(t, ValidateSection(""))
	assert.Error(t, ValidateSection(strings.Repeat("a", 65)))
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/"+uuid.NewString(), nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/projects/{id}", "404")))
}

func TestMetricsObserveAnalysis(t *testing.T) {
	m := NewMetrics()
	m.ObserveAnalysis("pitch", "fallback_no_provider", 2*time.Second)
	m.ObserveAnalysis("pitch", "provider", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("pitch", "provider")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("pitch", "fallback_no_provider")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `venture_analyses_total{capability="pitch",outcome="provider"} 1`)
}

func TestHealthHandlers(t *testing.T) {
	up := CheckFunc(func(context.Context) error { return nil })
	down := CheckFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"database": up}, "fallback")(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"aiMode":"fallback"`)

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"database": up, "storage": down}, "provider")(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	rec = httptest.NewRecorder()
	ReadinessHandler(map[string]HealthChecker{"storage": down})(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")

	rec = httptest.NewRecorder()
	LivenessHandler(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
