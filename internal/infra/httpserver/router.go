package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appaccounts "github.com/bryanwahyu/venture-studio/internal/application/accounts"
	appanalysis "github.com/bryanwahyu/venture-studio/internal/application/analysis"
	appbilling "github.com/bryanwahyu/venture-studio/internal/application/billing"
	appprojects "github.com/bryanwahyu/venture-studio/internal/application/projects"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

const maxBodyBytes = 16 << 20

var errBadBody = errors.New("invalid request body")

// Options are the HTTP-facing settings.
type Options struct {
	CookieName                  string
	SecureCookies               bool
	AllowedOrigins              []string
	RequireSubscriptionForPitch bool
	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Only set it behind a proxy that overwrites those headers.
	TrustProxy bool
	// AIMode is reported by /health: "provider" or "fallback".
	AIMode string
}

// Deps is everything the router serves. Metrics, Limiter and Checkers may
// be nil.
type Deps struct {
	Analysis *appanalysis.Service
	Accounts *appaccounts.Service
	Projects *appprojects.Service
	Billing  *appbilling.Service

	Tokens middleware.TokenVerifier
	Users  middleware.UserLoader

	Metrics  *middleware.Metrics
	Limiter  *middleware.RateLimiter
	Checkers map[string]middleware.HealthChecker
	Logger   *zap.Logger
	Options  Options
}

type Router struct {
	analysis *appanalysis.Service
	accounts *appaccounts.Service
	projects *appprojects.Service
	billing  *appbilling.Service
	opts     Options
	log      *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.Options.CookieName == "" {
		d.Options.CookieName = "token"
	}
	r := &Router{
		analysis: d.Analysis,
		accounts: d.Accounts,
		projects: d.Projects,
		billing:  d.Billing,
		opts:     d.Options,
		log:      d.Logger.Named("http"),
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	if d.Options.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(middleware.RequestLogger(r.log))
	if d.Metrics != nil {
		mux.Use(d.Metrics.Middleware)
	}
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Options.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/health", middleware.HealthHandler(d.Checkers, d.Options.AIMode))
	mux.Get("/ready", middleware.ReadinessHandler(d.Checkers))
	mux.Get("/live", middleware.LivenessHandler)
	if d.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	mux.Route("/api", func(api chi.Router) {
		api.Use(middleware.Session(d.Options.CookieName, d.Tokens, d.Users, r.log))

		api.Group(func(ai chi.Router) {
			if d.Limiter != nil {
				ai.Use(middleware.RateLimit(d.Limiter))
			}
			ai.Post("/analyze-image", r.wrap(r.handleAnalyzeImage))
			ai.Post("/analyze-problem", r.wrap(r.handleAnalyzeProblem))
			ai.Post("/analyze-competitors", r.wrap(r.handleAnalyzeCompetitors))
			ai.Post("/generate-business-model", r.wrap(r.handleBusinessModel))
			ai.Post("/generate-pitch", r.wrap(r.handleGeneratePitch))
			ai.Post("/analyze-business-entity", r.wrap(r.handleBusinessEntity))
			ai.Post("/get-provider-pricing", r.wrap(r.handleProviderPricing))
		})

		api.Route("/auth", func(rt chi.Router) {
			rt.Post("/signup", r.wrap(r.handleSignup))
			rt.Post("/login", r.wrap(r.handleLogin))
			rt.Post("/logout", r.wrap(r.handleLogout))
			rt.With(middleware.RequireUser).Get("/me", r.wrap(r.handleMe))
			rt.With(middleware.RequireUser).Delete("/me", r.wrap(r.handleDeleteMe))
		})

		api.Get("/billing/plans", r.wrap(r.handlePlans))

		api.Group(func(rt chi.Router) {
			rt.Use(middleware.RequireUser)

			rt.Get("/analyses", r.wrap(r.handleHistory))

			rt.Route("/projects", func(pr chi.Router) {
				pr.Get("/", r.wrap(r.handleListProjects))
				pr.Post("/", r.wrap(r.handleCreateProject))
				pr.Get("/{id}", r.wrap(r.handleGetProject))
				pr.Put("/{id}", r.wrap(r.handleUpdateProject))
				pr.Delete("/{id}", r.wrap(r.handleArchiveProject))
				pr.Get("/{id}/data", r.wrap(r.handleListSections))
				pr.Get("/{id}/data/{section}", r.wrap(r.handleGetSection))
				pr.Put("/{id}/data/{section}", r.wrap(r.handlePutSection))
			})

			rt.Route("/billing", func(br chi.Router) {
				br.Post("/checkout", r.wrap(r.handleCheckout))
				br.Post("/verify", r.wrap(r.handleVerify))
				br.Get("/subscription", r.wrap(r.handleSubscription))
				br.Post("/subscription/cancel", r.wrap(r.handleCancel))
				br.Get("/payments", r.wrap(r.handlePayments))
			})
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status, msg := classify(err)
			if status >= http.StatusInternalServerError {
				r.log.Error("request failed",
					zap.String("path", req.URL.Path),
					zap.String("request_id", chimw.GetReqID(req.Context())),
					zap.Error(err),
				)
			}
			middleware.WriteError(w, status, msg)
		}
	}
}

// classify maps an error to the response status and client message.
func classify(err error) (int, string) {
	var input *domain.InputError
	switch {
	case errors.As(err, &input):
		return http.StatusBadRequest, input.Message
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, messageOr(err, "Invalid request")
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, messageOr(err, "Authentication required")
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, messageOr(err, "Forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, messageOr(err, "Not found")
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, messageOr(err, "Conflict")
	}
	return http.StatusInternalServerError, "Internal server error"
}

func messageOr(err error, def string) string {
	if msg := apperr.Message(err); msg != "" {
		return msg
	}
	return def
}

func decode(w http.ResponseWriter, req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

func readBody(w http.ResponseWriter, req *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		return nil, errBadBody
	}
	return body, nil
}

func respond(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// pathID parses a uuid URL parameter. Malformed ids are not found.
func pathID(req *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(req, name))
	if err != nil {
		return uuid.Nil, apperr.ErrNotFound
	}
	return id, nil
}

func queryInt(req *http.Request, name string) int {
	n, _ := strconv.Atoi(req.URL.Query().Get(name))
	return n
}

func (r *Router) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   r.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (r *Router) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
