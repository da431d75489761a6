package httpserver

import (
	"net/http"

	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

// POST /api/analyze-image
// Body: {"imageData": "data:image/...;base64,...", "description", "location", "projectId"}
func (r *Router) handleAnalyzeImage(w http.ResponseWriter, req *http.Request) error {
	var body domain.ImageRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.AnalyzeImage(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/analyze-problem
func (r *Router) handleAnalyzeProblem(w http.ResponseWriter, req *http.Request) error {
	var body domain.ProblemRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.AnalyzeProblem(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/analyze-competitors
func (r *Router) handleAnalyzeCompetitors(w http.ResponseWriter, req *http.Request) error {
	var body domain.CompetitorRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.AnalyzeCompetitors(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/generate-business-model
func (r *Router) handleBusinessModel(w http.ResponseWriter, req *http.Request) error {
	var body domain.BusinessModelRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.GenerateBusinessModel(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/generate-pitch
// Requires an active subscription when Options.RequireSubscriptionForPitch is set.
func (r *Router) handleGeneratePitch(w http.ResponseWriter, req *http.Request) error {
	var body domain.PitchRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}

	userID := middleware.UserID(req.Context())
	if r.opts.RequireSubscriptionForPitch {
		if _, ok := middleware.UserFromContext(req.Context()); !ok {
			return apperr.ErrUnauthorized
		}
		active, err := r.billing.Active(req.Context(), userID)
		if err != nil {
			return err
		}
		if !active {
			return apperr.New(apperr.ErrForbidden, "An active subscription is required to generate pitch documents")
		}
	}

	env, err := r.analysis.GeneratePitch(req.Context(), userID, body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/analyze-business-entity
func (r *Router) handleBusinessEntity(w http.ResponseWriter, req *http.Request) error {
	var body domain.EntityRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.AnalyzeBusinessEntity(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// POST /api/get-provider-pricing
func (r *Router) handleProviderPricing(w http.ResponseWriter, req *http.Request) error {
	var body domain.PricingRequest
	if err := decode(w, req, &body); err != nil {
		return err
	}
	env, err := r.analysis.ProviderPricing(req.Context(), middleware.UserID(req.Context()), body)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, env)
}

// GET /api/analyses?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	page, err := r.analysis.History(req.Context(), middleware.UserID(req.Context()),
		queryInt(req, "page"), queryInt(req, "page_size"))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, page)
}
