package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

// Outcomes reported to the Observer.
const (
	OutcomeProvider        = "provider"
	OutcomeNoProvider      = "fallback_no_provider"
	OutcomeProviderError   = "fallback_provider_error"
	OutcomeExtractionError = "fallback_extraction"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

// Observer receives one call per pipeline run.
type Observer interface {
	ObserveAnalysis(capability string, outcome string, d time.Duration)
}

// Engine holds what every capability pipeline shares. A nil Provider
// selects fallback mode.
type Engine struct {
	Provider      ai.Provider
	Clock         application.Clock
	FallbackDelay time.Duration
	Logger        *zap.Logger
	Observer      Observer
}

// Spec describes one capability. Validate may rewrite the request (trim,
// decode). Finish runs on both the provider and the fallback result.
type Spec[Req, Res any] struct {
	Capability domain.Capability
	Validate   func(*Req) error
	Prompt     func(Req) (ai.Request, error)
	Normalize  func(fields, Req) Res
	Fallback   func(Req) Res
	Finish     func(*Res)
}

// Pipeline runs validate, prompt, provider, extract and normalize, and
// substitutes the fallback template when any step after validation fails.
type Pipeline[Req, Res any] struct {
	engine *Engine
	spec   Spec[Req, Res]
}

func NewPipeline[Req, Res any](e *Engine, s Spec[Req, Res]) *Pipeline[Req, Res] {
	return &Pipeline[Req, Res]{engine: e, spec: s}
}

func (p *Pipeline[Req, Res]) Capability() domain.Capability { return p.spec.Capability }

// Run returns the envelope or an error wrapping ErrInvalidInput or
// ErrUnexpected. Provider and extraction failures never surface.
func (p *Pipeline[Req, Res]) Run(ctx context.Context, req Req) (env domain.Envelope[Res], err error) {
	e := p.engine
	start := e.Clock.Now()
	outcome := OutcomeError
	log := e.Logger.With(zap.String("capability", string(p.spec.Capability)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis panicked", zap.Any("panic", r))
			env = domain.Envelope[Res]{}
			err = fmt.Errorf("%w: %v", domain.ErrUnexpected, r)
			outcome = OutcomeError
		}
		if e.Observer != nil {
			e.Observer.ObserveAnalysis(string(p.spec.Capability), outcome, e.Clock.Now().Sub(start))
		}
	}()

	if p.spec.Validate != nil {
		if err := p.spec.Validate(&req); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				outcome = OutcomeInvalid
				return env, err
			}
			return env, fmt.Errorf("%w: validate: %v", domain.ErrUnexpected, err)
		}
	}

	res, model, outcome, err := p.produce(ctx, req, log)
	if err != nil {
		outcome = OutcomeError
		return env, fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
	}
	if p.spec.Finish != nil {
		p.spec.Finish(&res)
	}

	elapsed := e.Clock.Now().Sub(start)
	log.Info("analysis completed",
		zap.String("outcome", outcome),
		zap.String("model", model),
		zap.Duration("elapsed", elapsed),
	)
	return domain.Envelope[Res]{
		Result:       res,
		AnalysisTime: elapsed.Milliseconds(),
		AIModel:      model,
	}, nil
}

func (p *Pipeline[Req, Res]) produce(ctx context.Context, req Req, log *zap.Logger) (Res, string, string, error) {
	e := p.engine
	if e.Provider == nil {
		res, err := p.fallback(ctx, req)
		return res, domain.FallbackModel, OutcomeNoProvider, err
	}

	prompt, err := p.spec.Prompt(req)
	if err != nil {
		log.Warn("prompt build failed, using fallback", zap.Error(err))
		res, ferr := p.fallback(ctx, req)
		return res, domain.FallbackModel, OutcomeProviderError, ferr
	}

	raw, err := e.Provider.Generate(ctx, prompt)
	if err != nil {
		log.Warn("provider call failed, using fallback",
			zap.String("kind", ai.Kind(err)),
			zap.Error(err),
		)
		res, ferr := p.fallback(ctx, req)
		return res, domain.FallbackModel, OutcomeProviderError, ferr
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		log.Warn("provider reply had no JSON object, using fallback",
			zap.Int("reply_bytes", len(raw)),
			zap.Error(err),
		)
		res, ferr := p.fallback(ctx, req)
		return res, domain.FallbackModel, OutcomeExtractionError, ferr
	}

	return p.spec.Normalize(fields(obj), req), e.Provider.Model(), OutcomeProvider, nil
}

func (p *Pipeline[Req, Res]) fallback(ctx context.Context, req Req) (Res, error) {
	if err := p.engine.Clock.Sleep(ctx, p.engine.FallbackDelay); err != nil {
		var zero Res
		return zero, fmt.Errorf("fallback delay: %w", err)
	}
	return p.spec.Fallback(req), nil
}
