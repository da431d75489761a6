// Package factory builds the configured ai.Provider.
package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/config"
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/breaker"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/gemini"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/openai"
)

// New returns nil, nil when no API key is configured: the analysis engine
// then serves fallback results only.
func New(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (ai.Provider, error) {
	if !cfg.Enabled() {
		logger.Warn("AI_API_KEY not set, analyses will use fallback results")
		return nil, nil
	}

	var p ai.Provider
	switch cfg.Provider {
	case "", "openai":
		p = openai.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case "anthropic":
		p = anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case "gemini":
		g, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		p = g
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}

	if cfg.Breaker.Enabled {
		p = breaker.New(p, breaker.Config{
			MinRequests:      cfg.Breaker.MinRequests,
			FailureThreshold: cfg.Breaker.FailureThreshold,
			OpenTimeout:      cfg.Breaker.OpenTimeout,
		}, logger)
	}
	logger.Info("ai provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", p.Model()),
		zap.Bool("breaker", cfg.Breaker.Enabled),
	)
	return p, nil
}
