// Package breaker wraps an ai.Provider in a circuit breaker so a failing
// provider is skipped (and the fallback served immediately) until it
// recovers.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

type Config struct {
	MinRequests      uint32
	FailureThreshold float64
	OpenTimeout      time.Duration
}

type Provider struct {
	next ai.Provider
	cb   *gobreaker.CircuitBreaker
}

func New(next ai.Provider, cfg Config, logger *zap.Logger) *Provider {
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 0.6
	}
	log := logger.Named("breaker")
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai:" + next.Model(),
		MaxRequests: 1,
		Interval:    cfg.OpenTimeout,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A cancelled caller says nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &Provider{next: next, cb: cb}
}

func (p *Provider) Model() string { return p.next.Model() }

func (p *Provider) State() gobreaker.State { return p.cb.State() }

func (p *Provider) Generate(ctx context.Context, req ai.Request) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ai.Failure(p.next.Model(), 0, fmt.Errorf("circuit breaker: %w", err))
		}
		return "", err
	}
	return out.(string), nil
}
