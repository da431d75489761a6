package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

type flakyProvider struct {
	err   error
	calls int
}

func (f *flakyProvider) Model() string { return "flaky" }

func (f *flakyProvider) Generate(context.Context, ai.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return `{"ok":true}`, nil
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	inner := &flakyProvider{err: ai.Failure("flaky", 500, errors.New("boom"))}
	p := New(inner, Config{MinRequests: 3, FailureThreshold: 0.5, OpenTimeout: time.Minute}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := p.Generate(context.Background(), ai.Request{})
		require.ErrorIs(t, err, ai.ErrProviderFailure)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err := p.Generate(context.Background(), ai.Request{})
	assert.ErrorIs(t, err, ai.ErrProviderFailure)
	assert.Equal(t, "breaker_open", ai.Kind(err))
	assert.Equal(t, 3, inner.calls)
}

func TestBreaker_PassesThrough(t *testing.T) {
	inner := &flakyProvider{}
	p := New(inner, Config{}, zap.NewNop())

	out, err := p.Generate(context.Background(), ai.Request{})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "flaky", p.Model())
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	inner := &flakyProvider{err: context.Canceled}
	p := New(inner, Config{MinRequests: 1, FailureThreshold: 0.1}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, _ = p.Generate(context.Background(), ai.Request{})
	}
	assert.Equal(t, gobreaker.StateClosed, p.State())
}
