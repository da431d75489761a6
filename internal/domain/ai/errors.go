package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrProviderFailure covers every way a provider call can fail: transport,
// provider-side errors and timeouts. Callers only ever branch on this.
var ErrProviderFailure = errors.New("ai provider failure")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrInvalidImage is returned when a data URI cannot be decoded.
var ErrInvalidImage = errors.New("invalid image data")

// Failure wraps cause as a provider failure. Quota errors keep
// ErrQuotaExceeded in the chain so logs can tell them apart.
func Failure(model string, status int, cause error) error {
	if cause == nil {
		cause = errors.New("empty response")
	}
	if status == http.StatusTooManyRequests || looksLikeQuota(cause) {
		return fmt.Errorf("%w: %w: model=%s: %v", ErrProviderFailure, ErrQuotaExceeded, model, cause)
	}
	if status > 0 {
		return fmt.Errorf("%w: model=%s status=%d: %w", ErrProviderFailure, model, status, cause)
	}
	return fmt.Errorf("%w: model=%s: %w", ErrProviderFailure, model, cause)
}

func looksLikeQuota(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

// Kind gives a short label for logging and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, ErrProviderFailure):
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "401") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "unauthorized"):
			return "auth"
		case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
			return "timeout"
		case strings.Contains(msg, "circuit breaker"):
			return "breaker_open"
		}
		return "provider"
	}
	return "unknown"
}
