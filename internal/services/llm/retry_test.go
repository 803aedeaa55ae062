package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429 status", errors.New("Error 429, Message: too many requests"), true},
		{"resource exhausted", errors.New("Status: RESOURCE_EXHAUSTED"), true},
		{"anthropic rate limit", errors.New(`{"type":"rate_limit_error"}`), true},
		{"quota", errors.New("quota exceeded for project"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractRetryDelay(t *testing.T) {
	err := errors.New("Error 429, Message: Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED")
	assert.InDelta(t, 45.387, ExtractRetryDelay(err).Seconds(), 0.001)

	assert.Equal(t, time.Duration(0), ExtractRetryDelay(errors.New("no delay here")))
	assert.Equal(t, time.Duration(0), ExtractRetryDelay(nil))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := NewDefaultRetryConfig()

	assert.Equal(t, 2*time.Second, cfg.CalculateBackoff(0, 0))
	assert.Equal(t, 4*time.Second, cfg.CalculateBackoff(1, 0))
	assert.Equal(t, 8*time.Second, cfg.CalculateBackoff(2, 0))
	assert.Equal(t, 10*time.Second, cfg.CalculateBackoff(3, 0), "capped at MaxBackoff")
	assert.Equal(t, 3*time.Second, cfg.CalculateBackoff(0, 3*time.Second), "API delay used as base")
}

func TestNewRetryConfig(t *testing.T) {
	rc := NewRetryConfig(&common.RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: "100ms",
		MaxBackoff:     "1s",
		Multiplier:     3,
	})

	assert.Equal(t, 5, rc.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, rc.InitialBackoff)
	assert.Equal(t, time.Second, rc.MaxBackoff)
	assert.Equal(t, 3.0, rc.BackoffMultiplier)

	defaults := NewRetryConfig(&common.RetryConfig{InitialBackoff: "bogus"})
	assert.Equal(t, DefaultMaxAttempts, defaults.MaxAttempts)
	assert.Equal(t, DefaultInitialBackoff, defaults.InitialBackoff)
}

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	logger := arbor.NewLogger()
	calls := 0

	result, err := Retry(context.Background(), fastRetryConfig(), logger, "test", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary failure")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestRetry_ReturnsLastError(t *testing.T) {
	logger := arbor.NewLogger()
	calls := 0

	_, err := Retry(context.Background(), fastRetryConfig(), logger, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("always fails")
	})

	require.Error(t, err)
	assert.Equal(t, "always fails", err.Error())
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	logger := arbor.NewLogger()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Retry(ctx, fastRetryConfig(), logger, "test", func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("fails")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetry_DoesNotRetryUnconfiguredProvider(t *testing.T) {
	logger := arbor.NewLogger()
	calls := 0

	_, err := Retry(context.Background(), fastRetryConfig(), logger, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, ErrProviderNotConfigured
	})

	assert.ErrorIs(t, err, ErrProviderNotConfigured)
	assert.Equal(t, 1, calls)
}
