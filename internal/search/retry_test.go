package search

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/youreview/youreview/internal/models"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("Succeeds without retry", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Retries transient failure until success", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
			calls++
			if calls < 3 {
				return &ProviderError{Provider: models.ProviderTMDB, StatusCode: http.StatusServiceUnavailable}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Returns last error when attempts exhausted", func(t *testing.T) {
		calls := 0
		upstream := &ProviderError{Provider: models.ProviderTMDB, StatusCode: http.StatusBadGateway}
		err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
			calls++
			return upstream
		})
		assert.ErrorIs(t, err, upstream)
		assert.Equal(t, 3, calls)
	})

	t.Run("Non-transient failure is not retried", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
			calls++
			return &ProviderError{Provider: models.ProviderTMDB, StatusCode: http.StatusUnauthorized}
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryWithBackoff(ctx, fastRetryConfig(5), func() error {
			calls++
			cancel()
			return &ProviderError{Provider: models.ProviderTMDB, StatusCode: http.StatusTooManyRequests}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestIsTransientError(t *testing.T) {
	t.Run("Rate limiting is transient", func(t *testing.T) {
		assert.True(t, isTransientError(&ProviderError{StatusCode: http.StatusTooManyRequests}))
	})

	t.Run("Server errors are transient", func(t *testing.T) {
		assert.True(t, isTransientError(&ProviderError{StatusCode: http.StatusInternalServerError}))
		assert.True(t, isTransientError(&ProviderError{StatusCode: http.StatusBadGateway}))
	})

	t.Run("Client errors are permanent", func(t *testing.T) {
		assert.False(t, isTransientError(&ProviderError{StatusCode: http.StatusNotFound}))
		assert.False(t, isTransientError(&ProviderError{StatusCode: http.StatusUnauthorized}))
	})

	t.Run("Deadline exceeded is transient", func(t *testing.T) {
		assert.True(t, isTransientError(context.DeadlineExceeded))
	})

	t.Run("Plain errors are permanent", func(t *testing.T) {
		assert.False(t, isTransientError(errors.New("boom")))
	})
}
