package webhook

import (
	"math"
	"math/rand"
	"net/http"
	"time"
)

// calculateBackoff returns the delay before the given retry attempt:
// exponential growth from InitialDelay, capped at MaxDelay, with ±10%
// jitter to avoid synchronized retries.
func calculateBackoff(attempt int, config *RetryConfig) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(config.InitialDelay) * math.Pow(config.Multiplier, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}

	jitter := delay * 0.1
	delay += (rand.Float64()*2 - 1) * jitter

	return time.Duration(delay)
}

// isRetryableStatus reports whether an HTTP status code is worth retrying.
// Client errors other than timeouts and rate limits are terminal.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
