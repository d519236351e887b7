package webhook

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	config := &RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}

	assert.Equal(t, time.Duration(0), calculateBackoff(0, config))

	// Exponential growth with ±10% jitter around each step.
	cases := []struct {
		attempt  int
		min, max time.Duration
	}{
		{1, 90 * time.Millisecond, 110 * time.Millisecond},
		{2, 180 * time.Millisecond, 220 * time.Millisecond},
		{3, 360 * time.Millisecond, 440 * time.Millisecond},
		{10, 4500 * time.Millisecond, 5500 * time.Millisecond}, // capped at MaxDelay
	}

	for _, tc := range cases {
		delay := calculateBackoff(tc.attempt, config)
		assert.GreaterOrEqual(t, delay, tc.min, "attempt %d", tc.attempt)
		assert.LessOrEqual(t, delay, tc.max, "attempt %d", tc.attempt)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	cases := []struct {
		code      int
		retryable bool
	}{
		{200, false},
		{201, false},
		{400, false},
		{401, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{501, false},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d", tc.code), func(t *testing.T) {
			assert.Equal(t, tc.retryable, isRetryableStatus(tc.code))
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 1*time.Second, config.InitialDelay)
	assert.Equal(t, 30*time.Second, config.MaxDelay)
	assert.Equal(t, 2.0, config.Multiplier)
}
