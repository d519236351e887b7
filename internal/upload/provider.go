package upload

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Provider defines the interface for file upload providers.
type Provider interface {
	// Upload relays the content from reader under the given filename and
	// returns the normalized result. Validation and provider-side failures
	// come back as a failure Result with a nil error; a non-nil error means
	// the provider could not attempt the relay at all (for example it was
	// never configured). size is the content length in bytes, or -1 when
	// unknown.
	Upload(ctx context.Context, reader io.Reader, filename string, size int64) (*Result, error)

	// Configure sets up the provider with the given configuration.
	Configure(config map[string]any) error

	// Name returns the provider name.
	Name() string
}

// LoggerAware is implemented by providers that emit structured logs.
type LoggerAware interface {
	SetLogger(logger *zap.Logger)
}

// Pinger is implemented by providers that can report reachability of their
// remote endpoint, for use in health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
