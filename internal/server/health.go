package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"

	"github.com/zinc-sig/relay/internal/upload"
)

// healthHandler exposes liveness plus a provider reachability check when
// the provider supports one. Discovery failures degrade the report but
// never affect uploads, which fall back to the default server.
func (s *Server) healthHandler() http.Handler {
	opts := []health.CheckerOption{
		health.WithTimeout(5 * time.Second),
		health.WithCacheDuration(10 * time.Second),
	}

	if pinger, ok := s.provider.(upload.Pinger); ok {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "provider",
			Check: func(ctx context.Context) error {
				return pinger.Ping(ctx)
			},
		}))
	}

	return health.NewHandler(health.NewChecker(opts...))
}
