// Package server exposes the HTTP surface of the upload relay: an HTML
// upload form, a browser upload flow with flash messages, and a JSON API.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zinc-sig/relay/internal/config"
	"github.com/zinc-sig/relay/internal/upload"
	"github.com/zinc-sig/relay/internal/webhook"
)

//go:embed templates/index.html
var templateFS embed.FS

// Server handles inbound upload requests and relays them to the provider.
// Requests are independent; the server holds no per-request state.
type Server struct {
	cfg      *config.Config
	provider upload.Provider
	notifier *webhook.Client
	logger   *zap.Logger
	flash    *flashCodec
	tmpl     *template.Template
}

// New wires the HTTP layer. notifier may be nil when no webhook is
// configured.
func New(cfg *config.Config, provider upload.Provider, notifier *webhook.Client, logger *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		cfg:      cfg,
		provider: provider,
		notifier: notifier,
		logger:   logger,
		flash:    newFlashCodec([]byte(cfg.SecretKey)),
		tmpl:     tmpl,
	}, nil
}

// Handler returns the routed handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/api/upload", s.handleAPIUpload)
	mux.Handle("/healthz", s.healthHandler())
	return s.withAccessLog(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening",
		zap.Int("port", s.cfg.Port),
		zap.String("provider", s.provider.Name()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}
