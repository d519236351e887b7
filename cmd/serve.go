package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zinc-sig/relay/internal/config"
	_ "github.com/zinc-sig/relay/internal/gofile" // register the gofile provider
	"github.com/zinc-sig/relay/internal/logging"
	"github.com/zinc-sig/relay/internal/provconf"
	"github.com/zinc-sig/relay/internal/server"
	"github.com/zinc-sig/relay/internal/upload"
	"github.com/zinc-sig/relay/internal/webhook"
)

var (
	servePort     int
	serveDebug    bool
	serveProvider string

	// Provider configuration sources
	serveConfigJSON string
	serveConfigKV   []string
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload relay HTTP service",
	Long: `Start the HTTP service exposing the upload form, the browser upload
flow, and the JSON API at /api/upload.

Service configuration comes from the environment (PORT, SECRET_KEY,
MAX_UPLOAD_BYTES, PROVIDER, WEBHOOK_URL); provider configuration additionally
comes from RELAY_UPLOAD_CONFIG* variables, --config, --config-kv and
--config-file, later sources winning.`,
	Example: `  relay serve
  PORT=8080 relay serve
  relay serve --provider minio --config-kv endpoint=minio.local:9000 \
      --config-kv access_key=admin --config-kv secret_key=secret --config-kv bucket=uploads`,
	RunE: serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if serveProvider != "" {
		cfg.Provider = serveProvider
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(serveDebug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider, err := buildProvider(cfg.Provider, serveConfigJSON, serveConfigKV, serveConfigFile, logger)
	if err != nil {
		return err
	}

	var notifier *webhook.Client
	if cfg.WebhookURL != "" {
		notifier = webhook.NewClient(&webhook.Config{
			URL:       cfg.WebhookURL,
			AuthType:  cfg.WebhookAuthType,
			AuthToken: cfg.WebhookAuthToken,
			Timeout:   cfg.WebhookTimeout,
		}, nil, logger)
	}

	srv, err := server.New(cfg, provider, notifier, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// buildProvider creates, configures, and wires logging into the named
// upload provider.
func buildProvider(name, configJSON string, configKV []string, configFile string, logger *zap.Logger) (upload.Provider, error) {
	conf, err := provconf.Build(configJSON, configKV, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider config: %w", err)
	}

	provider, err := upload.NewProvider(name)
	if err != nil {
		return nil, err
	}

	if err := provider.Configure(conf); err != nil {
		return nil, fmt.Errorf("failed to configure provider %s: %w", name, err)
	}

	if aware, ok := provider.(upload.LoggerAware); ok {
		aware.SetLogger(logger)
	}

	return provider, nil
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 5000, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVarP(&serveDebug, "debug", "d", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Upload provider (overrides PROVIDER)")
	serveCmd.Flags().StringVar(&serveConfigJSON, "config", "", "Provider configuration as a JSON string")
	serveCmd.Flags().StringArrayVar(&serveConfigKV, "config-kv", nil, "Provider configuration as key=value pairs (repeatable)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config-file", "", "Provider configuration from a JSON file")
}
