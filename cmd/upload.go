package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	_ "github.com/zinc-sig/relay/internal/gofile" // register the gofile provider
	"github.com/zinc-sig/relay/internal/logging"
)

var (
	uploadProvider   string
	uploadDebug      bool
	uploadConfigJSON string
	uploadConfigKV   []string
	uploadConfigFile string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Relay a single local file and print the result as JSON",
	Long: `Relay one local file through the configured upload provider and print
the normalized result to stdout. The command exits non-zero when the relay
reports a failure.`,
	Example: `  relay upload ./photo.png
  relay upload ./report.pdf --provider minio --config-kv endpoint=minio.local:9000 \
      --config-kv access_key=admin --config-kv secret_key=secret --config-kv bucket=uploads`,
	Args: cobra.ExactArgs(1),
	RunE: uploadCommand,
}

func uploadCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	logger, err := logging.New(uploadDebug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider, err := buildProvider(uploadProvider, uploadConfigJSON, uploadConfigKV, uploadConfigFile, logger)
	if err != nil {
		return err
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	result, err := provider.Upload(context.Background(), file, filepath.Base(path), info.Size())
	if err != nil {
		return err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("upload failed: %s", result.Error)
	}
	return nil
}

func init() {
	uploadCmd.Flags().StringVar(&uploadProvider, "provider", "gofile", "Upload provider")
	uploadCmd.Flags().BoolVarP(&uploadDebug, "debug", "d", false, "Enable debug logging")
	uploadCmd.Flags().StringVar(&uploadConfigJSON, "config", "", "Provider configuration as a JSON string")
	uploadCmd.Flags().StringArrayVar(&uploadConfigKV, "config-kv", nil, "Provider configuration as key=value pairs (repeatable)")
	uploadCmd.Flags().StringVar(&uploadConfigFile, "config-file", "", "Provider configuration from a JSON file")
}
