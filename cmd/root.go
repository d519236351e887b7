package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "A web front end that relays uploads to a file-hosting provider",
	Long: `Relay accepts user-uploaded files, streams them to a file-hosting
provider, and returns a direct download link.

The serve command runs the HTTP service; the upload command relays a single
local file and prints the normalized result as JSON.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(uploadCmd)
}
