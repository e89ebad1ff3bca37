package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/heyvr/heyvr-cli/internal/cli/config"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the CLI's own version, the Go runtime it was built with and
the default upload endpoint.

This is not the game version: pass that with --version when publishing.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "heyvr v%s\n", version)
			_, _ = fmt.Fprintf(out, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "endpoint: %s\n", config.DefaultEndpoint)
		},
	}
}
