package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heyvr/heyvr-cli/internal/cli/config"
	"github.com/heyvr/heyvr-cli/internal/cli/output"
)

// ErrReported marks failures whose details were already written to the
// user. Callers should exit non-zero without printing the error again.
var ErrReported = errors.New("errors reported")

// configKey is used to store config in context.
type configKey struct{}

// runIDKey is used to store the run id in context.
type runIDKey struct{}

// WithConfig returns a context carrying the loaded config.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRunID returns a context carrying the run id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	RunID    string
}

// NewCommandContext collects the config, logger and renderer for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		cfg = &config.Config{
			SDKVersion:       config.DefaultSDKVersion,
			Endpoint:         config.DefaultEndpoint,
			Timeout:          config.DefaultTimeout,
			CompressionLevel: config.DefaultCompressionLevel,
			OutputFormat:     config.DefaultOutput,
		}
	}
	runID, _ := ctx.Value(runIDKey{}).(string)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
		RunID:    runID,
	}
}
