package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyvr/heyvr-cli/internal/cli/config"
	"github.com/heyvr/heyvr-cli/internal/cli/output"
	"github.com/heyvr/heyvr-cli/internal/testutil"
)

func TestNewPublishCommand(t *testing.T) {
	cmd := NewPublishCommand()

	assert.Equal(t, "publish", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.RunE)

	flags := []string{"version", "gameId", "path", "sdkVersion", "dry-run"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, config.DefaultSDKVersion, cmd.Flags().Lookup("sdkVersion").DefValue)
	assert.Contains(t, cmd.Flags().Lookup("sdkVersion").Usage, "positive integer")
}

func TestBindPublish_NoRequiredFlags(t *testing.T) {
	// Missing inputs are collected by preflight, never rejected one at a
	// time by cobra.
	cmd := &cobra.Command{Use: "x"}
	BindPublish(cmd)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_, required := f.Annotations[cobra.BashCompOneRequiredFlag]
		assert.False(t, required, "flag %q must not be required", f.Name)
	})
}

func TestNewCommandContext_Defaults(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	cmdCtx := NewCommandContext(cmd)
	require.NotNil(t, cmdCtx.Cfg)
	assert.Equal(t, config.DefaultSDKVersion, cmdCtx.Cfg.SDKVersion)
	assert.Equal(t, config.DefaultEndpoint, cmdCtx.Cfg.Endpoint)
	assert.NotNil(t, cmdCtx.Logger)
	assert.Equal(t, output.ModeMarkdown, cmdCtx.Renderer.EffectiveMode())
	assert.Empty(t, cmdCtx.RunID)
}

func TestNewCommandContext_FromContext(t *testing.T) {
	cfg := &config.Config{OutputFormat: "json", GameID: "g"}
	logger := testutil.NewTestLogger(t)

	ctx := WithConfig(context.Background(), cfg)
	ctx = WithRunID(ctx, "run-42")
	ctx = config.WithLogger(ctx, logger)

	cmd := &cobra.Command{Use: "x"}
	cmd.SetContext(ctx)

	cmdCtx := NewCommandContext(cmd)
	assert.Same(t, cfg, cmdCtx.Cfg)
	assert.Same(t, logger, cmdCtx.Logger)
	assert.Equal(t, "run-42", cmdCtx.RunID)
	assert.Equal(t, output.ModeJSON, cmdCtx.Renderer.EffectiveMode())
}
