package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/heyvr/heyvr-cli/internal/archive"
	"github.com/heyvr/heyvr-cli/internal/cli/config"
	"github.com/heyvr/heyvr-cli/internal/cli/output"
	"github.com/heyvr/heyvr-cli/internal/heyvr"
	"github.com/heyvr/heyvr-cli/internal/preflight"
)

const publishLong = `Package a WebXR build directory and upload it to heyVR.

The build directory defaults to deploy/, then public/, and must contain an
index.html. The version is sent as an increment keyword: x.0.0 is a major
release, x.y.0 a minor release and anything else a patch.

The access token is read from ` + config.TokenEnvVar + `.

All missing or invalid inputs are reported together before exiting.`

const publishExample = `  # Publish deploy/ (or public/) as version 1.2.0
  HEYVR_ACCESS_TOKEN=... heyvr --gameId my-game --version 1.2.0

  # Publish a custom directory for SDK version 2
  heyvr --gameId my-game --version 1.2.1 --path dist --sdkVersion 2

  # Validate and package without uploading
  heyvr --gameId my-game --version 2.0.0 --dry-run`

// BindPublish adds the publish flags to cmd and makes it run the publish flow.
// The root command and the publish subcommand share it.
func BindPublish(cmd *cobra.Command) {
	cmd.Flags().String("version", "", "Semantic version of the build (x.y.z)")
	cmd.Flags().String("gameId", "", "Game slug on heyVR")
	cmd.Flags().String("path", "", "Build directory (default: deploy/ then public/)")
	cmd.Flags().String("sdkVersion", config.DefaultSDKVersion, "heyVR SDK version used by the build (positive integer)")
	cmd.Flags().Bool("dry-run", false, "Validate and package without uploading")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runPublish(cmd)
	}
}

// NewPublishCommand creates the publish command.
func NewPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "publish",
		Short:   "Package and upload a build",
		Long:    publishLong,
		Example: publishExample,
		Args:    cobra.NoArgs,
	}
	BindPublish(cmd)
	return cmd
}

// PublishLong returns the long help for the publish flow.
func PublishLong() string { return publishLong }

// PublishExample returns usage examples for the publish flow.
func PublishExample() string { return publishExample }

func runPublish(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	plan, err := preflight.Check(preflight.Input{
		Version:    cfg.Version,
		GameID:     cfg.GameID,
		Path:       cfg.Path,
		SDKVersion: cfg.SDKVersion,
		Token:      cfg.AccessToken,
		TokenEnv:   config.TokenEnvVar,
	})
	if err != nil {
		problems := preflight.Problems(err)
		if rerr := output.RenderProblems(r, problems); rerr != nil {
			return rerr
		}
		return fmt.Errorf("%d precondition(s) failed: %w", len(problems), ErrReported)
	}

	logger.Debug("preflight passed",
		"game", plan.GameID,
		"version", plan.Version,
		"increment", plan.Increment,
		"dir", plan.Dir,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	arch, err := archive.Build(ctx, plan.Dir, archive.Options{
		Name:          plan.GameID + ".zip",
		Level:         cfg.CompressionLevel,
		ExcludeHidden: cfg.ExcludeHidden,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	out := &output.PublishOutput{
		GameID:           plan.GameID,
		Version:          plan.Version,
		Increment:        plan.Increment.String(),
		SDKVersion:       plan.SDKVersion,
		Directory:        plan.Dir,
		Files:            len(arch.Files()),
		ArchiveBytes:     arch.Size(),
		UncompressedSize: arch.UncompressedSize(),
		DryRun:           cfg.DryRun,
	}

	if cfg.DryRun {
		logger.Info("dry run, skipping upload")
		return output.RenderPublish(r, out)
	}

	opts := []heyvr.Option{
		heyvr.WithEndpoint(cfg.Endpoint),
		heyvr.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		heyvr.WithLogger(logger),
	}
	if cmdCtx.RunID != "" {
		opts = append(opts, heyvr.WithRequestID(cmdCtx.RunID))
	}
	client := heyvr.NewClient(plan.Token, opts...)

	res, err := client.Upload(ctx, heyvr.Build{
		GameSlug:   plan.GameID,
		Version:    plan.Increment.String(),
		SDKVersion: plan.SDKVersion,
		FileName:   arch.Name(),
		File:       arch.Reader(),
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	out.Uploaded = true
	out.Message = res.Message
	out.RequestID = res.RequestID
	out.DurationMS = res.Duration.Milliseconds()

	return output.RenderPublish(r, out)
}
