// Package preflight checks everything a publish needs before any work is
// done. Every failed precondition is collected and returned at once so that a
// CI run surfaces all fixable problems in a single pass.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"

	"github.com/heyvr/heyvr-cli/internal/increment"
)

// Precondition failures. Check wraps these with detail; match with errors.Is.
var (
	ErrMissingVersion    = errors.New("missing version: pass --version x.y.z")
	ErrInvalidVersion    = errors.New("invalid version")
	ErrMissingGameID     = errors.New("missing game id: pass --gameId <slug>")
	ErrMissingPath       = errors.New("missing build directory")
	ErrInvalidPath       = errors.New("invalid build directory")
	ErrMissingIndex      = errors.New("missing index.html")
	ErrMissingToken      = errors.New("missing access token")
	ErrInvalidSDKVersion = errors.New("invalid sdk version")
)

// DefaultDirs are tried in order when no path is given.
var DefaultDirs = []string{"deploy", "public"}

// IndexFile must exist at the root of the build directory.
const IndexFile = "index.html"

// Input is the unchecked publish request.
type Input struct {
	Version    string
	GameID     string
	Path       string
	SDKVersion string
	Token      string
	// TokenEnv names the variable the token is read from, for messages.
	TokenEnv string
	// BaseDir anchors DefaultDirs and a relative Path. Empty means the
	// working directory.
	BaseDir string
}

// Plan is a publish request that passed every check.
type Plan struct {
	Version    string
	Increment  increment.Kind
	GameID     string
	Dir        string
	SDKVersion string
	Token      string
}

// Check validates in and returns a Plan, or a joined error holding every
// failed precondition.
func Check(in Input) (*Plan, error) {
	var errs error

	switch {
	case in.Version == "":
		errs = multierr.Append(errs, ErrMissingVersion)
	default:
		if err := increment.Validate(in.Version); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrInvalidVersion, err))
		}
	}

	if in.GameID == "" {
		errs = multierr.Append(errs, ErrMissingGameID)
	}

	sdk := in.SDKVersion
	if sdk == "" {
		sdk = "1"
	}
	if n, err := strconv.Atoi(sdk); err != nil || n < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidSDKVersion, sdk))
	}

	dir, err := resolveDir(in.BaseDir, in.Path)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if err := checkIndex(dir); err != nil {
		errs = multierr.Append(errs, err)
	}

	if in.Token == "" {
		env := in.TokenEnv
		if env == "" {
			env = "the environment"
		}
		errs = multierr.Append(errs, fmt.Errorf("%w: set %s", ErrMissingToken, env))
	}

	if errs != nil {
		return nil, errs
	}

	return &Plan{
		Version:    in.Version,
		Increment:  increment.Classify(in.Version),
		GameID:     in.GameID,
		Dir:        dir,
		SDKVersion: sdk,
		Token:      in.Token,
	}, nil
}

// Problems splits an error returned by Check into its individual failures.
func Problems(err error) []error {
	return multierr.Errors(err)
}

// resolveDir picks the build directory: an explicit path, else the first of
// DefaultDirs that exists under base.
func resolveDir(base, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) && base != "" {
			path = filepath.Join(base, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s does not exist", ErrInvalidPath, path)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, path)
		}
		return path, nil
	}

	for _, name := range DefaultDirs {
		candidate := name
		if base != "" {
			candidate = filepath.Join(base, name)
		}
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no %s/ or %s/ directory found, pass --path", ErrMissingPath, DefaultDirs[0], DefaultDirs[1])
}

func checkIndex(dir string) error {
	info, err := os.Stat(filepath.Join(dir, IndexFile))
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s has no %s", ErrMissingIndex, dir, IndexFile)
	}
	return nil
}
