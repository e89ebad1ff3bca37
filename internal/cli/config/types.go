// Package config provides configuration management for the heyVR CLI.
//
// Values are layered with koanf: defaults, an optional heyvr.yaml file,
// HEYVR_ prefixed environment variables and explicitly set flags, in
// increasing order of precedence.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Version          string        `koanf:"version"`
	GameID           string        `koanf:"game_id"`
	Path             string        `koanf:"path"`
	SDKVersion       string        `koanf:"sdk_version"`
	AccessToken      string        `koanf:"access_token"`
	Endpoint         string        `koanf:"endpoint"`
	Timeout          time.Duration `koanf:"timeout"`
	CompressionLevel int           `koanf:"compression_level"`
	ExcludeHidden    bool          `koanf:"exclude_hidden"`
	DryRun           bool          `koanf:"dry_run"`
	Verbose          bool          `koanf:"verbose"`
	OutputFormat     string        `koanf:"output"`
}

// Default configuration values.
const (
	DefaultSDKVersion       = "1"
	DefaultEndpoint         = "https://heyvr.io/api/developer/game/upload-build"
	DefaultTimeout          = 5 * time.Minute
	DefaultCompressionLevel = 9
	DefaultOutput           = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// EnvPrefix is the prefix of environment variables read into the config.
// HEYVR_ACCESS_TOKEN maps to access_token.
const EnvPrefix = "HEYVR_"

// TokenEnvVar is the environment variable holding the bearer credential.
const TokenEnvVar = EnvPrefix + "ACCESS_TOKEN"

// configFileNames are searched in the working directory when --config is unset.
var configFileNames = []string{"heyvr.yaml", "heyvr.yml"}
