package config

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/klauspost/compress/flate"
)

var outputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks settings that do not depend on the build being published.
// Publish preconditions (version, game id, path, token) are checked by the
// preflight package so that they can all be reported together.
func (c *Config) Validate() error {
	if !slices.Contains(outputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %v)", c.OutputFormat, outputFormats)
	}

	if c.CompressionLevel < flate.HuffmanOnly || c.CompressionLevel > flate.BestCompression {
		return fmt.Errorf("compression_level must be between %d and %d, got %d",
			flate.HuffmanOnly, flate.BestCompression, c.CompressionLevel)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint is not an absolute URL: %q", c.Endpoint)
	}

	return nil
}
