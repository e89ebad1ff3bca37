package commands

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyvr/heyvr-cli/internal/cli/config"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release", version: "0.1.0", want: "heyvr v0.1.0\n"},
		{name: "dev build", version: "dev", want: "heyvr vdev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())

			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "go:       "+runtime.Version())
			assert.Contains(t, out, "endpoint: "+config.DefaultEndpoint)
		})
	}
}

func TestVersionCommand_IsNotGameVersion(t *testing.T) {
	cmd := NewVersionCommand("test")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "--version when publishing")
}
