package increment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		version string
		want    Kind
	}{
		{"1.0.0", Major},
		{"0.0.0", Major},
		{"10.0.0", Major},
		{"2.1.0", Minor},
		{"1.10.0", Minor},
		{"0.20.0", Minor},
		{"1.0.1", Patch},
		{"1.2.3", Patch},
		{"0.0.10", Patch},
		{"", Patch},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.version))
		})
	}
}

func TestClassify_SuffixOnly(t *testing.T) {
	// Trailing ".0.0" wins before ".0" regardless of the leading components.
	for _, v := range []string{"5.0.0", "100.0.0", "1.2.0.0"} {
		assert.Equal(t, Major, Classify(v), v)
	}
	for _, v := range []string{"5.5.0", "1.100.0"} {
		assert.Equal(t, Minor, Classify(v), v)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "major", Major.String())
	assert.Equal(t, "minor", Minor.String())
	assert.Equal(t, "patch", Patch.String())
}

func TestValidate(t *testing.T) {
	valid := []string{"0.0.0", "1.2.3", "10.20.30", "1.10.0"}
	for _, v := range valid {
		t.Run("valid "+v, func(t *testing.T) {
			assert.NoError(t, Validate(v))
		})
	}

	invalid := []string{"", "1", "1.2", "v1.2.3", "1.2.3-beta", "1.2.3+build", "01.2.3", "1.2.x", "-1.2.3", "1.2.3.4"}
	for _, v := range invalid {
		t.Run("invalid "+v, func(t *testing.T) {
			err := Validate(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotSemver)
		})
	}
}
