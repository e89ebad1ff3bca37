package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func sampleOutput() *PublishOutput {
	return &PublishOutput{
		GameID:           "space-game",
		Version:          "1.2.0",
		Increment:        "minor",
		SDKVersion:       "1",
		Directory:        "deploy",
		Files:            1200,
		ArchiveBytes:     2_500_000,
		UncompressedSize: 10_000_000,
		Uploaded:         true,
		Message:          "Build uploaded successfully",
		RequestID:        "run-1",
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeText, Mode("text"))
	assert.Equal(t, ModeMarkdown, Mode("markdown"))
	assert.Equal(t, ModeJSON, Mode("json"))
	assert.Equal(t, ModeAuto, Mode("auto"))
	assert.Equal(t, ModeAuto, Mode(""))
	assert.Equal(t, ModeAuto, Mode("yaml"))
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
		{"", false, ModeMarkdown},
	}
	for _, tt := range tests {
		r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.isTTY)
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestRenderPublish_Markdown(t *testing.T) {
	r, out, _ := newTestRenderer(ModeAuto, false)
	require.NoError(t, RenderPublish(r, sampleOutput()))

	s := out.String()
	assert.False(t, ansiPattern.MatchString(s), "markdown must not contain ANSI codes")
	assert.Contains(t, s, "# heyVR publish")
	assert.Contains(t, s, "- **Game**: space-game")
	assert.Contains(t, s, "- **Increment**: Minor")
	assert.Contains(t, s, "- **Files**: 1,200")
	assert.Contains(t, s, "2.5 MB")
	assert.Contains(t, s, "Build uploaded: Build uploaded successfully")
}

func TestRenderPublish_Text(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	require.NoError(t, RenderPublish(r, sampleOutput()))

	s := out.String()
	assert.Contains(t, s, "space-game")
	assert.Contains(t, s, "Minor")
	assert.Contains(t, s, "Build uploaded")
}

func TestRenderPublish_DryRun(t *testing.T) {
	o := sampleOutput()
	o.Uploaded = false
	o.DryRun = true
	o.Message = ""

	r, out, _ := newTestRenderer(ModeMarkdown, false)
	require.NoError(t, RenderPublish(r, o))
	assert.Contains(t, out.String(), "upload skipped")
	assert.NotContains(t, out.String(), "Build uploaded")
}

func TestRenderPublish_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, true)
	require.NoError(t, RenderPublish(r, sampleOutput()))

	var decoded PublishOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, *sampleOutput(), decoded)
}

func TestRenderProblems(t *testing.T) {
	problems := []error{errors.New("missing version"), errors.New("missing access token")}

	t.Run("markdown", func(t *testing.T) {
		r, out, errOut := newTestRenderer(ModeMarkdown, false)
		require.NoError(t, RenderProblems(r, problems))

		assert.Empty(t, out.String())
		s := errOut.String()
		assert.Contains(t, s, "2 problems found")
		assert.Contains(t, s, "  - missing version")
		assert.Contains(t, s, "  - missing access token")
	})

	t.Run("single", func(t *testing.T) {
		r, _, errOut := newTestRenderer(ModeMarkdown, false)
		require.NoError(t, RenderProblems(r, problems[:1]))
		assert.Contains(t, errOut.String(), "1 problem found")
	})

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		require.NoError(t, RenderProblems(r, problems))

		var decoded ProblemsOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, []string{"missing version", "missing access token"}, decoded.Problems)
	})
}

func TestRendererMessages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)
	r.Success("done")
	r.Warning("careful")
	r.Error("failed")
	r.Header("Section")
	r.Muted("quiet")

	assert.Equal(t, "done\n## Section\n\nquiet\n", out.String())
	assert.Equal(t, "Warning: careful\nError: failed\n", errOut.String())
}
