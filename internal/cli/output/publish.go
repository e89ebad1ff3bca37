package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PublishOutput describes one publish run.
type PublishOutput struct {
	GameID           string `json:"game_id"`
	Version          string `json:"version"`
	Increment        string `json:"increment"`
	SDKVersion       string `json:"sdk_version"`
	Directory        string `json:"directory"`
	Files            int    `json:"files"`
	ArchiveBytes     int64  `json:"archive_bytes"`
	UncompressedSize int64  `json:"uncompressed_bytes"`
	DryRun           bool   `json:"dry_run"`
	Uploaded         bool   `json:"uploaded"`
	Message          string `json:"message,omitempty"`
	RequestID        string `json:"request_id,omitempty"`
	DurationMS       int64  `json:"duration_ms,omitempty"`
}

// ProblemsOutput lists failed preconditions.
type ProblemsOutput struct {
	Problems []string `json:"problems"`
}

// RenderPublish writes the publish summary in the effective mode.
func RenderPublish(r *Renderer, out *PublishOutput) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(out)
	case ModeMarkdown:
		renderPublishMarkdown(r, out)
	default:
		renderPublishText(r, out)
	}
	return nil
}

func publishRows(out *PublishOutput) [][2]string {
	return [][2]string{
		{"Game", out.GameID},
		{"Version", out.Version},
		{"Increment", cases.Title(language.English).String(out.Increment)},
		{"SDK version", out.SDKVersion},
		{"Directory", out.Directory},
		{"Files", humanize.Comma(int64(out.Files))},
		{"Archive", fmt.Sprintf("%s (%s uncompressed)", humanize.Bytes(uint64(max(out.ArchiveBytes, 0))), humanize.Bytes(uint64(max(out.UncompressedSize, 0))))},
	}
}

func renderPublishText(r *Renderer, out *PublishOutput) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	for _, row := range publishRows(out) {
		t.AppendRow(table.Row{r.styles.Bold.Render(row[0]), row[1]})
	}
	t.Render()

	switch {
	case out.DryRun:
		r.Muted("Dry run: archive built, upload skipped.")
	case out.Uploaded:
		msg := "Build uploaded"
		if out.Message != "" {
			msg += ": " + out.Message
		}
		r.Success(msg)
	}
}

func renderPublishMarkdown(r *Renderer, out *PublishOutput) {
	r.Println("# heyVR publish")
	r.Println("")
	for _, row := range publishRows(out) {
		r.Printf("- **%s**: %s\n", row[0], row[1])
	}
	r.Println("")

	switch {
	case out.DryRun:
		r.Println("Dry run: archive built, upload skipped.")
	case out.Uploaded:
		msg := "Build uploaded"
		if out.Message != "" {
			msg += ": " + out.Message
		}
		r.Println(msg)
	}
}

// RenderProblems writes every failed precondition at once.
func RenderProblems(r *Renderer, problems []error) error {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}

	if r.EffectiveMode() == ModeJSON {
		return r.JSON(ProblemsOutput{Problems: msgs})
	}

	noun := "problem"
	if len(msgs) != 1 {
		noun = "problems"
	}
	r.Error(fmt.Sprintf("cannot publish, %d %s found:", len(msgs), noun))
	for _, m := range msgs {
		line := "  - " + m
		if r.EffectiveMode() == ModeText {
			line = r.styles.Error.Render(line)
		}
		_, _ = fmt.Fprintln(r.ErrWriter(), line)
	}
	return nil
}
