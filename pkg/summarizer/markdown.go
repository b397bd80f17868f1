package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/slidextract/pkg/pipeline"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion records the tool version in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t("Slide Extraction Summary"))

	fmt.Fprintf(&sb, "## %s\n\n", t("Input"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Source"), escapeCell(s.Input.Source))
	if s.Input.VideoPath != "" && s.Input.VideoPath != s.Input.Source {
		fmt.Fprintf(&sb, "| %s | %s |\n", t("Video File"), escapeCell(s.Input.VideoPath))
	}
	fmt.Fprintf(&sb, "| %s | %dx%d |\n", t("Dimensions"), s.Video.Width, s.Video.Height)
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Frames Scanned"), s.Video.FramesScanned)
	fmt.Fprintf(&sb, "| %s | %d |\n\n", t("Masked Pixels"), s.Video.MaskedPixels)

	fmt.Fprintf(&sb, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Speaker Position"), s.Settings.Position)
	fmt.Fprintf(&sb, "| %s | %.0f%% x %.0f%% |\n", t("Speaker Region"), s.Settings.SpeakerWidth*100, s.Settings.SpeakerHeight*100)
	fmt.Fprintf(&sb, "| %s | %.2f |\n", t("Threshold"), s.Settings.Threshold)
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Minimum Interval"), formatSeconds(s.Settings.MinInterval))
	if s.Settings.SampleFPS > 0 {
		fmt.Fprintf(&sb, "| %s | %g fps |\n\n", t("Sample Rate"), s.Settings.SampleFPS)
	} else {
		fmt.Fprintf(&sb, "| %s | %s |\n\n", t("Sample Rate"), t("Every frame"))
	}

	fmt.Fprintf(&sb, "## %s\n\n", t("Slides"))
	if len(s.Slides) == 0 {
		fmt.Fprintf(&sb, "%s\n\n", t("No slides detected"))
	} else {
		fmt.Fprintf(&sb, "| # | %s | %s | %s |\n|---|---|---|---|\n", t("Time"), t("Frame"), t("Score"))
		for _, slide := range s.Slides {
			score := fmt.Sprintf("%.3f", slide.Score)
			if slide.Index == 0 {
				score = "-"
			}
			fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n", slide.Index+1, pipeline.FormatClock(slide.Timestamp), slide.FrameIndex, score)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## %s\n\n", t("Document"))
	fmt.Fprintf(&sb, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&sb, "| %s | %s |\n", t("Output"), escapeCell(s.Document.Path))
	fmt.Fprintf(&sb, "| %s | %d |\n", t("Pages"), s.Document.PageCount)
	fmt.Fprintf(&sb, "| %s | %dx%d |\n\n", t("Page Size"), s.Document.PageWidth, s.Document.PageHeight)

	sb.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if s.Elapsed > 0 {
		footer += fmt.Sprintf(" (%s %s)", t("took"), s.Elapsed.Round(time.Millisecond))
	}
	if f.version != "" {
		footer += fmt.Sprintf(" by slidextract %s", f.version)
	}
	sb.WriteString(footer + "\n")

	return sb.String()
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1f s", d.Seconds())
}

// escapeCell keeps pipes in paths from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
