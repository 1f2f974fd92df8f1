package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/util"
)

const minWrapWidth = 20

// Style names accepted by Markdown.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleAuto  = "auto"
	StyleNone  = "notty"
)

// Markdown renders review markdown for a terminal of the given width. When
// glamour cannot render, the plain panel view of the parsed review is returned.
func Markdown(markdown string, width int, style string) string {
	width = max(width, minWrapWidth)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == StyleAuto || style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Panels(Parse(markdown))
	}
	out, err := r.Render(util.StripMarkdownFence(markdown))
	if err != nil {
		return Panels(Parse(markdown))
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// Panels lays a parsed review out as plain text: score, summary, issues,
// positives, structure and suggestions. Empty panels are left out.
func Panels(review core.Review) string {
	var b strings.Builder

	if review.Score != nil {
		fmt.Fprintf(&b, "Score: %d/100\n\n", *review.Score)
	}
	if review.Summary != "" {
		b.WriteString(review.Summary + "\n\n")
	}

	if len(review.Issues) > 0 {
		b.WriteString("Issues\n")
		for _, issue := range review.Issues {
			b.WriteString("  " + FormatIssue(issue) + "\n")
		}
		b.WriteString("\n")
	}

	writeList(&b, "Positive aspects", review.Positives)

	if review.Structure != "" {
		b.WriteString("Code structure\n  " + review.Structure + "\n\n")
	}

	writeList(&b, "Suggestions", review.Suggestions)

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return strings.TrimSpace(review.Markdown) + "\n"
	}
	return out + "\n"
}

// FormatIssue renders one issue on a single line.
func FormatIssue(issue core.Issue) string {
	var b strings.Builder
	if issue.Line > 0 {
		fmt.Fprintf(&b, "Line %d ", issue.Line)
	}
	fmt.Fprintf(&b, "[%s] %s", issue.Severity, issue.Message)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
	b.WriteString("\n")
}
