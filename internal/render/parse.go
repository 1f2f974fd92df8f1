// Package render turns review markdown into issue and suggestion panels.
//
// Markdown is the one review format exchanged with the backend. The panels
// are recovered from its section headings:
//
//	# Code Review
//	**Score:** 85/100
//	<summary paragraphs>
//	## Issues Identified      numbered list, "**Line N** (severity): message"
//	## Positive Aspects       list
//	## Code Structure         paragraphs
//	## Suggested Improvements list, fenced examples are left to the markdown view
//
// Headings are matched loosely so that model output with slightly different
// titles still lands in the right panel.
package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/util"
)

type section int

const (
	sectionSummary section = iota
	sectionIssues
	sectionPositives
	sectionStructure
	sectionSuggestions
	sectionOther
)

var (
	scoreRegex     = regexp.MustCompile(`(?i)score:?\**\s*(\d{1,3})\s*/\s*100`)
	issueLineRegex = regexp.MustCompile(`(?i)^\**\s*line\s+(\d+)\s*\**\s*:?\s*`)
	severityRegex  = regexp.MustCompile(`(?i)^[(\[]\s*(low|medium|high|critical)\s*[)\]]\s*:?\s*`)
)

// Parse extracts the review panels from markdown. It never fails; text it
// cannot place is simply left out of the panels and remains in Markdown.
func Parse(markdown string) core.Review {
	review := core.Review{
		Markdown:    markdown,
		Issues:      []core.Issue{},
		Suggestions: []string{},
	}

	source := []byte(util.StripMarkdownFence(markdown))
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var summary, structure []string
	current := sectionSummary

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			current = classifyHeading(n.Level, blockText(n, source))

		case *ast.Paragraph:
			para := blockText(n, source)
			if m := scoreRegex.FindStringSubmatch(para); m != nil && review.Score == nil {
				if score, err := strconv.Atoi(m[1]); err == nil && score <= 100 {
					review.Score = &score
				}
				if strings.Trim(scoreRegex.ReplaceAllString(para, ""), "* ") == "" {
					continue
				}
			}
			switch current {
			case sectionSummary:
				summary = append(summary, para)
			case sectionStructure:
				structure = append(structure, para)
			}

		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				entry := strings.TrimSpace(itemText(item, source))
				if entry == "" {
					continue
				}
				switch current {
				case sectionIssues:
					review.Issues = append(review.Issues, parseIssue(entry))
				case sectionPositives:
					review.Positives = append(review.Positives, entry)
				case sectionSuggestions:
					review.Suggestions = append(review.Suggestions, entry)
				case sectionSummary:
					summary = append(summary, "- "+entry)
				}
			}
		}
	}

	review.Summary = strings.Join(summary, "\n\n")
	review.Structure = strings.Join(structure, "\n\n")
	return review
}

func classifyHeading(level int, title string) section {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "positive") || strings.Contains(t, "strength"):
		return sectionPositives
	case strings.Contains(t, "issue") || strings.Contains(t, "problem") || strings.Contains(t, "finding"):
		return sectionIssues
	case strings.Contains(t, "suggest") || strings.Contains(t, "improvement") || strings.Contains(t, "recommend"):
		return sectionSuggestions
	case strings.Contains(t, "structure"):
		return sectionStructure
	case level == 1 || strings.Contains(t, "summary"):
		return sectionSummary
	default:
		return sectionOther
	}
}

// parseIssue reads "**Line N** (severity): message"; both prefixes are optional.
func parseIssue(entry string) core.Issue {
	issue := core.Issue{Severity: core.SeverityMedium}
	rest := entry

	if m := issueLineRegex.FindStringSubmatch(rest); m != nil {
		issue.Line, _ = strconv.Atoi(m[1])
		rest = rest[len(m[0]):]
	}
	if m := severityRegex.FindStringSubmatch(rest); m != nil {
		issue.Severity = normalizeSeverity(m[1])
		rest = rest[len(m[0]):]
	}
	issue.Message = strings.TrimSpace(strings.TrimLeft(rest, ":- "))
	return issue
}

func normalizeSeverity(s string) core.Severity {
	switch strings.ToLower(s) {
	case "low":
		return core.SeverityLow
	case "high", "critical":
		return core.SeverityHigh
	default:
		return core.SeverityMedium
	}
}

// blockText joins the raw source lines of a block node.
func blockText(n ast.Node, source []byte) string {
	var parts []string
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// itemText collects the text blocks of a list item, nested lists included.
func itemText(item ast.Node, source []byte) string {
	var parts []string
	_ = ast.Walk(item, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			parts = append(parts, blockText(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(parts, " ")
}
