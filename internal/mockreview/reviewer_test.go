package mockreview

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/wizpro/internal/core"
)

func TestNew_EmbeddedRules(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Contains(t, r.sets, core.LanguageJavaScript)
	assert.Contains(t, r.sets, core.LanguagePython)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "invalid yaml", data: "languages: [", wantErr: "failed to parse review rules"},
		{name: "missing javascript", data: "languages:\n  python:\n    rules: []\n", wantErr: "must define the javascript rule set"},
		{
			name:    "bad pattern",
			data:    "languages:\n  javascript:\n    rules:\n      - id: broken\n        pattern: '('\n",
			wantErr: "invalid pattern for rule javascript/broken",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_DefaultsSeverity(t *testing.T) {
	r, err := Parse([]byte("languages:\n  javascript:\n    rules:\n      - id: x\n        pattern: 'x'\n        feedback: found x\n"))
	require.NoError(t, err)

	res := r.Analyze("x", core.LanguageJavaScript)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, core.SeverityMedium, res.Issues[0].Severity)
}

func TestAnalyze_JavaScript(t *testing.T) {
	r := MustNew()
	code := "var a = 1;\nfunction run() {\n  console.log(a);\n}\n// TODO tidy"

	res := r.Analyze(code, core.LanguageJavaScript)

	ids := make([]string, 0, len(res.Issues))
	for _, f := range res.Issues {
		ids = append(ids, f.RuleID)
	}
	assert.ElementsMatch(t, []string{"console-log", "var", "todo"}, ids)
	require.Len(t, res.Positives, 1)
	assert.Equal(t, "named-function", res.Positives[0].RuleID)

	for _, f := range res.Issues {
		if f.RuleID == "console-log" {
			assert.Equal(t, 3, f.Line)
		}
	}
	assert.Equal(t, 55, res.Score)
	assert.Equal(t, "generally good with some issues", res.Quality)
	assert.Equal(t, 5, res.Lines)
}

func TestAnalyze_PythonConditionalIsPositive(t *testing.T) {
	r := MustNew()
	res := r.Analyze("def f(x):\n    if x > 1:\n        return x\n", core.LanguagePython)

	assert.Empty(t, res.Issues)
	assert.Len(t, res.Positives, 2)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "excellent", res.Quality)
}

func TestAnalyze_ScoreNeverNegative(t *testing.T) {
	r := MustNew()
	code := strings.Join([]string{
		"print(1)",
		"try:\n    pass\nexcept:\n    pass",
		"# TODO",
	}, "\n")
	res := r.Analyze(code, core.LanguagePython)
	assert.Len(t, res.Issues, 3)
	assert.Equal(t, 55, res.Score)

	var rules strings.Builder
	rules.WriteString("languages:\n  javascript:\n    rules:\n")
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		rules.WriteString("      - id: " + id + "\n        pattern: '" + id + "'\n")
	}
	strict, err := Parse([]byte(rules.String()))
	require.NoError(t, err)
	many := strict.Analyze("abcdefgh", core.LanguageJavaScript)
	assert.Len(t, many.Issues, 8)
	assert.Equal(t, 0, many.Score)
	assert.Equal(t, "needs improvement", many.Quality)
}

func TestQuality(t *testing.T) {
	assert.Equal(t, "needs improvement", quality(4, 3))
	assert.Equal(t, "generally good with some issues", quality(1, 0))
	assert.Equal(t, "excellent", quality(0, 2))
	assert.Equal(t, "well-structured", quality(0, 1))
}

func TestMarkdown_ConsoleLog(t *testing.T) {
	r := MustNew()
	md := r.Markdown("console.log(1)", core.LanguageJavaScript)

	assert.True(t, strings.HasPrefix(md, "# Code Review\n\n**Score:** 85/100\n"))
	assert.Contains(t, md, "## Issues Identified")
	assert.Contains(t, md, "1. **Line 1** (low): Consider removing console.log statements before production.")
	assert.Contains(t, md, "Your code is 1 lines long. The code length is appropriate.")
	assert.Contains(t, md, "```javascript\n// Before")
	assert.NotContains(t, md, "## Positive Aspects")
}

func TestMarkdown_CleanCodeListsEnhancements(t *testing.T) {
	r := MustNew()

	md := r.Markdown("function main() {\n  return 1;\n}", core.LanguageJavaScript)
	assert.NotContains(t, md, "## Issues Identified")
	assert.Contains(t, md, "## Positive Aspects")
	assert.Contains(t, md, "- Add JSDoc comments for better documentation")

	md = r.Markdown("fn main() {}", core.LanguageRust)
	assert.Contains(t, md, "- Add more comprehensive documentation")
	assert.NotContains(t, md, "JSDoc")
}

func TestMarkdown_UnknownLanguageUsesJavaScriptRulesWithoutExamples(t *testing.T) {
	r := MustNew()
	md := r.Markdown("console.log(1)", core.LanguageGo)

	assert.Contains(t, md, "Consider removing console.log statements")
	assert.NotContains(t, md, "```")
}

func TestMarkdown_LongCode(t *testing.T) {
	r := MustNew()
	md := r.Markdown(strings.Repeat("let x = 1;\n", 25), core.LanguageJavaScript)
	assert.Contains(t, md, "Consider breaking down larger functions")
}

func TestReview_ImplementsReviewer(t *testing.T) {
	var reviewer core.Reviewer = MustNew()
	out, err := reviewer.Review(context.Background(), "print('hi')", core.LanguagePython)
	require.NoError(t, err)
	assert.Contains(t, out, "logging instead of print")
}
