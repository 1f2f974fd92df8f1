// Package mockreview produces deterministic, network-free code reviews by
// matching a small rule set per language. It stands in for the AI backend
// when that backend cannot be reached.
package mockreview

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/wizpro/internal/core"
)

//go:embed rules.yaml
var defaultRules []byte

// longCodeLines is the size above which the review recommends splitting code up.
const longCodeLines = 20

type ruleFile struct {
	Languages           map[core.Language]ruleSetSpec `yaml:"languages"`
	DefaultEnhancements []string                      `yaml:"default_enhancements"`
}

type ruleSetSpec struct {
	Label        string     `yaml:"label"`
	General      string     `yaml:"general"`
	Enhancements []string   `yaml:"enhancements"`
	Rules        []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	ID         string        `yaml:"id"`
	Pattern    string        `yaml:"pattern"`
	Feedback   string        `yaml:"feedback"`
	Positive   bool          `yaml:"positive"`
	Severity   core.Severity `yaml:"severity"`
	Suggestion string        `yaml:"suggestion"`
	Example    string        `yaml:"example"`
}

type rule struct {
	ruleSpec
	re *regexp.Regexp
}

type ruleSet struct {
	general      string
	enhancements []string
	rules        []rule
}

// Reviewer is the heuristic reviewer. It implements core.Reviewer.
type Reviewer struct {
	sets                map[core.Language]*ruleSet
	defaultEnhancements []string
}

var _ core.Reviewer = (*Reviewer)(nil)

// New builds a reviewer from the embedded rule file.
func New() (*Reviewer, error) {
	return Parse(defaultRules)
}

// MustNew is New for package-level initialisation; the embedded rules are
// covered by tests, so a failure here is a build defect.
func MustNew() *Reviewer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a reviewer from a YAML rule file. It must contain a javascript
// rule set, which serves every language without its own.
func Parse(data []byte) (*Reviewer, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse review rules: %w", err)
	}
	if _, ok := file.Languages[core.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("review rules must define the %s rule set", core.DefaultLanguage)
	}

	r := &Reviewer{
		sets:                make(map[core.Language]*ruleSet, len(file.Languages)),
		defaultEnhancements: file.DefaultEnhancements,
	}
	for lang, spec := range file.Languages {
		set := &ruleSet{general: spec.General, enhancements: spec.Enhancements}
		for _, rs := range spec.Rules {
			re, err := regexp.Compile(rs.Pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern for rule %s/%s: %w", lang, rs.ID, err)
			}
			if !rs.Positive && rs.Severity == "" {
				rs.Severity = core.SeverityMedium
			}
			set.rules = append(set.rules, rule{ruleSpec: rs, re: re})
		}
		r.sets[lang] = set
	}
	return r, nil
}

// Finding is a rule that matched.
type Finding struct {
	RuleID     string
	Line       int
	Message    string
	Severity   core.Severity
	Suggestion string
	Example    string
}

// Result is the outcome of running the rules over a submission.
type Result struct {
	Language  core.Language
	Quality   string
	Score     int
	Lines     int
	Issues    []Finding
	Positives []Finding
}

// Analyze runs the rule set for lang over code.
func (r *Reviewer) Analyze(code string, lang core.Language) Result {
	set := r.ruleSetFor(lang)
	res := Result{Language: lang, Lines: strings.Count(code, "\n") + 1}

	for _, rl := range set.rules {
		loc := rl.re.FindStringIndex(code)
		if loc == nil {
			continue
		}
		f := Finding{
			RuleID:     rl.ID,
			Line:       strings.Count(code[:loc[0]], "\n") + 1,
			Message:    rl.Feedback,
			Severity:   rl.Severity,
			Suggestion: rl.Suggestion,
			Example:    rl.Example,
		}
		if rl.Positive {
			res.Positives = append(res.Positives, f)
		} else {
			res.Issues = append(res.Issues, f)
		}
	}

	res.Quality = quality(len(res.Issues), len(res.Positives))
	res.Score = max(0, 100-15*len(res.Issues))
	return res
}

// Review renders the heuristic review of code as review markdown. It never fails.
func (r *Reviewer) Review(_ context.Context, code string, lang core.Language) (string, error) {
	return r.Markdown(code, lang), nil
}

// Markdown renders the heuristic review of code.
func (r *Reviewer) Markdown(code string, lang core.Language) string {
	res := r.Analyze(code, lang)
	set := r.ruleSetFor(lang)
	_, ownRules := r.sets[lang]

	var b strings.Builder
	b.WriteString("# Code Review\n\n")
	fmt.Fprintf(&b, "**Score:** %d/100\n\n", res.Score)

	closing := "Keep up the good work!"
	if len(res.Issues) > 0 {
		closing = "Here are some suggestions for improvement:"
	}
	general := strings.NewReplacer("{quality}", res.Quality, "{suggestions}", closing).Replace(set.general)
	b.WriteString(general + "\n")

	if len(res.Issues) > 0 {
		b.WriteString("\n## Issues Identified\n\n")
		for i, f := range res.Issues {
			fmt.Fprintf(&b, "%d. **Line %d** (%s): %s\n", i+1, f.Line, f.Severity, f.Message)
		}
	}

	if len(res.Positives) > 0 {
		b.WriteString("\n## Positive Aspects\n\n")
		for i, f := range res.Positives {
			fmt.Fprintf(&b, "%d. %s\n", i+1, f.Message)
		}
	}

	b.WriteString("\n## Code Structure\n\n")
	fmt.Fprintf(&b, "Your code is %d lines long. ", res.Lines)
	if res.Lines > longCodeLines {
		b.WriteString("Consider breaking down larger functions into smaller, more focused ones for better readability.\n")
	} else {
		b.WriteString("The code length is appropriate.\n")
	}

	b.WriteString("\n## Suggested Improvements\n\n")
	if len(res.Issues) > 0 {
		b.WriteString("Here are some specific improvements you could make:\n\n")
		for _, f := range res.Issues {
			if f.Suggestion != "" {
				fmt.Fprintf(&b, "- %s\n", f.Suggestion)
			}
		}
		if ownRules {
			for _, f := range res.Issues {
				if f.Example == "" {
					continue
				}
				fmt.Fprintf(&b, "\n```%s\n%s\n```\n", lang, strings.TrimRight(f.Example, "\n"))
			}
		}
	} else {
		b.WriteString("Your code looks good! Here are some optional enhancements you might consider:\n\n")
		enhancements := r.defaultEnhancements
		if ownRules && len(set.enhancements) > 0 {
			enhancements = set.enhancements
		}
		for _, e := range enhancements {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

func (r *Reviewer) ruleSetFor(lang core.Language) *ruleSet {
	if set, ok := r.sets[lang]; ok {
		return set
	}
	return r.sets[core.DefaultLanguage]
}

func quality(issues, positives int) string {
	switch {
	case issues > 3:
		return "needs improvement"
	case issues > 0:
		return "generally good with some issues"
	case positives > 1:
		return "excellent"
	default:
		return "well-structured"
	}
}
