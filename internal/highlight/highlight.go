// Package highlight maps editor languages to syntax highlighters. Every
// registry carries a plain pass-through entry, so highlighting never fails:
// unknown languages and highlighter errors degrade to unformatted code.
package highlight

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/sevigo/wizpro/internal/core"
)

const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// Highlighter marks up source code for display.
type Highlighter interface {
	Highlight(code string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(code string) (string, error)

func (f HighlighterFunc) Highlight(code string) (string, error) { return f(code) }

// Plain is the pass-through grammar.
var Plain Highlighter = HighlighterFunc(func(code string) (string, error) { return code, nil })

// lexerNames maps editor languages to chroma lexer names.
var lexerNames = map[core.Language]string{
	core.LanguageJavaScript: "javascript",
	core.LanguageJSX:        "react",
	core.LanguageTypeScript: "typescript",
	core.LanguagePython:     "python",
	core.LanguageCSS:        "css",
	core.LanguageJava:       "java",
	core.LanguagePHP:        "php",
	core.LanguageRust:       "rust",
	core.LanguageGo:         "go",
	core.LanguageCSharp:     "csharp",
	core.LanguageSQL:        "sql",
}

// LexerName returns the chroma lexer used for lang, or "" when there is none.
func LexerName(lang core.Language) string {
	return lexerNames[lang]
}

// Registry resolves a language to its highlighter.
type Registry struct {
	mu           sync.RWMutex
	highlighters map[core.Language]Highlighter
	logger       *slog.Logger
}

// NewRegistry creates a registry holding only the plain entry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		highlighters: map[core.Language]Highlighter{core.LanguagePlain: Plain},
		logger:       logger,
	}
}

// NewDefaultRegistry creates a registry with chroma highlighters for every
// supported language whose lexer chroma knows about.
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	for _, info := range core.Languages() {
		h, err := NewChroma(lexerNames[info.ID], DefaultStyle, DefaultFormatter)
		if err != nil {
			r.logger.Debug("no highlighter available, language will render as plain text",
				"language", info.ID, "error", err)
			continue
		}
		r.Register(info.ID, h)
	}
	return r
}

// Register installs h for lang. Registering the plain language replaces the
// pass-through entry, but a nil highlighter is ignored so the default stays.
func (r *Registry) Register(lang core.Language, h Highlighter) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlighters[lang] = h
}

// Has reports whether lang has a dedicated highlighter.
func (r *Registry) Has(lang core.Language) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.highlighters[lang]
	return ok
}

// Highlight returns code marked up for lang. It never fails.
func (r *Registry) Highlight(code string, lang core.Language) string {
	r.mu.RLock()
	h, ok := r.highlighters[lang]
	plain := r.highlighters[core.LanguagePlain]
	r.mu.RUnlock()

	usedPlain := !ok || lang == core.LanguagePlain
	if !ok {
		r.logger.Debug("language not registered, falling back to plain text", "language", lang)
		h = plain
	}

	out, err := safeHighlight(h, code)
	if err == nil {
		return out
	}
	r.logger.Debug("highlighting failed, falling back to plain text", "language", lang, "error", err)

	if !usedPlain {
		if out, err := safeHighlight(plain, code); err == nil {
			return out
		}
	}
	return code
}

func safeHighlight(h Highlighter, code string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("highlighter panicked: %v", rec)
		}
	}()
	return h.Highlight(code)
}

// Chroma highlights with a chroma lexer, style and formatter.
type Chroma struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewChroma looks up the named lexer, style and formatter. Unknown styles fall
// back to chroma's default; unknown lexers and formatters are an error.
func NewChroma(lexerName, styleName, formatterName string) (*Chroma, error) {
	if lexerName == "" {
		return nil, fmt.Errorf("no lexer name given")
	}
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return nil, fmt.Errorf("unknown lexer %q", lexerName)
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get(formatterName)
	if formatter == nil {
		return nil, fmt.Errorf("unknown formatter %q", formatterName)
	}

	return &Chroma{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatter,
	}, nil
}

// Highlight tokenises and formats code.
func (c *Chroma) Highlight(code string) (string, error) {
	iterator, err := c.lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise: %w", err)
	}

	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format: %w", err)
	}
	return b.String(), nil
}
