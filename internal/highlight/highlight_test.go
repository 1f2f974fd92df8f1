package highlight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/wizpro/internal/core"
)

func TestRegistry_UnknownLanguageFallsBackToPlain(t *testing.T) {
	r := NewRegistry(nil)

	out := r.Highlight("SELECT 1;", core.Language("cobol"))
	assert.Equal(t, "SELECT 1;", out)
	assert.True(t, r.Has(core.LanguagePlain))
	assert.False(t, r.Has(core.Language("cobol")))
}

func TestRegistry_FailingHighlighterDegrades(t *testing.T) {
	tests := []struct {
		name string
		h    Highlighter
	}{
		{
			name: "returns error",
			h: HighlighterFunc(func(string) (string, error) {
				return "", errors.New("grammar exploded")
			}),
		},
		{
			name: "panics",
			h: HighlighterFunc(func(string) (string, error) {
				panic("bad grammar")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(nil)
			r.Register(core.LanguagePython, tt.h)

			out := r.Highlight("print(1)", core.LanguagePython)
			assert.Equal(t, "print(1)", out)
		})
	}
}

func TestRegistry_BrokenPlainReturnsRawCode(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(core.LanguagePlain, HighlighterFunc(func(string) (string, error) {
		return "", errors.New("plain broken")
	}))

	assert.Equal(t, "x := 1", r.Highlight("x := 1", core.LanguageGo))
}

func TestRegistry_RegisterNilKeepsDefault(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(core.LanguagePlain, nil)
	assert.Equal(t, "abc", r.Highlight("abc", core.LanguagePlain))
}

func TestDefaultRegistry_HighlightsGo(t *testing.T) {
	r := NewDefaultRegistry(nil)
	assert.True(t, r.Has(core.LanguageGo))

	code := "package main\n\nfunc main() {}\n"
	out := r.Highlight(code, core.LanguageGo)
	assert.NotEqual(t, code, out, "expected terminal escape codes in highlighted output")
	assert.Contains(t, out, "\x1b[")
}

func TestNewChroma_UnknownLexer(t *testing.T) {
	_, err := NewChroma("no-such-language", DefaultStyle, DefaultFormatter)
	assert.Error(t, err)
}
