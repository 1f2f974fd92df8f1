// Package editor holds the state of a code editing session: the buffer, the
// selected language, the font size, the theme and a linear undo/redo history.
// Every change to the buffer or the language is mirrored to a core.Store keyed
// by language, so switching languages restores the code last written in each.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sevigo/wizpro/internal/core"
)

const (
	MinFontSize     = 10
	MaxFontSize     = 24
	DefaultFontSize = 14
)

// Persistence keys.
const (
	keyLanguage   = "language"
	keyTheme      = "theme"
	keyFontSize   = "fontSize"
	codeKeyPrefix = "code_"
)

// ErrUnsupportedLanguage is returned when selecting a language the editor does not know.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Highlighter renders code for display. *highlight.Registry satisfies it.
type Highlighter interface {
	Highlight(code string, lang core.Language) string
}

// State is a snapshot of a session.
type State struct {
	Code         string
	Language     core.Language
	FontSize     int
	Theme        Theme
	History      []string
	HistoryIndex int
}

// Session is a single editor. It is not safe for concurrent use; front-ends
// drive it from one event loop.
type Session struct {
	store       core.Store
	highlighter Highlighter
	logger      *slog.Logger

	code         string
	language     core.Language
	fontSize     int
	theme        Theme
	history      []string
	historyIndex int
}

// CodeKey returns the store key holding the saved buffer for lang.
func CodeKey(lang core.Language) string {
	return codeKeyPrefix + string(lang)
}

// Open restores a session from store: theme, language, the code saved for that
// language (or its template) and font size. The restored code becomes the
// first history entry.
func Open(store core.Store, highlighter Highlighter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:        store,
		highlighter:  highlighter,
		logger:       logger,
		language:     core.DefaultLanguage,
		fontSize:     DefaultFontSize,
		theme:        ThemeLight,
		historyIndex: -1,
	}

	if v, ok := store.Get(keyTheme); ok && Theme(v) == ThemeDark {
		s.theme = ThemeDark
	}

	if v, ok := store.Get(keyLanguage); ok {
		if lang := core.Language(v); lang.IsSupported() {
			s.language = lang
		} else {
			logger.Warn("ignoring unsupported saved language", "language", v)
		}
	}

	if v, ok := store.Get(keyFontSize); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("ignoring invalid saved font size", "value", v, "error", err)
		} else {
			s.fontSize = clampFontSize(size)
		}
	}

	code := s.savedOrTemplate(s.language)
	s.SetCode(code)
	s.AddToHistory(code)

	logger.Debug("editor session restored",
		"language", s.language,
		"theme", s.theme,
		"font_size", s.fontSize,
		"chars", len(s.code))
	return s
}

// Code returns the current buffer.
func (s *Session) Code() string { return s.code }

// Language returns the selected language.
func (s *Session) Language() core.Language { return s.language }

// FontSize returns the font size in points.
func (s *Session) FontSize() int { return s.fontSize }

// Theme returns the selected theme.
func (s *Session) Theme() Theme { return s.theme }

// State returns a copy of the session state.
func (s *Session) State() State {
	history := make([]string, len(s.history))
	copy(history, s.history)
	return State{
		Code:         s.code,
		Language:     s.language,
		FontSize:     s.fontSize,
		Theme:        s.theme,
		History:      history,
		HistoryIndex: s.historyIndex,
	}
}

// SetCode replaces the buffer and persists it under the current language. It
// does not touch the history; callers snapshot with AddToHistory.
func (s *Session) SetCode(text string) {
	s.code = text
	s.persist(CodeKey(s.language), text)
	s.persist(keyLanguage, string(s.language))
}

// AddToHistory snapshots text. Redo entries beyond the current index are
// discarded first; nothing is recorded when text equals the current snapshot.
func (s *Session) AddToHistory(text string) {
	if s.historyIndex >= 0 && s.history[s.historyIndex] == text {
		return
	}
	s.history = append(s.history[:s.historyIndex+1], text)
	s.historyIndex = len(s.history) - 1
}

// Edit sets the buffer and snapshots it.
func (s *Session) Edit(text string) {
	s.SetCode(text)
	s.AddToHistory(text)
}

// CanUndo reports whether Undo would move.
func (s *Session) CanUndo() bool { return s.historyIndex > 0 }

// CanRedo reports whether Redo would move.
func (s *Session) CanRedo() bool { return s.historyIndex < len(s.history)-1 }

// Undo loads the previous snapshot. It is a no-op on the first entry and
// reports whether it moved.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.historyIndex--
	s.SetCode(s.history[s.historyIndex])
	return true
}

// Redo loads the next snapshot. It is a no-op on the last entry and reports
// whether it moved.
func (s *Session) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	s.historyIndex++
	s.SetCode(s.history[s.historyIndex])
	return true
}

// ChangeFontSize adjusts the font size by delta within [MinFontSize, MaxFontSize].
func (s *Session) ChangeFontSize(delta int) int {
	s.fontSize = clampFontSize(s.fontSize + delta)
	s.persist(keyFontSize, strconv.Itoa(s.fontSize))
	return s.fontSize
}

// SetTheme selects the dark or light theme.
func (s *Session) SetTheme(dark bool) {
	s.theme = ThemeLight
	if dark {
		s.theme = ThemeDark
	}
	s.persist(keyTheme, string(s.theme))
}

// SetLanguage switches language and loads the code saved for it, or its
// template when nothing was saved.
func (s *Session) SetLanguage(lang core.Language) error {
	if !lang.IsSupported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	s.language = lang
	s.Edit(s.savedOrTemplate(lang))
	return nil
}

// Clear empties the buffer, keeping the previous content undoable.
func (s *Session) Clear() {
	s.AddToHistory(s.code)
	s.Edit("")
}

// LoadExample replaces the buffer with the template of the current language.
func (s *Session) LoadExample() {
	s.AddToHistory(s.code)
	s.Edit(Template(s.language))
}

// LoadFile puts content in the buffer and, when the file extension maps to a
// supported language, selects it. Unlike SetLanguage the saved code of that
// language is overwritten by content. It returns the language in effect.
func (s *Session) LoadFile(name, content string) core.Language {
	if lang, ok := core.LanguageFromFilename(name); ok {
		s.language = lang
	}
	s.Edit(content)
	s.logger.Info("file loaded into editor", "file", name, "language", s.language)
	return s.language
}

// DownloadName is the file name used when saving the buffer.
func (s *Session) DownloadName() string {
	return "code." + s.language.Extension()
}

// Highlighted returns the buffer marked up for the current language.
func (s *Session) Highlighted() string {
	if s.highlighter == nil {
		return s.code
	}
	return s.highlighter.Highlight(s.code, s.language)
}

func (s *Session) savedOrTemplate(lang core.Language) string {
	if saved, ok := s.store.Get(CodeKey(lang)); ok && saved != "" {
		return saved
	}
	return Template(lang)
}

// persist writes a key; storage failures are logged and the session carries on
// with its in-memory state.
func (s *Session) persist(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		s.logger.Warn("failed to persist editor state", "key", key, "error", err)
	}
}

func clampFontSize(size int) int {
	return max(MinFontSize, min(MaxFontSize, size))
}
