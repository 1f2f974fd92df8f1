package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/storage"
	"github.com/sevigo/wizpro/mocks"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openMemory(t *testing.T) (*Session, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return Open(store, nil, quietLogger()), store
}

func TestOpen_Defaults(t *testing.T) {
	s, store := openMemory(t)

	assert.Equal(t, core.LanguageJavaScript, s.Language())
	assert.Equal(t, DefaultFontSize, s.FontSize())
	assert.Equal(t, ThemeLight, s.Theme())
	assert.Equal(t, Template(core.LanguageJavaScript), s.Code())

	state := s.State()
	assert.Equal(t, []string{s.Code()}, state.History)
	assert.Equal(t, 0, state.HistoryIndex)

	saved, ok := store.Get(CodeKey(core.LanguageJavaScript))
	assert.True(t, ok)
	assert.Equal(t, s.Code(), saved)
}

func TestOpen_RestoresSavedState(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("theme", "dark"))
	require.NoError(t, store.Set("language", "python"))
	require.NoError(t, store.Set("code_python", "print('saved')"))
	require.NoError(t, store.Set("fontSize", "99"))

	s := Open(store, nil, quietLogger())

	assert.Equal(t, ThemeDark, s.Theme())
	assert.Equal(t, core.LanguagePython, s.Language())
	assert.Equal(t, "print('saved')", s.Code())
	assert.Equal(t, MaxFontSize, s.FontSize())
}

func TestOpen_IgnoresGarbage(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("language", "brainfuck"))
	require.NoError(t, store.Set("fontSize", "large"))

	s := Open(store, nil, quietLogger())
	assert.Equal(t, core.LanguageJavaScript, s.Language())
	assert.Equal(t, DefaultFontSize, s.FontSize())
}

func TestUndo_RestoresPrecedingEntry(t *testing.T) {
	edits := [][]string{
		{"a"},
		{"a", "ab"},
		{"a", "ab", "abc", "abcd"},
		{"x", "x", "y"},
	}

	for i, seq := range edits {
		t.Run(fmt.Sprintf("sequence_%d", i), func(t *testing.T) {
			s, _ := openMemory(t)
			for _, text := range seq {
				s.Edit(text)
			}

			state := s.State()
			require.Positive(t, state.HistoryIndex)
			want := state.History[state.HistoryIndex-1]

			assert.True(t, s.Undo())
			assert.Equal(t, want, s.Code())
		})
	}
}

func TestRedo_AfterUndoRestoresBuffer(t *testing.T) {
	s, _ := openMemory(t)
	s.Edit("one")
	s.Edit("two")

	before := s.Code()
	require.True(t, s.Undo())
	require.True(t, s.Redo())
	assert.Equal(t, before, s.Code())
}

func TestUndoRedo_BoundariesAreNoOps(t *testing.T) {
	s, _ := openMemory(t)
	initial := s.Code()

	assert.False(t, s.CanUndo())
	assert.False(t, s.Undo())
	assert.Equal(t, initial, s.Code())

	s.Edit("next")
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
	assert.Equal(t, "next", s.Code())
}

func TestAddToHistory_TruncatesRedoEntries(t *testing.T) {
	s, _ := openMemory(t)
	s.Edit("a")
	s.Edit("b")
	s.Edit("c")

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	s.Edit("z")

	state := s.State()
	assert.Equal(t, []string{Template(core.LanguageJavaScript), "a", "z"}, state.History)
	assert.Equal(t, 2, state.HistoryIndex)
	assert.False(t, s.CanRedo())
}

func TestAddToHistory_SkipsDuplicates(t *testing.T) {
	s, _ := openMemory(t)
	s.Edit("same")
	s.Edit("same")
	s.AddToHistory("same")

	assert.Len(t, s.State().History, 2)
}

func TestHistoryIndexInvariant(t *testing.T) {
	s, _ := openMemory(t)
	ops := []func(){
		func() { s.Edit("1") },
		func() { s.Undo() },
		func() { s.Undo() },
		func() { s.Redo() },
		func() { s.Edit("2") },
		func() { s.Redo() },
		func() { s.Clear() },
		func() { s.LoadExample() },
		func() { s.Undo() },
	}
	for _, op := range ops {
		op()
		state := s.State()
		assert.GreaterOrEqual(t, state.HistoryIndex, 0)
		assert.Less(t, state.HistoryIndex, len(state.History))
		assert.Equal(t, state.History[state.HistoryIndex], state.Code)
	}
}

func TestChangeFontSize_Clamps(t *testing.T) {
	s, store := openMemory(t)

	deltas := []int{1, 5, 100, -3, -1000, 2, 7, 7, 7}
	for _, d := range deltas {
		size := s.ChangeFontSize(d)
		assert.GreaterOrEqual(t, size, MinFontSize)
		assert.LessOrEqual(t, size, MaxFontSize)
	}

	saved, ok := store.Get("fontSize")
	assert.True(t, ok)
	assert.Equal(t, fmt.Sprint(s.FontSize()), saved)
}

func TestSetLanguage_RoundTrip(t *testing.T) {
	s, _ := openMemory(t)
	s.Edit("const mine = 1;")

	require.NoError(t, s.SetLanguage(core.LanguagePython))
	assert.Equal(t, Template(core.LanguagePython), s.Code())
	s.Edit("print('py')")

	require.NoError(t, s.SetLanguage(core.LanguageJavaScript))
	assert.Equal(t, "const mine = 1;", s.Code())

	require.NoError(t, s.SetLanguage(core.LanguagePython))
	assert.Equal(t, "print('py')", s.Code())
}

func TestSetLanguage_SurvivesReopen(t *testing.T) {
	store := storage.NewMemoryStore()
	s := Open(store, nil, quietLogger())
	require.NoError(t, s.SetLanguage(core.LanguageRust))
	s.Edit("fn main() {}")

	reopened := Open(store, nil, quietLogger())
	assert.Equal(t, core.LanguageRust, reopened.Language())
	assert.Equal(t, "fn main() {}", reopened.Code())
}

func TestSetLanguage_Unsupported(t *testing.T) {
	s, _ := openMemory(t)
	err := s.SetLanguage("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, core.LanguageJavaScript, s.Language())
}

func TestClearAndLoadExample(t *testing.T) {
	s, _ := openMemory(t)
	s.Edit("something")

	s.Clear()
	assert.Equal(t, "", s.Code())
	require.True(t, s.Undo())
	assert.Equal(t, "something", s.Code())

	require.True(t, s.Redo())
	s.LoadExample()
	assert.Equal(t, Template(core.LanguageJavaScript), s.Code())
}

func TestLoadFile(t *testing.T) {
	s, store := openMemory(t)

	lang := s.LoadFile("component.tsx", "let x: number = 1")
	assert.Equal(t, core.LanguageTypeScript, lang)
	assert.Equal(t, "let x: number = 1", s.Code())
	saved, _ := store.Get(CodeKey(core.LanguageTypeScript))
	assert.Equal(t, "let x: number = 1", saved)
	assert.Equal(t, "code.ts", s.DownloadName())

	lang = s.LoadFile("notes.unknown", "plain text")
	assert.Equal(t, core.LanguageTypeScript, lang)
}

func TestSetTheme(t *testing.T) {
	s, store := openMemory(t)
	s.SetTheme(true)
	v, _ := store.Get("theme")
	assert.Equal(t, "dark", v)

	s.SetTheme(false)
	v, _ = store.Get("theme")
	assert.Equal(t, "light", v)
}

type upperHighlighter struct{}

func (upperHighlighter) Highlight(code string, lang core.Language) string {
	return string(lang) + ":" + code
}

func TestHighlighted(t *testing.T) {
	s := Open(storage.NewMemoryStore(), upperHighlighter{}, quietLogger())
	s.Edit("x")
	assert.Equal(t, "javascript:x", s.Highlighted())
}

func TestSession_StoreFailuresAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any()).Return("", false).AnyTimes()
	store.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()

	s := Open(store, nil, quietLogger())
	s.Edit("still works")
	assert.Equal(t, "still works", s.Code())
	assert.True(t, s.Undo())
}
