package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/wizpro/internal/client"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/editor"
	"github.com/sevigo/wizpro/internal/highlight"
	"github.com/sevigo/wizpro/internal/mockreview"
	"github.com/sevigo/wizpro/internal/storage"
)

func newTestModel(t *testing.T, backend string) *model {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := editor.Open(storage.NewMemoryStore(), highlight.NewRegistry(log), log)
	c, err := client.New(client.Config{BackendURL: backend}, mockreview.MustNew(), log)
	require.NoError(t, err)
	return initialModel(context.Background(), session, c, log)
}

func closedBackend(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestModel_TypingIsUndoable(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	before := m.session.Code()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NotEqual(t, before, m.session.Code())
	assert.True(t, m.session.CanUndo())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Equal(t, before, m.session.Code())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.NotEqual(t, before, m.session.Code())
}

func TestModel_NonKeyMessagesDoNotRecordHistory(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(tea.FocusMsg{})
	assert.False(t, m.session.CanUndo())
}

func TestProcessCommand_Language(t *testing.T) {
	m := newTestModel(t, closedBackend(t))

	assert.Nil(t, m.processCommand("/lang python"))
	assert.Equal(t, core.LanguagePython, m.session.Language())
	assert.Equal(t, m.session.Code(), m.code.Value())

	m.processCommand("/lang cobol")
	assert.Equal(t, noticeError, m.kind)
	assert.Contains(t, m.notice, "unsupported language")
	assert.Equal(t, core.LanguagePython, m.session.Language())

	m.processCommand("/lang")
	assert.Contains(t, m.notice, "USAGE: /lang")
}

func TestProcessCommand_FontAndTheme(t *testing.T) {
	m := newTestModel(t, closedBackend(t))

	m.processCommand("/font +4")
	assert.Equal(t, editor.DefaultFontSize+4, m.session.FontSize())
	m.processCommand("/font 100")
	assert.Equal(t, editor.MaxFontSize, m.session.FontSize())
	m.processCommand("/font big")
	assert.Equal(t, noticeError, m.kind)

	m.processCommand("/theme dark")
	assert.Equal(t, editor.ThemeDark, m.session.Theme())
	assert.Equal(t, "dark", m.styles.markdown)
	m.processCommand("/theme")
	assert.Equal(t, editor.ThemeLight, m.session.Theme())
	m.processCommand("/theme blue")
	assert.Equal(t, noticeError, m.kind)
}

func TestProcessCommand_ClearAndExample(t *testing.T) {
	m := newTestModel(t, closedBackend(t))

	m.processCommand("/clear")
	assert.Empty(t, m.session.Code())
	assert.Empty(t, m.code.Value())

	m.processCommand("/example")
	assert.Equal(t, editor.Template(m.session.Language()), m.session.Code())

	m.processCommand("/undo")
	assert.Empty(t, m.session.Code())
}

func TestProcessCommand_SaveAndLoad(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	path := filepath.Join(t.TempDir(), "main.py")
	m.processCommand("/lang python")

	msg := m.processCommand("/save " + path)()
	assert.Equal(t, noticeMsg{kind: noticeSuccess, text: "Saved " + path}, msg)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.session.Code(), string(data))

	m.processCommand("/lang javascript")
	msg = m.processCommand("/load " + path)()
	m.Update(msg)
	assert.Equal(t, core.LanguagePython, m.session.Language())
	assert.Equal(t, string(data), m.session.Code())

	msg = m.processCommand("/load " + filepath.Join(t.TempDir(), "missing.go"))()
	_, isErr := msg.(errorMsg)
	assert.True(t, isErr)
}

func TestProcessCommand_Unknown(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	assert.Nil(t, m.processCommand("/frobnicate"))
	assert.Contains(t, m.notice, "UNKNOWN COMMAND")
}

func TestReview_OfflineShowsMockWithNotice(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	m.processCommand("/clear")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("console.log(1)")})

	cmd := m.startReview()
	require.NotNil(t, cmd)
	assert.True(t, m.reviewing)

	assert.Nil(t, m.startReview())
	assert.Equal(t, "A review is already in progress", m.notice)

	msg := reviewCmd(context.Background(), m.client, m.session.Code(), m.session.Language())()
	m.Update(msg)

	assert.False(t, m.reviewing)
	assert.Equal(t, noticeWarn, m.kind)
	assert.Contains(t, m.notice, "offline review")
	assert.Contains(t, m.review, "console.log")
}

func TestReview_ServerErrorShowsNoContent(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	m.review = "# old review"
	m.reviewing = true

	m.Update(reviewCompleteMsg{err: &client.ServerError{Status: 500, Message: "model quota exceeded"}})

	assert.False(t, m.reviewing)
	assert.Empty(t, m.review)
	assert.Equal(t, noticeError, m.kind)
	assert.Equal(t, "model quota exceeded", m.notice)

	m.reviewing = true
	m.Update(reviewCompleteMsg{err: &client.RequestError{Err: assert.AnError}})
	assert.Equal(t, genericReviewError, m.notice)
}

func TestReview_EmptyEditor(t *testing.T) {
	m := newTestModel(t, closedBackend(t))
	m.processCommand("/clear")
	assert.Nil(t, m.startReview())
	assert.False(t, m.reviewing)
}
