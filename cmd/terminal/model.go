package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/wizpro/internal/client"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/editor"
	"github.com/sevigo/wizpro/internal/render"
)

const (
	genericReviewError = "Failed to get review. Please try again."
	chromeHeight       = 7
)

// pane is what the right-hand side shows.
type pane int

const (
	paneReview pane = iota
	panePreview
)

type model struct {
	ctx     context.Context
	session *editor.Session
	client  *client.Client
	logger  *slog.Logger
	styles  styles

	// UI Components
	code     textarea.Model
	command  textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// shown is the editor text as last synced with the session. The textarea
	// normalises some input, so comparing with the session would see edits
	// the user never made.
	shown string

	pane      pane
	reviewing bool
	review    string
	notice    string
	kind      noticeKind
}

func initialModel(ctx context.Context, session *editor.Session, c *client.Client, logger *slog.Logger) *model {
	st := GetTheme(session.Theme())

	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Placeholder = "Write or paste code here..."
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "► "
	ti.PromptStyle = st.prompt
	ti.Placeholder = "Type /help for commands, tab to switch focus"

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.spinner

	m := &model{
		ctx:      ctx,
		session:  session,
		client:   c,
		logger:   logger,
		styles:   st,
		code:     ta,
		command:  ti,
		viewport: viewport.New(40, 10),
		spinner:  sp,
	}
	m.loadEditor()
	m.refreshPane()
	return m
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			return m, m.toggleFocus()
		case tea.KeyCtrlR:
			return m, m.startReview()
		case tea.KeyCtrlZ:
			m.undo()
			return m, nil
		case tea.KeyCtrlY:
			m.redo()
			return m, nil
		case tea.KeyCtrlP:
			m.togglePane()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			if m.command.Focused() {
				input := strings.TrimSpace(m.command.Value())
				m.command.Reset()
				if input == "" {
					return m, nil
				}
				return m, m.processCommand(input)
			}
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.reviewing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reviewCompleteMsg:
		m.finishReview(msg)
		return m, nil

	case fileLoadedMsg:
		lang := m.session.LoadFile(msg.name, msg.content)
		m.loadEditor()
		m.refreshPane()
		m.setNotice(noticeSuccess, fmt.Sprintf("Loaded %s as %s", msg.name, lang))
		return m, nil

	case noticeMsg:
		m.setNotice(msg.kind, msg.text)
		return m, nil

	case errorMsg:
		m.logger.Error("command failed", "error", msg.err)
		m.setNotice(noticeError, msg.err.Error())
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.command.Focused() {
		m.command, cmd = m.command.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.code, cmd = m.code.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			m.syncFromEditor()
		}
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	title := "REVIEW"
	if m.pane == panePreview {
		title = "PREVIEW"
	}
	right := m.styles.pane.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.paneTitle.Render(title),
		m.viewport.View(),
	))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.styles.code.Render(m.code.View()), right)

	var loadingIndicator string
	if m.reviewing {
		loadingIndicator = " " + m.spinner.View() + " " + m.styles.success.Render("REVIEWING...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			body,
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.command.View(),
					loadingIndicator,
				),
			),
			m.statusLine(),
			m.noticeLine(),
		),
	)
}

func (m *model) statusLine() string {
	parts := []string{
		fmt.Sprintf("LANG: %s", m.session.Language()),
		fmt.Sprintf("FONT: %d", m.session.FontSize()),
		fmt.Sprintf("THEME: %s", m.session.Theme()),
	}
	if m.session.CanUndo() {
		parts = append(parts, "^Z undo")
	}
	if m.session.CanRedo() {
		parts = append(parts, "^Y redo")
	}
	if !m.reviewing {
		parts = append(parts, "^R review")
	}
	parts = append(parts, m.client.Endpoint())
	return m.styles.inactive.Render(strings.Join(parts, " │ "))
}

func (m *model) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	switch m.kind {
	case noticeError:
		return m.styles.error.Render("⚠ " + m.notice)
	case noticeWarn:
		return m.styles.warning.Render(m.notice)
	case noticeSuccess:
		return m.styles.success.Render("✓ " + m.notice)
	default:
		return m.styles.command.Render(m.notice)
	}
}

func (m *model) setNotice(kind noticeKind, text string) {
	m.kind = kind
	m.notice = text
}

func (m *model) resize(width, height int) {
	paneWidth := width / 2
	bodyHeight := max(height-chromeHeight, 3)

	m.code.SetWidth(max(width-paneWidth-4, 10))
	m.code.SetHeight(bodyHeight)
	m.viewport.Width = max(paneWidth-4, 10)
	m.viewport.Height = max(bodyHeight-1, 1)
	m.command.Width = max(width-20, 10)
	m.refreshPane()
}

// loadEditor copies the session buffer into the textarea.
func (m *model) loadEditor() {
	m.code.SetValue(m.session.Code())
	m.shown = m.code.Value()
}

// syncFromEditor records a user edit in the session.
func (m *model) syncFromEditor() {
	value := m.code.Value()
	if value == m.shown {
		return
	}
	m.shown = value
	m.session.Edit(value)
	if m.pane == panePreview {
		m.refreshPane()
	}
}

func (m *model) refreshPane() {
	if m.pane == panePreview {
		m.viewport.SetContent(m.session.Highlighted())
		return
	}
	if m.review == "" {
		m.viewport.SetContent(m.styles.inactive.Render("Press ctrl+r or type /review to review the code."))
		return
	}
	m.viewport.SetContent(render.Markdown(m.review, m.viewport.Width, m.styles.markdown))
}

func (m *model) toggleFocus() tea.Cmd {
	if m.command.Focused() {
		m.command.Blur()
		return m.code.Focus()
	}
	m.code.Blur()
	return m.command.Focus()
}

func (m *model) togglePane() {
	if m.pane == paneReview {
		m.pane = panePreview
	} else {
		m.pane = paneReview
	}
	m.refreshPane()
	m.viewport.GotoTop()
}

func (m *model) undo() {
	if !m.session.Undo() {
		m.setNotice(noticeInfo, "Nothing to undo")
		return
	}
	m.loadEditor()
	m.refreshPane()
}

func (m *model) redo() {
	if !m.session.Redo() {
		m.setNotice(noticeInfo, "Nothing to redo")
		return
	}
	m.loadEditor()
	m.refreshPane()
}

// startReview submits the buffer. While a review is in flight the trigger is
// disabled.
func (m *model) startReview() tea.Cmd {
	if m.reviewing {
		m.setNotice(noticeWarn, "A review is already in progress")
		return nil
	}
	code := m.session.Code()
	if strings.TrimSpace(code) == "" {
		m.setNotice(noticeWarn, "Nothing to review: the editor is empty")
		return nil
	}

	m.reviewing = true
	m.pane = paneReview
	m.setNotice(noticeInfo, fmt.Sprintf("Reviewing %s code...", m.session.Language()))
	return tea.Batch(m.spinner.Tick, reviewCmd(m.ctx, m.client, code, m.session.Language()))
}

func (m *model) finishReview(msg reviewCompleteMsg) {
	m.reviewing = false
	defer m.viewport.GotoTop()

	if msg.err != nil {
		var serr *client.ServerError
		switch {
		case errors.Is(msg.err, context.Canceled):
			return
		case errors.As(msg.err, &serr):
			m.setNotice(noticeError, serr.Message)
		default:
			m.setNotice(noticeError, genericReviewError)
		}
		m.logger.Error("review failed", "error", msg.err)
		m.review = ""
		m.refreshPane()
		return
	}

	m.review = msg.outcome.Review.Markdown
	if msg.outcome.Notice != "" {
		m.setNotice(noticeWarn, msg.outcome.Notice)
	} else {
		m.setNotice(noticeSuccess, "Review complete")
	}
	m.pane = paneReview
	m.refreshPane()
}

func (m *model) processCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	command := parts[0]
	args := parts[1:]

	switch command {
	case "/review", "/r":
		return m.startReview()

	case "/lang", "/language":
		if len(args) != 1 {
			ids := make([]string, 0, len(core.Languages()))
			for _, l := range core.Languages() {
				ids = append(ids, string(l.ID))
			}
			m.setNotice(noticeInfo, "USAGE: /lang [name] ("+strings.Join(ids, ", ")+")")
			return nil
		}
		lang := core.Language(strings.ToLower(args[0]))
		if err := m.session.SetLanguage(lang); err != nil {
			m.setNotice(noticeError, err.Error())
			return nil
		}
		m.loadEditor()
		m.refreshPane()
		m.setNotice(noticeSuccess, fmt.Sprintf("Language set to %s", lang))
		return nil

	case "/undo":
		m.undo()
		return nil

	case "/redo":
		m.redo()
		return nil

	case "/font":
		if len(args) != 1 {
			m.setNotice(noticeError, "USAGE: /font [+N|-N]")
			return nil
		}
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			m.setNotice(noticeError, fmt.Sprintf("Invalid font size change %q", args[0]))
			return nil
		}
		m.setNotice(noticeInfo, fmt.Sprintf("Font size %d", m.session.ChangeFontSize(delta)))
		return nil

	case "/theme":
		dark := m.session.Theme() != editor.ThemeDark
		if len(args) == 1 {
			switch args[0] {
			case string(editor.ThemeDark):
				dark = true
			case string(editor.ThemeLight):
				dark = false
			default:
				m.setNotice(noticeError, "USAGE: /theme [dark|light]")
				return nil
			}
		}
		m.session.SetTheme(dark)
		m.applyTheme()
		m.setNotice(noticeSuccess, fmt.Sprintf("Theme set to %s", m.session.Theme()))
		return nil

	case "/clear":
		m.session.Clear()
		m.loadEditor()
		m.refreshPane()
		return nil

	case "/example":
		m.session.LoadExample()
		m.loadEditor()
		m.refreshPane()
		return nil

	case "/load":
		if len(args) != 1 {
			m.setNotice(noticeError, "USAGE: /load [path]")
			return nil
		}
		return loadFileCmd(args[0])

	case "/save":
		path := m.session.DownloadName()
		if len(args) == 1 {
			path = args[0]
		}
		return saveFileCmd(path, m.session.Code())

	case "/copy":
		return copyCmd(m.session.Code())

	case "/preview", "/p":
		m.togglePane()
		return nil

	case "/help", "/h":
		m.pane = paneReview
		m.review = ""
		m.viewport.SetContent(m.helpText())
		m.viewport.GotoTop()
		return nil

	case "/exit", "/quit", "/q":
		return tea.Quit

	default:
		m.setNotice(noticeError, fmt.Sprintf("UNKNOWN COMMAND: %s (type /help for assistance)", command))
		return nil
	}
}

func (m *model) applyTheme() {
	m.styles = GetTheme(m.session.Theme())
	m.command.PromptStyle = m.styles.prompt
	m.spinner.Style = m.styles.spinner
	m.refreshPane()
}

func (m *model) helpText() string {
	return m.styles.success.Render("AVAILABLE COMMANDS:") + `

  /review, /r          Review the code (ctrl+r).
  /lang [name]         Switch language; restores the code saved for it.
  /undo, /redo         Step through the edit history (ctrl+z, ctrl+y).
  /font [+N|-N]        Change the font size.
  /theme [dark|light]  Switch theme; toggles without an argument.
  /clear               Empty the editor.
  /example             Load the example for the current language.
  /load [path]         Load a file; its extension selects the language.
  /save [path]         Save the code, by default to ` + m.session.DownloadName() + `.
  /copy                Copy the code to the clipboard.
  /preview, /p         Toggle the highlighted preview (ctrl+p).
  /help                Show this help message.
  /exit, /quit         Exit WiZpro.

  ` + m.styles.inactive.Render("TIP: press tab to move between the editor and the command line.")
}
