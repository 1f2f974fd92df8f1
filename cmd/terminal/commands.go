package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/wizpro/internal/client"
	"github.com/sevigo/wizpro/internal/core"
)

func reviewCmd(ctx context.Context, c *client.Client, code string, lang core.Language) tea.Cmd {
	return func() tea.Msg {
		outcome, err := c.SubmitReview(ctx, code, lang)
		return reviewCompleteMsg{outcome: outcome, err: err}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errorMsg{fmt.Errorf("failed to load %s: %w", path, err)}
		}
		return fileLoadedMsg{name: filepath.Base(path), content: string(data)}
	}
}

func saveFileCmd(path, code string) tea.Cmd {
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			return errorMsg{fmt.Errorf("failed to save %s: %w", path, err)}
		}
		return noticeMsg{kind: noticeSuccess, text: "Saved " + path}
	}
}

func copyCmd(code string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(code); err != nil {
			return errorMsg{fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return noticeMsg{kind: noticeSuccess, text: "Code copied to clipboard"}
	}
}
