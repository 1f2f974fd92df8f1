package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/wizpro/internal/client"
	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/db"
	"github.com/sevigo/wizpro/internal/editor"
	"github.com/sevigo/wizpro/internal/highlight"
	"github.com/sevigo/wizpro/internal/logger"
	"github.com/sevigo/wizpro/internal/mockreview"
	"github.com/sevigo/wizpro/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	themeFlag := flag.String("theme", "", "UI theme (dark, light); the saved theme is used when empty")
	backendFlag := flag.String("backend", "", "Review backend base URL")
	flag.Parse()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *backendFlag != "" {
		cfg.BackendURL = *backendFlag
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logCfg := cfg.Logging
	if logCfg.Output != "none" {
		logCfg.Output = "file"
	}
	log := logger.NewLogger(logCfg, nil)
	slog.SetDefault(log)
	log.Info("WiZpro terminal starting up")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	session := editor.Open(store, highlight.NewDefaultRegistry(log), log)
	switch editor.Theme(*themeFlag) {
	case "":
	case editor.ThemeDark, editor.ThemeLight:
		session.SetTheme(editor.Theme(*themeFlag) == editor.ThemeDark)
	default:
		return fmt.Errorf("invalid theme %q, use dark or light", *themeFlag)
	}

	reviewer, err := mockreview.New()
	if err != nil {
		return fmt.Errorf("failed to load offline review rules: %w", err)
	}
	c, err := client.New(client.Config{BackendURL: cfg.BackendURL, Timeout: cfg.Timeout}, reviewer, log)
	if err != nil {
		return err
	}

	p := tea.NewProgram(initialModel(ctx, session, c, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("WiZpro terminal shut down successfully")
	return nil
}

// openStore picks the editor state backend: PostgreSQL when a DSN is set,
// otherwise the state file. When neither opens, state lives in memory for
// this run only.
func openStore(ctx context.Context, cfg *config.ClientConfig, log *slog.Logger) (core.Store, func()) {
	if cfg.StateDSN != "" {
		conn, closeDB, err := db.Open(ctx, cfg.StateDSN, log)
		if err == nil {
			return storage.NewPostgresStore(conn.DB, cfg.StateProfile, log), closeDB
		}
		log.Warn("failed to open state database, falling back to the state file", "error", err)
	}

	fileStore, err := storage.OpenFileStore(cfg.StateFile)
	if err != nil {
		log.Warn("failed to open state file, editor state will not be kept", "path", cfg.StateFile, "error", err)
		return storage.NewMemoryStore(), func() {}
	}
	return fileStore, func() {}
}
