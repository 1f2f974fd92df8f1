package wire

import (
	"io"
	"log/slog"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/logger"
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

// provideLogWriter opens the log destination; the cleanup closes a log file.
func provideLogWriter(cfg logger.Config) (io.Writer, func()) {
	w := logger.Writer(cfg)
	if c, ok := w.(io.Closer); ok && cfg.Output == "file" {
		return w, func() { _ = c.Close() }
	}
	return w, func() {}
}

func provideSlogLogger(cfg logger.Config, writer io.Writer) *slog.Logger {
	log := logger.NewLogger(cfg, writer)
	slog.SetDefault(log)
	return log
}
