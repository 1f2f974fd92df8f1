package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/logger"
)

var (
	backendURL   string
	timeout      time.Duration
	languageFlag string
	verbose      bool

	clientCfg *config.ClientConfig
	log       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wizpro",
	Short: "wizpro is the command-line client for the WiZpro code reviewer.",
	Long: `Send code to the WiZpro review backend and read the review in your terminal.
When the backend cannot be reached an offline heuristic review is shown instead.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadClientConfig,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&backendURL, "backend", "b", "", "Review backend base URL (env WIZPRO_BACKEND_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Review request timeout (env WIZPRO_TIMEOUT)")
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "", "Language of the code; detected from the file name when omitted")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr at debug level")
}

// loadClientConfig reads the settings and applies the command-line overrides.
func loadClientConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
		logCfg.Output = "stderr"
	}
	clientCfg = cfg
	log = logger.NewLogger(logCfg, nil)
	return nil
}

// readSource returns the code to work on and the name it came from. No
// argument or "-" reads standard input.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return filepath.Base(args[0]), string(data), nil
}

// resolveLanguage picks the --language flag, then the file extension, then
// the default language.
func resolveLanguage(name string) (core.Language, error) {
	if languageFlag != "" {
		lang := core.Language(strings.ToLower(languageFlag))
		if !lang.IsSupported() {
			return "", fmt.Errorf("unsupported language %q (see 'wizpro languages')", languageFlag)
		}
		return lang, nil
	}
	if lang, ok := core.LanguageFromFilename(name); ok {
		return lang, nil
	}
	return core.DefaultLanguage, nil
}
