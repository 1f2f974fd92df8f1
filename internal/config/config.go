// Package config loads the settings of the review server and of the editor
// front-ends. Values come from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/wizpro/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderMock   = "mock"

	defaultGeminiModel = "gemini-2.5-flash"
)

// Config holds the review server configuration.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Logging logger.Config
}

// ServerConfig controls the HTTP listener and routing.
type ServerConfig struct {
	Port           string
	RoutePrefix    string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// MaxConcurrentReviews bounds the model calls in flight; further reviews
	// wait in a queue of ReviewQueueSize.
	MaxConcurrentReviews int
	ReviewQueueSize      int
}

// AIConfig selects and configures the completion model.
type AIConfig struct {
	LLMProvider    string
	GeminiAPIKey   string
	OllamaHost     string
	GeneratorModel string
	ModelTimeout   time.Duration
}

// Validate checks that the selected provider has what it needs.
func (c AIConfig) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY must be set for the gemini provider")
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return errors.New("OLLAMA_HOST must be set for the ollama provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.LLMProvider)
	}
	if c.LLMProvider != ProviderMock && c.GeneratorModel == "" {
		return errors.New("GENERATOR_MODEL_NAME must be set")
	}
	return nil
}

// LoadConfig reads the server configuration from the environment and a .env
// file in the working directory, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("ROUTE_PREFIX", "/ai")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SERVER_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 120*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 110*time.Second)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("MAX_CONCURRENT_REVIEWS", 4)
	v.SetDefault("REVIEW_QUEUE_SIZE", 100)
	v.SetDefault("LLM_PROVIDER", ProviderOllama)
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")
	v.SetDefault("MODEL_TIMEOUT", 100*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "wizpro-server.log")

	if err := readOptional(v); err != nil {
		return nil, err
	}

	// Gemini has its own model name so one .env can serve both providers.
	provider := strings.ToLower(v.GetString("LLM_PROVIDER"))
	generatorModel := v.GetString("GENERATOR_MODEL_NAME")
	if provider == ProviderGemini {
		generatorModel = v.GetString("GEMINI_GENERATOR_MODEL_NAME")
		if generatorModel == "" {
			generatorModel = defaultGeminiModel
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			RoutePrefix:    normalizePrefix(v.GetString("ROUTE_PREFIX")),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:    v.GetDuration("SERVER_IDLE_TIMEOUT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),

			MaxConcurrentReviews: v.GetInt("MAX_CONCURRENT_REVIEWS"),
			ReviewQueueSize:      v.GetInt("REVIEW_QUEUE_SIZE"),
		},
		AI: AIConfig{
			LLMProvider:    provider,
			GeminiAPIKey:   v.GetString("GEMINI_API_KEY"),
			OllamaHost:     v.GetString("OLLAMA_HOST"),
			GeneratorModel: generatorModel,
			ModelTimeout:   v.GetDuration("MODEL_TIMEOUT"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if cfg.Server.Port == "" {
		return nil, errors.New("SERVER_PORT must be set")
	}
	if err := cfg.AI.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ClientConfig holds the settings shared by the terminal editor and the CLI.
type ClientConfig struct {
	BackendURL string
	Timeout    time.Duration
	StateFile  string
	// StateDSN selects a PostgreSQL database for editor state instead of
	// StateFile. StateProfile separates users sharing one database.
	StateDSN     string
	StateProfile string
	// Style is the glamour style used to render reviews.
	Style   string
	Logging logger.Config
}

// LoadClientConfig reads WIZPRO_* variables from the environment and from a
// .env file in the working directory.
func LoadClientConfig() (*ClientConfig, error) {
	return loadClientConfig(".env")
}

var clientKeys = []string{"backend_url", "timeout", "state_file", "state_dsn", "state_profile", "style", "log_level", "log_format", "log_output", "log_file"}

func loadClientConfig(envFile string) (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.SetEnvPrefix("wizpro")
	v.AutomaticEnv()

	v.SetDefault("backend_url", "http://localhost:3000/ai")
	v.SetDefault("timeout", 100*time.Second)
	v.SetDefault("state_file", defaultStateFile())
	v.SetDefault("state_dsn", "")
	v.SetDefault("state_profile", "default")
	v.SetDefault("style", "auto")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_output", "file")
	v.SetDefault("log_file", filepath.Join(filepath.Dir(defaultStateFile()), "wizpro.log"))

	if err := readOptional(v); err != nil {
		return nil, err
	}

	// The .env file may spell keys with the WIZPRO_ prefix; the environment
	// still wins over them.
	for _, key := range clientKeys {
		if v.InConfig("wizpro_"+key) && !v.InConfig(key) {
			v.SetDefault(key, v.Get("wizpro_"+key))
		}
	}

	cfg := &ClientConfig{
		BackendURL:   v.GetString("backend_url"),
		Timeout:      v.GetDuration("timeout"),
		StateFile:    v.GetString("state_file"),
		StateDSN:     v.GetString("state_dsn"),
		StateProfile: v.GetString("state_profile"),
		Style:        v.GetString("style"),
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("log_level")),
			Format: v.GetString("log_format"),
			Output: v.GetString("log_output"),
			File:   v.GetString("log_file"),
		},
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("WIZPRO_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// readOptional reads the .env file when there is one.
func readOptional(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wizpro-state.json"
	}
	return filepath.Join(dir, "wizpro", "state.json")
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
