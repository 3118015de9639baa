// Package config provides configuration loading, validation, and
// management for the RelayBot application. It reads an optional
// config.yaml, applies defaults, binds the environment variables that
// form the external configuration surface, and validates the result.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Recognized AI provider selectors.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// TelegramConfig holds Telegram platform settings.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// AIConfig holds provider-independent AI settings.
type AIConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=1s,max=10m"`
}

// OpenAIConfig holds settings for the OpenAI chat-completion backend.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"    validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// GeminiConfig holds settings for the Google Gemini backend.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"    validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// MessagesConfig holds the user-visible message strings. The welcome
// message may contain a {provider} placeholder which is replaced with
// the configured provider's display name at send time.
type MessagesConfig struct {
	Welcome      string `mapstructure:"welcome"       validate:"required"`
	GeneralError string `mapstructure:"general_error" validate:"required"`
}

// Config defines the application configuration. Values come from
// defaults, an optional config.yaml in the working directory, and the
// environment variables bound in bindEnv (TELEGRAM_BOT_TOKEN,
// AI_PROVIDER, OPENAI_API_KEY, OPENAI_MODEL, GOOGLE_API_KEY,
// GEMINI_MODEL). The loaded configuration is immutable.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	AI       AIConfig       `mapstructure:"ai"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Messages MessagesConfig `mapstructure:"messages"`
}

// Load reads, merges, and validates the configuration. Any validation
// failure is returned as an error so startup can abort before the
// listening loop begins.
func Load() (*Config, error) {
	startTime := time.Now()
	slog.Info("loading configuration")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Info("configuration file not found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully",
		"provider", cfg.AI.Provider,
		"log_level", cfg.Log.Level,
		"duration_ms", time.Since(startTime).Milliseconds())

	return cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// The provider's API key requirement depends on which provider is
	// selected, so it is checked explicitly rather than via struct tags.
	switch c.AI.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key (OPENAI_API_KEY) is required when ai.provider is %q", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key (GOOGLE_API_KEY) is required when ai.provider is %q", ProviderGemini)
		}
	}

	return nil
}

// bindEnv binds the externally documented environment variable names to
// their configuration keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("ai.provider", "AI_PROVIDER")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.model", "OPENAI_MODEL")
	_ = v.BindEnv("gemini.api_key", "GOOGLE_API_KEY")
	_ = v.BindEnv("gemini.model", "GEMINI_MODEL")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("telegram.token", "")

	v.SetDefault("ai.provider", "")
	v.SetDefault("ai.timeout", DefaultAITimeout)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", DefaultOpenAIModel)
	v.SetDefault("openai.base_url", DefaultOpenAIBaseURL)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("messages.welcome", DefaultWelcomeMessage)
	v.SetDefault("messages.general_error", DefaultGeneralErrorMessage)
}
