package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Gemini API configuration
	Gemini GeminiConfig `mapstructure:"gemini"`

	// Audit history configuration
	History HistoryConfig `mapstructure:"history"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	// AnalyzePerMinute caps analysis requests; each one is a paid model call.
	AnalyzePerMinute int `mapstructure:"analyze_per_minute"`
	// MaxCachedResults bounds the in-memory result store.
	MaxCachedResults int `mapstructure:"max_cached_results"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig holds audit history storage configuration
type HistoryConfig struct {
	// Path to the history slot file; empty selects the per-user default.
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.auditpro")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.analyze_per_minute", 6)
	v.SetDefault("server.max_cached_results", 50)

	// Gemini defaults. The empty api_key default registers the key so the
	// GEMINI_API_KEY binding survives Unmarshal.
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", "120s")

	// History defaults: empty path selects the per-user config dir
	v.SetDefault("history.path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("AUDITPRO")
	v.AutomaticEnv()

	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535")
	}
	if c.Server.AnalyzePerMinute <= 0 {
		return fmt.Errorf("server.analyze_per_minute must be positive")
	}
	if c.Server.MaxCachedResults <= 0 {
		return fmt.Errorf("server.max_cached_results must be positive")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must be set")
	}
	return nil
}
