package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Limits        LimitsConfig        `toml:"limits"`
	History       HistoryConfig       `toml:"history"`
	Translation   TranslationConfig   `toml:"translation"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LimitsConfig bounds request sizes
type LimitsConfig struct {
	MaxTextLength int `toml:"max_text_length"`
	MaxRegexRules int `toml:"max_regex_rules"`
}

// HistoryConfig holds task-history settings
type HistoryConfig struct {
	DatabasePath string `toml:"database_path"`
	RetentionAge string `toml:"retention_age"`
	SweepCron    string `toml:"sweep_cron"`
}

// TranslationConfig holds translation service settings
type TranslationConfig struct {
	DefaultService string                   `toml:"default_service"`
	MaxChunkSize   int                      `toml:"max_chunk_size"`
	TimeoutShort   int                      `toml:"timeout_short_seconds"`
	TimeoutLong    int                      `toml:"timeout_long_seconds"`
	MaxRetries     int                      `toml:"max_retries"`
	RetryDelay     int                      `toml:"retry_delay_seconds"`
	Services       map[string]ServiceConfig `toml:"services"`
}

// ServiceConfig describes one translation provider
type ServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	Enabled bool   `toml:"enabled"`
}

// NotificationsConfig holds batch-completion notification settings
type NotificationsConfig struct {
	WebhookURL string `toml:"webhook_url"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Limits: LimitsConfig{
			MaxTextLength: 50000,
			MaxRegexRules: 50,
		},
		History: HistoryConfig{
			DatabasePath: ":memory:",
			RetentionAge: "24h",
			SweepCron:    "0 * * * *",
		},
		Translation: TranslationConfig{
			DefaultService: "deepseek",
			MaxChunkSize:   3000,
			TimeoutShort:   60,
			TimeoutLong:    180,
			MaxRetries:     3,
			RetryDelay:     2,
			Services: map[string]ServiceConfig{
				"deepseek": {
					BaseURL: "https://api.deepseek.com/v1/chat/completions",
					Model:   "deepseek-chat",
					APIKey:  os.Getenv("DEEPSEEK_API_KEY"),
					Enabled: true,
				},
				"openai": {
					BaseURL: "https://api.openai.com/v1/chat/completions",
					Model:   "gpt-4o-mini",
					APIKey:  os.Getenv("OPENAI_API_KEY"),
					Enabled: true,
				},
			},
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.History.DatabasePath = ExpandPath(cfg.History.DatabasePath)

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "textproc", "config.toml")
}
