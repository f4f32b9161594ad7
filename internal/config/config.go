// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Providers     ProvidersConfig     `yaml:"providers"`
	LLM           LLMConfig           `yaml:"llm"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// ProvidersConfig groups the storefront adapter settings.
type ProvidersConfig struct {
	Steam SteamConfig `yaml:"steam"`
	Epic  EpicConfig  `yaml:"epic"`
}

// SteamConfig defines Steam storefront API settings.
type SteamConfig struct {
	SearchURL  string          `yaml:"search_url"`
	DetailsURL string          `yaml:"details_url"`
	Country    string          `yaml:"country"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

// EpicConfig defines Epic Games Store GraphQL settings.
type EpicConfig struct {
	Endpoint  string          `yaml:"endpoint"`
	Locale    string          `yaml:"locale"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines storefront API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// LLMConfig defines review generation backend settings.
type LLMConfig struct {
	Backend   string          `yaml:"backend"` // none, ollama, anthropic
	Ollama    OllamaConfig    `yaml:"ollama"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Timeout   time.Duration   `yaml:"timeout"`
}

// OllamaConfig defines Ollama-specific settings.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// AnthropicConfig defines Anthropic API settings.
type AnthropicConfig struct {
	Model string `yaml:"model"`
}

// ScheduleConfig defines the discount scan cadence and fan-out bounds.
type ScheduleConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval"`
	UserWorkers  int           `yaml:"user_workers"`
	EntryWorkers int           `yaml:"entry_workers"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyProviderDefaults(&cfg.Providers)
	applyLLMDefaults(&cfg.LLM)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyProviderDefaults(p *ProvidersConfig) {
	if p.Steam.SearchURL == "" {
		p.Steam.SearchURL = "https://store.steampowered.com/api/storesearch"
	}
	if p.Steam.DetailsURL == "" {
		p.Steam.DetailsURL = "https://store.steampowered.com/api/appdetails"
	}
	if p.Steam.Country == "" {
		p.Steam.Country = "br"
	}
	if p.Epic.Endpoint == "" {
		p.Epic.Endpoint = "https://graphql.epicgames.com/graphql"
	}
	if p.Epic.Locale == "" {
		p.Epic.Locale = "pt-BR"
	}
	applyRateLimitDefaults(&p.Steam.RateLimit)
	applyRateLimitDefaults(&p.Epic.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 10000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = "none"
	}
	if l.Timeout == 0 {
		l.Timeout = 60 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.ScanInterval == 0 {
		s.ScanInterval = 24 * time.Hour
	}
	if s.UserWorkers == 0 {
		s.UserWorkers = 4
	}
	if s.EntryWorkers == 0 {
		s.EntryWorkers = 5
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	switch cfg.LLM.Backend {
	case "none":
	case "ollama":
		if cfg.LLM.Ollama.Endpoint == "" {
			errs = append(errs, fmt.Errorf("llm.ollama.endpoint is required when backend is ollama"))
		}
		if cfg.LLM.Ollama.Model == "" {
			errs = append(errs, fmt.Errorf("llm.ollama.model is required when backend is ollama"))
		}
	case "anthropic":
		// API key comes from the environment at backend construction time.
	default:
		errs = append(errs, fmt.Errorf("llm.backend must be one of: none, ollama, anthropic (got %q)", cfg.LLM.Backend))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when enabled"))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of: debug, info, warn, error"))
	}

	return errors.Join(errs...)
}
