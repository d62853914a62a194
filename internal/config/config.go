package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	BotToken       string        `env:"BOT_TOKEN"`
	HTTPAddr       string        `env:"HTTP_ADDR"`
	Timezone       string        `env:"TIMEZONE" envDefault:"Asia/Shanghai"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AudioCacheDir  string        `env:"AUDIO_CACHE_DIR" envDefault:"./.audio_cache"`
	GameMinTick    time.Duration `env:"GAME_MIN_TICK" envDefault:"800ms"`
	WarmupInterval time.Duration `env:"WARMUP_INTERVAL" envDefault:"24h"`
	Database       DatabaseConfig
	OpenAI         OpenAIConfig

	location *time.Location
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	Name       string `env:"DB_NAME" envDefault:"dailyvocab"`
	User       string `env:"DB_USER" envDefault:"dailyvocab"`
	Password   string `env:"DB_PASSWORD"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"dailyvocab.db"`
}

// OpenAIConfig holds settings of the chat-completion and speech endpoints
type OpenAIConfig struct {
	APIKey   string        `env:"OPENAI_API_KEY"`
	BaseURL  string        `env:"OPENAI_BASE_URL"`
	Model    string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	TTSModel string        `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	TTSVoice string        `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`
	Timeout  time.Duration `env:"OPENAI_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if cfg.Database.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.GameMinTick <= 0 {
		return nil, fmt.Errorf("GAME_MIN_TICK must be positive, got %s", cfg.GameMinTick)
	}
	if cfg.WarmupInterval <= 0 {
		return nil, fmt.Errorf("WARMUP_INTERVAL must be positive, got %s", cfg.WarmupInterval)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

// LoadBot reads configuration and additionally requires the bot token
func LoadBot() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// Location returns the timezone used to decide the current calendar day
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Database.SQLitePath)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
