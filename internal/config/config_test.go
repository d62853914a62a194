package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "HTTP_ADDR", "TIMEZONE", "LOG_LEVEL", "AUDIO_CACHE_DIR", "GAME_MIN_TICK",
		"WARMUP_INTERVAL", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"DB_PASSWORD", "DB_SSLMODE", "SQLITE_PATH", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"OPENAI_MODEL", "OPENAI_TTS_MODEL", "OPENAI_TTS_VOICE", "OPENAI_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		expected string
	}{
		{
			name: "postgres",
			cfg: &Config{
				Database: DatabaseConfig{
					Driver:   DriverPostgres,
					Host:     "localhost",
					Port:     "5432",
					User:     "testuser",
					Password: "testpass",
					Name:     "testdb",
					SSLMode:  "disable",
				},
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "sqlite",
			cfg: &Config{
				Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/vocab.db"},
			},
			expected: "file:/tmp/vocab.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "dailyvocab", cfg.Database.Name)
	assert.Equal(t, "dailyvocab", cfg.Database.User)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, 800*time.Millisecond, cfg.GameMinTick)
	assert.Equal(t, 24*time.Hour, cfg.WarmupInterval)
	assert.Equal(t, "Asia/Shanghai", cfg.Location().String())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing postgres password",
			env:     map[string]string{},
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "oracle"},
			wantErr: "DB_DRIVER",
		},
		{
			name:    "bad timezone",
			env:     map[string]string{"DB_DRIVER": "sqlite", "TIMEZONE": "Mars/Olympus"},
			wantErr: "TIMEZONE",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"DB_DRIVER": "sqlite", "GAME_MIN_TICK": "soon"},
			wantErr: "parse env",
		},
		{
			name:    "zero game tick",
			env:     map[string]string{"DB_DRIVER": "sqlite", "GAME_MIN_TICK": "0s"},
			wantErr: "GAME_MIN_TICK",
		},
		{
			name:    "negative warmup interval",
			env:     map[string]string{"DB_DRIVER": "sqlite", "WARMUP_INTERVAL": "-1h"},
			wantErr: "WARMUP_INTERVAL",
		},
		{
			name: "sqlite needs no password",
			env:  map[string]string{"DB_DRIVER": "sqlite", "SQLITE_PATH": "vocab.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestLoadBot_MissingToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadBot()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")

	t.Setenv("BOT_TOKEN", "test_token")
	cfg, err = LoadBot()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
}
