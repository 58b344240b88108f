package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service_name = "stock"
environment = "staging"

[http]
port = 8081

[database]
driver = "mysql"
dsn = "root:@tcp(127.0.0.1:3306)/talkStoqueDb?parseTime=true"

[auth]
jwt_secret = "secret"
token_ttl_minutes = 15

[kafka]
brokers = ["localhost:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stock", cfg.ServiceName)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	// 未配置的字段取默认值
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadWithDefaultsWithoutFile(t *testing.T) {
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_HTTP_PORT", "9000")

	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServiceName: "stock",
			Environment: "prod",
			HTTP:        HTTPConfig{Port: 8000},
			Database:    DatabaseConfig{Driver: "mysql", DSN: "dsn"},
			Auth:        AuthConfig{JWTSecret: "s", TokenTTLMinutes: 30},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.ServiceName = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.DSN = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.HTTP.Port = 70000
	assert.Error(t, cfg.Validate())
}
