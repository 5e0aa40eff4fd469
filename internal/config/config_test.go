// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.True(t, c.Database.AutoMigrate)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 15*time.Minute, c.JWT.AccessTokenExpire)
	assert.Equal(t, "log", c.Mail.Provider)
	assert.False(t, c.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", c.Server.Address())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: 9090
mail:
  completion_recipients:
    - parent@example.com
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Redis.Enabled())
	assert.Equal(t, []string{"parent@example.com"}, c.Mail.Recipients("me@example.com"))
}

func TestLoadListFromEnv(t *testing.T) {
	t.Setenv("MAIL_COMPLETION_RECIPIENTS", "mom@example.com, dad@example.com,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	c, err := load("")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"mom@example.com", "dad@example.com"},
		c.Mail.Recipients("me@example.com"),
	)
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		c.CORS.AllowedOrigins,
	)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"sendgrid without key", func(c *Config) { c.Mail.Provider = "sendgrid" }},
		{"wildcard cors with credentials", func(c *Config) {
			c.CORS.AllowedOrigins = []string{"*"}
		}},
		{"production on sqlite", func(c *Config) { c.App.Environment = "production" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := load("")
			require.NoError(t, err)

			tt.mutate(c)
			assert.Error(t, validate(c))
		})
	}
}

func TestRecipientsFallback(t *testing.T) {
	m := MailConfig{CompletionRecipients: []string{"  "}}
	assert.Equal(t, []string{"me@example.com"}, m.Recipients("me@example.com"))
	assert.Empty(t, m.Recipients(""))
}
