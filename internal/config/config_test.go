package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ATTENDANCE_PRIMARY.ENV", "development")
	t.Setenv("ATTENDANCE_DATABASE.HOST", "localhost")
	t.Setenv("ATTENDANCE_DATABASE.PORT", "5432")
	t.Setenv("ATTENDANCE_DATABASE.USER", "postgres")
	t.Setenv("ATTENDANCE_DATABASE.PASSWORD", "postgres")
	t.Setenv("ATTENDANCE_DATABASE.NAME", "attendance")
	t.Setenv("ATTENDANCE_REDIS.ADDRESS", "localhost:6379")
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, float64(20), cfg.Server.RateLimit)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.HealthChecks.Has("database"))

	require.NotNil(t, cfg.Integration)
	assert.False(t, cfg.Integration.NotificationsEnabled())
	assert.NotEmpty(t, cfg.Integration.EmailFrom)
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTENDANCE_SERVER.PORT", "8081")
	t.Setenv("ATTENDANCE_SERVER.CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ATTENDANCE_INTEGRATION.RESEND_API_KEY", "re_test")
	t.Setenv("ATTENDANCE_INTEGRATION.NOTIFY_EMAIL", "hr@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Integration.NotificationsEnabled())
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	t.Setenv("ATTENDANCE_PRIMARY.ENV", "development")
	t.Setenv("ATTENDANCE_REDIS.ADDRESS", "localhost:6379")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidNotifyEmail(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTENDANCE_INTEGRATION.NOTIFY_EMAIL", "not-an-email")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "unknown level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -1 }, wantErr: true},
		{name: "missing service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetLogLevelFallsBackByEnvironment(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

func TestHealthChecksHas(t *testing.T) {
	c := HealthChecksConfig{Enabled: true, Checks: []string{"database"}}
	assert.True(t, c.Has("database"))
	assert.False(t, c.Has("redis"))

	c.Enabled = false
	assert.False(t, c.Has("database"))
}

func TestEnvValueSplitsListKeys(t *testing.T) {
	tests := []struct {
		envKey  string
		value   string
		wantKey string
		want    any
	}{
		{envKey: "ATTENDANCE_SERVER.PORT", value: "8081", wantKey: "server.port", want: "8081"},
		{envKey: "ATTENDANCE_SERVER.CORS_ALLOWED_ORIGINS", value: "https://a.example, https://b.example,", wantKey: "server.cors_allowed_origins", want: []string{"https://a.example", "https://b.example"}},
		{envKey: "ATTENDANCE_OBSERVABILITY.HEALTH_CHECKS.CHECKS", value: "database", wantKey: "observability.health_checks.checks", want: []string{"database"}},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			key, value := envValue(tt.envKey, tt.value)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.want, value)
		})
	}
}
