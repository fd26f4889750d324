package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", "/nonexistent/.env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8094, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 70.0, cfg.HealthStressAt)
	assert.Equal(t, 90.0, cfg.HealthCriticalAt)
	assert.Equal(t, 1500*time.Millisecond, cfg.SNMPTimeout)
	assert.Equal(t, 2, cfg.SNMPRetries)
	assert.Equal(t, uint16(161), cfg.SNMPPort)
	assert.Equal(t, 3*time.Second, cfg.SampleTimeout)
	assert.True(t, cfg.OpenMode())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", "/nonexistent/.env")
	t.Setenv("PORT", "9000")
	t.Setenv("HEALTH_STRESS_AT", "60")
	t.Setenv("HEALTH_CRITICAL_AT", "85")
	t.Setenv("SNMP_TIMEOUT_MS", "500")
	t.Setenv("SNMP_RETRIES", "1")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local,http://b.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 60.0, cfg.HealthStressAt)
	assert.Equal(t, 85.0, cfg.HealthCriticalAt)
	assert.Equal(t, 500*time.Millisecond, cfg.SNMPTimeout)
	assert.Equal(t, 1, cfg.SNMPRetries)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
}

func TestLoad_InvertedThresholdsRejected(t *testing.T) {
	t.Setenv("ENV_FILE", "/nonexistent/.env")
	t.Setenv("HEALTH_STRESS_AT", "95")
	t.Setenv("HEALTH_CRITICAL_AT", "80")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_JWTSecretFallsBackToAPIKey(t *testing.T) {
	t.Setenv("ENV_FILE", "/nonexistent/.env")
	t.Setenv("API_KEY", "secret-key-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-key-123", cfg.JWTSecret)
	assert.False(t, cfg.OpenMode())
}

func TestAddr(t *testing.T) {
	cfg := LoadWithDefaults()
	assert.Equal(t, "0.0.0.0:8094", cfg.Addr())
}
