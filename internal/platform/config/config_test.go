package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("MPESA_TIMEOUT", "5s")
	t.Setenv("MPESA_BASE_URL", "https://api.safaricom.co.ke/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://msaada.example, http://localhost:5173")
	t.Setenv("SMTP_USERNAME", "noreply@msaada.example")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("PGSQL_MAX_CONNS", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 5*time.Second, cfg.Mpesa.Timeout)
	assert.Equal(t, "https://api.safaricom.co.ke", cfg.Mpesa.BaseURL)
	assert.Equal(t, []string{"https://msaada.example", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "noreply@msaada.example", cfg.Mail.From)
	assert.Equal(t, int32(25), cfg.DBPool.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.DBPool.MaxConnIdleTime)
	assert.Equal(t, 10*time.Second, cfg.DBPool.ConnectTimeout)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("MPESA_TIMEOUT", "soon")
	t.Setenv("PASSWORD_RESET_TTL", "-1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Mpesa.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.PasswordResetTTL)
}
