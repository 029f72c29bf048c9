package config_test

import (
	"testing"
	"time"

	"smg-portal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TIMEZONE", "")
	t.Setenv("HANDLER_TIMEOUT", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")
	t.Setenv("CERTIFICATE_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_MAX_RETRIES", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DefaultTimezone, cfg.Location.String())
	assert.Equal(t, 60*time.Second, cfg.HandlerTimeout)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, config.DefaultCertificateBaseURL, cfg.CertificateBaseURL)
	assert.Equal(t, 5, cfg.MaxConnectRetries)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("HANDLER_TIMEOUT", "15s")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "smg")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 15*time.Second, cfg.HandlerTimeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "host=db user=portal password=secret dbname=smg port=6543 sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "pgx5://portal:secret@db:6543/smg?sslmode=require", cfg.Database.URL())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("TIMEZONE", "Mars/Olympus")

		_, err := config.Load()
		assert.ErrorContains(t, err, "TIMEZONE")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("TIMEZONE", "UTC")
		t.Setenv("HANDLER_TIMEOUT", "soon")

		_, err := config.Load()
		assert.ErrorContains(t, err, "HANDLER_TIMEOUT")
	})
}

func TestRequireKafka(t *testing.T) {
	assert.Error(t, config.Config{}.RequireKafka())
	assert.NoError(t, config.Config{KafkaBroker: "kafka:9092"}.RequireKafka())
}
