package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/infrastructure/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "8084", cfg.HTTPPort)
		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "bnpl.events", cfg.Kafka.Topic)
		assert.Equal(t, 5*time.Second, cfg.Bank.Timeout)
		assert.Equal(t, 3, cfg.Bank.MaxAttempts)
		assert.False(t, cfg.Bank.UseStub)
		assert.Equal(t, 5, cfg.Ledger.MaxAttempts)
		assert.Equal(t, "info", cfg.Log.Level)
		require.NotNil(t, cfg.Scoring)
		assert.NoError(t, cfg.Scoring.Validate())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "9000")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("BANK_USE_STUB", "true")
		t.Setenv("BANK_TIMEOUT_MS", "250")
		t.Setenv("DB_MAX_CONNS", "25")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.HTTPPort)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.True(t, cfg.Bank.UseStub)
		assert.Equal(t, 250*time.Millisecond, cfg.Bank.Timeout)
		assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	})

	t.Run("scoring tier override", func(t *testing.T) {
		t.Setenv("SCORING_TIERS", "0-49:0,50-100:25000")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Len(t, cfg.Scoring.Tiers, 2)
		assert.Equal(t, int64(25_000), cfg.Scoring.Tiers[1].LimitCents)
	})

	t.Run("invalid tier override fails fast", func(t *testing.T) {
		t.Setenv("SCORING_TIERS", "10-100:25000")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("invalid thin-file override fails validation", func(t *testing.T) {
		t.Setenv("SCORING_THIN_FILE_MIN_TXNS", "-1")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
