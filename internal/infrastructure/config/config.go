package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/pkg/kafka"
	"github.com/geraldpay/bnpl-engine/pkg/observability"
	"github.com/geraldpay/bnpl-engine/pkg/postgres"
)

// BankConfig configures the upstream bank transaction API.
type BankConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
	UseStub      bool
}

// LedgerConfig configures the outbound ledger webhook.
type LedgerConfig struct {
	WebhookURL   string
	Timeout      time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
}

// KafkaConfig extends the shared broker config with the event topic.
type KafkaConfig struct {
	kafka.Config
	Topic string
}

// Config is the full process configuration, loaded from the environment.
type Config struct {
	HTTPPort string
	Postgres postgres.Config
	Kafka    KafkaConfig
	Bank     BankConfig
	Ledger   LedgerConfig
	Log      observability.LogConfig
	Scoring  *service.ScoringConfig
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "8084"),
		Postgres: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "gerald"),
			Password: getEnv("DB_PASSWORD", "gerald"),
			Database: getEnv("DB_NAME", "bnpl"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Config: kafka.Config{
				Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			},
			Topic: getEnv("KAFKA_TOPIC", "bnpl.events"),
		},
		Bank: BankConfig{
			BaseURL:      getEnv("BANK_API_URL", "http://localhost:8081"),
			Timeout:      time.Duration(getEnvInt("BANK_TIMEOUT_MS", 5000)) * time.Millisecond,
			MaxAttempts:  getEnvInt("BANK_MAX_ATTEMPTS", 3),
			RetryBackoff: time.Duration(getEnvInt("BANK_RETRY_BACKOFF_MS", 200)) * time.Millisecond,
			UseStub:      getEnv("BANK_USE_STUB", "false") == "true",
		},
		Ledger: LedgerConfig{
			WebhookURL:   getEnv("LEDGER_WEBHOOK_URL", ""),
			Timeout:      time.Duration(getEnvInt("LEDGER_TIMEOUT_MS", 5000)) * time.Millisecond,
			MaxAttempts:  getEnvInt("LEDGER_MAX_ATTEMPTS", 5),
			RetryBackoff: time.Duration(getEnvInt("LEDGER_RETRY_BACKOFF_MS", 500)) * time.Millisecond,
		},
		Log: observability.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	scoring, err := loadScoring()
	if err != nil {
		return nil, err
	}
	cfg.Scoring = scoring

	return cfg, nil
}

// loadScoring starts from the built-in defaults and applies any
// environment overrides before validating the result.
func loadScoring() (*service.ScoringConfig, error) {
	cfg := service.DefaultScoringConfig()

	if raw := os.Getenv("SCORING_TIERS"); raw != "" {
		tiers, err := service.ParseTiers(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing SCORING_TIERS: %w", err)
		}
		cfg.Tiers = tiers
	}
	cfg.MinTransactions = getEnvInt("SCORING_THIN_FILE_MIN_TXNS", cfg.MinTransactions)
	cfg.MinHistoryDays = getEnvInt("SCORING_THIN_FILE_MIN_DAYS", cfg.MinHistoryDays)
	cfg.ThinFileLimitCents = int64(getEnvInt("SCORING_THIN_FILE_LIMIT_CENTS", int(cfg.ThinFileLimitCents)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating scoring config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
