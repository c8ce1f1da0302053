package config_test

import (
	"os"
	"testing"
	"time"

	"eats-backend/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"PAYMENT_URL", "PAYMENT_TIMEOUT", "PAYMENT_MAX_ATTEMPTS", "PAYMENT_BASE_DELAY",
		"PAYMENT_MAX_DELAY", "PAYMENT_CURRENCY",
		"KAFKA_BROKERS", "KAFKA_ORDERS_TOPIC",
		"REDIS_ADDR", "REDIS_MENU_TTL",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "RATE_LIMIT_TTL",
		"PPROF_ENABLED", "PPROF_ADDR", "PPROF_USER", "PPROF_PASS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)

	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "eats", cfg.DB.User)
	require.Equal(t, "eats", cfg.DB.Pass)
	require.Equal(t, "eats_db", cfg.DB.Name)

	require.Equal(t, "http://localhost:9095", cfg.Payment.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Payment.Timeout)
	require.Equal(t, 3, cfg.Payment.MaxAttempts)
	require.Equal(t, "USD", cfg.Payment.Currency)

	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, "order-events", cfg.Kafka.Topic)

	require.Empty(t, cfg.Redis.Addr)
	require.False(t, cfg.RateLimit.Enabled)
	require.False(t, cfg.Pprof.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9191")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("PAYMENT_URL", "https://pay.example.com")
	t.Setenv("PAYMENT_TIMEOUT", "2s")
	t.Setenv("PAYMENT_MAX_ATTEMPTS", "5")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9191, cfg.Port)
	require.Equal(t, "db.internal", cfg.DB.Host)
	require.Equal(t, "orders", cfg.DB.Name)
	require.Equal(t, "https://pay.example.com", cfg.Payment.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Payment.Timeout)
	require.Equal(t, 5, cfg.Payment.MaxAttempts)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestDB_DSN(t *testing.T) {
	t.Parallel()

	db := config.DB{Host: "h", Port: "5433", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "postgres://u:p@h:5433/n?sslmode=disable", db.DSN())
}
