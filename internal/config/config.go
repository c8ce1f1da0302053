package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Payment   Payment
	Kafka     Kafka
	Redis     Redis
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Payment stores payment processor client settings.
type Payment struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Currency    string
}

// Kafka stores order event settings. Empty brokers disable publishing;
// GroupID is only used by the worker consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Redis stores menu cache settings. Empty addr disables the cache.
type Redis struct {
	Addr    string
	MenuTTL time.Duration
}

// RateLimit stores order creation rate limit settings.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	TTL     time.Duration
}

// Pprof stores the debug pprof server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		DB:        loadDB(),
		Payment:   loadPayment(),
		Kafka:     loadKafka(),
		Redis:     loadRedis(),
		RateLimit: loadRateLimit(),
		Pprof:     loadPprof(),
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Payment.BaseURL == "" {
		return nil, fmt.Errorf("payment processor url is required")
	}
	return cfg, nil
}

func loadDB() DB {
	def := DefaultDB()
	return DB{
		Host: envStr("POSTGRES_HOST", def.Host),
		Port: envStr("POSTGRES_PORT", def.Port),
		User: envStr("POSTGRES_USER", def.User),
		Pass: envStr("POSTGRES_PASSWORD", def.Pass),
		Name: envStr("POSTGRES_DB", def.Name),
	}
}

func loadPayment() Payment {
	def := DefaultPayment()
	return Payment{
		BaseURL:     envStr("PAYMENT_URL", def.BaseURL),
		Timeout:     envDuration("PAYMENT_TIMEOUT", def.Timeout),
		MaxAttempts: envInt("PAYMENT_MAX_ATTEMPTS", def.MaxAttempts),
		BaseDelay:   envDuration("PAYMENT_BASE_DELAY", def.BaseDelay),
		MaxDelay:    envDuration("PAYMENT_MAX_DELAY", def.MaxDelay),
		Currency:    envStr("PAYMENT_CURRENCY", def.Currency),
	}
}

func loadKafka() Kafka {
	def := DefaultKafka()
	brokers := def.Brokers
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}
	return Kafka{
		Brokers: brokers,
		Topic:   envStr("KAFKA_ORDERS_TOPIC", def.Topic),
		GroupID: envStr("KAFKA_GROUP_ID", def.GroupID),
	}
}

func loadRedis() Redis {
	def := DefaultRedis()
	return Redis{
		Addr:    envStr("REDIS_ADDR", def.Addr),
		MenuTTL: envDuration("REDIS_MENU_TTL", def.MenuTTL),
	}
}

func loadRateLimit() RateLimit {
	def := DefaultRateLimit()
	return RateLimit{
		Enabled: envBool("RATE_LIMIT_ENABLED", def.Enabled),
		Limit:   envInt("RATE_LIMIT", def.Limit),
		Window:  envDuration("RATE_LIMIT_WINDOW", def.Window),
		TTL:     envDuration("RATE_LIMIT_TTL", def.TTL),
	}
}

func loadPprof() Pprof {
	def := DefaultPprof()
	return Pprof{
		Enabled: envBool("PPROF_ENABLED", def.Enabled),
		Addr:    envStr("PPROF_ADDR", def.Addr),
		User:    envStr("PPROF_USER", def.User),
		Pass:    envStr("PPROF_PASS", def.Pass),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an int, using %d", key, os.Getenv(key), def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("warning: %s=%q is not a bool, using %v", key, os.Getenv(key), def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %v", key, os.Getenv(key), def)
	}
	return def
}
