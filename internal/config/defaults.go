package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "eats",
	Pass: "eats",
	Name: "eats_db",
}

var defaultPayment = Payment{
	BaseURL:     "http://localhost:9095",
	Timeout:     5 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   200 * time.Millisecond,
	MaxDelay:    2 * time.Second,
	Currency:    "USD",
}

var defaultKafka = Kafka{
	Brokers: nil,
	Topic:   "order-events",
	GroupID: "eats-worker",
}

var defaultRedis = Redis{
	Addr:    "",
	MenuTTL: 30 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled: false,
	Limit:   20,
	Window:  time.Second,
	TTL:     10 * time.Minute,
}

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    ":6060",
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultPayment returns the default payment processor settings.
func DefaultPayment() Payment { return defaultPayment }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultRedis returns the default Redis settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultPprof returns the default pprof server settings.
func DefaultPprof() Pprof { return defaultPprof }
