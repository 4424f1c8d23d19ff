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

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the Postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores change-event consumer settings. The worker does not start the
// consumer when brokers are empty.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Push stores push gateway settings.
type Push struct {
	Endpoint    string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Dispatch stores dispatcher settings.
type Dispatch struct {
	OperationTimeout time.Duration
}

// PprofConfig stores the debug pprof listener settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// RateLimit stores per-IP HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores all service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Push      Push
	Dispatch  Dispatch
	RateLimit RateLimit
	Pprof     PprofConfig
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Push:      DefaultPush(),
		Dispatch:  DefaultDispatch(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid postgres port %q: %w", cfg.DB.Port, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return err
	}

	envString("POSTGRES_HOST", &cfg.DB.Host)
	envString("POSTGRES_PORT", &cfg.DB.Port)
	envString("POSTGRES_USER", &cfg.DB.User)
	envString("POSTGRES_PASSWORD", &cfg.DB.Pass)
	envString("POSTGRES_DB", &cfg.DB.Name)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	envString("KAFKA_TOPIC", &cfg.Kafka.Topic)
	envString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)

	envString("PUSH_ENDPOINT", &cfg.Push.Endpoint)
	envString("PUSH_API_KEY", &cfg.Push.APIKey)
	if cfg.Push.Timeout, err = envDuration("PUSH_TIMEOUT", cfg.Push.Timeout); err != nil {
		return err
	}
	if cfg.Push.MaxAttempts, err = envInt("PUSH_MAX_ATTEMPTS", cfg.Push.MaxAttempts); err != nil {
		return err
	}

	if cfg.Dispatch.OperationTimeout, err = envDuration("DISPATCH_TIMEOUT", cfg.Dispatch.OperationTimeout); err != nil {
		return err
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		enabled, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, parseErr)
		}
		cfg.RateLimit.Enabled = enabled
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		enabled, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return fmt.Errorf("invalid PPROF_ENABLED %q: %w", v, parseErr)
		}
		cfg.Pprof.Enabled = enabled
	}
	envString("PPROF_ADDR", &cfg.Pprof.Addr)
	envString("PPROF_USER", &cfg.Pprof.User)
	envString("PPROF_PASSWORD", &cfg.Pprof.Pass)

	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
