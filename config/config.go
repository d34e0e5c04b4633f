package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	LogLevel string
}

type ServerConfig struct {
	Port              string
	GinMode           string
	CORSAllowedOrigin string
	RateLimitRPS      float64
	RateLimitBurst    int
	AuthRatePerMinute int
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is the client IP.
	TrustedProxies []string
}

type DBConfig struct {
	Driver string
	DSN    string
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether change events should be written to Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	authPerMin, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT_PER_MIN", "5"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT_PER_MIN: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			GinMode:           getEnv("GIN_MODE", "debug"),
			CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
			RateLimitRPS:      rps,
			RateLimitBurst:    burst,
			AuthRatePerMinute: authPerMin,
			TrustedProxies:    splitList(os.Getenv("TRUSTED_PROXIES")),
		},
		DB: DBConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "restaurant.db"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTTTL:    ttl,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "restaurant.changes"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.DB.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
