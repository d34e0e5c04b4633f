package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "GIN_MODE", "DB_DRIVER", "DB_DSN", "JWT_SECRET", "JWT_TTL",
	"CORS_ALLOWED_ORIGIN", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"AUTH_RATE_LIMIT_PER_MIN", "TRUSTED_PROXIES", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSAllowedOrigin)
	assert.Equal(t, 50.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, 100, cfg.Server.RateLimitBurst)
	assert.Equal(t, 5, cfg.Server.AuthRatePerMinute)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "restaurant.db", cfg.DB.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, "restaurant.changes", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "host=localhost user=app dbname=restaurant")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWTTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.Server.TrustedProxies)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DB_DRIVER":               "oracle",
		"RATE_LIMIT_RPS":          "fast",
		"RATE_LIMIT_BURST":        "1.5",
		"AUTH_RATE_LIMIT_PER_MIN": "many",
		"JWT_TTL":                 "1 day",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(DBConfig{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"users", "tokens", "menus", "bookings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}
