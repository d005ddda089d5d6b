package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("JWT_TTL", "")
	for _, k := range []string{"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_SSLMODE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=ecommerce sslmode=disable", cfg.DB.DSN())
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.DB.DSN())
}

func TestLoad_ParsesTypedValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("PRODUCT_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 30*time.Second, cfg.ProductCacheTTL)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := Load()
	assert.ErrorContains(t, err, "POSTGRES_PORT must be number")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	assert.EqualError(t, err, "LOG_FORMAT must be json or text")
}
