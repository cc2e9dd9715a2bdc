package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "logbook", cfg.DB.DBName)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, "logbook.verified", cfg.AMQP.VerifiedQueue)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestFromViper_LeeValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("RATE_LIMIT_REFILL_INTERVAL", "250ms")
	v.Set("RATE_LIMIT_TTL", "1ms")
	v.Set("DB_AUTO_MIGRATE", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit.RefillInterval)
	// TTL mínimo = 5 * intervalo
	assert.Equal(t, 1250*time.Millisecond, cfg.RateLimit.TTL)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_ProduccionSinSecretFalla(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("JWT_SECRET", "s3cr3t")
	_, err = fromViper(v)
	assert.NoError(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "logbook", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/logbook?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
