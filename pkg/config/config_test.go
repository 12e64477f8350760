package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, "0.0.0.0:3001", cfg.HTTP.Addr())
}

func TestFromViper_SobrescribeDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("LOW_STOCK_THRESHOLD", "5")
	v.Set("DB_MAX_CONNS", "abc")
	v.Set("RUN_MIGRATIONS", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 25, cfg.DB.MaxConns, "un entero inválido cae al valor por defecto")
	assert.False(t, cfg.DB.RunMigrations)
}

func TestFromViper_ProduccionExigeSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "nova", Password: "p@ss:word", DBName: "clinic", SSLMode: "disable"}
	assert.Equal(t, "postgres://nova:p%40ss%3Aword@db:5432/clinic?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
