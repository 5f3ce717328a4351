package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 15.0, cfg.Policy.LeakageHighPct)
	assert.Equal(t, 10.0, cfg.Policy.LeakageWarningPct)
	assert.Equal(t, -10.0, cfg.Policy.VarianceUnderPct)
	assert.Equal(t, 5, cfg.Policy.TopPriceItems)
	assert.Equal(t, 30, cfg.Policy.RetentionDays)
	assert.Equal(t, 0.001, cfg.Policy.IssueTolerance)
	assert.False(t, cfg.Telegram.Enabled(), "sin token no debe haber alertas")
}

func TestLoad_LeeEntorno(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("POLICY_LEAKAGE_HIGH_PCT", "20.5")
	t.Setenv("TELEGRAM_BOT_TOKEN", "abc")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 20.5, cfg.Policy.LeakageHighPct)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "r", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/r?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_SeedUsers(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SEED_USERS", "gerente:clave1:manager, cocina:c:la:ve:kitchen,malformado")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Len(t, cfg.Auth.SeedUsers, 2)
	assert.Equal(t, config.SeedUser{Username: "gerente", Password: "clave1", Role: "manager"}, cfg.Auth.SeedUsers[0])
	assert.Equal(t, "c", cfg.Auth.SeedUsers[1].Password)
	assert.Equal(t, "la:ve:kitchen", cfg.Auth.SeedUsers[1].Role, "el rol inválido lo rechaza el alta")
}
