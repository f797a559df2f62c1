package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	viper.Reset()
	t.Setenv("DATABASE_USER", "planner")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_URL", "db:5432/quality")
	t.Setenv("PLANNING_RANDOM_SEED", "42")
	t.Setenv("PLANNING_EVENT_INSERT_BATCH_SIZE", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://quality.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://planner:secret@db:5432/quality", cfg.Database.DSN)
	assert.Equal(t, uint64(42), cfg.Planning.RandomSeed)
	assert.Equal(t, 1000, cfg.Planning.EventInsertBatchSize, "tamanho de lote inválido volta para o padrão")
	assert.Equal(t, "0 2 * * *", cfg.DraftPlanJanitor.CronSchedule)
	assert.Equal(t, 30, cfg.DraftPlanJanitor.RetentionDays)
	assert.False(t, cfg.DraftPlanJanitor.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "https://quality.example.com"}, cfg.Server.AllowedOrigins)
}
