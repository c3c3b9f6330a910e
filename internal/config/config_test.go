package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "runplan", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 3, cfg.Plan.DefaultRunsPerWeek)
	assert.False(t, cfg.Plan.IncludeModerateRuns)
	assert.Equal(t, time.UTC, cfg.Plan.Location())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
jwt:
  secret: from-file
  expiration: 90m
plan:
  default_runs_per_week: 4
  include_moderate_runs: true
  timezone: Europe/Berlin
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 4, cfg.Plan.DefaultRunsPerWeek)
	assert.True(t, cfg.Plan.IncludeModerateRuns)
	assert.Equal(t, "Europe/Berlin", cfg.Plan.Location().String())
}

func TestPlanConfig_UnknownTimezone(t *testing.T) {
	assert.Equal(t, time.UTC, PlanConfig{Timezone: "Mars/Olympus"}.Location())
}
