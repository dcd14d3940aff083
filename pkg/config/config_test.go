package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5.0, cfg.Maneuver.Unit)
	assert.Equal(t, 3.0, cfg.Maneuver.Factor)
	assert.Equal(t, 4.0, cfg.Maneuver.Duration)
	assert.False(t, cfg.Maneuver.SpeedNormalized)
	assert.Equal(t, 3.0, cfg.Ship.InvincibleTime)
	assert.Equal(t, 120.0, cfg.World.HalfExtentX)
	assert.Equal(t, 150.0, cfg.Asteroids.HalfExtentX)
	assert.Equal(t, 25, cfg.Asteroids.Count)
	assert.Equal(t, 3, cfg.Rules.Lives)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skyroll.json")
	data := `{
		"maneuver": {"unit": 2, "speedNormalized": true},
		"asteroids": {"count": 4, "seed": 99},
		"rules": {"lives": 5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Maneuver.Unit)
	assert.True(t, cfg.Maneuver.SpeedNormalized)
	assert.Equal(t, 4, cfg.Asteroids.Count)
	assert.Equal(t, uint64(99), cfg.Asteroids.Seed)
	assert.Equal(t, 5, cfg.Rules.Lives)
	// untouched keys keep their defaults
	assert.Equal(t, 3.0, cfg.Maneuver.Factor)
	assert.Equal(t, 0.5, cfg.Ship.MaxForwardSpeed)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SKYROLL_MANEUVER_DURATION", "6.5")
	t.Setenv("SKYROLL_RULES_LIVES", "1")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 6.5, cfg.Maneuver.Duration)
	assert.Equal(t, 1, cfg.Rules.Lives)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"maneuver": {"factor": 0.5}}`), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maneuver.factor")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Asteroids.Seed = 7
	cfg.Maneuver.SpeedNormalized = true

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		want   string
	}{
		{"zero_time_step", func(c *GameConfig) { c.TimeStep = 0 }, "timeStep"},
		{"negative_unit", func(c *GameConfig) { c.Maneuver.Unit = -1 }, "maneuver.unit"},
		{"factor_one", func(c *GameConfig) { c.Maneuver.Factor = 1 }, "maneuver.factor"},
		{"inverted_bounds", func(c *GameConfig) { c.Ship.BoundsMin[1] = 1 }, "ship.boundsMin[1]"},
		{"speed_range", func(c *GameConfig) { c.Asteroids.MinSpeed = 1 }, "speed range"},
		{"size_range", func(c *GameConfig) { c.Asteroids.MinSize = 0 }, "size range"},
		{"no_lives", func(c *GameConfig) { c.Rules.Lives = 0 }, "rules.lives"},
		{"negative_count", func(c *GameConfig) { c.Asteroids.Count = -2 }, "asteroids.count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Maneuver.Duration = 0
	cfg.Rules.Lives = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maneuver.duration")
	assert.Contains(t, err.Error(), "rules.lives")
}
