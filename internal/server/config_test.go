package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perudod.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:3005", cfg.GetServerAddress())
	assert.Equal(t, 30*time.Minute, cfg.IdleRoomTTL())
	assert.Nil(t, cfg.Rules)

	rules := cfg.GameRules()
	assert.Equal(t, 5, rules.StartingDiceCount)
	assert.Equal(t, 6, rules.HighestValue)
	assert.True(t, rules.SpotOn)
	assert.True(t, rules.WildcardEnabled)
}

func TestLoadServerConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  address = "0.0.0.0"
  port    = 9000

  log_level         = "debug"
  idle_room_minutes = 5
}

rules {
  starting_dice_count = 4
  highest_value       = 8
  spot_on             = true
  spot_on_everyone    = false
  wildcard            = true
}
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.IdleRoomTTL())

	rules := cfg.GameRules()
	assert.Equal(t, 4, rules.StartingDiceCount)
	assert.Equal(t, 8, rules.HighestValue)
	assert.True(t, rules.SpotOn)
	assert.False(t, rules.SpotOnEveryone)
	assert.True(t, rules.WildcardEnabled)
	// Unset counts keep the standard values.
	assert.Equal(t, 10, rules.SpotOnEveryoneMinimum)
}

func TestLoadServerConfigInvalidHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultServerConfig()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = DefaultServerConfig()
	cfg.Rules = &RulesConfig{HighestValue: 1}
	assert.Error(t, cfg.Validate())
}
