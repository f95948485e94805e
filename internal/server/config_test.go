package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 2567, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Rooms.MaxClients)
	assert.Equal(t, 30, cfg.Rooms.LobbyTimeoutMinute)
	assert.Equal(t, "chamber_room", cfg.Rooms.Kind)
	require.NoError(t, cfg.Validate())
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestLoadServerConfigFromFile(t *testing.T) {
	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

rooms {
  max_clients           = 3
  lobby_timeout_minutes = 10
  rng_seed              = 42
}
`
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 3, cfg.Rooms.MaxClients)
	assert.Equal(t, int64(42), cfg.Rooms.RNGSeed)
	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, 10*time.Minute, cfg.LobbyTimeout())
	require.NoError(t, cfg.Validate())
}

func TestLoadServerConfigPartialFile(t *testing.T) {
	content := `
server {
  port = 8080
}

rooms {}
`
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	// Unset fields fall back to defaults.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 4, cfg.Rooms.MaxClients)
	assert.Equal(t, 30, cfg.Rooms.LobbyTimeoutMinute)
}

func TestLoadServerConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadServerConfig(path)
	require.Error(t, err)
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"port too low", func(c *ServerConfig) { c.Server.Port = 0 }},
		{"port too high", func(c *ServerConfig) { c.Server.Port = 70000 }},
		{"bad log level", func(c *ServerConfig) { c.Server.LogLevel = "verbose" }},
		{"too few clients", func(c *ServerConfig) { c.Rooms.MaxClients = 1 }},
		{"too many clients", func(c *ServerConfig) { c.Rooms.MaxClients = 5 }},
		{"zero lobby timeout", func(c *ServerConfig) { c.Rooms.LobbyTimeoutMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
