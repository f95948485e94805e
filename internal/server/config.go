package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Rooms  RoomSettings   `hcl:"rooms,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomSettings controls room lifecycle
type RoomSettings struct {
	MaxClients         int    `hcl:"max_clients,optional"`
	LobbyTimeoutMinute int    `hcl:"lobby_timeout_minutes,optional"`
	RNGSeed            int64  `hcl:"rng_seed,optional"` // 0 seeds from the wall clock
	Kind               string `hcl:"kind,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     2567,
			LogLevel: "info",
		},
		Rooms: RoomSettings{
			MaxClients:         4,
			LobbyTimeoutMinute: 30,
			Kind:               "chamber_room",
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 2567
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Rooms.MaxClients == 0 {
		config.Rooms.MaxClients = 4
	}
	if config.Rooms.LobbyTimeoutMinute == 0 {
		config.Rooms.LobbyTimeoutMinute = 30
	}
	if config.Rooms.Kind == "" {
		config.Rooms.Kind = "chamber_room"
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Rooms.MaxClients < 2 || c.Rooms.MaxClients > 4 {
		return fmt.Errorf("max clients must be between 2 and 4, got %d", c.Rooms.MaxClients)
	}
	if c.Rooms.LobbyTimeoutMinute < 1 {
		return fmt.Errorf("lobby timeout must be at least a minute, got %d", c.Rooms.LobbyTimeoutMinute)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LobbyTimeout returns the idle-lobby timeout as a duration.
func (c *ServerConfig) LobbyTimeout() time.Duration {
	return time.Duration(c.Rooms.LobbyTimeoutMinute) * time.Minute
}
