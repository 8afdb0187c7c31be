package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/perudohq/perudod/internal/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Rules  *RulesConfig   `hcl:"rules,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address         string `hcl:"address,optional"`
	Port            int    `hcl:"port,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	IdleRoomMinutes int    `hcl:"idle_room_minutes,optional"`
}

// RulesConfig sets the default game rules for rooms created without
// explicit overrides.
type RulesConfig struct {
	StartingDiceCount     int  `hcl:"starting_dice_count,optional"`
	SpotOn                bool `hcl:"spot_on,optional"`
	SpotOnEveryone        bool `hcl:"spot_on_everyone,optional"`
	SpotOnEveryoneMinimum int  `hcl:"spot_on_everyone_minimum,optional"`
	HighestValue          int  `hcl:"highest_value,optional"`
	Wildcard              bool `hcl:"wildcard,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:         "localhost",
			Port:            3005,
			LogLevel:        "info",
			IdleRoomMinutes: 30,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A
// missing file yields the defaults.
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
		config.Server.Port = 3005
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.IdleRoomMinutes == 0 {
		config.Server.IdleRoomMinutes = 30
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Rules != nil {
		if c.Rules.StartingDiceCount < 0 {
			return fmt.Errorf("starting dice count must be positive")
		}
		if c.Rules.HighestValue != 0 && c.Rules.HighestValue < 2 {
			return fmt.Errorf("highest value must be at least 2")
		}
		if c.Rules.SpotOnEveryoneMinimum < 0 {
			return fmt.Errorf("spot-on everyone minimum must not be negative")
		}
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleRoomTTL returns the idle room reap threshold.
func (c *ServerConfig) IdleRoomTTL() time.Duration {
	return time.Duration(c.Server.IdleRoomMinutes) * time.Minute
}

// GameRules merges the configured rule defaults over the standard
// Perudo rules. Zero values for counts fall back to the standard;
// booleans are taken as configured when a rules block is present.
func (c *ServerConfig) GameRules() game.Rules {
	rules := game.DefaultRules()
	if c.Rules == nil {
		return rules
	}
	if c.Rules.StartingDiceCount != 0 {
		rules.StartingDiceCount = c.Rules.StartingDiceCount
	}
	if c.Rules.HighestValue != 0 {
		rules.HighestValue = c.Rules.HighestValue
	}
	if c.Rules.SpotOnEveryoneMinimum != 0 {
		rules.SpotOnEveryoneMinimum = c.Rules.SpotOnEveryoneMinimum
	}
	rules.SpotOn = c.Rules.SpotOn
	rules.SpotOnEveryone = c.Rules.SpotOnEveryone
	rules.WildcardEnabled = c.Rules.Wildcard
	return rules
}
