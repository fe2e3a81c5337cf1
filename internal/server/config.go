package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/skinsgame/skinsd/internal/game"
)

// Config represents the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the scoring defaults applied to every round the
// server calculates. They are fixed at process start; the engine itself
// takes them per call.
type GameSettings struct {
	Stake     int    `hcl:"stake,optional"`
	TiePolicy string `hcl:"tie_policy,optional"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			Stake:     game.DefaultStake,
			TiePolicy: game.PushCarryOver.String(),
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Game.Stake == 0 {
		config.Game.Stake = game.DefaultStake
	}
	if config.Game.TiePolicy == "" {
		config.Game.TiePolicy = game.PushCarryOver.String()
	}

	return &config, nil
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.Stake < 1 {
		return fmt.Errorf("stake must be positive, got %d", c.Game.Stake)
	}
	if _, err := game.ParseTiePolicy(c.Game.TiePolicy); err != nil {
		return err
	}
	return nil
}

// ListenAddr returns the full listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// RoundOptions returns the engine options for this server's game
// defaults. Validate must have passed.
func (c *Config) RoundOptions() []game.RoundOption {
	policy, _ := game.ParseTiePolicy(c.Game.TiePolicy)
	return []game.RoundOption{
		game.WithStake(c.Game.Stake),
		game.WithTiePolicy(policy),
	}
}
