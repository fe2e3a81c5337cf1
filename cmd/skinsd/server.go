package main

import (
	"errors"
	"net/http"

	"github.com/skinsgame/skinsd/cmd/skinsd/shared"
	"github.com/skinsgame/skinsd/internal/server"
)

// ServerCmd runs the HTTP/WebSocket scoring server.
type ServerCmd struct {
	Config    string `kong:"default='skinsd.hcl',help='Path to HCL config file'"`
	Addr      string `kong:"help='Listen address, overrides config (e.g. :8080)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
	Stake     int    `kong:"help='Stake per hole, overrides config'"`
	TiePolicy string `kong:"name='tie-policy',help='Tie policy (push or split), overrides config'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Stake != 0 {
		cfg.Game.Stake = c.Stake
	}
	if c.TiePolicy != "" {
		cfg.Game.TiePolicy = c.TiePolicy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	shared.ApplyLogLevel(logger, cfg.Server.LogLevel, c.Debug)

	var s *server.Server
	if c.Addr != "" {
		// A CLI address wins over the config file.
		s = server.NewServerWithAddr(cfg, c.Addr, logger)
	} else {
		s = server.NewServer(cfg, logger)
	}

	logger.Info("Starting skinsd server",
		"config", c.Config,
		"stake", cfg.Game.Stake,
		"tie_policy", cfg.Game.TiePolicy)

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
