package main

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/copsandrobbers/cmd/copsrobbers/shared"
	"github.com/lox/copsandrobbers/internal/config"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/server"
)

// ServeCmd hosts a live series for browser clients
type ServeCmd struct {
	GameFlags

	Addr string        `help:"Server address (overrides the config file)"`
	Tick time.Duration `help:"Time between decisions (overrides the config file)"`
	Seed int64         `help:"Random seed (0 picks one)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	logger := shared.SetupLogger(globals.Debug, globals.JSON)

	s, err := loadSetup(logger, globals.Config, c.GameFlags, func(cfg *config.Config) {
		if c.Addr != "" {
			cfg.Server.Address = c.Addr
		}
		if c.Tick > 0 {
			cfg.Server.Tick = c.Tick.String()
		}
	})
	if err != nil {
		return err
	}
	tick, err := s.config.TickInterval()
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	clock := quartz.NewReal()

	host, err := server.NewHost(server.HostConfig{
		Graph:  s.graph,
		Game:   s.game,
		Source: randutil.New(seed),
		Tick:   tick,
		Clock:  clock,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting Cops and Robbers server",
		"address", s.config.Server.Address,
		"graph", s.graph.Name(),
		"tick", tick,
		"seed", seed)

	ctx := shared.SetupSignalHandler(logger)
	return server.NewServer(s.config.Server.Address, host, clock, logger).Run(ctx)
}
