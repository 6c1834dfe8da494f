package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/copsandrobbers/cmd/copsrobbers/shared"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/tui"
)

// PlayCmd runs the interactive viewer
type PlayCmd struct {
	GameFlags

	Interval time.Duration `default:"700ms" help:"Time between decisions"`
	Seed     int64         `help:"Random seed (0 picks one)"`
	LogFile  string        `type:"path" help:"Write logs to this file (the terminal is taken by the viewer)"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	out := io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := shared.NewLogger(out, globals.Debug, globals.JSON)

	s, err := loadSetup(logger, globals.Config, c.GameFlags, nil)
	if err != nil {
		return err
	}

	engine, err := game.NewEngine(s.graph, s.game, game.WithLogger(logger))
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting viewer", "graph", s.graph.Name(), "seed", seed, "interval", c.Interval)

	ctx := shared.SetupSignalHandler(logger)
	return tui.Run(ctx, tui.Config{
		Engine:   engine,
		Source:   randutil.New(seed),
		Interval: c.Interval,
		Logger:   logger,
	})
}
