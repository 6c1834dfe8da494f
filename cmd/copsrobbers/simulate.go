package main

import (
	"os"

	"github.com/lox/copsandrobbers/cmd/copsrobbers/shared"
	"github.com/lox/copsandrobbers/internal/config"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/report"
	"github.com/lox/copsandrobbers/internal/simulator"
)

// SimulateCmd trains the strategies headless
type SimulateCmd struct {
	GameFlags

	Games   *int   `short:"n" help:"Number of games to play"`
	Seed    *int64 `help:"Random seed (0 picks one)"`
	Window  *int   `help:"Games per learning-curve window (0 disables)"`
	Summary string `type:"path" help:"Write a summary to this .json or .yaml file"`
	Parquet string `type:"path" help:"Write one row per game to this Parquet file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	logger := shared.SetupLogger(globals.Debug, globals.JSON)

	s, err := loadSetup(logger, globals.Config, c.GameFlags, func(cfg *config.Config) {
		if c.Games != nil {
			cfg.Simulation.Games = *c.Games
		}
		if c.Seed != nil {
			cfg.Simulation.Seed = *c.Seed
		}
		if c.Window != nil {
			cfg.Simulation.Window = *c.Window
		}
	})
	if err != nil {
		return err
	}

	seed := randutil.Seed(s.config.Simulation.Seed)
	ctx := shared.SetupSignalHandler(logger)

	result, err := simulator.New(simulator.Config{
		Games:  s.config.Simulation.Games,
		Seed:   seed,
		Graph:  s.graph,
		Game:   s.game,
		Window: s.config.Simulation.Window,
		Logger: logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, result)

	if c.Summary != "" {
		if err := report.WriteSummary(c.Summary, report.Summarize(result)); err != nil {
			return err
		}
		logger.Info("Wrote summary", "path", c.Summary)
	}
	if c.Parquet != "" {
		if err := report.WriteGames(c.Parquet, report.Rows(result.Graph, result.Games)); err != nil {
			return err
		}
		logger.Info("Wrote games", "path", c.Parquet, "rows", len(result.Games))
	}
	return nil
}
