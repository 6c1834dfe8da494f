package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/copsandrobbers/internal/config"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/graph"
)

// GameFlags override the game block of the configuration file
type GameFlags struct {
	Graph  string `short:"g" help:"Board name or slug (see 'graphs')"`
	Cops   *int   `help:"Number of cops (1-3)"`
	Steps  *int   `help:"Extra rounds the robber must survive (0-100)"`
	Cop    string `help:"Cop strategy: random or menace"`
	Robber string `help:"Robber strategy: random or menace"`
}

func (f GameFlags) apply(cfg *config.Config) {
	if f.Graph != "" {
		cfg.Game.Graph = f.Graph
	}
	if f.Cops != nil {
		cfg.Game.Cops = *f.Cops
	}
	if f.Steps != nil {
		cfg.Game.Steps = *f.Steps
	}
	if f.Cop != "" {
		cfg.Game.Cop = f.Cop
	}
	if f.Robber != "" {
		cfg.Game.Robber = f.Robber
	}
}

type setup struct {
	config *config.Config
	graph  *graph.Graph
	game   game.Config
}

// loadSetup reads the configuration file, applies flag overrides and
// validates the result.
func loadSetup(logger *log.Logger, path string, flags GameFlags, override func(*config.Config)) (*setup, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(logger, path, cfg)

	g, err := cfg.ResolveGraph()
	if err != nil {
		return nil, err
	}
	gc, err := cfg.GameConfig()
	if err != nil {
		return nil, err
	}
	return &setup{config: cfg, graph: g, game: gc}, nil
}

// logConfig records where the effective configuration came from.
func logConfig(logger *log.Logger, path string, cfg *config.Config) {
	source := path
	if _, err := os.Stat(path); err != nil {
		source = "defaults"
	}
	logger.Debug("Loaded configuration",
		"source", source,
		"graph", cfg.Game.Graph,
		"cops", cfg.Game.Cops,
		"steps", cfg.Game.Steps,
		"cop", cfg.Game.Cop,
		"robber", cfg.Game.Robber)
}
