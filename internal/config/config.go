// Package config loads the optional HCL configuration shared by the CLI
// commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/strategy"
)

// Config is the resolved configuration with defaults applied
type Config struct {
	Game       GameSettings
	Graphs     []GraphSettings
	Simulation SimulationSettings
	Server     ServerSettings
}

// GameSettings chooses the board and the players
type GameSettings struct {
	Graph  string `hcl:"graph,optional"`
	Cops   int    `hcl:"cops,optional"`
	Steps  int    `hcl:"steps,optional"`
	Cop    string `hcl:"cop,optional"`
	Robber string `hcl:"robber,optional"`
}

// GraphSettings defines a custom board
type GraphSettings struct {
	Name      string  `hcl:"name,label"`
	Adjacency [][]int `hcl:"adjacency"`
}

// SimulationSettings controls headless runs
type SimulationSettings struct {
	Games  int   `hcl:"games,optional"`
	Seed   int64 `hcl:"seed,optional"`
	Window int   `hcl:"window,optional"`
}

// ServerSettings controls the live feed
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Tick    string `hcl:"tick,optional"`
}

// file mirrors the HCL layout; every block is optional.
type file struct {
	Game       *GameSettings       `hcl:"game,block"`
	Graphs     []GraphSettings     `hcl:"graph,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Graph:  graph.TwoVertexPath.Name(),
			Cops:   1,
			Steps:  0,
			Cop:    "random",
			Robber: "random",
		},
		Simulation: SimulationSettings{
			Games:  1000,
			Window: 100,
		},
		Server: ServerSettings{
			Address: "localhost:8080",
			Tick:    "700ms",
		},
	}
}

// Load reads an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", describe(diags))
	}

	config := Default()
	config.Graphs = raw.Graphs
	if raw.Game != nil {
		g := *raw.Game
		if g.Graph == "" {
			g.Graph = config.Game.Graph
		}
		if g.Cops == 0 {
			g.Cops = config.Game.Cops
		}
		if g.Cop == "" {
			g.Cop = config.Game.Cop
		}
		if g.Robber == "" {
			g.Robber = config.Game.Robber
		}
		config.Game = g
	}
	if raw.Simulation != nil {
		s := *raw.Simulation
		if s.Games == 0 {
			s.Games = config.Simulation.Games
		}
		if s.Window == 0 {
			s.Window = config.Simulation.Window
		}
		config.Simulation = s
	}
	if raw.Server != nil {
		s := *raw.Server
		if s.Address == "" {
			s.Address = config.Server.Address
		}
		if s.Tick == "" {
			s.Tick = config.Server.Tick
		}
		config.Server = s
	}

	return config, nil
}

func describe(diags hcl.Diagnostics) string {
	if len(diags) == 1 && diags[0].Subject != nil {
		return fmt.Sprintf("%s: %s", diags[0].Subject, diags[0].Detail)
	}
	return diags.Error()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Window < 0 {
		return fmt.Errorf("simulation window must not be negative, got %d", c.Simulation.Window)
	}
	if c.Server.Address == "" {
		return errors.New("server address must be set")
	}
	if _, err := c.TickInterval(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, g := range c.Graphs {
		slug := graph.Slug(g.Name)
		if seen[slug] {
			return fmt.Errorf("graph %q defined more than once", g.Name)
		}
		seen[slug] = true
	}

	g, err := c.ResolveGraph()
	if err != nil {
		return err
	}
	gc, err := c.GameConfig()
	if err != nil {
		return err
	}
	return gc.Validate(g)
}

// CustomGraphs builds the graphs defined in the file
func (c *Config) CustomGraphs() ([]*graph.Graph, error) {
	graphs := make([]*graph.Graph, 0, len(c.Graphs))
	for _, gs := range c.Graphs {
		g, err := graph.New(gs.Name, gs.Adjacency)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// ResolveGraph finds the configured board among custom graphs and templates
func (c *Config) ResolveGraph() (*graph.Graph, error) {
	custom, err := c.CustomGraphs()
	if err != nil {
		return nil, err
	}
	return graph.Lookup(c.Game.Graph, custom...)
}

// GameConfig converts the game block into an engine configuration
func (c *Config) GameConfig() (game.Config, error) {
	cop, err := strategy.ParseKind(c.Game.Cop)
	if err != nil {
		return game.Config{}, fmt.Errorf("cop: %w", err)
	}
	robber, err := strategy.ParseKind(c.Game.Robber)
	if err != nil {
		return game.Config{}, fmt.Errorf("robber: %w", err)
	}
	return game.Config{
		NumberOfCops:  c.Game.Cops,
		NumberOfSteps: c.Game.Steps,
		Cop:           cop,
		Robber:        robber,
	}, nil
}

// TickInterval returns the parsed server tick
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.Tick)
	if err != nil {
		return 0, fmt.Errorf("invalid tick %q: %w", c.Server.Tick, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick must be positive, got %s", d)
	}
	return d, nil
}
