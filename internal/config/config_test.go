package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
game {
  graph  = "square"
  cops   = 2
  steps  = 5
  cop    = "menace"
  robber = "random"
}

graph "square" {
  adjacency = [[1, 3], [0, 2], [1, 3], [2, 0]]
}

simulation {
  games  = 500
  seed   = 42
  window = 50
}

server {
  address = ":9090"
  tick    = "250ms"
}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, GameSettings{Graph: "square", Cops: 2, Steps: 5, Cop: "menace", Robber: "random"}, cfg.Game)
	assert.Equal(t, SimulationSettings{Games: 500, Seed: 42, Window: 50}, cfg.Simulation)
	assert.Equal(t, ":9090", cfg.Server.Address)

	g, err := cfg.ResolveGraph()
	require.NoError(t, err)
	assert.Equal(t, "square", g.Name())
	assert.Equal(t, 4, g.NumVertices())
	assert.Equal(t, []graph.Vertex{1, 3}, g.Neighbors(0))

	gc, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, game.Config{NumberOfCops: 2, NumberOfSteps: 5, Cop: strategy.Menace, Robber: strategy.Random}, gc)

	tick, err := cfg.TickInterval()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, tick)
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`game { graph = "hexagon" }`), "partial.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := Default()
	assert.Equal(t, "hexagon", cfg.Game.Graph)
	assert.Equal(t, 1, cfg.Game.Cops)
	assert.Equal(t, "random", cfg.Game.Cop)
	assert.Equal(t, def.Simulation, cfg.Simulation)
	assert.Equal(t, def.Server, cfg.Server)

	g, err := cfg.ResolveGraph()
	require.NoError(t, err)
	assert.Same(t, graph.Hexagon, g)
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("empty name uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "copsrobbers.hcl")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Game.Cops)
	})
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`game {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL")

	_, err = Parse([]byte(`game { colour = "red" }`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")

	_, err = Parse([]byte(`graph "x" {}`), "noadj.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no games", func(c *Config) { c.Simulation.Games = 0 }, "games must be positive"},
		{"negative window", func(c *Config) { c.Simulation.Window = -1 }, "window must not be negative"},
		{"no address", func(c *Config) { c.Server.Address = "" }, "address must be set"},
		{"bad tick", func(c *Config) { c.Server.Tick = "soon" }, "invalid tick"},
		{"zero tick", func(c *Config) { c.Server.Tick = "0s" }, "tick must be positive"},
		{"unknown graph", func(c *Config) { c.Game.Graph = "torus" }, "unknown graph"},
		{"unknown strategy", func(c *Config) { c.Game.Cop = "clever" }, "unknown strategy"},
		{"too many cops", func(c *Config) { c.Game.Cops = 4 }, "number of cops"},
		{"too many steps", func(c *Config) { c.Game.Steps = 101 }, "number of steps"},
		{"duplicate graph", func(c *Config) {
			c.Graphs = []GraphSettings{
				{Name: "Ring", Adjacency: [][]int{{0}}},
				{Name: "ring", Adjacency: [][]int{{0}}},
			}
		}, "defined more than once"},
		{"bad adjacency", func(c *Config) {
			c.Graphs = []GraphSettings{{Name: "bad", Adjacency: [][]int{{3}}}}
			c.Game.Graph = "bad"
		}, "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestCustomGraphShadowsTemplate(t *testing.T) {
	cfg := Default()
	cfg.Game.Graph = "Hexagon"
	cfg.Graphs = []GraphSettings{{Name: "hexagon", Adjacency: [][]int{{1}, {0}}}}

	g, err := cfg.ResolveGraph()
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumVertices())
}
