package game

import (
	"errors"
	"fmt"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/strategy"
)

const (
	MinCops  = 1
	MaxCops  = 3
	MaxSteps = 100

	// MaxJointMoves bounds the size of a single MENACE bag.
	MaxJointMoves = 1 << 20
)

// ErrInvalidConfiguration is returned when a game cannot be set up.
var ErrInvalidConfiguration = errors.New("invalid game configuration")

// Config describes one series of games.
type Config struct {
	NumberOfCops  int           `json:"numberOfCops" yaml:"number_of_cops"`
	NumberOfSteps int           `json:"numberOfSteps" yaml:"number_of_steps"`
	Cop           strategy.Kind `json:"cop" yaml:"cop"`
	Robber        strategy.Kind `json:"robber" yaml:"robber"`
}

// DefaultConfig is one cop with no extra rounds, random against random.
func DefaultConfig() Config {
	return Config{
		NumberOfCops:  1,
		NumberOfSteps: 0,
		Cop:           strategy.Random,
		Robber:        strategy.Random,
	}
}

// Validate checks the configuration against the board it will be played on.
func (c Config) Validate(g *graph.Graph) error {
	if g == nil || g.NumVertices() == 0 {
		return fmt.Errorf("%w: graph has no vertices", ErrInvalidConfiguration)
	}
	if c.NumberOfCops < MinCops || c.NumberOfCops > MaxCops {
		return fmt.Errorf("%w: number of cops must be between %d and %d, got %d",
			ErrInvalidConfiguration, MinCops, MaxCops, c.NumberOfCops)
	}
	if c.NumberOfSteps < 0 || c.NumberOfSteps > MaxSteps {
		return fmt.Errorf("%w: number of steps must be between 0 and %d, got %d",
			ErrInvalidConfiguration, MaxSteps, c.NumberOfSteps)
	}
	for _, k := range []strategy.Kind{c.Cop, c.Robber} {
		if k != strategy.Random && k != strategy.Menace {
			return fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfiguration, k)
		}
	}

	if c.Cop == strategy.Menace {
		size := 1
		for i := 0; i < c.NumberOfCops; i++ {
			size *= g.NumVertices()
			if size > MaxJointMoves {
				return fmt.Errorf("%w: %d cops on %d vertices gives more than %d joint placements",
					ErrInvalidConfiguration, c.NumberOfCops, g.NumVertices(), MaxJointMoves)
			}
		}
	}

	return nil
}
