package game

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/strategy"
)

// cancelCheckInterval is how many steps Advance takes between context checks.
const cancelCheckInterval = 1024

// Observer is told about every game as it finishes.
type Observer func(Outcome)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.WithPrefix("engine")
		}
	}
}

// WithObserver registers a callback for finished games.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// Engine drives the round-by-round state machine for one board and
// configuration. It holds no game state of its own: callers thread State
// values through Step, so an Engine can be shared by independent series.
type Engine struct {
	graph    *graph.Graph
	config   Config
	logger   *log.Logger
	observer Observer
}

// NewEngine validates the configuration and returns an engine for it.
func NewEngine(g *graph.Graph, config Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(g); err != nil {
		return nil, err
	}

	e := &Engine{
		graph:  g,
		config: config,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Graph returns the board.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Config returns the game configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Start returns the state before the first cop placement, with fresh
// strategies.
func (e *Engine) Start() State {
	return State{
		cop:        strategy.NewCop(e.config.Cop, e.graph, e.config.NumberOfCops),
		robber:     strategy.NewRobber(e.config.Robber, e.graph),
		roundsLeft: e.config.NumberOfSteps,
		turn:       CopTurn,
	}
}

// Step advances one decision using sample, which should be in [0,1).
func (e *Engine) Step(s State, sample float64) State {
	sample = clampSample(sample)

	switch s.turn {
	case Over:
		return State{
			score:      s.score,
			cop:        s.cop,
			robber:     s.robber,
			roundsLeft: e.config.NumberOfSteps,
			turn:       CopTurn,
		}

	case CopTurn:
		next := s
		if s.cops == nil {
			next.cop, next.cops = s.cop.Begin(sample)
			next.turn = RobberTurn
			return next
		}

		next.cop, next.cops = s.cop.Move(s.cops, s.robberAt, sample)
		if strategy.Captured(next.cops, s.robberAt) {
			return e.finish(next, Cops)
		}
		next.turn = RobberTurn
		return next

	default:
		next := s
		moved := s.robberPlaced
		if moved {
			next.robber, next.robberAt = s.robber.Move(s.cops, s.robberAt, sample)
		} else {
			next.robber, next.robberAt = s.robber.Begin(s.cops, sample)
			next.robberPlaced = true
		}

		if strategy.Captured(next.cops, next.robberAt) {
			return e.finish(next, Cops)
		}
		if s.roundsLeft == 0 || (s.roundsLeft == 1 && moved) {
			next.roundsLeft = 0
			return e.finish(next, Robber)
		}
		if moved {
			next.roundsLeft--
		}
		next.turn = CopTurn
		return next
	}
}

// finish lets both strategies learn from the terminal position and records
// the result.
func (e *Engine) finish(s State, winner Side) State {
	s.cop = s.cop.End(s.cops, s.robberAt)
	s.robber = s.robber.End(s.cops, s.robberAt)
	if winner == Cops {
		s.score.CopWins++
	} else {
		s.score.RobberWins++
	}
	s.turn = Over

	outcome := Outcome{
		Game:   s.score.Games(),
		Winner: winner,
		Rounds: e.config.NumberOfSteps - s.roundsLeft,
		Cops:   s.CopPositions(),
		Robber: s.robberAt,
		Score:  s.score,
	}
	e.logger.Debug("Game over",
		"game", outcome.Game,
		"winner", winner,
		"rounds", outcome.Rounds,
		"cops", outcome.Cops,
		"robber", outcome.Robber,
		"copWins", s.score.CopWins,
		"robberWins", s.score.RobberWins)
	if e.observer != nil {
		e.observer(outcome)
	}

	return s
}

// Advance steps with samples from src until games more games have finished
// and returns the state at the last finish. It stops early with the context's
// error if ctx is cancelled.
func (e *Engine) Advance(ctx context.Context, s State, games int, src randutil.Source) (State, error) {
	completed := 0
	for steps := 0; completed < games; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return s, err
			}
		}
		s = e.Step(s, src.Float64())
		if s.turn == Over {
			completed++
		}
	}
	return s, nil
}

// Snapshot renders a state for presentation.
func (e *Engine) Snapshot(s State) Snapshot {
	snap := Snapshot{
		Graph:      e.graph.Name(),
		Score:      s.score,
		RoundsLeft: s.roundsLeft,
		Turn:       s.turn,
		Phase:      s.Phase().String(),
	}
	if s.cops != nil {
		snap.CopPositions = make([]int, len(s.cops))
		for i, v := range s.cops {
			snap.CopPositions[i] = int(v)
		}
	}
	if s.robberPlaced {
		v := int(s.robberAt)
		snap.RobberPosition = &v
	}
	return snap
}

// clampSample keeps a sample inside [0,1).
func clampSample(sample float64) float64 {
	switch {
	case math.IsNaN(sample) || sample < 0:
		return 0
	case sample >= 1:
		return math.Nextafter(1, 0)
	default:
		return sample
	}
}
