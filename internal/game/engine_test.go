package game

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/menace"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newEngine(t *testing.T, g *graph.Graph, cfg Config, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := NewEngine(g, cfg, opts...)
	require.NoError(t, err)
	return e
}

// play applies samples in order and returns every intermediate state.
func play(e *Engine, s State, samples ...float64) []State {
	states := make([]State, 0, len(samples))
	for _, sample := range samples {
		s = e.Step(s, sample)
		states = append(states, s)
	}
	return states
}

func TestTwoVertexPath(t *testing.T) {
	e := newEngine(t, graph.TwoVertexPath, DefaultConfig())

	placed := e.Step(e.Start(), 0.0)
	require.Equal(t, []graph.Vertex{0}, placed.CopPositions())
	require.Equal(t, RobberTurn, placed.Turn())
	require.Equal(t, RobberPlacing, placed.Phase())

	t.Run("robber lands on the cop", func(t *testing.T) {
		s := e.Step(placed, 0.2)
		assert.Equal(t, Over, s.Turn())
		assert.Equal(t, Score{CopWins: 1}, s.Score())
		assert.True(t, s.Captured())
	})

	t.Run("robber lands away and survives", func(t *testing.T) {
		s := e.Step(placed, 0.7)
		assert.Equal(t, Over, s.Turn())
		assert.Equal(t, Score{RobberWins: 1}, s.Score())
		v, ok := s.RobberPosition()
		assert.True(t, ok)
		assert.Equal(t, graph.Vertex(1), v)
		assert.False(t, s.Captured())
	})
}

func TestCaptureOnCopMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSteps = 5
	e := newEngine(t, graph.FiveVertexPath, cfg)

	// cop places on 1, robber on 2, cop steps onto 2
	states := play(e, e.Start(), 0.2, 0.45, 0.5)

	assert.Equal(t, CopMoving, states[1].Phase())
	final := states[2]
	assert.Equal(t, Over, final.Turn())
	assert.Equal(t, []graph.Vertex{2}, final.CopPositions())
	v, _ := final.RobberPosition()
	assert.Equal(t, graph.Vertex(2), v)
	assert.Equal(t, Score{CopWins: 1}, final.Score())
	assert.Equal(t, 5, final.RoundsLeft())
}

func TestCaptureOnRobberMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSteps = 5
	e := newEngine(t, graph.FiveVertexPath, cfg)

	// cop 0, robber 2, cop to 1, robber walks into 1
	states := play(e, e.Start(), 0.0, 0.45, 0.0, 0.0)

	assert.Equal(t, RobberMoving, states[2].Phase())
	final := states[3]
	assert.Equal(t, Over, final.Turn())
	assert.Equal(t, Score{CopWins: 1}, final.Score())
	v, _ := final.RobberPosition()
	assert.Equal(t, graph.Vertex(1), v)
}

func TestRoundBudget(t *testing.T) {
	// Everyone stays put: cop at 0, robber at 4.
	stay := []float64{0.0, 0.9}
	for i := 0; i < 10; i++ {
		stay = append(stay, 0.9, 0.9)
	}

	tests := []struct {
		steps     int
		wantSteps int
	}{
		{steps: 0, wantSteps: 2},
		{steps: 1, wantSteps: 4},
		{steps: 2, wantSteps: 6},
		{steps: 4, wantSteps: 10},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.NumberOfSteps = tt.steps
		e := newEngine(t, graph.FiveVertexPath, cfg)

		states := play(e, e.Start(), stay...)
		over := -1
		for i, s := range states {
			if s.Turn() == Over {
				over = i
				break
			}
		}
		require.Equal(t, tt.wantSteps-1, over, "steps=%d", tt.steps)
		assert.Equal(t, Score{RobberWins: 1}, states[over].Score())
		assert.Zero(t, states[over].RoundsLeft())
	}
}

func TestRoundsDecrementOnlyAfterMoves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfSteps = 3
	e := newEngine(t, graph.FiveVertexPath, cfg)

	states := play(e, e.Start(), 0.0, 0.9, 0.9, 0.9)
	assert.Equal(t, 3, states[1].RoundsLeft(), "placement keeps the budget")
	assert.Equal(t, 2, states[3].RoundsLeft(), "a full round uses one")
}

func TestOverStartsNewGame(t *testing.T) {
	e := newEngine(t, graph.TwoVertexPath, DefaultConfig())

	over := play(e, e.Start(), 0.0, 0.7)[1]
	require.Equal(t, Over, over.Turn())

	next := e.Step(over, 0.3)
	assert.Equal(t, CopPlacing, next.Phase())
	assert.Nil(t, next.CopPositions())
	_, placed := next.RobberPosition()
	assert.False(t, placed)
	assert.Equal(t, over.Score(), next.Score())
	assert.Equal(t, e.Config().NumberOfSteps, next.RoundsLeft())
}

func TestStepDoesNotChangeItsInput(t *testing.T) {
	e := newEngine(t, graph.Hexagon, Config{NumberOfCops: 2, NumberOfSteps: 3, Cop: strategy.Menace, Robber: strategy.Menace})

	start := e.Start()
	placed := e.Step(start, 0.3)
	_ = e.Step(placed, 0.6)

	assert.Nil(t, start.CopPositions())
	assert.Empty(t, start.CopStrategy().Bags())
	assert.Equal(t, RobberTurn, placed.Turn())
	assert.Empty(t, placed.RobberStrategy().Bags())
}

func TestMenaceLearnsThroughEngine(t *testing.T) {
	cfg := Config{NumberOfCops: 1, NumberOfSteps: 0, Cop: strategy.Menace, Robber: strategy.Random}
	e := newEngine(t, graph.Hexagon, cfg)

	// cop draws move 0 (vertex 0); robber places on 0 and is caught
	caught := play(e, e.Start(), 0.0, 0.0)[1]
	require.Equal(t, Score{CopWins: 1}, caught.Score())
	assert.Equal(t, 53, caught.CopStrategy().Bags()[""].Count(0))
	assert.Zero(t, caught.CopStrategy().Pending())

	// next game: cop draws 0 again; robber places on 3 and survives
	survived := play(e, caught, 0.5, 0.0, 0.5)[2]
	require.Equal(t, Score{CopWins: 1, RobberWins: 1}, survived.Score())
	assert.Equal(t, 52, survived.CopStrategy().Bags()[""].Count(0))
}

func TestMenaceRobberKeysOnCopPlacement(t *testing.T) {
	cfg := Config{NumberOfCops: 2, NumberOfSteps: 2, Cop: strategy.Random, Robber: strategy.Menace}
	e := newEngine(t, graph.Hexagon, cfg)

	// cops: 0.5 -> [3, 0]
	s := play(e, e.Start(), 0.5, 0.4)[1]
	bags := s.RobberStrategy().Bags()
	require.Contains(t, bags, menace.KeyOf(3, 0))
	assert.Equal(t, 6, bags[menace.KeyOf(3, 0)].Len())
}

func TestScoreMatchesCompletedGames(t *testing.T) {
	configs := []Config{
		{NumberOfCops: 1, NumberOfSteps: 0, Cop: strategy.Random, Robber: strategy.Random},
		{NumberOfCops: 2, NumberOfSteps: 5, Cop: strategy.Menace, Robber: strategy.Menace},
		{NumberOfCops: 3, NumberOfSteps: 10, Cop: strategy.Menace, Robber: strategy.Random},
	}
	for _, cfg := range configs {
		finished := 0
		e := newEngine(t, graph.Hexagon, cfg, WithObserver(func(o Outcome) {
			finished++
			assert.Equal(t, finished, o.Game)
			assert.LessOrEqual(t, o.Rounds, cfg.NumberOfSteps)
		}))

		s, err := e.Advance(context.Background(), e.Start(), 300, randutil.New(7))
		require.NoError(t, err)
		assert.Equal(t, Over, s.Turn())
		assert.Equal(t, 300, s.Score().Games())
		assert.Equal(t, 300, finished)

		s, err = e.Advance(context.Background(), s, 200, randutil.New(8))
		require.NoError(t, err)
		assert.Equal(t, 500, s.Score().Games())
	}
}

func TestAdvanceIsReproducible(t *testing.T) {
	cfg := Config{NumberOfCops: 1, NumberOfSteps: 4, Cop: strategy.Menace, Robber: strategy.Menace}
	e := newEngine(t, graph.FiveVertexPath, cfg)

	a, err := e.Advance(context.Background(), e.Start(), 100, randutil.New(3))
	require.NoError(t, err)
	b, err := e.Advance(context.Background(), e.Start(), 100, randutil.New(3))
	require.NoError(t, err)

	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.CopStrategy().Bags(), b.CopStrategy().Bags())
}

func TestAdvanceHonoursCancellation(t *testing.T) {
	e := newEngine(t, graph.Hexagon, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := e.Advance(ctx, e.Start(), 10, randutil.New(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Score().Games())
}

func TestAdvanceZeroGames(t *testing.T) {
	e := newEngine(t, graph.Hexagon, DefaultConfig())
	start := e.Start()
	s, err := e.Advance(context.Background(), start, 0, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, start, s)
}

func TestSamplesAreClamped(t *testing.T) {
	e := newEngine(t, graph.TwoVertexPath, DefaultConfig())

	s := e.Step(e.Start(), 1.0)
	assert.Equal(t, []graph.Vertex{1}, s.CopPositions())

	s = e.Step(e.Start(), -0.5)
	assert.Equal(t, []graph.Vertex{0}, s.CopPositions())
}

func TestSnapshot(t *testing.T) {
	e := newEngine(t, graph.TwoVertexPath, DefaultConfig())

	data, err := json.Marshal(e.Snapshot(e.Start()))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"graph": "2 vertex path",
		"score": {"copWins": 0, "robberWins": 0},
		"copPositions": null,
		"robberPosition": null,
		"roundsLeft": 0,
		"turn": "Cop",
		"phase": "cop-placing"
	}`, string(data))

	over := play(e, e.Start(), 0.0, 0.7)[1]
	snap := e.Snapshot(over)
	assert.Equal(t, []int{0}, snap.CopPositions)
	require.NotNil(t, snap.RobberPosition)
	assert.Equal(t, 1, *snap.RobberPosition)
	assert.Equal(t, Over, snap.Turn)

	encoded, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, snap, decoded)

	var bad Turn
	assert.Error(t, bad.UnmarshalText([]byte("Nobody")))
}

func TestConfigValidate(t *testing.T) {
	big := graph.MustNew("big", make([][]int, 200))

	tests := []struct {
		name  string
		graph *graph.Graph
		cfg   Config
		ok    bool
	}{
		{"default", graph.Hexagon, DefaultConfig(), true},
		{"three cops", graph.Hexagon, Config{NumberOfCops: 3, NumberOfSteps: 100}, true},
		{"no cops", graph.Hexagon, Config{NumberOfCops: 0}, false},
		{"four cops", graph.Hexagon, Config{NumberOfCops: 4}, false},
		{"negative steps", graph.Hexagon, Config{NumberOfCops: 1, NumberOfSteps: -1}, false},
		{"too many steps", graph.Hexagon, Config{NumberOfCops: 1, NumberOfSteps: 101}, false},
		{"unknown kind", graph.Hexagon, Config{NumberOfCops: 1, Cop: strategy.Kind(9)}, false},
		{"nil graph", nil, DefaultConfig(), false},
		{"random cops on a big graph", big, Config{NumberOfCops: 3}, true},
		{"menace cops on a big graph", big, Config{NumberOfCops: 3, Cop: strategy.Menace}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.graph, tt.cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			}
		})
	}
}
