package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/copsandrobbers/internal/game"
	"github.com/lox/copsandrobbers/internal/gameid"
	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/menace"
	"github.com/lox/copsandrobbers/internal/randutil"
	"github.com/lox/copsandrobbers/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games  int
	Seed   int64
	Graph  *graph.Graph
	Game   game.Config
	Window int // Games per learning-curve window, 0 disables
	Logger *log.Logger
	Clock  quartz.Clock
	IDs    *gameid.Generator
}

// Result is everything a run produced
type Result struct {
	Graph   string
	Game    game.Config
	Seed    int64
	Stats   *statistics.Statistics
	Games   []statistics.GameResult
	Final   game.State
	Elapsed time.Duration
}

// Simulator runs headless series of games
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
	ids    *gameid.Generator
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	ids := config.IDs
	if ids == nil {
		ids = gameid.NewGenerator(nil)
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
		ids:    ids,
	}
}

// Run plays the configured number of games and returns the results
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if s.config.Graph == nil {
		return nil, errors.New("no graph configured")
	}

	stats := statistics.New(s.config.Window)
	results := make([]statistics.GameResult, 0, s.config.Games)

	engine, err := game.NewEngine(s.config.Graph, s.config.Game,
		game.WithLogger(s.logger),
		game.WithObserver(func(o game.Outcome) {
			result := statistics.GameResult{
				GameID:         s.ids.Generate(),
				Game:           o.Game,
				CopsWon:        o.Winner == game.Cops,
				Rounds:         o.Rounds,
				CopPositions:   vertexInts(o.Cops),
				RobberPosition: int(o.Robber),
			}
			stats.Add(result)
			results = append(results, result)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting simulation",
		"graph", s.config.Graph.Name(),
		"games", s.config.Games,
		"cops", s.config.Game.NumberOfCops,
		"steps", s.config.Game.NumberOfSteps,
		"cop", s.config.Game.Cop,
		"robber", s.config.Game.Robber,
		"seed", s.config.Seed)

	start := s.clock.Now()
	final, err := engine.Advance(ctx, engine.Start(), s.config.Games, randutil.New(s.config.Seed))
	if err != nil {
		return nil, fmt.Errorf("simulation stopped after %d games: %w", stats.Games, err)
	}
	elapsed := s.clock.Since(start)

	// Validate statistics before returning
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	if score := final.Score(); score.CopWins != stats.CopWins || score.RobberWins != stats.RobberWins {
		return nil, fmt.Errorf("score %d-%d does not match recorded games %d-%d",
			score.CopWins, score.RobberWins, stats.CopWins, stats.RobberWins)
	}

	s.logger.Info("Simulation complete",
		"games", stats.Games,
		"copWins", stats.CopWins,
		"robberWins", stats.RobberWins,
		"elapsed", elapsed)

	return &Result{
		Graph:   s.config.Graph.Name(),
		Game:    s.config.Game,
		Seed:    s.config.Seed,
		Stats:   stats,
		Games:   results,
		Final:   final,
		Elapsed: elapsed,
	}, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, g *graph.Graph, cfg game.Config, games int, seed int64, logger *log.Logger) (*Result, error) {
	return New(Config{
		Games:  games,
		Seed:   seed,
		Graph:  g,
		Game:   cfg,
		Logger: logger,
	}).Run(ctx)
}

// PrintSummary writes a human readable summary of a run
func PrintSummary(w io.Writer, r *Result) {
	stats := r.Stats
	low, high := stats.WilsonInterval95()
	mean, sd := stats.MeanRounds()

	fmt.Fprintf(w, "\n=== FINAL RESULTS on %s ===\n", r.Graph)
	fmt.Fprintf(w, "Cops: %d (%s), Robber: %s, Rounds: %d\n",
		r.Game.NumberOfCops, r.Game.Cop, r.Game.Robber, r.Game.NumberOfSteps)
	fmt.Fprintf(w, "Games played: %d in %v (seed %d)\n", stats.Games, r.Elapsed.Round(time.Millisecond), r.Seed)
	fmt.Fprintf(w, "Score: cops %d, robber %d\n", stats.CopWins, stats.RobberWins)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Cop win rate: %.4f\n", stats.CopWinRate())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Game length: %.3f rounds (sd %.3f), P50=%.0f, P95=%.0f\n",
		mean, sd, stats.RoundsPercentile(0.5), stats.RoundsPercentile(0.95))
	if stats.CopWins > 0 {
		fmt.Fprintf(w, "Captures took %.3f rounds on average\n", stats.MeanCaptureRounds())
	}

	if len(stats.Windows) > 0 {
		fmt.Fprintf(w, "\n=== LEARNING CURVE (%d games per window) ===\n", stats.WindowSize)
		for i, win := range stats.Windows {
			fmt.Fprintf(w, "Window %3d: %.3f cop win rate over %d games\n", i+1, win.CopWinRate(), win.Games)
		}
	}

	printBags(w, "Cop", r.Final.CopStrategy().Bags())
	printBags(w, "Robber", r.Final.RobberStrategy().Bags())
}

func printBags(w io.Writer, who string, bags map[menace.StateKey]menace.Bag) {
	if len(bags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n=== %s MENACE BAGS (%d states) ===\n", who, len(bags))
	keys := make([]menace.StateKey, 0, len(bags))
	for k := range bags {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		label := string(k)
		if label == "" {
			label = "start"
		}
		fmt.Fprintf(w, "%-12s %v\n", label, bags[k].Counts())
	}
}

func vertexInts(vs []graph.Vertex) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(v)
	}
	return out
}
