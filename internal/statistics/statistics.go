package statistics

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// z95 is the normal quantile for a two-sided 95% interval.
const z95 = 1.96

// GameResult represents the outcome of a single game
type GameResult struct {
	GameID         string // Identifier for log correlation
	Game           int    // 1-based index within the run
	CopsWon        bool   // Did the cops capture the robber?
	Rounds         int    // Rounds played before the game ended
	CopPositions   []int  // Terminal cop vertices
	RobberPosition int    // Terminal robber vertex
}

// Window tracks results for a contiguous block of games, used to show how the
// learners drift over a run.
type Window struct {
	Games   int
	CopWins int
}

// CopWinRate returns the fraction of the window's games the cops won.
func (w Window) CopWinRate() float64 {
	if w.Games == 0 {
		return 0
	}
	return float64(w.CopWins) / float64(w.Games)
}

// Statistics tracks outcomes across a simulation run
type Statistics struct {
	Games      int
	CopWins    int
	RobberWins int
	Rounds     []float64 // Rounds per game, for mean and percentiles

	// Captures split by how late they happened; survivals always use the full budget
	CaptureRounds int // Sum of rounds over captured games

	WindowSize int
	Windows    []Window
}

// New creates statistics that group games into windows of windowSize.
// A windowSize of zero disables windows.
func New(windowSize int) *Statistics {
	return &Statistics{WindowSize: windowSize}
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.Rounds = append(s.Rounds, float64(result.Rounds))
	if result.CopsWon {
		s.CopWins++
		s.CaptureRounds += result.Rounds
	} else {
		s.RobberWins++
	}

	if s.WindowSize <= 0 {
		return
	}
	if len(s.Windows) == 0 || s.Windows[len(s.Windows)-1].Games == s.WindowSize {
		s.Windows = append(s.Windows, Window{})
	}
	w := &s.Windows[len(s.Windows)-1]
	w.Games++
	if result.CopsWon {
		w.CopWins++
	}
}

// CopWinRate returns the fraction of games the cops won
func (s *Statistics) CopWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.CopWins) / float64(s.Games)
}

// WilsonInterval95 returns the 95% Wilson score interval for the cop win rate.
func (s *Statistics) WilsonInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	n := float64(s.Games)
	p := s.CopWinRate()
	z2 := z95 * z95

	centre := (p + z2/(2*n)) / (1 + z2/n)
	margin := z95 * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / (1 + z2/n)
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}

// MeanRounds returns the mean game length and its sample standard deviation
func (s *Statistics) MeanRounds() (mean, stdDev float64) {
	switch len(s.Rounds) {
	case 0:
		return 0, 0
	case 1:
		return s.Rounds[0], 0
	}
	return stat.MeanStdDev(s.Rounds, nil)
}

// MeanCaptureRounds returns how many rounds captures took on average
func (s *Statistics) MeanCaptureRounds() float64 {
	if s.CopWins == 0 {
		return 0
	}
	return float64(s.CaptureRounds) / float64(s.CopWins)
}

// RoundsPercentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) RoundsPercentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Rounds)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// IsLedgerBalanced checks that every game was counted exactly once
func (s *Statistics) IsLedgerBalanced() bool {
	return s.CopWins+s.RobberWins == s.Games
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: copWins=%d + robberWins=%d != games=%d",
			s.CopWins, s.RobberWins, s.Games)
	}

	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Rounds) != s.Games {
		return fmt.Errorf("rounds array length (%d) does not match games count (%d)",
			len(s.Rounds), s.Games)
	}

	if s.WindowSize > 0 {
		windowGames, windowWins := 0, 0
		for _, w := range s.Windows {
			windowGames += w.Games
			windowWins += w.CopWins
		}
		if windowGames != s.Games || windowWins != s.CopWins {
			return fmt.Errorf("window totals (%d games, %d cop wins) do not match run totals (%d, %d)",
				windowGames, windowWins, s.Games, s.CopWins)
		}
	}

	return nil
}
