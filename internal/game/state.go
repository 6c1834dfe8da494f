package game

import (
	"fmt"
	"slices"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/strategy"
)

// Turn says whose decision the next step makes.
type Turn int

const (
	CopTurn Turn = iota
	RobberTurn
	Over
)

func (t Turn) String() string {
	switch t {
	case CopTurn:
		return "Cop"
	case RobberTurn:
		return "Robber"
	case Over:
		return "Over"
	default:
		return fmt.Sprintf("Turn(%d)", int(t))
	}
}

// MarshalText renders the turn tag for JSON.
func (t Turn) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a turn tag written by MarshalText.
func (t *Turn) UnmarshalText(text []byte) error {
	for _, candidate := range []Turn{CopTurn, RobberTurn, Over} {
		if string(text) == candidate.String() {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown turn %q", text)
}

// Phase refines Turn with whether the side still has to place.
type Phase int

const (
	CopPlacing Phase = iota
	CopMoving
	RobberPlacing
	RobberMoving
	GameOver
)

func (p Phase) String() string {
	switch p {
	case CopPlacing:
		return "cop-placing"
	case CopMoving:
		return "cop-moving"
	case RobberPlacing:
		return "robber-placing"
	case RobberMoving:
		return "robber-moving"
	case GameOver:
		return "over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Side identifies a winner.
type Side int

const (
	Cops Side = iota
	Robber
)

func (s Side) String() string {
	if s == Cops {
		return "cops"
	}
	return "robber"
}

// Score tallies finished games.
type Score struct {
	CopWins    int `json:"copWins"`
	RobberWins int `json:"robberWins"`
}

// Games is the number of finished games.
func (s Score) Games() int {
	return s.CopWins + s.RobberWins
}

// State is one moment of a series of games. It is a value: Step never
// changes a State, it returns the next one.
type State struct {
	score        Score
	cop          strategy.Cop
	robber       strategy.Robber
	cops         []graph.Vertex
	robberAt     graph.Vertex
	robberPlaced bool
	roundsLeft   int
	turn         Turn
}

// Score returns the running tally.
func (s State) Score() Score {
	return s.score
}

// Turn returns whose move is next, or Over.
func (s State) Turn() Turn {
	return s.turn
}

// RoundsLeft returns the remaining round budget of the current game.
func (s State) RoundsLeft() int {
	return s.roundsLeft
}

// CopPositions returns the cops' vertices, or nil before they have placed.
func (s State) CopPositions() []graph.Vertex {
	return slices.Clone(s.cops)
}

// RobberPosition returns the robber's vertex and whether it has placed.
func (s State) RobberPosition() (graph.Vertex, bool) {
	return s.robberAt, s.robberPlaced
}

// CopStrategy returns the cop policy carried by this state.
func (s State) CopStrategy() strategy.Cop {
	return s.cop
}

// RobberStrategy returns the robber policy carried by this state.
func (s State) RobberStrategy() strategy.Robber {
	return s.robber
}

// Captured reports whether a cop stands on the robber.
func (s State) Captured() bool {
	return s.robberPlaced && strategy.Captured(s.cops, s.robberAt)
}

// Phase derives the detailed state-machine phase.
func (s State) Phase() Phase {
	switch {
	case s.turn == Over:
		return GameOver
	case s.turn == CopTurn && s.cops == nil:
		return CopPlacing
	case s.turn == CopTurn:
		return CopMoving
	case !s.robberPlaced:
		return RobberPlacing
	default:
		return RobberMoving
	}
}

// Snapshot is the presentation record emitted after each step.
type Snapshot struct {
	Graph          string `json:"graph"`
	Score          Score  `json:"score"`
	CopPositions   []int  `json:"copPositions"`
	RobberPosition *int   `json:"robberPosition"`
	RoundsLeft     int    `json:"roundsLeft"`
	Turn           Turn   `json:"turn"`
	Phase          string `json:"phase"`
}

// Outcome describes a finished game.
type Outcome struct {
	Game   int
	Winner Side
	Rounds int
	Cops   []graph.Vertex
	Robber graph.Vertex
	Score  Score
}
