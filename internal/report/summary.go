package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/copsandrobbers/internal/simulator"
	"github.com/lox/copsandrobbers/internal/strategy"
	"gopkg.in/yaml.v3"
)

// Summary is the machine readable digest of a simulation run.
type Summary struct {
	Graph        string          `json:"graph" yaml:"graph"`
	Cops         int             `json:"cops" yaml:"cops"`
	Steps        int             `json:"steps" yaml:"steps"`
	Cop          string          `json:"cop" yaml:"cop"`
	Robber       string          `json:"robber" yaml:"robber"`
	Seed         int64           `json:"seed" yaml:"seed"`
	Games        int             `json:"games" yaml:"games"`
	CopWins      int             `json:"copWins" yaml:"cop_wins"`
	RobberWins   int             `json:"robberWins" yaml:"robber_wins"`
	CopWinRate   float64         `json:"copWinRate" yaml:"cop_win_rate"`
	CopWinRateCI [2]float64      `json:"copWinRateCI" yaml:"cop_win_rate_ci,flow"`
	MeanRounds   float64         `json:"meanRounds" yaml:"mean_rounds"`
	StdDevRounds float64         `json:"stdDevRounds" yaml:"std_dev_rounds"`
	CopStates    int             `json:"copStates" yaml:"cop_states"`
	RobberStates int             `json:"robberStates" yaml:"robber_states"`
	Windows      []WindowSummary `json:"windows,omitempty" yaml:"windows,omitempty"`
	Elapsed      string          `json:"elapsed" yaml:"elapsed"`
}

// WindowSummary is one point on the learning curve.
type WindowSummary struct {
	Games      int     `json:"games" yaml:"games"`
	CopWins    int     `json:"copWins" yaml:"cop_wins"`
	CopWinRate float64 `json:"copWinRate" yaml:"cop_win_rate"`
}

// Summarize digests a run.
func Summarize(r *simulator.Result) Summary {
	stats := r.Stats
	low, high := stats.WilsonInterval95()
	mean, sd := stats.MeanRounds()

	s := Summary{
		Graph:        r.Graph,
		Cops:         r.Game.NumberOfCops,
		Steps:        r.Game.NumberOfSteps,
		Cop:          kindName(r.Game.Cop),
		Robber:       kindName(r.Game.Robber),
		Seed:         r.Seed,
		Games:        stats.Games,
		CopWins:      stats.CopWins,
		RobberWins:   stats.RobberWins,
		CopWinRate:   stats.CopWinRate(),
		CopWinRateCI: [2]float64{low, high},
		MeanRounds:   mean,
		StdDevRounds: sd,
		CopStates:    len(r.Final.CopStrategy().Bags()),
		RobberStates: len(r.Final.RobberStrategy().Bags()),
		Elapsed:      r.Elapsed.Round(time.Millisecond).String(),
	}
	for _, w := range stats.Windows {
		s.Windows = append(s.Windows, WindowSummary{
			Games:      w.Games,
			CopWins:    w.CopWins,
			CopWinRate: w.CopWinRate(),
		})
	}
	return s
}

func kindName(k strategy.Kind) string {
	text, _ := k.MarshalText()
	return string(text)
}

// WriteSummary writes the summary as JSON or YAML depending on the file
// extension.
func WriteSummary(path string, s Summary) error {
	var encode func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		encode = func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
	case ".yaml", ".yml":
		encode = func(w io.Writer) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(s); err != nil {
				return err
			}
			return enc.Close()
		}
	default:
		return fmt.Errorf("unsupported summary format %q (want .json, .yaml or .yml)", ext)
	}

	if err := writeAtomic(path, 0o644, func(w io.Writer) error {
		if err := encode(w); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
