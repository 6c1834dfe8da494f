package report

import (
	"fmt"
	"io"

	"github.com/lox/copsandrobbers/internal/statistics"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// GameRow is one finished game in the Parquet export.
type GameRow struct {
	GameID         string  `parquet:"game_id"`
	Game           int32   `parquet:"game"`
	Graph          string  `parquet:"graph,dict"`
	CopsWon        bool    `parquet:"cops_won"`
	Rounds         int32   `parquet:"rounds"`
	CopPositions   []int32 `parquet:"cop_positions"`
	RobberPosition int32   `parquet:"robber_position"`
}

// Rows converts game results into export rows.
func Rows(graphName string, results []statistics.GameResult) []GameRow {
	rows := make([]GameRow, len(results))
	for i, r := range results {
		cops := make([]int32, len(r.CopPositions))
		for j, c := range r.CopPositions {
			cops[j] = int32(c)
		}
		rows[i] = GameRow{
			GameID:         r.GameID,
			Game:           int32(r.Game),
			Graph:          graphName,
			CopsWon:        r.CopsWon,
			Rounds:         int32(r.Rounds),
			CopPositions:   cops,
			RobberPosition: int32(r.RobberPosition),
		}
	}
	return rows
}

// WriteGames writes one row per game, zstd compressed.
func WriteGames(path string, rows []GameRow) error {
	err := writeAtomic(path, 0o644, func(w io.Writer) error {
		if err := parquet.Write(w, rows,
			parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
			parquet.KeyValueMetadata("schema", "game_v1"),
		); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write games %s: %w", path, err)
	}
	return nil
}

// ReadGames loads an export written by WriteGames.
func ReadGames(path string) ([]GameRow, error) {
	rows, err := parquet.ReadFile[GameRow](path)
	if err != nil {
		return nil, fmt.Errorf("read games %s: %w", path, err)
	}
	return rows, nil
}
