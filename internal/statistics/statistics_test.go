package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := New(10)

	assert.Zero(t, stats.CopWinRate())
	mean, sd := stats.MeanRounds()
	assert.Zero(t, mean)
	assert.Zero(t, sd)
	assert.Zero(t, stats.RoundsPercentile(0.5))
	low, high := stats.WilsonInterval95()
	assert.Zero(t, low)
	assert.Zero(t, high)
	assert.Error(t, stats.Validate(), "an empty run is not a valid run")
}

func TestStatistics_SingleGame(t *testing.T) {
	stats := New(0)
	stats.Add(GameResult{Game: 1, CopsWon: true, Rounds: 3})

	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1.0, stats.CopWinRate())
	mean, sd := stats.MeanRounds()
	assert.Equal(t, 3.0, mean)
	assert.Zero(t, sd)
	assert.Equal(t, 3.0, stats.MeanCaptureRounds())
	assert.Empty(t, stats.Windows)
	require.NoError(t, stats.Validate())
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := New(2)
	results := []GameResult{
		{CopsWon: true, Rounds: 1},
		{CopsWon: false, Rounds: 5},
		{CopsWon: true, Rounds: 3},
		{CopsWon: true, Rounds: 2},
		{CopsWon: false, Rounds: 5},
	}
	for i, r := range results {
		r.Game = i + 1
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Games)
	assert.Equal(t, 3, stats.CopWins)
	assert.Equal(t, 2, stats.RobberWins)
	assert.InDelta(t, 0.6, stats.CopWinRate(), 1e-9)
	assert.InDelta(t, 2.0, stats.MeanCaptureRounds(), 1e-9)

	mean, sd := stats.MeanRounds()
	assert.InDelta(t, 3.2, mean, 1e-9)
	assert.InDelta(t, 1.7889, sd, 1e-3)
	assert.Equal(t, 1.0, stats.RoundsPercentile(0))
	assert.Equal(t, 5.0, stats.RoundsPercentile(1))

	require.Len(t, stats.Windows, 3)
	assert.Equal(t, Window{Games: 2, CopWins: 1}, stats.Windows[0])
	assert.Equal(t, Window{Games: 2, CopWins: 2}, stats.Windows[1])
	assert.Equal(t, Window{Games: 1, CopWins: 0}, stats.Windows[2])
	assert.Equal(t, 1.0, stats.Windows[1].CopWinRate())

	require.NoError(t, stats.Validate())
}

func TestWilsonInterval(t *testing.T) {
	stats := New(0)
	for i := 0; i < 100; i++ {
		stats.Add(GameResult{CopsWon: i < 50})
	}
	low, high := stats.WilsonInterval95()
	assert.InDelta(t, 0.404, low, 1e-3)
	assert.InDelta(t, 0.596, high, 1e-3)

	all := New(0)
	for i := 0; i < 20; i++ {
		all.Add(GameResult{CopsWon: true})
	}
	low, high = all.WilsonInterval95()
	assert.Less(t, low, 1.0)
	assert.InDelta(t, 1.0, high, 1e-9)
}

func TestValidateDetectsMismatch(t *testing.T) {
	stats := New(0)
	stats.Add(GameResult{CopsWon: true})
	stats.CopWins++
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")

	windows := New(5)
	windows.Add(GameResult{CopsWon: true})
	windows.Windows[0].CopWins = 0
	assert.ErrorContains(t, windows.Validate(), "window totals")
}
