package searcher

import (
	"testing"
	"time"

	"hex2048/game"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	require.Panics(t, func() { NewMCTS(2) }, "Should panic without a search budget")
	require.NotPanics(t, func() { NewMCTS(2, WithEpisodes(10)) })
	require.NotPanics(t, func() { NewMCTS(2, WithDuration(time.Millisecond)) })
}

func TestSimulate(t *testing.T) {
	t.Run("every episode visits one root move", func(t *testing.T) {
		board := game.NewBoard(3, 11, game.WithSeed(4))
		board.NewGame(3, 11)
		m := NewMCTS(4, WithEpisodes(300), WithCutoff(10), WithMetrics(), WithSeed(1))

		policy, metric := m.Simulate(board)

		total := 0.0
		for dir, visits := range policy {
			require.Contains(t, board.LegalMoves(), dir, "Policy should only hold legal moves")
			total += visits
		}
		require.Equal(t, 300.0, total, "Virtual losses should all be reversed")
		require.Len(t, policy, len(board.LegalMoves()), "Every legal move should be explored")
		require.Equal(t, 300, metric.Episodes)
		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 10, metric.Cutoff)
	})

	t.Run("searching leaves the board untouched", func(t *testing.T) {
		board := game.NewBoard(3, 11, game.WithSeed(4))
		board.NewGame(3, 11)
		hash, count := board.Hash(), board.OccupiedCount()
		m := NewMCTS(2, WithEpisodes(50))

		m.Simulate(board)

		require.Equal(t, hash, board.Hash())
		require.Equal(t, count, board.OccupiedCount())
	})

	t.Run("searching for a duration", func(t *testing.T) {
		board := game.NewBoard(3, 11, game.WithSeed(4))
		board.NewGame(3, 11)
		m := NewMCTS(2, WithDuration(20*time.Millisecond), WithMetrics())

		policy, metric := m.Simulate(board)

		require.NotEmpty(t, policy)
		require.Greater(t, metric.Episodes, 0)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("a lost board has no policy", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(5), WithMetrics())

		policy, metric := m.Simulate(lostBoard(t))

		require.Empty(t, policy)
		require.Equal(t, 5, metric.FullPlayouts, "Every rollout from a lost board ends the game")
	})

	t.Run("only the merging axis is explored", func(t *testing.T) {
		// A full board where only the centre pair can merge, along E/W.
		board := newSearchBoard(t, 2, map[game.Position]int{
			{X: 1, Y: 2}: 1, {X: 2, Y: 2}: 2, {X: 2, Y: 1}: 3,
			{X: 1, Y: 0}: 2, {X: 0, Y: 0}: 3, {X: 0, Y: 1}: 4,
			{X: 1, Y: 1}: 1,
		})
		require.ElementsMatch(t, []game.Direction{game.East, game.West}, board.LegalMoves())

		policy, _ := NewMCTS(1, WithEpisodes(20), WithSeed(3)).Simulate(board)

		require.Len(t, policy, 2)
	})
}
