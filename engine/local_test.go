package engine

import (
	"testing"

	"hex2048/agent"
	"hex2048/game"
	"hex2048/meta"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// lostBoard is a full size 2 board whose ring alternates 2 and 3 around a 1.
func lostBoard(t *testing.T, options ...game.Option) *game.Board {
	t.Helper()
	b := game.NewBoard(2, 11, append([]game.Option{game.WithSeed(1)}, options...)...)
	tiles := map[game.Position]int{
		{X: 1, Y: 1}: 1,
		{X: 0, Y: 0}: 2, {X: 0, Y: 1}: 3, {X: 1, Y: 2}: 2,
		{X: 2, Y: 2}: 3, {X: 2, Y: 1}: 2, {X: 1, Y: 0}: 3,
	}
	for pos, exponent := range tiles {
		_, err := b.CreateTile(pos, exponent)
		require.NoError(t, err)
	}
	require.True(t, b.IsLost())
	return b
}

type lossCounter struct {
	game.NopObserver
	lost int
}

func (c *lossCounter) Lost() {
	c.lost++
}

func TestLocalEngineInit(t *testing.T) {
	engine := NewLocalEngine(3, 11, 42)
	board, getUpdate := engine.Init()

	require.NotNil(t, board)
	require.Equal(t, meta.StartingTiles, board.OccupiedCount())
	require.Equal(t, 19, board.MaxCells())

	_, _, ok := getUpdate()
	require.False(t, ok, "No update before the first move")

	t.Run("returns a copy", func(t *testing.T) {
		_, ok := board.CreateRandomTile()
		require.True(t, ok)
		require.Equal(t, meta.StartingTiles, engine.board.OccupiedCount())
	})

	t.Run("same seed same opening", func(t *testing.T) {
		other, _ := NewLocalEngine(3, 11, 42).Init()
		require.Equal(t, engine.board.Hash(), other.Hash())
	})
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		engine := NewLocalEngine(3, 11, 42)
		board, getUpdate := engine.Init()
		dir := board.LegalMoves()[0]

		require.NoError(t, engine.Play(dir))

		playedDir, updated, ok := getUpdate()
		require.True(t, ok)
		require.Equal(t, dir, playedDir)
		require.Equal(t, engine.board.Hash(), updated.Hash())
		require.Equal(t, meta.StartingTiles+1, updated.OccupiedCount(), "One tile spawned after the swipe")

		_, _, ok = getUpdate()
		require.False(t, ok, "Updates are consumed once")
	})

	t.Run("illegal move", func(t *testing.T) {
		engine := NewLocalEngine(3, 11, 42)
		engine.Init()
		engine.board = game.NewBoard(3, 11, game.WithSeed(1))
		// A tile in the east corner of the middle row cannot move east
		_, err := engine.board.CreateTile(game.Position{X: 2, Y: 4}, 1)
		require.NoError(t, err)

		err = engine.Play(game.East)

		require.ErrorIs(t, err, ErrIllegalMove)
		require.False(t, engine.gameOver)
	})

	t.Run("invalid direction", func(t *testing.T) {
		engine := NewLocalEngine(3, 11, 42)
		engine.Init()
		require.ErrorIs(t, engine.Play(game.Direction(9)), game.ErrInvalidDirection)
	})

	t.Run("not initialised", func(t *testing.T) {
		require.Error(t, NewLocalEngine(3, 11, 42).Play(game.East))
	})

	t.Run("game over", func(t *testing.T) {
		engine := NewLocalEngine(2, 11, 42)
		engine.Init()
		engine.board = lostBoard(t)

		require.ErrorIs(t, engine.Play(game.West), ErrGameOver)
		require.True(t, engine.gameOver)
		require.ErrorIs(t, engine.Play(game.East), ErrGameOver)
	})

	t.Run("no-op swipe on a lost board reports the loss once", func(t *testing.T) {
		counter := &lossCounter{}
		engine := NewLocalEngine(2, 11, 42)
		engine.Init()
		engine.board = lostBoard(t, game.WithObserver(counter))

		require.ErrorIs(t, engine.Play(game.West), ErrGameOver)
		require.ErrorIs(t, engine.Play(game.East), ErrGameOver)
		require.Equal(t, 1, counter.lost)
	})
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("random agent plays until lost", func(t *testing.T) {
		engine := NewLocalEngine(2, 11, 3)
		_, getUpdate := engine.Init()

		gameMetric, moveMetrics := engine.Run(agent.NewRandomAgent(rand.New(rand.NewSource(3))))

		require.True(t, gameMetric.Lost)
		require.False(t, gameMetric.Won)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, engine.board.Score(), gameMetric.Score)
		require.Equal(t, engine.board.MaxExponent(), gameMetric.MaxExponent)
		require.Equal(t, uint64(3), gameMetric.Seed)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.NotEmpty(t, mm.Direction)
		}

		updates := 0
		for _, _, ok := getUpdate(); ok; _, _, ok = getUpdate() {
			updates++
		}
		require.Equal(t, gameMetric.TotalMoves, updates)
	})

	t.Run("losing swipe reports the loss once", func(t *testing.T) {
		counter := &lossCounter{}
		engine := NewLocalEngine(2, 11, 3, game.WithObserver(counter))
		engine.Init()

		gameMetric, _ := engine.Run(agent.NewRandomAgent(rand.New(rand.NewSource(3))))

		require.True(t, gameMetric.Lost)
		require.Equal(t, 1, counter.lost)
		require.ErrorIs(t, engine.Play(game.East), ErrGameOver)
		require.Equal(t, 1, counter.lost, "Play after the loss stays silent")
	})

	t.Run("initialises on demand", func(t *testing.T) {
		engine := NewLocalEngine(2, 11, 5)
		gameMetric, _ := engine.Run(agent.NewGreedyAgent(game.EvaluateBlend))
		require.True(t, gameMetric.Lost)
		require.Positive(t, gameMetric.TotalMoves)
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		play := func() int {
			engine := NewLocalEngine(2, 11, 9)
			gameMetric, _ := engine.Run(agent.NewRandomAgent(rand.New(rand.NewSource(9))))
			return gameMetric.Score
		}
		require.Equal(t, play(), play())
	})
}
