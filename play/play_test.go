package play

import (
	"bytes"
	"strings"
	"testing"

	"hex2048/agent"
	"hex2048/engine"
	"hex2048/game"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	b := game.NewBoard(2, 11, game.WithSeed(1))
	_, err := b.CreateTile(game.Position{X: 1, Y: 1}, 1)
	require.NoError(t, err)
	_, err = b.CreateTile(game.Position{X: 2, Y: 2}, 10)
	require.NoError(t, err)

	var out bytes.Buffer
	Render(&out, b)

	want := "" +
		"        .     .\n" +
		"     .     2     .\n" +
		"        .  1024\n"
	require.Equal(t, want, out.String())
}

func TestParseDirection(t *testing.T) {
	for i, key := range keys {
		dir, ok := parseDirection(key)
		require.True(t, ok)
		require.Equal(t, game.Direction(i), dir)
	}
	dir, _ := parseDirection("d")
	require.Equal(t, game.East, dir)
	dir, _ = parseDirection("e")
	require.Equal(t, game.NorthEast, dir)

	_, ok := parseDirection("s")
	require.False(t, ok)
}

func TestPlayGame(t *testing.T) {
	t.Run("moves and quits", func(t *testing.T) {
		b := game.NewBoard(2, 2, game.WithSeed(1), game.WithoutSpawn())
		_, err := b.CreateTile(game.Position{X: 1, Y: 0}, 1)
		require.NoError(t, err)
		_, err = b.CreateTile(game.Position{X: 1, Y: 2}, 1)
		require.NoError(t, err)

		var out bytes.Buffer
		PlayGame(strings.NewReader("s\nd\nd\nq\n"), &out, b)

		require.Contains(t, out.String(), "Invalid input")
		require.Contains(t, out.String(), "You reached 4!")
		require.Contains(t, out.String(), "Cannot move in that direction.")
		require.Contains(t, out.String(), "Quit.")
		tile, ok := b.Tile(game.Position{X: 1, Y: 2})
		require.True(t, ok)
		require.Equal(t, 4, tile.Value())
		require.Equal(t, 4, b.Score())
	})

	t.Run("starts a game on an empty board", func(t *testing.T) {
		b := game.NewBoard(3, 11, game.WithSeed(1))
		var out bytes.Buffer
		PlayGame(strings.NewReader(""), &out, b)
		require.Equal(t, 2, b.OccupiedCount())
	})

	t.Run("new game", func(t *testing.T) {
		b := game.NewBoard(3, 11, game.WithSeed(1))
		_, err := b.CreateTile(game.Position{X: 2, Y: 2}, 5)
		require.NoError(t, err)

		var out bytes.Buffer
		PlayGame(strings.NewReader("n\nq\n"), &out, b)

		require.Equal(t, 2, b.OccupiedCount())
		require.Zero(t, b.Score())
	})
}

func TestAutoPlay(t *testing.T) {
	var out bytes.Buffer
	e := engine.NewLocalEngine(2, 11, 4)

	gameMetric := AutoPlay(&out, e, agent.NewGreedyAgent(game.EvaluateBlend))

	require.True(t, gameMetric.Lost)
	require.Contains(t, out.String(), "Move 1:")
	require.Contains(t, out.String(), "=== Game Over ===")
	require.Equal(t, gameMetric.TotalMoves, strings.Count(out.String(), "Move "))
}
