package play

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"hex2048/agent"
	"hex2048/engine"
	"hex2048/experiments/metrics"
	"hex2048/game"
	"hex2048/utils"
)

// keys maps input letters to directions, indexed by game.Direction.
var keys = []string{"d", "a", "x", "w", "z", "e"}

// PlayGame runs the text frontend on board until the input ends or the player quits.
func PlayGame(r io.Reader, w io.Writer, board *game.Board) {
	reader := bufio.NewReader(r)

	fmt.Fprintln(w, "=== hex 2048 ===")
	fmt.Fprintln(w, "Controls: d=E, a=W, x=SE, w=NW, z=SW, e=NE, n=New game, q=Quit")
	fmt.Fprintln(w)

	if board.OccupiedCount() == 0 {
		board.NewGame(board.Size(), board.Goal())
	}

	for {
		Render(w, board)
		fmt.Fprintf(w, "Score: %d\n", board.Score())

		if board.IsLost() {
			fmt.Fprintln(w, "Game Over! Press n for a new game or q to quit.")
		}

		fmt.Fprint(w, "Move: ")
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			break
		}

		input = strings.TrimSpace(strings.ToLower(input))
		switch input {
		case "q":
			fmt.Fprintln(w, "Quit.")
			return
		case "n":
			board.NewGame(board.Size(), board.Goal())
			fmt.Fprintln(w)
			continue
		}

		dir, ok := parseDirection(input)
		if !ok {
			fmt.Fprintln(w, "Invalid input. Use d/a/x/w/z/e, n for a new game or q to quit.")
			continue
		}

		outcome, err := board.Swipe(dir)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if !outcome.Moved && !outcome.Lost {
			fmt.Fprintln(w, "Cannot move in that direction.")
		}
		if outcome.Won {
			fmt.Fprintf(w, "You reached %d!\n", 1<<board.Goal())
		}
		fmt.Fprintln(w)
	}
}

func parseDirection(input string) (game.Direction, bool) {
	i := utils.FindIndex(keys, input)
	if i < 0 {
		return 0, false
	}
	return game.Direction(i), true
}

// AutoPlay lets a play a whole game on e and prints the moves and the final board.
func AutoPlay(w io.Writer, e engine.Engine, a agent.Agent) metrics.GameMetric {
	board, getUpdate := e.Init()

	fmt.Fprintln(w, "=== hex 2048 AutoPlay ===")
	Render(w, board)
	fmt.Fprintln(w)

	gameMetric, _ := e.Run(a)

	step := 0
	for dir, next, ok := getUpdate(); ok; dir, next, ok = getUpdate() {
		step++
		board = next
		fmt.Fprintf(w, "Move %d: %v, Score: %d\n", step, dir, board.Score())
	}

	// Final results are always shown
	Render(w, board)
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Final Score: %d\n", gameMetric.Score)
	fmt.Fprintf(w, "Total Moves: %d\n", gameMetric.TotalMoves)
	fmt.Fprintf(w, "Max Tile: %d\n", 1<<gameMetric.MaxExponent)

	return gameMetric
}
