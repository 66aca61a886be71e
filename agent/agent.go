package agent

import (
	"hex2048/experiments/metrics"
	"hex2048/game"
	"hex2048/searcher"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// FindMove picks a direction for board and reports search metrics (if collected).
	// On a board with no legal move it returns game.East.
	FindMove(board *game.Board) (game.Direction, metrics.SearchMetric)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent plays a uniformly random legal move.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(board *game.Board) (game.Direction, metrics.SearchMetric) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return game.East, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}

type greedyAgent struct {
	evaluate game.Evaluate
}

// NewGreedyAgent plays the move whose spawn-free result evaluates best.
func NewGreedyAgent(evaluate game.Evaluate) Agent {
	return greedyAgent{evaluate: evaluate}
}

func (a greedyAgent) FindMove(board *game.Board) (game.Direction, metrics.SearchMetric) {
	best := game.East
	bestScore := -1.0
	for _, dir := range board.LegalMoves() {
		next := board.Clone(game.WithoutSpawn())
		if _, err := next.Swipe(dir); err != nil {
			panic(err)
		}
		if score := a.evaluate(next); score > bestScore {
			bestScore = score
			best = dir
		}
	}
	return best, metrics.SearchMetric{}
}

type searchAgent struct {
	mcts *searcher.MCTS
}

// NewSearchAgent plays the most visited move of an MCTS search.
func NewSearchAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) FindMove(board *game.Board) (game.Direction, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(board)
	return findMax(policy), metric
}

func findMax(policy map[game.Direction]float64) game.Direction {
	maxMove := game.East
	maxVisit := -1.0
	// Iterate in direction order so ties break the same way every time
	for _, move := range game.Directions {
		visit, ok := policy[move]
		if ok && visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
