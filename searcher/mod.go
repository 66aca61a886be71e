package searcher

import "hex2048/game"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const MaxCutoff = 100 // Default rollout depth

// Rewards are board evaluations in [0, 1]; a lost board scores Loss.
const Loss = 0.0

type Node interface {
	SelectOrExpand(board *game.Board) (child Node, childBoard *game.Board, selected bool)
	Backup(score float64) Node
	Visits() float64
	applyLoss()
	stats() (rewards float64, visits float64)
}

// swipe plays dir on a search board. dir always comes from LegalMoves.
func swipe(board *game.Board, dir game.Direction) {
	if _, err := board.Swipe(dir); err != nil {
		panic(err)
	}
}
