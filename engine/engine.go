package engine

import (
	"hex2048/agent"
	"hex2048/experiments/metrics"
	"hex2048/game"
)

// UpdateGetter returns the oldest swipe not yet read, with a copy of the
// board after it. ok is false when every update has been consumed.
type UpdateGetter func() (dir game.Direction, board *game.Board, ok bool)

type Engine interface {
	Init() (*game.Board, UpdateGetter)
	Play(game.Direction) error
	// Run lets the agent play until the game is lost or a max number of moves is reached
	Run(agent.Agent) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
