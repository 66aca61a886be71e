package searcher

import (
	"sync"

	"hex2048/game"
)

// chance is a swipe whose outcome depends on where the new tile spawns.
// Its children are the distinct boards seen after that spawn.
type chance struct {
	sync.Mutex
	parent   Node
	move     game.Direction
	children []*decision
	rewards  float64
	visits   float64
}

func newChance(parent Node, move game.Direction) *chance {
	return &chance{
		parent: parent,
		move:   move,
	}
}

func (c *chance) SelectOrExpand(board *game.Board) (Node, *game.Board, bool) {
	c.Lock()
	defer c.Unlock()

	// Select if explored outcome
	selected := true
	child := c.selects(board.Hash())
	// Expand if unexplored outcome
	if child == nil {
		child = newDecision(c, board)
		c.children = append(c.children, child)
		selected = false
	}

	child.applyLoss()
	return child, board, selected
}

func (c *chance) selects(hash uint64) *decision {
	for _, child := range c.children {
		if child.hash == hash {
			return child
		}
	}
	return nil
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) stats() (float64, float64) {
	c.Lock()
	defer c.Unlock()

	return c.rewards, c.visits
}

func (c *chance) Backup(score float64) Node {
	c.Lock()
	defer c.Unlock()

	c.reverseLoss()

	c.rewards += score
	c.visits++

	return c.parent
}

func (c *chance) reverseLoss() {
	c.rewards -= Loss
	c.visits--
}

func (c *chance) Visits() float64 {
	c.Lock()
	defer c.Unlock()

	return c.visits
}
