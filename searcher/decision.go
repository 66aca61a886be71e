package searcher

import (
	"math"
	"sync"

	"hex2048/game"
)

// decision is a board where the player picks a direction.
type decision struct {
	sync.Mutex
	parent   Node
	hash     uint64
	moves    []game.Direction
	children []*chance
	rewards  float64
	visits   float64
}

func newDecision(parent Node, board *game.Board) *decision {
	moves := board.LegalMoves()
	return &decision{
		parent:   parent,
		hash:     board.Hash(),
		moves:    moves,
		children: make([]*chance, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(board *game.Board) (Node, *game.Board, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, board, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		move := d.moves[len(d.children)]
		child := newChance(d, move)
		d.children = append(d.children, child)
		child.applyLoss()
		swipe(board, move)
		return child, board, false
	}

	// Fully expanded node
	child := d.children[d.pickChild()]
	child.applyLoss()
	swipe(board, child.move)
	return child, board, true
}

func (d *decision) pickChild() int {
	// In-flight episodes may not have backed up to this node yet
	policy := newUCT(CSquared, math.Max(d.visits, 1))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		rewards, visits := child.stats()
		score := policy.evaluate(rewards, visits)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) stats() (float64, float64) {
	d.Lock()
	defer d.Unlock()

	return d.rewards, d.visits
}

func (d *decision) Backup(score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += score
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Visits() float64 {
	d.Lock()
	defer d.Unlock()

	return d.visits
}

// Policy maps every explored direction to its visit count.
func (d *decision) Policy() map[game.Direction]float64 {
	d.Lock()
	defer d.Unlock()

	policy := make(map[game.Direction]float64, len(d.children))
	for _, child := range d.children {
		policy[child.move] = child.Visits()
	}
	return policy
}
