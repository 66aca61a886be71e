package game

import "fmt"

// Outcome summarises one swipe.
type Outcome struct {
	Moved     bool     // at least one tile slid or merged
	Merges    int      // number of merges performed
	Won       bool     // the goal was reached for the first time during this swipe
	Lost      bool     // no legal move remains on a full board
	Spawned   bool     // a random tile was added after the swipe
	SpawnedAt Position // where the random tile was added
}

// Swipe slides and merges every line of the board in dir, then adds a
// random tile if there is room. A swipe that changes nothing leaves the
// board untouched and reports a loss if no direction can move.
func (b *Board) Swipe(dir Direction) (Outcome, error) {
	if !dir.Valid() {
		return Outcome{}, fmt.Errorf("swipe %d: %w", int(dir), ErrInvalidDirection)
	}

	if !b.CanSwipe(dir) {
		lost := b.IsLost()
		if lost {
			b.observer.Lost()
		}
		return Outcome{Lost: lost}, nil
	}

	alreadyWon := b.won
	clear(b.merged)

	out := Outcome{Moved: true}
	for _, line := range b.lines(dir) {
		// Push the leading tile first so every tile behind it slides into
		// cells that are already settled.
		for i := len(line) - 1; i >= 0; i-- {
			if b.push(line[i], dir) {
				out.Merges++
			}
		}
	}

	if b.spawn && !b.IsFull() {
		out.SpawnedAt, out.Spawned = b.CreateRandomTile()
	}

	if !alreadyWon && b.won {
		out.Won = true
		b.observer.Won()
	}
	out.Lost = b.IsLost()
	return out, nil
}

// lines groups the occupied cells of the board by sweep line in dir,
// each in the order met when walking the line from its start point.
func (b *Board) lines(dir Direction) [][]Position {
	starts := b.geo.StartPoints(dir)
	lines := make([][]Position, 0, len(starts))
	for _, start := range starts {
		var line []Position
		for _, pos := range b.geo.Line(start, dir) {
			if !b.IsEmpty(pos) {
				line = append(line, pos)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// push slides the tile at pos as far as it goes in dir and merges it into
// the tile it stops against when possible. It reports whether it merged.
func (b *Board) push(pos Position, dir Direction) bool {
	dest := b.SlideToEnd(pos, dir)
	if dest != pos {
		if err := b.MoveTileTo(pos, dest); err != nil {
			panic(fmt.Sprintf("sliding into an empty cell failed: %v", err))
		}
	}
	if !b.Mergeable(dest, dir) {
		return false
	}
	if err := b.Merge(Step(dest, dir), dest); err != nil {
		panic(fmt.Sprintf("merging adjacent equal tiles failed: %v", err))
	}
	return true
}

// CanSwipe reports whether a swipe in dir would move or merge any tile.
func (b *Board) CanSwipe(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	for _, t := range b.cells {
		if t.empty() {
			continue
		}
		if b.SlideToEnd(t.pos, dir) != t.pos || b.sameAhead(t.pos, dir) {
			return true
		}
	}
	return false
}

// LegalMoves returns the directions in which a swipe has an effect.
func (b *Board) LegalMoves() []Direction {
	var moves []Direction
	for _, dir := range Directions {
		if b.CanSwipe(dir) {
			moves = append(moves, dir)
		}
	}
	return moves
}

// IsLost reports whether the board is full and no two neighbouring tiles
// share a value.
func (b *Board) IsLost() bool {
	if !b.IsFull() {
		return false
	}
	for _, t := range b.cells {
		for _, dir := range Directions {
			if b.sameAhead(t.pos, dir) {
				return false
			}
		}
	}
	return true
}
