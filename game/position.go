package game

import "fmt"

// Position is a cell coordinate in the square backing store of the hexagon.
type Position struct {
	X int
	Y int
}

func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the six axial steps a swipe can take.
type Direction int

const (
	East Direction = iota
	West
	SouthEast
	NorthWest
	SouthWest
	NorthEast
)

// Directions lists all six directions in index order.
var Directions = []Direction{East, West, SouthEast, NorthWest, SouthWest, NorthEast}

var dirVec = [6]Position{
	{0, 1}, {0, -1},
	{1, 1}, {-1, -1},
	{1, 0}, {-1, 0},
}

var dirRev = [6]Direction{West, East, NorthWest, SouthEast, NorthEast, SouthWest}

var dirNames = [6]string{"E", "W", "SE", "NW", "SW", "NE"}

func (d Direction) Valid() bool {
	return d >= 0 && int(d) < len(dirVec)
}

// Vector returns the unit step of d. d must be valid.
func (d Direction) Vector() Position {
	return dirVec[d]
}

func (d Direction) Reverse() Direction {
	return dirRev[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return dirNames[d]
}
