package game

import "iter"

// Geometry describes a hexagon of side length size stored in a
// (2*size-1) x (2*size-1) square. Row x holds the cells y in
// [minY(x), maxY(x)]; everything else in the square is out of bounds.
type Geometry struct {
	size     int
	rowStart []int // dense index of the first cell of each row
}

func NewGeometry(size int) Geometry {
	if size < 1 {
		panic("board size must be positive")
	}
	g := Geometry{size: size}
	actual := g.ActualSize()
	g.rowStart = make([]int, actual+1)
	for x := 0; x < actual; x++ {
		g.rowStart[x+1] = g.rowStart[x] + g.maxY(x) - g.minY(x) + 1
	}
	return g
}

func (g Geometry) Size() int {
	return g.size
}

func (g Geometry) ActualSize() int {
	return 2*g.size - 1
}

// MaxCells is the number of valid cells on the board.
func (g Geometry) MaxCells() int {
	n := g.size
	return (3*n-1)*n/2 + (3*n-2)*(n-1)/2
}

func (g Geometry) minY(x int) int {
	if x < g.size {
		return 0
	}
	return x - g.size + 1
}

func (g Geometry) maxY(x int) int {
	if x < g.size {
		return x + g.size - 1
	}
	return g.ActualSize() - 1
}

func (g Geometry) InBounds(p Position) bool {
	if p.X < 0 || p.X >= g.ActualSize() {
		return false
	}
	return p.Y >= g.minY(p.X) && p.Y <= g.maxY(p.X)
}

// Index maps an in-bounds position to its dense index in [0, MaxCells).
// It returns -1 for positions outside the hexagon.
func (g Geometry) Index(p Position) int {
	if !g.InBounds(p) {
		return -1
	}
	return g.rowStart[p.X] + p.Y - g.minY(p.X)
}

// PositionAt is the inverse of Index.
func (g Geometry) PositionAt(i int) Position {
	x := 0
	for g.rowStart[x+1] <= i {
		x++
	}
	return Position{X: x, Y: g.minY(x) + i - g.rowStart[x]}
}

// ValidPositions yields every in-bounds position in dense index order.
func (g Geometry) ValidPositions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for x := 0; x < g.ActualSize(); x++ {
			for y := g.minY(x); y <= g.maxY(x); y++ {
				if !yield(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// StartPoints returns the cells where a sweep line in direction dir
// enters the board, i.e. the cells whose predecessor along dir lies
// outside the hexagon. Every valid cell lies on exactly one such line.
func (g Geometry) StartPoints(dir Direction) []Position {
	back := dir.Reverse().Vector()
	points := make([]Position, 0, g.ActualSize())
	for p := range g.ValidPositions() {
		if !g.InBounds(p.Add(back)) {
			points = append(points, p)
		}
	}
	return points
}

// Line walks from start in direction dir until it leaves the board.
func (g Geometry) Line(start Position, dir Direction) []Position {
	var line []Position
	for p := start; g.InBounds(p); p = p.Add(dir.Vector()) {
		line = append(line, p)
	}
	return line
}
