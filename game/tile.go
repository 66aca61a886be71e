package game

// Tile is one piece on the board. Its displayed value is 2^exponent.
// A zero ID marks an empty cell in the board's arena.
type Tile struct {
	id       int
	pos      Position
	exponent int
}

func newTile(id int, pos Position, exponent int) Tile {
	return Tile{id: id, pos: pos, exponent: exponent}
}

func (t Tile) ID() int {
	return t.id
}

func (t Tile) Position() Position {
	return t.pos
}

func (t Tile) Exponent() int {
	return t.exponent
}

// Value is the displayed face value, 2^exponent.
func (t Tile) Value() int {
	return 1 << t.exponent
}

func (t Tile) empty() bool {
	return t.id == 0
}

func (t *Tile) moveTo(to Position, obs Observer) {
	from := t.pos
	t.pos = to
	obs.TileMoved(*t, from, to)
}

func (t *Tile) upgrade(obs Observer) {
	t.exponent++
	obs.TileUpgraded(*t, t.exponent)
}

func (t *Tile) erase(obs Observer) {
	obs.TileErased(*t)
}
