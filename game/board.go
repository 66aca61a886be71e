package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"hex2048/meta"

	"golang.org/x/exp/rand"
)

const spawnLowProb = 0.9 // chance that a spawned tile is a 2 rather than a 4

// Board is a hexagonal 2048 board. It is not safe for concurrent use;
// callers that search in parallel work on clones.
type Board struct {
	geo      Geometry
	cells    []Tile // dense arena indexed by Geometry.Index
	merged   []bool // cells whose tile survived a merge during the current swipe
	goal     int    // goal exponent
	occupied int
	won      bool
	score    int
	nextID   int
	rng      *rand.Rand
	observer Observer
	spawn    bool
}

type Option func(b *Board)

// WithRand sets the random source used for spawning tiles.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		if rng != nil {
			b.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(b *Board) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

func WithObserver(obs Observer) Option {
	return func(b *Board) {
		if obs != nil {
			b.observer = obs
		}
	}
}

// WithoutSpawn disables the random tile added after each effective swipe.
func WithoutSpawn() Option {
	return func(b *Board) {
		b.spawn = false
	}
}

// NewBoard returns an empty board of the given side length. goal is the
// exponent of the target tile (11 for 2048).
func NewBoard(size, goal int, options ...Option) *Board {
	if goal < 1 {
		panic("goal exponent must be positive")
	}
	b := &Board{ // Default values
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		observer: NopObserver{},
		spawn:    true,
	}
	b.reset(size, goal)
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Board) reset(size, goal int) {
	b.geo = NewGeometry(size)
	b.cells = make([]Tile, b.geo.MaxCells())
	b.merged = make([]bool, b.geo.MaxCells())
	b.goal = goal
	b.occupied = 0
	b.won = false
	b.score = 0
}

// NewGame clears the board, resizes it and places the starting tiles.
func (b *Board) NewGame(size, goal int) {
	if goal < 1 {
		panic("goal exponent must be positive")
	}
	b.reset(size, goal)
	for i := 0; i < meta.StartingTiles; i++ {
		b.CreateRandomTile()
	}
}

// Clone returns a deep copy of the board. The copy shares the random
// source unless one is supplied and never reports to the original's observer.
func (b *Board) Clone(options ...Option) *Board {
	c := &Board{
		geo:      b.geo,
		cells:    make([]Tile, len(b.cells)),
		merged:   make([]bool, len(b.merged)),
		goal:     b.goal,
		occupied: b.occupied,
		won:      b.won,
		score:    b.score,
		nextID:   b.nextID,
		rng:      b.rng,
		observer: NopObserver{},
		spawn:    b.spawn,
	}
	copy(c.cells, b.cells)
	copy(c.merged, b.merged)
	for _, option := range options {
		option(c)
	}
	return c
}

func (b *Board) Geometry() Geometry {
	return b.geo
}

func (b *Board) Size() int {
	return b.geo.Size()
}

func (b *Board) Goal() int {
	return b.goal
}

func (b *Board) MaxCells() int {
	return b.geo.MaxCells()
}

func (b *Board) OccupiedCount() int {
	return b.occupied
}

func (b *Board) Score() int {
	return b.score
}

func (b *Board) IsFull() bool {
	return b.occupied >= b.geo.MaxCells()
}

// IsFinished reports whether the goal tile has been reached at least once.
func (b *Board) IsFinished() bool {
	return b.won
}

func (b *Board) InBounds(pos Position) bool {
	return b.geo.InBounds(pos)
}

func (b *Board) IsEmpty(pos Position) bool {
	i := b.geo.Index(pos)
	return i >= 0 && b.cells[i].empty()
}

// Tile returns the tile at pos, if any.
func (b *Board) Tile(pos Position) (Tile, bool) {
	i := b.geo.Index(pos)
	if i < 0 || b.cells[i].empty() {
		return Tile{}, false
	}
	return b.cells[i], true
}

// Tiles returns every tile on the board in dense index order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, b.occupied)
	for _, t := range b.cells {
		if !t.empty() {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// MaxExponent returns the largest exponent on the board, 0 if empty.
func (b *Board) MaxExponent() int {
	m := 0
	for _, t := range b.cells {
		m = max(m, t.exponent)
	}
	return m
}

// JustMerged returns the cells whose tiles survived a merge during the
// most recent swipe.
func (b *Board) JustMerged() []Position {
	var merged []Position
	for i, m := range b.merged {
		if m {
			merged = append(merged, b.geo.PositionAt(i))
		}
	}
	return merged
}

// Hash fingerprints the tile layout (positions and values only).
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, len(b.cells))
	for i, t := range b.cells {
		buf[i] = byte(t.exponent)
	}
	h.Write(buf)
	var goal [8]byte
	binary.LittleEndian.PutUint64(goal[:], uint64(b.goal))
	h.Write(goal[:])
	return h.Sum64()
}

func (b *Board) IsAdjacent(p1, p2 Position) bool {
	if !b.InBounds(p1) || !b.InBounds(p2) {
		return false
	}
	for _, dir := range Directions {
		if Step(p1, dir) == p2 {
			return true
		}
	}
	return false
}

// Step moves one cell in dir without any bounds check.
func Step(pos Position, dir Direction) Position {
	return pos.Add(dir.Vector())
}

// SlideToEnd walks from pos in dir while the next cell is empty and
// returns the last empty cell reached, or pos itself if the neighbour is
// blocked or off the board.
func (b *Board) SlideToEnd(pos Position, dir Direction) Position {
	prev := pos
	for next := Step(pos, dir); b.IsEmpty(next); next = Step(next, dir) {
		prev = next
	}
	return prev
}

func (b *Board) CreateTile(pos Position, exponent int) (Tile, error) {
	if exponent < 1 {
		return Tile{}, fmt.Errorf("create tile of exponent %d: %w", exponent, ErrInvalidExponent)
	}
	i := b.geo.Index(pos)
	if i < 0 {
		return Tile{}, fmt.Errorf("create tile at %v: %w", pos, ErrInvalidPosition)
	}
	if !b.cells[i].empty() {
		return Tile{}, fmt.Errorf("create tile at %v: %w", pos, ErrCellOccupied)
	}
	b.nextID++
	b.cells[i] = newTile(b.nextID, pos, exponent)
	b.occupied++
	b.observer.TileCreated(b.cells[i])
	return b.cells[i], nil
}

// CreateRandomTile places a 2 (90%) or a 4 (10%) on a uniformly chosen
// empty cell. It does nothing and returns false when the board is full.
func (b *Board) CreateRandomTile() (Position, bool) {
	if b.IsFull() {
		return Position{}, false
	}
	vacant := make([]Position, 0, b.geo.MaxCells()-b.occupied)
	for pos := range b.geo.ValidPositions() {
		if b.IsEmpty(pos) {
			vacant = append(vacant, pos)
		}
	}
	exponent := 1
	if b.rng.Float64() >= spawnLowProb {
		exponent = 2
	}
	pos := vacant[b.rng.Intn(len(vacant))]
	if _, err := b.CreateTile(pos, exponent); err != nil {
		panic(fmt.Sprintf("spawning on a vacant cell failed: %v", err))
	}
	return pos, true
}

func (b *Board) RemoveTile(pos Position) error {
	i := b.geo.Index(pos)
	if i < 0 {
		return fmt.Errorf("remove tile at %v: %w", pos, ErrInvalidPosition)
	}
	if b.cells[i].empty() {
		return fmt.Errorf("remove tile at %v: %w", pos, ErrCellEmpty)
	}
	t := b.cells[i]
	b.cells[i] = Tile{}
	b.occupied--
	t.erase(b.observer)
	return nil
}

func (b *Board) MoveTileTo(start, end Position) error {
	from, to := b.geo.Index(start), b.geo.Index(end)
	if from < 0 || to < 0 {
		return fmt.Errorf("move tile %v -> %v: %w", start, end, ErrInvalidPosition)
	}
	if b.cells[from].empty() {
		return fmt.Errorf("move tile %v -> %v: %w", start, end, ErrCellEmpty)
	}
	if !b.cells[to].empty() {
		return fmt.Errorf("move tile %v -> %v: %w", start, end, ErrCellOccupied)
	}
	b.cells[to] = b.cells[from]
	b.cells[from] = Tile{}
	b.cells[to].moveTo(end, b.observer)
	return nil
}

// Merge upgrades the tile at toRetain, removes the tile at toErase and
// marks toRetain as merged for the rest of the swipe.
func (b *Board) Merge(toRetain, toErase Position) error {
	if !b.IsAdjacent(toRetain, toErase) {
		return fmt.Errorf("merge %v into %v: %w", toErase, toRetain, ErrNotAdjacent)
	}
	keep, drop := b.geo.Index(toRetain), b.geo.Index(toErase)
	if b.cells[keep].empty() || b.cells[drop].empty() {
		return fmt.Errorf("merge %v into %v: %w", toErase, toRetain, ErrCellEmpty)
	}
	b.cells[keep].upgrade(b.observer)
	b.score += b.cells[keep].Value()
	if b.cells[keep].exponent >= b.goal {
		b.won = true
	}
	if err := b.RemoveTile(toErase); err != nil {
		return err
	}
	b.merged[keep] = true
	return nil
}

// Mergeable reports whether the tile at pos can merge into its neighbour
// in dir during the current swipe.
func (b *Board) Mergeable(pos Position, dir Direction) bool {
	if !b.sameAhead(pos, dir) {
		return false
	}
	return !b.merged[b.geo.Index(Step(pos, dir))]
}

// sameAhead reports whether pos and its neighbour in dir hold tiles of
// equal value, ignoring the swipe's merge markers.
func (b *Board) sameAhead(pos Position, dir Direction) bool {
	t, ok := b.Tile(pos)
	if !ok {
		return false
	}
	next, ok := b.Tile(Step(pos, dir))
	return ok && next.exponent == t.exponent
}
