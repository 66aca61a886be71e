package game

import "github.com/rs/zerolog"

// Observer receives board events for presentation layers (animation,
// sound, logging). Callbacks run synchronously inside the board
// operation that triggers them and must not mutate the board.
type Observer interface {
	TileCreated(t Tile)
	TileMoved(t Tile, from, to Position)
	TileUpgraded(t Tile, exponent int)
	TileErased(t Tile)
	Won()
	Lost()
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) TileCreated(Tile)                  {}
func (NopObserver) TileMoved(Tile, Position, Position) {}
func (NopObserver) TileUpgraded(Tile, int)            {}
func (NopObserver) TileErased(Tile)                   {}
func (NopObserver) Won()                              {}
func (NopObserver) Lost()                             {}

// LogObserver traces board events at debug level.
type LogObserver struct {
	Logger zerolog.Logger
}

func (o LogObserver) TileCreated(t Tile) {
	o.Logger.Debug().Int("tile", t.id).Stringer("pos", t.pos).Int("value", t.Value()).Msg("tile created")
}

func (o LogObserver) TileMoved(t Tile, from, to Position) {
	o.Logger.Debug().Int("tile", t.id).Stringer("from", from).Stringer("to", to).Msg("tile moved")
}

func (o LogObserver) TileUpgraded(t Tile, exponent int) {
	o.Logger.Debug().Int("tile", t.id).Stringer("pos", t.pos).Int("value", 1<<exponent).Msg("tile upgraded")
}

func (o LogObserver) TileErased(t Tile) {
	o.Logger.Debug().Int("tile", t.id).Stringer("pos", t.pos).Msg("tile erased")
}

func (o LogObserver) Won() {
	o.Logger.Info().Msg("goal reached")
}

func (o LogObserver) Lost() {
	o.Logger.Info().Msg("no moves left")
}
