package game

import "errors"

var (
	ErrInvalidPosition  = errors.New("position out of bounds")
	ErrCellOccupied     = errors.New("cell is occupied")
	ErrCellEmpty        = errors.New("cell is empty")
	ErrNotAdjacent      = errors.New("cells are not adjacent")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidExponent  = errors.New("exponent must be positive")
)
