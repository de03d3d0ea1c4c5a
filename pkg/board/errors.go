package board

import "errors"

var (
	// ErrOutOfBounds occurs when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("cell is out of bounds")
	// ErrCellOccupied occurs when placing onto an occupied cell without capture.
	ErrCellOccupied = errors.New("cell is occupied")
	// ErrAlreadyPlaced occurs when a piece that is on the board is placed again.
	ErrAlreadyPlaced = errors.New("piece is already placed")
	// ErrEmptyCell occurs when capturing or moving from an empty cell.
	ErrEmptyCell = errors.New("cell is empty")
	// ErrUnknownPiece occurs when a template lookup fails.
	ErrUnknownPiece = errors.New("unknown piece")
	// ErrDuplicatePiece occurs when a player declares the same piece name twice.
	ErrDuplicatePiece = errors.New("duplicate piece")
	// ErrBoardSize occurs when New is called with a non-positive dimension.
	ErrBoardSize = errors.New("board dimensions must be at least 1x1")
	// ErrInvalidPlayer occurs when a player index is outside [1..players].
	ErrInvalidPlayer = errors.New("player index is out of range")
)
