// Package board holds the runtime grid, the piece arena and the per-player
// piece catalogue of a running game.
package board

import (
	"fmt"
	"iter"
	"strings"
)

// PieceID indexes a piece instance in the board's arena.
type PieceID int

// NoPiece marks an empty cell or a missing piece.
const NoPiece PieceID = -1

// Origin names the corner that holds cell (1,1).
type Origin int

const (
	BottomLeft Origin = iota
	TopLeft
	BottomRight
	TopRight
)

func (o Origin) String() string {
	switch o {
	case BottomLeft:
		return "BL"
	case TopLeft:
		return "TL"
	case BottomRight:
		return "BR"
	case TopRight:
		return "TR"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Cell is a 1-based board coordinate.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// GamePiece is a piece instance. Owner and Name identify its template.
type GamePiece struct {
	Owner   int
	Name    string
	Display string

	placed bool
	at     Cell
}

// Placed reports whether the piece currently occupies a cell, and which.
func (p GamePiece) Placed() (Cell, bool) {
	return p.at, p.placed
}

// Config describes a board at construction time.
type Config struct {
	Width   int
	Height  int
	Players int
	Origin  Origin
	// Capture lets Place onto an occupied cell capture the resident.
	Capture bool
}

// Board is a width x height grid. Cells reference pieces in an arena by
// PieceID; rosters keep each player's placed pieces in placement order.
type Board struct {
	width   int
	height  int
	players int
	origin  Origin
	capture bool

	cells   []PieceID
	pieces  []GamePiece
	rosters [][]PieceID
}

// New builds an empty board.
func New(cfg Config) (*Board, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBoardSize, cfg.Width, cfg.Height)
	}
	if cfg.Players < 1 {
		return nil, fmt.Errorf("%w: board needs at least one player, got %d", ErrInvalidPlayer, cfg.Players)
	}
	b := &Board{
		width:   cfg.Width,
		height:  cfg.Height,
		players: cfg.Players,
		origin:  cfg.Origin,
		capture: cfg.Capture,
		cells:   make([]PieceID, cfg.Width*cfg.Height),
		rosters: make([][]PieceID, cfg.Players),
	}
	for i := range b.cells {
		b.cells[i] = NoPiece
	}
	return b, nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) Players() int   { return b.players }
func (b *Board) Origin() Origin { return b.origin }

// Capturing reports whether Place captures the resident of an occupied cell.
func (b *Board) Capturing() bool { return b.capture }

// InBounds reports whether (x,y) names a cell of the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 1 && x <= b.width && y >= 1 && y <= b.height
}

func (b *Board) index(x, y int) (int, error) {
	if !b.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrOutOfBounds, x, y, b.width, b.height)
	}
	var row, col int
	switch b.origin {
	case TopLeft:
		row, col = y-1, x-1
	case BottomRight:
		row, col = b.height-y, b.width-x
	case TopRight:
		row, col = y-1, b.width-x
	default:
		row, col = b.height-y, x-1
	}
	return row*b.width + col, nil
}

func (b *Board) cellAt(idx int) Cell {
	row, col := idx/b.width, idx%b.width
	switch b.origin {
	case TopLeft:
		return Cell{X: col + 1, Y: row + 1}
	case BottomRight:
		return Cell{X: b.width - col, Y: b.height - row}
	case TopRight:
		return Cell{X: b.width - col, Y: row + 1}
	default:
		return Cell{X: col + 1, Y: b.height - row}
	}
}

func (b *Board) validPlayer(player int) bool {
	return player >= 1 && player <= b.players
}

// Get returns the occupant of (x,y), or NoPiece.
func (b *Board) Get(x, y int) (PieceID, error) {
	idx, err := b.index(x, y)
	if err != nil {
		return NoPiece, err
	}
	return b.cells[idx], nil
}

// Piece returns a copy of the instance id.
func (b *Board) Piece(id PieceID) (GamePiece, bool) {
	if id < 0 || int(id) >= len(b.pieces) {
		return GamePiece{}, false
	}
	return b.pieces[id], true
}

// NewPiece allocates an unplaced instance of template t.
func (b *Board) NewPiece(t *PieceObj) (PieceID, error) {
	if t == nil {
		return NoPiece, fmt.Errorf("%w: nil template", ErrUnknownPiece)
	}
	if !b.validPlayer(t.Owner) {
		return NoPiece, fmt.Errorf("%w: owner %d of %q", ErrInvalidPlayer, t.Owner, t.Name)
	}
	b.pieces = append(b.pieces, GamePiece{Owner: t.Owner, Name: t.Name, Display: t.Display})
	return PieceID(len(b.pieces) - 1), nil
}

// Place puts the unplaced piece id on (x,y). When the board captures, the
// previous occupant is removed and returned; otherwise an occupied cell
// fails with ErrCellOccupied and nothing changes.
func (b *Board) Place(id PieceID, x, y int) (PieceID, error) {
	p, ok := b.Piece(id)
	if !ok {
		return NoPiece, fmt.Errorf("%w: no piece with id %d", ErrUnknownPiece, id)
	}
	idx, err := b.index(x, y)
	if err != nil {
		return NoPiece, err
	}
	if p.placed {
		return NoPiece, fmt.Errorf("%w: %s of player %d is at %s", ErrAlreadyPlaced, p.Name, p.Owner, p.at)
	}
	resident := b.cells[idx]
	if resident != NoPiece && !b.capture {
		return NoPiece, fmt.Errorf("%w: %s", ErrCellOccupied, b.cellAt(idx))
	}
	if resident != NoPiece {
		b.lift(resident)
	}
	b.put(id, idx)
	return resident, nil
}

// CanPlace reports the error Place would return for a new piece at (x,y)
// without changing the board.
func (b *Board) CanPlace(x, y int) error {
	idx, err := b.index(x, y)
	if err != nil {
		return err
	}
	if b.cells[idx] != NoPiece && !b.capture {
		return fmt.Errorf("%w: %s", ErrCellOccupied, b.cellAt(idx))
	}
	return nil
}

// Capture removes and returns the occupant of (x,y).
func (b *Board) Capture(x, y int) (PieceID, error) {
	idx, err := b.index(x, y)
	if err != nil {
		return NoPiece, err
	}
	resident := b.cells[idx]
	if resident == NoPiece {
		return NoPiece, fmt.Errorf("%w: %s", ErrEmptyCell, b.cellAt(idx))
	}
	b.lift(resident)
	return resident, nil
}

// Move relocates the occupant of from to to, capturing any occupant of to.
// The capture policy of the board applies to Place only.
// Moving a piece onto its own cell is a no-op. A failing move leaves the
// board unchanged.
func (b *Board) Move(from, to Cell) (PieceID, error) {
	src, err := b.index(from.X, from.Y)
	if err != nil {
		return NoPiece, err
	}
	dst, err := b.index(to.X, to.Y)
	if err != nil {
		return NoPiece, err
	}
	mover := b.cells[src]
	if mover == NoPiece {
		return NoPiece, fmt.Errorf("%w: nothing to move at %s", ErrEmptyCell, from)
	}
	if src == dst {
		return NoPiece, nil
	}
	resident := b.cells[dst]
	if resident != NoPiece {
		b.lift(resident)
	}
	b.cells[src] = NoPiece
	b.cells[dst] = mover
	b.pieces[mover].at = b.cellAt(dst)
	return resident, nil
}

func (b *Board) put(id PieceID, idx int) {
	b.cells[idx] = id
	p := &b.pieces[id]
	p.placed = true
	p.at = b.cellAt(idx)
	b.rosters[p.Owner-1] = append(b.rosters[p.Owner-1], id)
}

func (b *Board) lift(id PieceID) {
	p := &b.pieces[id]
	if !p.placed {
		return
	}
	if idx, err := b.index(p.at.X, p.at.Y); err == nil && b.cells[idx] == id {
		b.cells[idx] = NoPiece
	}
	p.placed = false
	roster := b.rosters[p.Owner-1]
	for i, other := range roster {
		if other == id {
			b.rosters[p.Owner-1] = append(roster[:i:i], roster[i+1:]...)
			break
		}
	}
}

// All yields every cell with its occupant (NoPiece when empty), top row
// first and left to right within a row.
func (b *Board) All() iter.Seq2[Cell, PieceID] {
	return func(yield func(Cell, PieceID) bool) {
		for idx := range b.cells {
			if !yield(b.cellAt(idx), b.cells[idx]) {
				return
			}
		}
	}
}

// Roster returns the placed pieces of player in placement order.
func (b *Board) Roster(player int) []PieceID {
	if !b.validPlayer(player) {
		return nil
	}
	out := make([]PieceID, len(b.rosters[player-1]))
	copy(out, b.rosters[player-1])
	return out
}

// Count returns how many pieces called name player has on the board.
func (b *Board) Count(player int, name string) int {
	if !b.validPlayer(player) {
		return 0
	}
	n := 0
	for _, id := range b.rosters[player-1] {
		if b.pieces[id].Name == name {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, id := range b.cells {
		if id != NoPiece {
			n++
		}
	}
	return n
}

// Full reports whether every cell holds a piece.
func (b *Board) Full() bool {
	return b.Occupied() == len(b.cells)
}

// Render draws the grid top row first, one line per row, using each
// occupant's display string and "." for empty cells.
func (b *Board) Render() string {
	var sb strings.Builder
	for idx, id := range b.cells {
		col := idx % b.width
		if col > 0 {
			sb.WriteByte(' ')
		}
		if id == NoPiece {
			sb.WriteByte('.')
		} else {
			sb.WriteString(b.pieces[id].Display)
		}
		if col == b.width-1 && idx != len(b.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Rows returns the grid as display strings, top row first. Empty cells are
// rendered as "." and the owner of each cell is reported alongside.
func (b *Board) Rows() [][]RenderedCell {
	rows := make([][]RenderedCell, b.height)
	for r := range rows {
		rows[r] = make([]RenderedCell, b.width)
		for c := range rows[r] {
			id := b.cells[r*b.width+c]
			if id == NoPiece {
				rows[r][c] = RenderedCell{Text: "."}
				continue
			}
			p := b.pieces[id]
			rows[r][c] = RenderedCell{Text: p.Display, Owner: p.Owner}
		}
	}
	return rows
}

// RenderedCell is one cell of Rows; Owner is 0 for empty cells.
type RenderedCell struct {
	Text  string
	Owner int
}

// Verify checks that the grid and the arena agree: every placed piece sits
// on exactly one cell, every occupant is placed there, and every owner is
// a valid player.
func (b *Board) Verify() error {
	seen := make(map[PieceID]int)
	for idx, id := range b.cells {
		if id == NoPiece {
			continue
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("piece %d occupies both %s and %s", id, b.cellAt(prev), b.cellAt(idx))
		}
		seen[id] = idx
		p, ok := b.Piece(id)
		if !ok {
			return fmt.Errorf("cell %s references unknown piece %d", b.cellAt(idx), id)
		}
		if !b.validPlayer(p.Owner) {
			return fmt.Errorf("cell %s holds a piece of player %d", b.cellAt(idx), p.Owner)
		}
		if !p.placed || p.at != b.cellAt(idx) {
			return fmt.Errorf("piece %d believes it is at %s but occupies %s", id, p.at, b.cellAt(idx))
		}
	}
	for id, p := range b.pieces {
		if _, onBoard := seen[PieceID(id)]; p.placed != onBoard {
			return fmt.Errorf("piece %d placed=%v but on board=%v", id, p.placed, onBoard)
		}
	}
	return nil
}
