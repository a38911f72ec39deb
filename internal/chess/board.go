package chess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// coordTable is the bijective coordinate <-> square mapping of one board
// geometry. It is built once and never mutated, so copies share it.
type coordTable struct {
	toSquare map[string]Square
	toCoord  []string
}

func newCoordTable(rows, cols int) *coordTable {
	t := &coordTable{
		toSquare: make(map[string]Square, rows*cols),
		toCoord:  make([]string, rows*cols),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			sq := Square(row*cols + col)
			coord := string(rune(FileBase+col)) + strconv.Itoa(row+RankBase)
			t.toSquare[coord] = sq
			t.toCoord[sq] = coord
		}
	}
	return t
}

// Board is a fixed-size grid of piece tokens.
type Board struct {
	rows, cols int

	// One token per square; EmptyToken when unoccupied.
	cells []string

	// Has-moved flag per square. It travels with the piece on Relocate.
	moved []bool

	coords *coordTable
}

// NewBoard creates an empty rows x cols board.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 || rows > MaxDimension || cols > MaxDimension {
		return nil, fmt.Errorf("board %dx%d outside 1..%d: %w", rows, cols, MaxDimension, errors.ErrInvalidConfig)
	}
	b := &Board{
		rows:   rows,
		cols:   cols,
		cells:  make([]string, rows*cols),
		moved:  make([]bool, rows*cols),
		coords: newCoordTable(rows, cols),
	}
	for i := range b.cells {
		b.cells[i] = EmptyToken
	}
	return b, nil
}

// Rows returns the number of ranks.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of files.
func (b *Board) Cols() int { return b.cols }

// Size returns the number of squares.
func (b *Board) Size() int { return len(b.cells) }

// Valid reports whether sq is a square of this board.
func (b *Board) Valid(sq Square) bool {
	return sq >= 0 && int(sq) < len(b.cells)
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// SquareAt converts (row, col) to a square.
func (b *Board) SquareAt(row, col int) (Square, bool) {
	if !b.InBounds(row, col) {
		return NoSquare, false
	}
	return Square(row*b.cols + col), true
}

// RowCol converts a square back to (row, col). Invalid squares yield (-1, -1).
func (b *Board) RowCol(sq Square) (int, int) {
	if !b.Valid(sq) {
		return -1, -1
	}
	return int(sq) / b.cols, int(sq) % b.cols
}

// Coordinate returns the "e4"-style name of sq.
func (b *Board) Coordinate(sq Square) (string, bool) {
	if !b.Valid(sq) {
		return "", false
	}
	return b.coords.toCoord[sq], true
}

// Square looks up a coordinate. Unknown or off-board coordinates are rejected.
func (b *Board) Square(coord string) (Square, bool) {
	sq, ok := b.coords.toSquare[coord]
	if !ok {
		return NoSquare, false
	}
	return sq, true
}

// Get returns the token on sq, or "" if sq is not on the board.
func (b *Board) Get(sq Square) string {
	if !b.Valid(sq) {
		return ""
	}
	return b.cells[sq]
}

// Set places token on sq and marks the square unmoved.
// It reports false if sq is not on the board.
func (b *Board) Set(sq Square, token string) bool {
	if !b.Valid(sq) {
		return false
	}
	if token == "" {
		token = EmptyToken
	}
	b.cells[sq] = token
	b.moved[sq] = false
	return true
}

// Replace swaps the token on sq and keeps its moved flag.
func (b *Board) Replace(sq Square, token string) bool {
	if !b.Valid(sq) || token == "" {
		return false
	}
	b.cells[sq] = token
	return true
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Set(sq, EmptyToken)
}

// Occupied reports whether a piece stands on sq.
func (b *Board) Occupied(sq Square) bool {
	return b.Valid(sq) && b.cells[sq] != EmptyToken
}

// Moved reports whether the piece on sq has moved since it was placed.
func (b *Board) Moved(sq Square) bool {
	return b.Valid(sq) && b.moved[sq]
}

// Relocate moves the token on from to to, replacing whatever stood there.
// The destination is flagged as moved; the origin becomes empty.
func (b *Board) Relocate(from, to Square) bool {
	if !b.Valid(from) || !b.Valid(to) {
		return false
	}
	if from == to {
		b.moved[to] = true
		return true
	}
	b.cells[to] = b.cells[from]
	b.moved[to] = true
	b.cells[from] = EmptyToken
	b.moved[from] = false
	return true
}

// Copy creates a deep copy of the board. The copy shares nothing mutable
// with the original.
func (b *Board) Copy() *Board {
	nb := &Board{
		rows:   b.rows,
		cols:   b.cols,
		cells:  make([]string, len(b.cells)),
		moved:  make([]bool, len(b.moved)),
		coords: b.coords,
	}
	copy(nb.cells, b.cells)
	copy(nb.moved, b.moved)
	return nb
}

// Equal reports whether two boards have the same geometry, tokens and
// moved flags.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] || b.moved[i] != o.moved[i] {
			return false
		}
	}
	return true
}

// Snapshot exports the grid rank-major, top rank first.
func (b *Board) Snapshot() [][]string {
	grid := make([][]string, b.rows)
	for i := range grid {
		row := b.rows - 1 - i
		grid[i] = make([]string, b.cols)
		copy(grid[i], b.cells[row*b.cols:(row+1)*b.cols])
	}
	return grid
}

// String renders the board as text, top rank first, with rank labels.
func (b *Board) String() string {
	var sb strings.Builder
	width := len(strconv.Itoa(b.rows))
	for i, row := range b.Snapshot() {
		fmt.Fprintf(&sb, "%*d ", width, b.rows-i)
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", width+1))
	for col := 0; col < b.cols; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(rune(FileBase + col))
	}
	sb.WriteByte('\n')
	return sb.String()
}
