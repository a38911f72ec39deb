package engine

import (
	"github.com/lgbarn/chess-variants-go/internal/chess"
)

// Generator computes pseudo-legal moves against a piece catalogue.
// It holds no board state and is safe to share between games.
type Generator struct {
	cat *Catalogue
}

// NewGenerator creates a generator over cat.
func NewGenerator(cat *Catalogue) *Generator {
	return &Generator{cat: cat}
}

// Catalogue returns the generator's piece table.
func (g *Generator) Catalogue() *Catalogue {
	return g.cat
}

// Piece looks up the descriptor for token.
func (g *Generator) Piece(token string) (*Piece, bool) {
	return g.cat.Lookup(token)
}

// PieceAt looks up the descriptor of the occupant of sq. Empty squares and
// tokens missing from the catalogue report false.
func (g *Generator) PieceAt(b *chess.Board, sq chess.Square) (*Piece, bool) {
	if !b.Occupied(sq) {
		return nil, false
	}
	return g.cat.Lookup(b.Get(sq))
}

// sideAt returns the side of the occupant of sq. Unknown tokens are neutral.
func (g *Generator) sideAt(b *chess.Board, sq chess.Square) chess.Side {
	return g.cat.SideOf(b.Get(sq))
}

// squareSet is a dense set of board squares; iteration is in index order.
type squareSet []bool

func (s squareSet) add(sq chess.Square) { s[sq] = true }

func (s squareSet) list() []chess.Square {
	var out []chess.Square
	for i, ok := range s {
		if ok {
			out = append(out, chess.Square(i))
		}
	}
	return out
}

// Destinations returns the sorted, deduplicated squares the piece on sq can
// reach in one move, including repeat legs. It returns nil for an empty
// square or a token missing from the catalogue.
func (g *Generator) Destinations(b *chess.Board, sq chess.Square) []chess.Square {
	p, ok := g.PieceAt(b, sq)
	if !ok {
		return nil
	}

	reached := make(squareSet, b.Size())
	g.leg(b, p, sq, !b.Moved(sq), reached)

	for round := 0; round < p.Repeat; round++ {
		frontier := reached.list()
		for _, from := range frontier {
			g.leg(b, p, from, false, reached)
		}
	}
	return reached.list()
}

// Moves returns every pseudo-legal move of side, sorted by (from, to).
func (g *Generator) Moves(b *chess.Board, side chess.Side) []chess.Move {
	var moves []chess.Move
	for i := 0; i < b.Size(); i++ {
		from := chess.Square(i)
		p, ok := g.PieceAt(b, from)
		if !ok || p.Side != side {
			continue
		}
		for _, to := range g.Destinations(b, from) {
			moves = append(moves, chess.Move{From: from, To: to})
		}
	}
	return moves
}

// leg adds one leg of p standing on from to reached.
func (g *Generator) leg(b *chess.Board, p *Piece, from chess.Square, initial bool, reached squareSet) {
	for _, pat := range p.Movement {
		g.quiet(b, pat, from, reached)
	}
	if initial {
		for _, pat := range p.Initial {
			g.quiet(b, pat, from, reached)
		}
	}
	for _, pat := range p.Capture {
		g.capture(b, p.Side, pat, from, reached)
	}
}

// quiet adds the non-capturing destinations of pat.
func (g *Generator) quiet(b *chess.Board, pat Pattern, from chess.Square, reached squareSet) {
	row, col := b.RowCol(from)
	switch pat := pat.(type) {
	case Slide:
		limit := max(b.Rows(), b.Cols())
		for j := pat.Min; j <= limit; j++ {
			to, ok := b.SquareAt(row+j*pat.DRow, col+j*pat.DCol)
			if !ok || b.Occupied(to) {
				return
			}
			if j <= pat.Max {
				reached.add(to)
			}
		}
	case Jump:
		to, ok := b.SquareAt(row+pat.DRow, col+pat.DCol)
		if ok && !b.Occupied(to) {
			reached.add(to)
		}
	}
}

// capture adds the capturing destinations of pat for a mover of side.
func (g *Generator) capture(b *chess.Board, side chess.Side, pat Pattern, from chess.Square, reached squareSet) {
	row, col := b.RowCol(from)
	switch pat := pat.(type) {
	case Slide:
		limit := max(b.Rows(), b.Cols())
		for j := 1; j <= limit; j++ {
			if j < pat.Min || j > pat.Max {
				continue
			}
			to, ok := b.SquareAt(row+j*pat.DRow, col+j*pat.DCol)
			if !ok {
				continue
			}
			if !b.Occupied(to) {
				continue
			}
			if g.sideAt(b, to) != side {
				reached.add(to)
			}
			return
		}
	case Jump:
		to, ok := b.SquareAt(row+pat.DRow, col+pat.DCol)
		if ok && b.Occupied(to) && g.sideAt(b, to) == side.Opposite() {
			reached.add(to)
		}
	}
}
