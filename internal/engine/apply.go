package engine

import "github.com/lgbarn/chess-variants-go/internal/chess"

// Apply performs m on b: the piece is relocated, its moved flag set, and
// any capture overwritten. A piece with PromotesTo that lands on its far
// rank is replaced. Apply does not check legality; it reports false only
// when a square is off the board.
func (g *Generator) Apply(b *chess.Board, m chess.Move) bool {
	if !b.Relocate(m.From, m.To) {
		return false
	}
	g.promote(b, m.To)
	return true
}

func (g *Generator) promote(b *chess.Board, sq chess.Square) {
	p, ok := g.PieceAt(b, sq)
	if !ok || p.PromotesTo == "" {
		return
	}
	row, _ := b.RowCol(sq)
	if row == farRank(b, p.Side) {
		b.Replace(sq, p.PromotesTo)
	}
}

// farRank is the promotion row of side; neutral pieces never promote.
func farRank(b *chess.Board, side chess.Side) int {
	switch side {
	case chess.White:
		return b.Rows() - 1
	case chess.Black:
		return 0
	}
	return -1
}
