package variant

import (
	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/engine"
)

// pieceOptions tweaks the orthodox piece set.
type pieceOptions struct {
	royalKings bool
	promoteTo  string // upper-case token; lower-cased for black
	compound   bool   // add chancellor and archbishop
}

var (
	kingMoves   = engine.Steps(engine.AllDirs...)
	queenMoves  = engine.Rays(engine.AllDirs...)
	rookMoves   = engine.Rays(engine.Orthogonal...)
	bishopMoves = engine.Rays(engine.Diagonal...)
	knightMoves = engine.Leaps(1, 2)
)

// orthodoxPieces returns both sides' pieces, white upper-case.
func orthodoxPieces(opts pieceOptions) []engine.Piece {
	type def struct {
		token string
		moves []engine.Pattern
		royal bool
	}
	defs := []def{
		{"K", kingMoves, opts.royalKings},
		{"Q", queenMoves, false},
		{"R", rookMoves, false},
		{"B", bishopMoves, false},
		{"N", knightMoves, false},
	}
	if opts.compound {
		defs = append(defs,
			def{"C", engine.Concat(rookMoves, knightMoves), false},
			def{"A", engine.Concat(bishopMoves, knightMoves), false},
		)
	}

	var pieces []engine.Piece
	for _, d := range defs {
		pieces = append(pieces,
			engine.Piece{Token: d.token, Side: chess.White, Movement: d.moves, Capture: d.moves, Royal: d.royal},
			engine.Piece{Token: lower(d.token), Side: chess.Black, Movement: d.moves, Capture: d.moves, Royal: d.royal},
		)
	}
	return append(pieces, pawn(chess.White, opts.promoteTo), pawn(chess.Black, lower(opts.promoteTo)))
}

// pawn steps forward, may step twice while unmoved, and captures diagonally
// forward.
func pawn(side chess.Side, promoteTo string) engine.Piece {
	dir, token := 1, "P"
	if side == chess.Black {
		dir, token = -1, "p"
	}
	return engine.Piece{
		Token:    token,
		Side:     side,
		Movement: []engine.Pattern{engine.Slide{DRow: dir, DCol: 0, Min: 1, Max: 1}},
		Initial:  []engine.Pattern{engine.Slide{DRow: dir, DCol: 0, Min: 1, Max: 2}},
		Capture: []engine.Pattern{
			engine.Jump{DRow: dir, DCol: -1},
			engine.Jump{DRow: dir, DCol: 1},
		},
		PromotesTo: promoteTo,
	}
}

func lower(token string) string {
	if token == "" {
		return ""
	}
	b := []byte(token)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
