package rules

import (
	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/predicate"
)

// Relocation moves whatever stands on From to To.
type Relocation struct {
	From, To string
}

// SpecialMove is a compound move selected by its key move string. All
// relocations happen together, and Enabled replaces the side's legality
// predicate for it.
type SpecialMove struct {
	Name        string
	Key         string // "<from><to>" the player submits, e.g. "e1g1"
	Relocations []Relocation
	Enabled     predicate.Node
}

func (s *SpecialMove) key(b *chess.Board) (chess.Move, bool) {
	m, err := b.ParseMove(s.Key)
	if err != nil {
		return chess.NoMove, false
	}
	return m, true
}

// apply performs every relocation on b. It reports false, leaving b
// untouched, if any source square is off the board or empty.
func (s *SpecialMove) apply(b *chess.Board) bool {
	moves := make([]chess.Move, 0, len(s.Relocations))
	for _, r := range s.Relocations {
		from, ok := b.Square(r.From)
		if !ok || !b.Occupied(from) {
			return false
		}
		to, ok := b.Square(r.To)
		if !ok {
			return false
		}
		moves = append(moves, chess.Move{From: from, To: to})
	}

	// Lift every piece first so relocations may swap squares.
	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = b.Get(m.From)
		b.Clear(m.From)
	}
	for i, m := range moves {
		b.Set(m.To, tokens[i])
		b.Relocate(m.To, m.To) // flag as moved
	}
	return true
}

// Castling builds the special move in which the king on king moves to
// kingTo and the rook on rook moves to rookTo. It is enabled while both
// pieces are unmoved, the between squares are empty, the king and the
// squares in pass are not attacked, and the king is safe afterwards.
func Castling(name string, side chess.Side, king, kingTo, rook, rookTo string, between, pass []string) SpecialMove {
	opp := side.Opposite()

	conds := []predicate.Node{
		&predicate.At{Coord: king, Class: predicate.RoyalOf(side), State: predicate.This},
		&predicate.Unmoved{Coord: king, State: predicate.This},
		&predicate.At{Coord: rook, Class: predicate.AnyOf(side), State: predicate.This},
		&predicate.Unmoved{Coord: rook, State: predicate.This},
	}
	for _, sq := range between {
		conds = append(conds, &predicate.At{Coord: sq, Class: predicate.EmptyClass, State: predicate.This})
	}
	for _, sq := range append([]string{king}, pass...) {
		conds = append(conds, &predicate.Not{P: &predicate.Attacked{
			Target: predicate.Target{Coord: sq},
			By:     opp,
			State:  predicate.This,
		}})
	}
	conds = append(conds, &predicate.Not{P: &predicate.Attacked{
		Target: predicate.Target{Class: predicate.RoyalOf(side)},
		By:     opp,
		State:  predicate.Next,
	}})

	return SpecialMove{
		Name: name,
		Key:  king + kingTo,
		Relocations: []Relocation{
			{From: king, To: kingTo},
			{From: rook, To: rookTo},
		},
		Enabled: predicate.AllOf(conds...),
	}
}
