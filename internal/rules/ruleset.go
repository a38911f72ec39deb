// Package rules filters pseudo-legal moves through a side's legality
// predicate, adds special compound moves, and checks win conditions.
package rules

import (
	"fmt"
	"sort"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/engine"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/predicate"
)

// RuleSet holds one side's rules.
type RuleSet struct {
	Side     chess.Side
	Legality predicate.Node // must hold on (before, after, move)
	Win      predicate.Node // checked on the current position
	Specials []SpecialMove
}

// Depth returns the deepest lookahead nesting among the rule set's predicates.
func (rs *RuleSet) Depth() int {
	d := max(predicate.Depth(rs.Legality), predicate.Depth(rs.Win))
	for _, s := range rs.Specials {
		d = max(d, predicate.Depth(s.Enabled))
	}
	return d
}

// CheckLookahead returns ErrInvalidConfig if any predicate nests deeper
// than limit. A limit of 0 disables the check.
func (rs *RuleSet) CheckLookahead(limit int) error {
	if limit <= 0 {
		return nil
	}
	if d := rs.Depth(); d > limit {
		return fmt.Errorf("%s rules nest %d lookahead levels, limit %d: %w", rs.Side, d, limit, errors.ErrInvalidConfig)
	}
	return nil
}

// Legal is a move accepted by a rule set. Special is set for compound moves.
type Legal struct {
	Move    chess.Move
	Special *SpecialMove
}

// Engine applies rule sets using a move generator and predicate evaluator.
type Engine struct {
	gen  *engine.Generator
	eval *predicate.Evaluator
}

// NewEngine creates a rules engine over gen.
func NewEngine(gen *engine.Generator) *Engine {
	return &Engine{gen: gen, eval: predicate.NewEvaluator(gen)}
}

// Generator returns the move generator.
func (e *Engine) Generator() *engine.Generator { return e.gen }

// Evaluator returns the predicate evaluator.
func (e *Engine) Evaluator() *predicate.Evaluator { return e.eval }

// LegalMoves returns the legal moves of rs.Side on b, sorted by (from, to).
// An enabled special move replaces an ordinary move with the same key.
func (e *Engine) LegalMoves(rs *RuleSet, b *chess.Board) []Legal {
	specials := make(map[chess.Move]*SpecialMove)
	for i := range rs.Specials {
		s := &rs.Specials[i]
		key, ok := s.key(b)
		if !ok {
			continue
		}
		if _, taken := specials[key]; taken {
			continue
		}
		if e.specialEnabled(s, b) {
			specials[key] = s
		}
	}

	var out []Legal
	for _, m := range e.gen.Moves(b, rs.Side) {
		if _, shadowed := specials[m]; shadowed {
			continue
		}
		if e.ordinaryLegal(rs, b, m) {
			out = append(out, Legal{Move: m})
		}
	}
	for key, s := range specials {
		out = append(out, Legal{Move: key, Special: s})
	}
	sortLegal(out)
	return out
}

// Filter keeps the moves of moves that are still legal for rs on b.
func (e *Engine) Filter(rs *RuleSet, b *chess.Board, moves []Legal) []Legal {
	var out []Legal
	for _, l := range moves {
		if l.Special != nil {
			if e.specialEnabled(l.Special, b) {
				out = append(out, l)
			}
			continue
		}
		if e.ordinaryLegal(rs, b, l.Move) {
			out = append(out, l)
		}
	}
	return out
}

// Find returns the legal move of rs on b matching m. It agrees with
// LegalMoves without generating the whole set.
func (e *Engine) Find(rs *RuleSet, b *chess.Board, m chess.Move) (Legal, bool) {
	for i := range rs.Specials {
		s := &rs.Specials[i]
		if key, ok := s.key(b); ok && key == m && e.specialEnabled(s, b) {
			return Legal{Move: m, Special: s}, true
		}
	}
	p, ok := e.gen.PieceAt(b, m.From)
	if !ok || p.Side != rs.Side {
		return Legal{}, false
	}
	for _, to := range e.gen.Destinations(b, m.From) {
		if to == m.To {
			if e.ordinaryLegal(rs, b, m) {
				return Legal{Move: m}, true
			}
			break
		}
	}
	return Legal{}, false
}

// Wins reports whether rs.Side has won on b.
func (e *Engine) Wins(rs *RuleSet, b *chess.Board) bool {
	return e.eval.Evaluate(rs.Win, predicate.Position(b))
}

// ApplyLegal performs l on b. Special moves relocate every piece they
// list; ordinary moves go through the generator, including promotion.
func (e *Engine) ApplyLegal(b *chess.Board, l Legal) bool {
	if l.Special != nil {
		return l.Special.apply(b)
	}
	return e.gen.Apply(b, l.Move)
}

func (e *Engine) ordinaryLegal(rs *RuleSet, b *chess.Board, m chess.Move) bool {
	next := b.Copy()
	e.gen.Apply(next, m)
	return e.eval.Evaluate(rs.Legality, predicate.Transition{This: b, Next: next, Move: m})
}

func (e *Engine) specialEnabled(s *SpecialMove, b *chess.Board) bool {
	key, ok := s.key(b)
	if !ok {
		return false
	}
	next := b.Copy()
	if !s.apply(next) {
		return false
	}
	return e.eval.Evaluate(s.Enabled, predicate.Transition{This: b, Next: next, Move: key})
}

func sortLegal(moves []Legal) {
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i].Move, moves[j].Move
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
}
