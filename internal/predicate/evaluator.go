package predicate

import (
	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/engine"
)

// Transition is the pair of boards a predicate is evaluated over, plus the
// move that led from one to the other.
type Transition struct {
	This *chess.Board
	Next *chess.Board
	Move chess.Move
}

// Position is the transition from b to itself, used for win conditions.
func Position(b *chess.Board) Transition {
	return Transition{This: b, Next: b, Move: chess.NoMove}
}

func (t Transition) board(s StateTag) *chess.Board {
	if s == This {
		return t.This
	}
	return t.Next
}

// Evaluator evaluates predicates against transitions. Evaluation never
// mutates the boards it is given.
type Evaluator struct {
	gen *engine.Generator
}

// NewEvaluator creates an evaluator that uses gen for move generation.
func NewEvaluator(gen *engine.Generator) *Evaluator {
	return &Evaluator{gen: gen}
}

// Evaluate reports whether node holds on t.
func (e *Evaluator) Evaluate(node Node, t Transition) bool {
	switch n := node.(type) {
	case *Const:
		return n.Value
	case *Not:
		return !e.Evaluate(n.P, t)
	case *Binary:
		return e.evalBinary(n, t)
	case *Attacked:
		return e.evalAttacked(n, t)
	case *Remaining:
		return n.Cmp.apply(e.count(t.board(n.State), n.Class), n.N)
	case *Captured:
		return e.count(t.This, n.Class) > e.count(t.Next, n.Class)
	case *ForEvery:
		return e.evalForEvery(n, t)
	case *At:
		return e.evalAt(n, t)
	case *Unmoved:
		b := t.board(n.State)
		sq, ok := b.Square(n.Coord)
		return ok && !b.Moved(sq)
	default:
		return false
	}
}

func (e *Evaluator) evalBinary(n *Binary, t Transition) bool {
	switch n.Op {
	case OpAnd:
		return e.Evaluate(n.Left, t) && e.Evaluate(n.Right, t)
	case OpOr:
		return e.Evaluate(n.Left, t) || e.Evaluate(n.Right, t)
	case OpXor:
		return e.Evaluate(n.Left, t) != e.Evaluate(n.Right, t)
	case OpImplies:
		return !e.Evaluate(n.Left, t) || e.Evaluate(n.Right, t)
	case OpEquals:
		return e.Evaluate(n.Left, t) == e.Evaluate(n.Right, t)
	default:
		return false
	}
}

func (e *Evaluator) evalAttacked(n *Attacked, t Transition) bool {
	b := t.board(n.State)

	targets := make(map[chess.Square]bool)
	if n.Target.Coord != "" {
		sq, ok := b.Square(n.Target.Coord)
		if !ok {
			return false
		}
		targets[sq] = true
	} else {
		for i := 0; i < b.Size(); i++ {
			sq := chess.Square(i)
			if e.matches(n.Target.Class, b.Get(sq)) {
				targets[sq] = true
			}
		}
	}
	if len(targets) == 0 {
		return false
	}

	for _, m := range e.gen.Moves(b, n.By) {
		if targets[m.To] {
			return true
		}
	}
	return false
}

// evalForEvery tries each candidate move on its own copy of the board.
func (e *Evaluator) evalForEvery(n *ForEvery, t Transition) bool {
	from := t.board(n.From)
	for _, m := range e.gen.Moves(from, n.Side) {
		next := from.Copy()
		e.gen.Apply(next, m)
		if !e.Evaluate(n.P, Transition{This: from, Next: next, Move: m}) {
			return false
		}
	}
	return true
}

func (e *Evaluator) evalAt(n *At, t Transition) bool {
	b := t.board(n.State)
	sq, ok := b.Square(n.Coord)
	if !ok {
		return false
	}
	return e.matches(n.Class, b.Get(sq))
}

func (e *Evaluator) count(b *chess.Board, c Class) int {
	total := 0
	for i := 0; i < b.Size(); i++ {
		if e.matches(c, b.Get(chess.Square(i))) {
			total++
		}
	}
	return total
}

func (e *Evaluator) matches(c Class, token string) bool {
	switch c.Kind {
	case ClassEmpty:
		return token == chess.EmptyToken
	case ClassToken:
		return token == c.Token
	}
	if token == chess.EmptyToken {
		return false
	}
	p, ok := e.gen.Piece(token)
	if !ok {
		// Unknown tokens are neutral non-royal occupants.
		return c.Kind == ClassAny && c.Side == chess.None
	}
	if p.Side != c.Side {
		return false
	}
	return c.Kind == ClassAny || p.Royal
}
