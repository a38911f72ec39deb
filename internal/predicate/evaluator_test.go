package predicate_test

import (
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/engine"
	"github.com/lgbarn/chess-variants-go/internal/predicate"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

func newEvaluator(t *testing.T) (*predicate.Evaluator, *engine.Generator) {
	t.Helper()
	king := engine.Steps(engine.AllDirs...)
	rook := engine.Rays(engine.Orthogonal...)
	cat, err := engine.NewCatalogue(
		engine.Piece{Token: "K", Side: chess.White, Movement: king, Capture: king, Royal: true},
		engine.Piece{Token: "k", Side: chess.Black, Movement: king, Capture: king, Royal: true},
		engine.Piece{Token: "R", Side: chess.White, Movement: rook, Capture: rook},
		engine.Piece{Token: "r", Side: chess.Black, Movement: rook, Capture: rook},
	)
	if err != nil {
		t.Fatal(err)
	}
	gen := engine.NewGenerator(cat)
	return predicate.NewEvaluator(gen), gen
}

func layout(t *testing.T, l string) *chess.Board {
	t.Helper()
	b, err := engine.ParseLayout(8, 8, l, nil)
	if err != nil {
		t.Fatalf("ParseLayout(%q): %v", l, err)
	}
	return b
}

// play returns the transition produced by the move string s on b.
func play(t *testing.T, gen *engine.Generator, b *chess.Board, s string) predicate.Transition {
	t.Helper()
	m, err := b.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	next := b.Copy()
	gen.Apply(next, m)
	return predicate.Transition{This: b, Next: next, Move: m}
}

func TestEvaluate_Operators(t *testing.T) {
	e, _ := newEvaluator(t)
	pos := predicate.Position(layout(t, "8/8/8/8/8/8/8/8"))

	tests := []struct {
		op   func(l, r predicate.Node) predicate.Node
		name string
		want [4]bool // ff, ft, tf, tt
	}{
		{predicate.And, "and", [4]bool{false, false, false, true}},
		{predicate.Or, "or", [4]bool{false, true, true, true}},
		{predicate.Xor, "xor", [4]bool{false, true, true, false}},
		{predicate.Implies, "implies", [4]bool{true, true, false, true}},
		{predicate.Equals, "equals", [4]bool{true, false, false, true}},
	}

	consts := []predicate.Node{predicate.False, predicate.True}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, l := range consts {
				for j, r := range consts {
					got := e.Evaluate(tt.op(l, r), pos)
					testutil.AssertEqual(t, got, tt.want[i*2+j], "%s(%v, %v)", tt.name, l, r)
				}
			}
		})
	}

	testutil.AssertFalse(t, e.Evaluate(&predicate.Not{P: predicate.True}, pos))
	testutil.AssertTrue(t, e.Evaluate(predicate.AllOf(), pos))
}

func TestEvaluate_Attacked(t *testing.T) {
	e, _ := newEvaluator(t)

	tests := []struct {
		name   string
		layout string
		pred   string
		want   bool
	}{
		{"open file", "k7/8/8/8/8/8/8/R6K", "(attacked a8 white)", true},
		{"royal class", "k7/8/8/8/8/8/8/R6K", "(attacked royal:black white)", true},
		{"blocked file", "k7/8/r7/8/8/8/8/R6K", "(attacked royal:black white)", false},
		{"blocker itself", "k7/8/r7/8/8/8/8/R6K", "(attacked a6 white)", true},
		{"own side does not count", "k7/8/8/8/8/8/8/R6K", "(attacked a8 black)", false},
		{"empty square reachable", "k7/8/8/8/8/8/8/R6K", "(attacked d1 white)", true},
		{"off-board square", "k7/8/8/8/8/8/8/R6K", "(attacked i9 white)", false},
		{"no matching class", "k7/8/8/8/8/8/8/R6K", "(attacked r white)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := predicate.Position(layout(t, tt.layout))
			testutil.AssertEqual(t, e.Evaluate(predicate.MustParse(tt.pred), pos), tt.want)
		})
	}
}

func TestEvaluate_RemainingAndCaptured(t *testing.T) {
	e, gen := newEvaluator(t)
	b := layout(t, "r6k/8/8/8/8/8/8/R6K")
	tr := play(t, gen, b, "a1a8")

	tests := []struct {
		pred string
		want bool
	}{
		{"(remaining any:black == 2 this)", true},
		{"(remaining any:black == 1 next)", true},
		{"(remaining r < 1)", true},
		{"(remaining royal:white != 1)", false},
		{"(remaining empty == 61 next)", true},
		{"(captured r)", true},
		{"(captured any:black)", true},
		{"(captured royal:black)", false},
		{"(captured R)", false},
		{"(at a8 R)", true},
		{"(at a8 r this)", true},
		{"(at a1 empty)", true},
		{"(unmoved h1)", true},
		{"(unmoved a8)", false},
		{"(unmoved a1 this)", true},
		{"(at z1 empty)", false},
	}

	for _, tt := range tests {
		t.Run(tt.pred, func(t *testing.T) {
			testutil.AssertEqual(t, e.Evaluate(predicate.MustParse(tt.pred), tr), tt.want)
		})
	}
}

func TestEvaluate_ForEvery(t *testing.T) {
	e, gen := newEvaluator(t)
	noRoyalCapture := predicate.MustParse("(forall black (not (captured royal:white)))")

	tests := []struct {
		name   string
		layout string
		move   string
		want   bool
	}{
		{"safe move", "7k/8/8/8/8/8/8/K6r", "a1a2", true},
		{"stays on attacked rank", "7k/8/8/8/8/8/8/K3R2r", "e1e8", false},
		{"rook blocks", "7k/8/8/8/8/8/8/K3R2r", "e1f1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := play(t, gen, layout(t, tt.layout), tt.move)
			testutil.AssertEqual(t, e.Evaluate(noRoyalCapture, tr), tt.want)
		})
	}

	t.Run("vacuous when side has no moves", func(t *testing.T) {
		pos := predicate.Position(layout(t, "8/8/8/8/8/8/8/K7"))
		testutil.AssertTrue(t, e.Evaluate(predicate.MustParse("(forall black false)"), pos))
	})

	t.Run("from this state", func(t *testing.T) {
		tr := play(t, gen, layout(t, "7k/8/8/8/8/8/r7/K7"), "a1c1")
		// Before the move the king could take the rook on a2.
		existed := predicate.MustParse("(forall white this (not (captured any:black)))")
		testutil.AssertFalse(t, e.Evaluate(existed, tr))
		testutil.AssertTrue(t, e.Evaluate(predicate.MustParse("(forall white next (not (captured any:black)))"), tr))
	})
}

func TestEvaluate_Pure(t *testing.T) {
	e, gen := newEvaluator(t)
	b := layout(t, "r3k2r/8/8/8/8/8/8/R3K2R")
	tr := play(t, gen, b, "a1a8")

	thisBefore, nextBefore := tr.This.Copy(), tr.Next.Copy()
	p := predicate.MustParse("(and (forall black (forall white (not (captured royal:black)))) (attacked royal:black white))")

	first := e.Evaluate(p, tr)
	twin := predicate.Transition{This: tr.This.Copy(), Next: tr.Next.Copy(), Move: tr.Move}
	second := e.Evaluate(p, twin)

	testutil.AssertEqual(t, second, first)
	testutil.AssertTrue(t, tr.This.Equal(thisBefore), "this board untouched")
	testutil.AssertTrue(t, tr.Next.Equal(nextBefore), "next board untouched")
}
