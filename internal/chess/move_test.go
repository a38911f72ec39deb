package chess_test

import (
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

func TestParseMove(t *testing.T) {
	b := mustBoard(t, 12, 12)

	tests := []struct {
		input    string
		from, to string
		wantErr  bool
	}{
		{input: "e2e4", from: "e2", to: "e4"},
		{input: "a10b9", from: "a10", to: "b9"},
		{input: "b9a10", from: "b9", to: "a10"},
		{input: "a10a12", from: "a10", to: "a12"},
		{input: "l12a1", from: "l12", to: "a1"},
		{input: "", wantErr: true},
		{input: "e2", wantErr: true},
		{input: "e2e4e6e", wantErr: true},
		{input: "z9z8", wantErr: true},
		{input: "a13a1", wantErr: true},
		{input: "a1a13", wantErr: true},
		{input: "e2-e4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := b.ParseMove(tt.input)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)
				var me *errors.MoveError
				testutil.AssertTrue(t, errors.As(err, &me), "error is a *MoveError")
				testutil.AssertTrue(t, m.IsNone())
				return
			}
			testutil.AssertNoError(t, err)
			from, _ := b.Square(tt.from)
			to, _ := b.Square(tt.to)
			testutil.AssertEqual(t, m, chess.Move{From: from, To: to})
			testutil.AssertEqual(t, b.MoveString(m), tt.input)
		})
	}
}

func TestMoveString_OffBoard(t *testing.T) {
	b := mustBoard(t, 8, 8)
	testutil.AssertEqual(t, b.MoveString(chess.NoMove), "")
	testutil.AssertEqual(t, b.MoveString(chess.Move{From: 0, To: 64}), "")
}

func TestSide(t *testing.T) {
	testutil.AssertEqual(t, chess.White.Opposite(), chess.Black)
	testutil.AssertEqual(t, chess.Black.Opposite(), chess.White)
	testutil.AssertEqual(t, chess.None.Opposite(), chess.None)

	for _, in := range []string{"white", "W", " White "} {
		s, ok := chess.ParseSide(in)
		testutil.AssertTrue(t, ok, in)
		testutil.AssertEqual(t, s, chess.White, in)
	}
	_, ok := chess.ParseSide("red")
	testutil.AssertFalse(t, ok)
	testutil.AssertEqual(t, chess.Black.String(), "black")
}
