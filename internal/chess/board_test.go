package chess_test

import (
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

func mustBoard(t *testing.T, rows, cols int) *chess.Board {
	t.Helper()
	b, err := chess.NewBoard(rows, cols)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", rows, cols, err)
	}
	return b
}

func TestNewBoard_Dimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"standard", 8, 8, false},
		{"smallest", 1, 1, false},
		{"largest", 20, 20, false},
		{"rectangular", 5, 12, false},
		{"zero rows", 0, 8, true},
		{"negative cols", 8, -1, true},
		{"too tall", 21, 8, true},
		{"too wide", 8, 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := chess.NewBoard(tt.rows, tt.cols)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				testutil.AssertTrue(t, b == nil, "no board on error")
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, b.Size(), tt.rows*tt.cols)
			for i := 0; i < b.Size(); i++ {
				testutil.AssertEqual(t, b.Get(chess.Square(i)), chess.EmptyToken)
			}
		})
	}
}

func TestBoard_CoordinateRoundTrip(t *testing.T) {
	for _, dims := range [][2]int{{8, 8}, {10, 10}, {20, 20}, {3, 15}} {
		b := mustBoard(t, dims[0], dims[1])
		for row := 0; row < b.Rows(); row++ {
			for col := 0; col < b.Cols(); col++ {
				sq, ok := b.SquareAt(row, col)
				if !ok {
					t.Fatalf("SquareAt(%d, %d) rejected on %dx%d", row, col, dims[0], dims[1])
				}
				coord, ok := b.Coordinate(sq)
				if !ok {
					t.Fatalf("Coordinate(%d) rejected", sq)
				}
				back, ok := b.Square(coord)
				if !ok || back != sq {
					t.Errorf("Square(%q) = %d, %v; want %d", coord, back, ok, sq)
				}
				r, c := b.RowCol(back)
				if r != row || c != col {
					t.Errorf("RowCol(%d) = (%d, %d); want (%d, %d)", back, r, c, row, col)
				}
			}
		}
	}
}

func TestBoard_Coordinates(t *testing.T) {
	b := mustBoard(t, 10, 10)

	tests := []struct {
		coord string
		row   int
		col   int
		ok    bool
	}{
		{"a1", 0, 0, true},
		{"e4", 3, 4, true},
		{"j10", 9, 9, true},
		{"a10", 9, 0, true},
		{"k1", 0, 0, false},
		{"a11", 0, 0, false},
		{"a0", 0, 0, false},
		{"", 0, 0, false},
		{"E4", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.coord, func(t *testing.T) {
			sq, ok := b.Square(tt.coord)
			testutil.AssertEqual(t, ok, tt.ok)
			if !ok {
				testutil.AssertEqual(t, sq, chess.NoSquare)
				return
			}
			row, col := b.RowCol(sq)
			testutil.AssertEqual(t, [2]int{row, col}, [2]int{tt.row, tt.col})
		})
	}
}

func TestBoard_OutOfRangeRejected(t *testing.T) {
	b := mustBoard(t, 8, 8)

	for _, sq := range []chess.Square{chess.NoSquare, 64, 1000} {
		if _, ok := b.Coordinate(sq); ok {
			t.Errorf("Coordinate(%d) accepted", sq)
		}
		testutil.AssertFalse(t, b.Set(sq, "R"), "Set(%d)", sq)
		testutil.AssertEqual(t, b.Get(sq), "")
		r, c := b.RowCol(sq)
		testutil.AssertEqual(t, [2]int{r, c}, [2]int{-1, -1})
	}
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if _, ok := b.SquareAt(rc[0], rc[1]); ok {
			t.Errorf("SquareAt(%d, %d) accepted", rc[0], rc[1])
		}
	}
}

func TestBoard_RelocateCarriesMovedFlag(t *testing.T) {
	b := mustBoard(t, 8, 8)
	e2, _ := b.Square("e2")
	e4, _ := b.Square("e4")
	e5, _ := b.Square("e5")

	b.Set(e2, "P")
	b.Set(e5, "p")
	testutil.AssertFalse(t, b.Moved(e2))

	testutil.AssertTrue(t, b.Relocate(e2, e4))
	testutil.AssertEqual(t, b.Get(e2), chess.EmptyToken)
	testutil.AssertEqual(t, b.Get(e4), "P")
	testutil.AssertTrue(t, b.Moved(e4), "moved flag travels")
	testutil.AssertFalse(t, b.Moved(e2), "origin cleared")

	testutil.AssertTrue(t, b.Relocate(e4, e5))
	testutil.AssertEqual(t, b.Get(e5), "P", "capture overwrites")
	testutil.AssertTrue(t, b.Moved(e5))

	testutil.AssertTrue(t, b.Replace(e5, "Q"))
	testutil.AssertTrue(t, b.Moved(e5), "Replace keeps moved flag")
}

func TestBoard_CopyIsIndependent(t *testing.T) {
	b := mustBoard(t, 8, 8)
	a1, _ := b.Square("a1")
	a2, _ := b.Square("a2")
	b.Set(a1, "R")

	c := b.Copy()
	testutil.AssertTrue(t, b.Equal(c))

	c.Relocate(a1, a2)
	testutil.AssertEqual(t, b.Get(a1), "R")
	testutil.AssertEqual(t, b.Get(a2), chess.EmptyToken)
	testutil.AssertFalse(t, b.Moved(a2))
	testutil.AssertFalse(t, b.Equal(c))

	coord, _ := c.Coordinate(a2)
	testutil.AssertEqual(t, coord, "a2", "copy keeps coordinate tables")
}

func TestBoard_Snapshot(t *testing.T) {
	b := mustBoard(t, 3, 2)
	a1, _ := b.Square("a1")
	b3, _ := b.Square("b3")
	b.Set(a1, "K")
	b.Set(b3, "k")

	want := [][]string{
		{".", "k"},
		{".", "."},
		{"K", "."},
	}
	testutil.AssertEqual(t, b.Snapshot(), want)

	snap := b.Snapshot()
	snap[0][0] = "X"
	testutil.AssertEqual(t, b.Snapshot(), want, "snapshot is a copy")
}

func TestBoard_String(t *testing.T) {
	b := mustBoard(t, 2, 3)
	sq, _ := b.Square("c2")
	b.Set(sq, "r")

	want := "2 . . r\n1 . . .\n  a b c\n"
	testutil.AssertEqual(t, b.String(), want)
}
