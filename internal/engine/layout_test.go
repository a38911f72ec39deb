package engine_test

import (
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/engine"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/testutil"
)

func TestParseLayout_Standard(t *testing.T) {
	b, err := engine.ParseLayout(8, 8, engine.StandardLayout, nil)
	testutil.AssertNoError(t, err)

	snap := b.Snapshot()
	testutil.AssertEqual(t, snap[0], []string{"r", "n", "b", "q", "k", "b", "n", "r"})
	testutil.AssertEqual(t, snap[6], []string{"P", "P", "P", "P", "P", "P", "P", "P"})
	testutil.AssertEqual(t, snap[4], []string{".", ".", ".", ".", ".", ".", ".", "."})

	e1, _ := b.Square("e1")
	testutil.AssertEqual(t, b.Get(e1), "K")

	out, err := engine.Layout(b)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, engine.StandardLayout)
}

func TestParseLayout_MultiDigitRuns(t *testing.T) {
	layout := "r8r/10/10/10/10/10/10/10/10/R4K3R"
	b, err := engine.ParseLayout(10, 10, layout, nil)
	testutil.AssertNoError(t, err)

	j10, _ := b.Square("j10")
	f1, _ := b.Square("f1")
	testutil.AssertEqual(t, b.Get(j10), "r")
	testutil.AssertEqual(t, b.Get(f1), "K")

	out, err := engine.Layout(b)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, layout)
}

func TestParseLayout_Errors(t *testing.T) {
	cat := testCatalogue(t)

	tests := []struct {
		name   string
		rows   int
		layout string
		cat    *engine.Catalogue
	}{
		{"too few ranks", 8, "8/8", nil},
		{"rank too long", 2, "9/8", nil},
		{"rank too short", 2, "7/8", nil},
		{"piece past edge", 2, "8R/8", nil},
		{"zero run", 2, "08/8", nil},
		{"lone zero", 2, "8/0R7", nil},
		{"unknown piece", 2, "Z7/8", cat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ParseLayout(tt.rows, 8, tt.layout, tt.cat)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidLayout)
			var pe *errors.ParseError
			testutil.AssertTrue(t, errors.As(err, &pe), "error is a *ParseError")
		})
	}

	_, err := engine.ParseLayout(0, 8, "", nil)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}
