// Package testutil provides shared test utilities for the chess-variants-go
// project. These utilities reduce code duplication across test files and
// provide consistent test setup helpers.
//
// Only external test packages may import it, since it depends on the domain
// packages.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/engine"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/variant"
)

// MustBoard builds a rows x cols board from a layout string.
// It calls t.Fatal if the layout is malformed.
func MustBoard(t *testing.T, rows, cols int, layout string) *chess.Board {
	t.Helper()
	b, err := engine.ParseLayout(rows, cols, layout, nil)
	if err != nil {
		t.Fatalf("failed to parse layout %q: %v", layout, err)
	}
	return b
}

// MustSquare resolves a coordinate on b. It calls t.Fatal if the
// coordinate is not on the board.
func MustSquare(t *testing.T, b *chess.Board, coord string) chess.Square {
	t.Helper()
	sq, ok := b.Square(coord)
	if !ok {
		t.Fatalf("%s is not on a %dx%d board", coord, b.Rows(), b.Cols())
	}
	return sq
}

// NewGame starts a game of the named variant with default configuration.
// It calls t.Fatal if the variant cannot be built.
func NewGame(t *testing.T, name string) *game.Game {
	t.Helper()
	s, err := variant.New(name, nil)
	if err != nil {
		t.Fatalf("failed to build variant %q: %v", name, err)
	}
	return game.New(s)
}

// MustPlay submits space-separated moves, each for the side to move, and
// returns the last event. Any rejected move aborts the test.
func MustPlay(t *testing.T, g *game.Game, moves string) game.Event {
	t.Helper()
	ev := game.MoveSucceeded
	for _, mv := range strings.Fields(moves) {
		side := g.Turn()
		var err error
		ev, err = g.Submit(mv, side)
		if err != nil {
			t.Fatalf("%s by %s rejected: %v", mv, side, err)
		}
	}
	return ev
}
