package chess

import (
	"fmt"

	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// Move is a single relocation from one square to another.
type Move struct {
	From Square
	To   Square
}

// NoMove is the zero transition used when a predicate is evaluated on a
// position rather than a move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// IsNone reports whether m is NoMove.
func (m Move) IsNone() bool {
	return m.From == NoSquare && m.To == NoSquare
}

// MoveString renders m as "<from><to>", e.g. "e2e4" or "a9a10".
// It returns "" if either square is off the board.
func (b *Board) MoveString(m Move) string {
	from, ok := b.Coordinate(m.From)
	if !ok {
		return ""
	}
	to, ok := b.Coordinate(m.To)
	if !ok {
		return ""
	}
	return from + to
}

// ParseMove parses a "<from><to>" move string.
//
// Coordinates are two or three characters, so the split point depends on
// length: 4 is 2+2, 6 is 3+3, and 5 is 3+2 when the third character is a
// rank digit ("a10b9") and 2+3 otherwise ("b9a10").
func (b *Board) ParseMove(s string) (Move, error) {
	var split int
	switch len(s) {
	case 4:
		split = 2
	case 5:
		if isDigit(s[2]) {
			split = 3
		} else {
			split = 2
		}
	case 6:
		split = 3
	default:
		return NoMove, &errors.MoveError{
			Err:  fmt.Errorf("length %d: %w", len(s), errors.ErrInvalidMove),
			Move: s,
		}
	}

	from, ok := b.Square(s[:split])
	if !ok {
		return NoMove, &errors.MoveError{
			Err:  fmt.Errorf("unknown square %q: %w", s[:split], errors.ErrInvalidMove),
			Move: s,
		}
	}
	to, ok := b.Square(s[split:])
	if !ok {
		return NoMove, &errors.MoveError{
			Err:  fmt.Errorf("unknown square %q: %w", s[split:], errors.ErrInvalidMove),
			Move: s,
		}
	}
	return Move{From: from, To: to}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
