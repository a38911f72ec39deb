// Package chess provides the board model shared by every variant: sides,
// squares, coordinates and move strings.
package chess

import "strings"

// Side represents the owner of a piece or the player on turn.
type Side int

const (
	None Side = iota // Neutral pieces and empty squares
	White
	Black
)

// String returns the lower-case name of a side.
func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Opposite returns the opposing side. None has no opponent.
func (s Side) Opposite() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return None
}

// ParseSide converts "white"/"black"/"none" (any case, or w/b) to a Side.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	case "none", "neutral":
		return None, true
	}
	return None, false
}

// Square is a flat board index: row*cols + col, row 0 being rank 1.
type Square int

// NoSquare marks an absent or rejected square.
const NoSquare Square = -1

// Constants for board dimensions and coordinates.
const (
	// MaxDimension bounds both rows and cols.
	MaxDimension = 20

	// EmptyToken is the reserved token of an unoccupied square.
	EmptyToken = "."

	FileBase = 'a'
	RankBase = 1
)
