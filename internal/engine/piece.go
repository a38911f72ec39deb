// Package engine generates pseudo-legal moves for pieces described by
// declarative slide and jump patterns.
package engine

import (
	"fmt"
	"sort"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// Pattern is one movement rule of a piece. The set of implementations is
// closed: Slide and Jump.
type Pattern interface {
	pattern()
	String() string
}

// Slide moves along (DRow, DCol) for Min..Max steps and is blocked by the
// first occupied square.
type Slide struct {
	DRow, DCol int
	Min, Max   int
}

// Jump moves by a single fixed offset and ignores intervening squares.
type Jump struct {
	DRow, DCol int
}

func (Slide) pattern() {}
func (Jump) pattern()  {}

func (s Slide) String() string {
	return fmt.Sprintf("slide(%d,%d)[%d..%d]", s.DRow, s.DCol, s.Min, s.Max)
}

func (j Jump) String() string {
	return fmt.Sprintf("jump(%d,%d)", j.DRow, j.DCol)
}

// Piece describes one kind of piece. It is immutable once placed in a
// Catalogue; per-square state such as "has moved" lives on the board.
type Piece struct {
	Token string
	Side  chess.Side

	Movement []Pattern // non-capturing steps
	Capture  []Pattern // capturing steps

	// Initial patterns are extra non-capturing steps available while the
	// piece has not moved (the pawn double step).
	Initial []Pattern

	// Repeat is the number of extra legs the piece may chain in one move.
	Repeat int

	Royal bool

	// PromotesTo replaces the piece when it lands on its far rank.
	PromotesTo string
}

// Catalogue maps board tokens to piece descriptors.
type Catalogue struct {
	pieces map[string]*Piece
	tokens []string
}

// NewCatalogue validates pieces and indexes them by token.
func NewCatalogue(pieces ...Piece) (*Catalogue, error) {
	c := &Catalogue{pieces: make(map[string]*Piece, len(pieces))}
	for i := range pieces {
		p := pieces[i]
		if err := validatePiece(&p); err != nil {
			return nil, err
		}
		if _, dup := c.pieces[p.Token]; dup {
			return nil, fmt.Errorf("duplicate piece token %q: %w", p.Token, errors.ErrInvalidConfig)
		}
		c.pieces[p.Token] = &p
		c.tokens = append(c.tokens, p.Token)
	}
	for _, p := range c.pieces {
		if p.PromotesTo == "" {
			continue
		}
		if _, ok := c.pieces[p.PromotesTo]; !ok {
			return nil, fmt.Errorf("piece %q promotes to unknown token %q: %w", p.Token, p.PromotesTo, errors.ErrInvalidConfig)
		}
	}
	sort.Strings(c.tokens)
	return c, nil
}

func validatePiece(p *Piece) error {
	if p.Token == "" || p.Token == chess.EmptyToken {
		return fmt.Errorf("piece token %q is reserved: %w", p.Token, errors.ErrInvalidConfig)
	}
	if p.Repeat < 0 {
		return fmt.Errorf("piece %q: negative repeat %d: %w", p.Token, p.Repeat, errors.ErrInvalidConfig)
	}
	for _, set := range [][]Pattern{p.Movement, p.Capture, p.Initial} {
		for _, pat := range set {
			if err := validatePattern(pat); err != nil {
				return fmt.Errorf("piece %q: %w", p.Token, err)
			}
		}
	}
	return nil
}

func validatePattern(pat Pattern) error {
	switch pat := pat.(type) {
	case Slide:
		if pat.DRow == 0 && pat.DCol == 0 {
			return fmt.Errorf("%s has no direction: %w", pat, errors.ErrInvalidConfig)
		}
		if pat.Min < 1 || pat.Max < pat.Min {
			return fmt.Errorf("%s has an empty step range: %w", pat, errors.ErrInvalidConfig)
		}
	case Jump:
		if pat.DRow == 0 && pat.DCol == 0 {
			return fmt.Errorf("%s has no offset: %w", pat, errors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown pattern %T: %w", pat, errors.ErrInvalidConfig)
	}
	return nil
}

// Lookup returns the piece registered for token.
func (c *Catalogue) Lookup(token string) (*Piece, bool) {
	p, ok := c.pieces[token]
	return p, ok
}

// SideOf returns the side of token's piece, or None if the token is unknown.
func (c *Catalogue) SideOf(token string) chess.Side {
	if p, ok := c.pieces[token]; ok {
		return p.Side
	}
	return chess.None
}

// Tokens lists the registered tokens in sorted order.
func (c *Catalogue) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Pattern builders.

// Rays returns unbounded slides along each direction.
func Rays(dirs ...[2]int) []Pattern {
	out := make([]Pattern, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, Slide{DRow: d[0], DCol: d[1], Min: 1, Max: chess.MaxDimension})
	}
	return out
}

// Steps returns one-square slides along each direction.
func Steps(dirs ...[2]int) []Pattern {
	out := make([]Pattern, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, Slide{DRow: d[0], DCol: d[1], Min: 1, Max: 1})
	}
	return out
}

// Leaps returns the jumps reachable from (a, b) by every sign and
// transposition, deduplicated. Leaps(1, 2) is the knight.
func Leaps(a, b int) []Pattern {
	seen := make(map[Jump]bool)
	var out []Pattern
	for _, d := range [][2]int{{a, b}, {b, a}} {
		for _, sr := range []int{1, -1} {
			for _, sc := range []int{1, -1} {
				j := Jump{DRow: d[0] * sr, DCol: d[1] * sc}
				if seen[j] {
					continue
				}
				seen[j] = true
				out = append(out, j)
			}
		}
	}
	return out
}

// Direction sets.
var (
	Orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	Diagonal   = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	AllDirs    = append(append([][2]int{}, Orthogonal...), Diagonal...)
)

// Concat joins pattern sets.
func Concat(sets ...[]Pattern) []Pattern {
	var out []Pattern
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
