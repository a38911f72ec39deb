package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// StandardLayout is the initial position of orthodox chess.
const StandardLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParseLayout builds a rows x cols board from a placement string.
//
// The string lists ranks top first, separated by '/'. Each rank is a
// sequence of one-character piece tokens and decimal empty-run counts
// ("10" skips ten files). When cat is non-nil every token must be in it.
func ParseLayout(rows, cols int, layout string, cat *Catalogue) (*chess.Board, error) {
	b, err := chess.NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	ranks := strings.Split(layout, "/")
	if len(ranks) != rows {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidLayout,
			Input:    layout,
			Pos:      -1,
			Expected: fmt.Sprintf("%d ranks", rows),
			Got:      strconv.Itoa(len(ranks)),
		}
	}

	offset := 0
	for i, rank := range ranks {
		row := rows - 1 - i
		if err := parseRank(b, row, rank, offset, layout, cat); err != nil {
			return nil, err
		}
		offset += len(rank) + 1
	}
	return b, nil
}

// parseRank fills one row of b. offset is the byte position of rank within
// the full layout, for error reporting.
func parseRank(b *chess.Board, row int, rank string, offset int, layout string, cat *Catalogue) error {
	col := 0
	for i := 0; i < len(rank); i++ {
		c := rank[i]
		pos := offset + i

		if c >= '0' && c <= '9' {
			j := i
			for j < len(rank) && rank[j] >= '0' && rank[j] <= '9' {
				j++
			}
			if c == '0' {
				return &errors.ParseError{Err: errors.ErrInvalidLayout, Input: layout, Pos: pos, Got: fmt.Sprintf("empty run %q", rank[i:j])}
			}
			n, _ := strconv.Atoi(rank[i:j])
			col += n
			i = j - 1
			if col > b.Cols() {
				return overflow(layout, pos, b.Cols())
			}
			continue
		}

		token := string(c)
		if token == chess.EmptyToken {
			col++
			if col > b.Cols() {
				return overflow(layout, pos, b.Cols())
			}
			continue
		}
		if cat != nil {
			if _, ok := cat.Lookup(token); !ok {
				return &errors.ParseError{Err: errors.ErrInvalidLayout, Input: layout, Pos: pos, Got: fmt.Sprintf("unknown piece %q", token)}
			}
		}
		sq, ok := b.SquareAt(row, col)
		if !ok {
			return overflow(layout, pos, b.Cols())
		}
		b.Set(sq, token)
		col++
	}

	if col != b.Cols() {
		return &errors.ParseError{
			Err:      errors.ErrInvalidLayout,
			Input:    layout,
			Pos:      offset,
			Expected: fmt.Sprintf("%d files", b.Cols()),
			Got:      strconv.Itoa(col),
		}
	}
	return nil
}

func overflow(layout string, pos, cols int) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidLayout,
		Input:    layout,
		Pos:      pos,
		Expected: fmt.Sprintf("at most %d files", cols),
		Got:      "more",
	}
}

// Layout renders b as a placement string accepted by ParseLayout.
// Tokens longer than one character cannot be expressed and are an error.
func Layout(b *chess.Board) (string, error) {
	var sb strings.Builder
	for i, rank := range b.Snapshot() {
		if i > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for _, token := range rank {
			if token == chess.EmptyToken {
				empty++
				continue
			}
			if len(token) != 1 || token[0] == '/' || (token[0] >= '0' && token[0] <= '9') {
				return "", fmt.Errorf("token %q has no layout form: %w", token, errors.ErrInvalidLayout)
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(token)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String(), nil
}
