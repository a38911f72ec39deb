// Package output renders game state as text or JSON.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/game"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// RenderBoard writes b one rank per line, top rank first. With coords set,
// each rank is prefixed by its number and a file row closes the grid.
func RenderBoard(w io.Writer, b *chess.Board, coords bool) {
	if coords {
		fmt.Fprint(w, b.String())
		return
	}
	for _, rank := range b.Snapshot() {
		fmt.Fprintln(w, strings.Join(rank, " "))
	}
}

func outputOptions(cfg *config.Config) *config.OutputConfig {
	if cfg == nil || cfg.Output == nil {
		return config.NewOutputConfig()
	}
	return cfg.Output
}

func writeState(w io.Writer, g *game.Game, opts *config.OutputConfig) {
	fmt.Fprintf(w, "variant: %s\n", g.Variant())
	RenderBoard(w, g.Board(), opts.Coordinates)

	if g.Status() == game.Ongoing {
		fmt.Fprintf(w, "turn: %s (%d to play)\n", g.Turn(), g.MovesLeft())
	} else {
		fmt.Fprintf(w, "status: %s\n", g.Status())
	}

	if opts.ShowLegal {
		writeLegal(w, g.LegalMoves(g.Turn()))
	}
}

// writeLegal lists legal moves as coordinate pairs, wrapped at 80 columns.
func writeLegal(w io.Writer, legal map[string][]string) {
	moves := flattenLegal(legal)
	fmt.Fprintf(w, "legal: %d\n", len(moves))
	if len(moves) == 0 {
		return
	}
	ow := NewOutputWriter(w, 80)
	for _, m := range moves {
		ow.Write(m)
	}
	ow.NewLine()
}

// flattenLegal turns an origin to destinations map into sorted move
// strings.
func flattenLegal(legal map[string][]string) []string {
	var moves []string
	for from, tos := range legal {
		for _, to := range tos {
			moves = append(moves, from+to)
		}
	}
	sort.Strings(moves)
	return moves
}
