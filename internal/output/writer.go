package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/game"
)

// StateWriter is the interface for writing game states to output.
// Different implementations handle different output formats (text, JSON).
type StateWriter interface {
	// WriteState writes a single game state to the output.
	WriteState(g *game.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewStateWriter returns the writer selected by cfg.Output.
func NewStateWriter(w io.Writer, cfg *config.Config) StateWriter {
	opts := outputOptions(cfg)
	if opts.JSONFormat {
		if opts.Batch {
			return NewJSONWriter(w, cfg)
		}
		return NewJSONWriterSingle(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes states as a rendered board.
type TextWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteState writes a state, separating consecutive states with a blank
// line.
func (tw *TextWriter) WriteState(g *game.Game) error {
	if tw.written > 0 {
		if _, err := fmt.Fprintln(tw.w); err != nil {
			return err
		}
	}
	writeState(tw.w, g, outputOptions(tw.cfg))
	tw.written++
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes states in JSON format.
// It buffers states and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	states []*JSONState
	single bool // If true, write each state immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches states and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each state immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteState converts g now, so later moves do not change the buffered
// document.
func (jw *JSONWriter) WriteState(g *game.Game) error {
	state := StateToJSON(g, jw.cfg)
	if jw.single {
		return encode(jw.w, state, outputOptions(jw.cfg).Indent)
	}
	jw.states = append(jw.states, state)
	return nil
}

// Flush writes all buffered states as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.states) == 0 {
		return nil
	}
	err := encode(jw.w, &JSONOutput{Games: jw.states}, outputOptions(jw.cfg).Indent)
	jw.states = jw.states[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
