// Package game runs the turn state machine of one match: it validates
// submitted moves against the side's legal set, applies them, and detects
// wins.
package game

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/rules"
	"github.com/lgbarn/chess-variants-go/internal/variant"
)

// Event is the outcome of a move submission.
type Event int

const (
	InvalidMove Event = iota
	MoveSucceeded
	WhiteWon
	BlackWon
	Tie // declared; no rule produces it yet
)

var eventNames = [...]string{"InvalidMove", "MoveSucceeded", "WhiteWon", "BlackWon", "Tie"}

func (e Event) String() string {
	if int(e) < len(eventNames) && e >= 0 {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// MarshalJSON encodes the event by name.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON decodes an event name.
func (e *Event) UnmarshalJSON(data []byte) error {
	return unmarshalName(data, eventNames[:], (*int)(e), "event")
}

// Status is the state of the match.
type Status int

const (
	Ongoing Status = iota
	WhiteVictory
	BlackVictory
	Drawn
)

var statusNames = [...]string{"ongoing", "white-won", "black-won", "tie"}

func (s Status) String() string {
	if int(s) < len(statusNames) && s >= 0 {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	return unmarshalName(data, statusNames[:], (*int)(s), "status")
}

func unmarshalName(data []byte, names []string, dst *int, kind string) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range names {
		if n == name {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, name)
}

// Game is one match. It owns its board exclusively and is not safe for
// concurrent use.
type Game struct {
	name   string
	board  *chess.Board
	engine *rules.Engine
	white  *rules.RuleSet
	black  *rules.RuleSet

	movesPerTurn int
	turn         chess.Side
	movesLeft    int
	status       Status
	ply          int
}

func logger() *slog.Logger {
	return slog.Default().With("component", "game")
}

// New starts a game from setup with white to move. The game takes
// ownership of setup.Board.
func New(setup *variant.Setup) *Game {
	perTurn := setup.MovesPerTurn
	if perTurn < 1 {
		perTurn = 1
	}
	return &Game{
		name:         setup.Name,
		board:        setup.Board,
		engine:       rules.NewEngine(setup.Generator),
		white:        &setup.White,
		black:        &setup.Black,
		movesPerTurn: perTurn,
		turn:         chess.White,
		movesLeft:    perTurn,
		status:       Ongoing,
	}
}

// SubmitMove attempts move for side. Every rejection is reported as
// InvalidMove and leaves the game unchanged.
func (g *Game) SubmitMove(move string, side chess.Side) Event {
	ev, err := g.Submit(move, side)
	if err != nil {
		logger().Debug("move rejected", "variant", g.name, "move", move, "side", side, "reason", err)
	}
	return ev
}

// Submit is SubmitMove with the rejection reason. The error wraps
// ErrGameOver, ErrNotYourTurn, ErrInvalidMove or ErrIllegalMove.
func (g *Game) Submit(move string, side chess.Side) (Event, error) {
	if g.status != Ongoing {
		return InvalidMove, &errors.MoveError{Err: errors.ErrGameOver, Move: move, Side: side.String()}
	}
	if side != g.turn {
		return InvalidMove, &errors.MoveError{Err: errors.ErrNotYourTurn, Move: move, Side: side.String()}
	}
	m, err := g.board.ParseMove(move)
	if err != nil {
		return InvalidMove, err
	}
	l, ok := g.engine.Find(g.rules(side), g.board, m)
	if !ok {
		return InvalidMove, &errors.MoveError{Err: errors.ErrIllegalMove, Move: move, Side: side.String()}
	}

	g.engine.ApplyLegal(g.board, l)
	g.ply++
	log := logger().With("variant", g.name, "ply", g.ply)
	log.Debug("move applied", "move", move, "side", side, "special", l.Special != nil)

	switch {
	case g.engine.Wins(g.white, g.board):
		g.status = WhiteVictory
		log.Info("game over", "winner", chess.White)
		return WhiteWon, nil
	case g.engine.Wins(g.black, g.board):
		g.status = BlackVictory
		log.Info("game over", "winner", chess.Black)
		return BlackWon, nil
	}

	if l.Special != nil || g.movesLeft <= 1 {
		g.turn = g.turn.Opposite()
		g.movesLeft = g.movesPerTurn
	} else {
		g.movesLeft--
	}
	return MoveSucceeded, nil
}

func (g *Game) rules(side chess.Side) *rules.RuleSet {
	if side == chess.Black {
		return g.black
	}
	return g.white
}

// LegalMoves maps each origin coordinate of side's legal moves to its
// destinations, ordered by square index. It is empty for a finished game
// or a neutral side.
func (g *Game) LegalMoves(side chess.Side) map[string][]string {
	out := make(map[string][]string)
	if g.status != Ongoing || (side != chess.White && side != chess.Black) {
		return out
	}
	for _, l := range g.engine.LegalMoves(g.rules(side), g.board) {
		from, _ := g.board.Coordinate(l.Move.From)
		to, _ := g.board.Coordinate(l.Move.To)
		out[from] = append(out[from], to)
	}
	return out
}

// BoardSnapshot exports the board top rank first; "." marks empty squares.
func (g *Game) BoardSnapshot() [][]string { return g.board.Snapshot() }

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board { return g.board.Copy() }

// Turn returns the side to move.
func (g *Game) Turn() chess.Side { return g.turn }

// MovesLeft returns the moves remaining in the current turn.
func (g *Game) MovesLeft() int { return g.movesLeft }

// Status returns the match state.
func (g *Game) Status() Status { return g.status }

// Variant returns the variant identifier.
func (g *Game) Variant() string { return g.name }

// Ply returns the number of accepted moves.
func (g *Game) Ply() int { return g.ply }
