// Package variant resolves variant identifiers to ready-to-play setups:
// a board, a move generator, and one rule set per side.
package variant

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lgbarn/chess-variants-go/internal/chess"
	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/engine"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/predicate"
	"github.com/lgbarn/chess-variants-go/internal/rules"
)

// Setup is everything a game needs at construction time. Each call to New
// returns a fresh board; rule sets are immutable.
type Setup struct {
	Name         string
	Board        *chess.Board
	Generator    *engine.Generator
	White        rules.RuleSet
	Black        rules.RuleSet
	MovesPerTurn int
}

// Rules returns the rule set of side, or nil for None.
func (s *Setup) Rules(side chess.Side) *rules.RuleSet {
	switch side {
	case chess.White:
		return &s.White
	case chess.Black:
		return &s.Black
	}
	return nil
}

// Info describes a registered variant.
type Info struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Rows         int      `json:"rows"`
	Cols         int      `json:"cols"`
	MovesPerTurn int      `json:"movesPerTurn"`
	Pieces       []string `json:"pieces"` // catalogue tokens, white upper case
}

type definition struct {
	info   Info
	layout string
	pieces pieceOptions
	rules  func(side chess.Side) rules.RuleSet
}

var registry = map[string]definition{
	"standard": {
		info:   Info{Description: "orthodox chess; checkmate wins", Rows: 8, Cols: 8, MovesPerTurn: 1},
		layout: engine.StandardLayout,
		pieces: pieceOptions{royalKings: true, promoteTo: "Q"},
		rules:  checkmateRules(true),
	},
	"capture-the-king": {
		info:   Info{Description: "no check rule; capturing the king wins", Rows: 8, Cols: 8, MovesPerTurn: 1},
		layout: engine.StandardLayout,
		pieces: pieceOptions{royalKings: true, promoteTo: "Q"},
		rules:  captureTheKingRules,
	},
	"anti-chess": {
		info:   Info{Description: "captures are compulsory; losing every piece wins", Rows: 8, Cols: 8, MovesPerTurn: 1},
		layout: engine.StandardLayout,
		pieces: pieceOptions{royalKings: false, promoteTo: "Q"},
		rules:  antiChessRules,
	},
	"marseillais": {
		info:   Info{Description: "capture-the-king with two moves per turn", Rows: 8, Cols: 8, MovesPerTurn: 2},
		layout: engine.StandardLayout,
		pieces: pieceOptions{royalKings: true, promoteTo: "Q"},
		rules:  captureTheKingRules,
	},
	"grand": {
		info:   Info{Description: "10x10 with chancellor and archbishop; checkmate wins", Rows: 10, Cols: 10, MovesPerTurn: 1},
		layout: "r8r/1nbqkcabn1/pppppppppp/10/10/10/10/PPPPPPPPPP/1NBQKCABN1/R8R",
		pieces: pieceOptions{royalKings: true, promoteTo: "Q", compound: true},
		rules:  checkmateRules(false),
	},
}

func logger() *slog.Logger {
	return slog.Default().With("component", "variant")
}

// Names lists the registered variant identifiers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the metadata of every registered variant, sorted by name.
func Describe() []Info {
	var out []Info
	for _, name := range Names() {
		def := registry[name]
		info := def.info
		info.Name = name
		if cat, err := engine.NewCatalogue(orthodoxPieces(def.pieces)...); err == nil {
			info.Pieces = cat.Tokens()
		} else {
			logger().Warn("catalogue failed", "variant", name, "error", err)
		}
		out = append(out, info)
	}
	return out
}

// New builds the named variant. An unknown name returns ErrInvalidConfig.
// A nil cfg uses the defaults.
func New(name string, cfg *config.Config) (*Setup, error) {
	def, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "variant %q", name)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	cat, err := engine.NewCatalogue(orthodoxPieces(def.pieces)...)
	if err != nil {
		return nil, errors.Wrapf(err, "variant %q", name)
	}
	board, err := engine.ParseLayout(def.info.Rows, def.info.Cols, def.layout, cat)
	if err != nil {
		return nil, errors.Wrapf(err, "variant %q", name)
	}

	s := &Setup{
		Name:         name,
		Board:        board,
		Generator:    engine.NewGenerator(cat),
		White:        def.rules(chess.White),
		Black:        def.rules(chess.Black),
		MovesPerTurn: def.info.MovesPerTurn,
	}
	for _, rs := range []*rules.RuleSet{&s.White, &s.Black} {
		if err := rs.CheckLookahead(cfg.MaxLookahead); err != nil {
			return nil, errors.Wrapf(err, "variant %q", name)
		}
	}

	logger().Debug("variant built", "name", name, "rows", board.Rows(), "cols", board.Cols())
	return s, nil
}

// checkmateRules forbids leaving the royal capturable and wins when the
// opponent is attacked and every reply still loses the royal.
func checkmateRules(castling bool) func(chess.Side) rules.RuleSet {
	return func(side chess.Side) rules.RuleSet {
		me, opp := side.String(), side.Opposite().String()
		rs := rules.RuleSet{
			Side:     side,
			Legality: predicate.MustParse(fmt.Sprintf("(forall %s (not (captured royal:%s)))", opp, me)),
			Win: predicate.MustParse(fmt.Sprintf(
				"(and (attacked royal:%[2]s %[1]s this) (forall %[2]s (not (forall %[1]s (not (captured royal:%[2]s))))))",
				me, opp)),
		}
		if castling {
			rs.Specials = castlingMoves(side)
		}
		return rs
	}
}

func captureTheKingRules(side chess.Side) rules.RuleSet {
	return rules.RuleSet{
		Side:     side,
		Legality: predicate.True,
		Win:      predicate.MustParse(fmt.Sprintf("(remaining royal:%s == 0 this)", side.Opposite())),
		Specials: castlingMoves(side),
	}
}

// antiChessRules make captures compulsory: a move is legal if it captures,
// or if no capture was available before it.
func antiChessRules(side chess.Side) rules.RuleSet {
	me, opp := side.String(), side.Opposite().String()
	return rules.RuleSet{
		Side: side,
		Legality: predicate.MustParse(fmt.Sprintf(
			"(or (captured any:%[2]s) (forall %[1]s this (not (captured any:%[2]s))))", me, opp)),
		Win: predicate.MustParse(fmt.Sprintf("(remaining any:%s == 0 this)", me)),
	}
}

// castlingMoves returns both castling moves on the orthodox 8x8 board.
func castlingMoves(side chess.Side) []rules.SpecialMove {
	rank := "1"
	if side == chess.Black {
		rank = "8"
	}
	sq := func(file string) string { return file + rank }
	sqs := func(files ...string) []string {
		out := make([]string, len(files))
		for i, f := range files {
			out[i] = sq(f)
		}
		return out
	}
	return []rules.SpecialMove{
		rules.Castling("O-O", side, sq("e"), sq("g"), sq("h"), sq("f"), sqs("f", "g"), sqs("f")),
		rules.Castling("O-O-O", side, sq("e"), sq("c"), sq("a"), sq("d"), sqs("b", "c", "d"), sqs("d")),
	}
}
