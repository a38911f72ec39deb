package worker

import (
	"log/slog"

	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/variant"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "worker")
}

// CountLegalMoves returns a ProcessFunc that builds the item's variant,
// plays its moves and counts the legal moves of the side to move.
func CountLegalMoves(cfg *config.Config) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Index: item.Index, Variant: item.Variant}

		setup, err := variant.New(item.Variant, cfg)
		if err != nil {
			res.Error = err
			return res
		}
		g := game.New(setup)
		for _, mv := range item.Moves {
			if _, err := g.Submit(mv, g.Turn()); err != nil {
				res.Error = errors.Wrapf(err, "%s after %d moves", item.Variant, g.Ply())
				return res
			}
		}

		res.Game = g
		for _, tos := range g.LegalMoves(g.Turn()) {
			res.Legal += len(tos)
		}
		logger().Debug("counted", "variant", item.Variant, "ply", g.Ply(), "legal", res.Legal)
		return res
	}
}

// VariantItems returns one item per name, each playing moves.
func VariantItems(names []string, moves []string) []WorkItem {
	items := make([]WorkItem, len(names))
	for i, name := range names {
		items[i] = WorkItem{Variant: name, Moves: moves, Index: i}
	}
	return items
}
