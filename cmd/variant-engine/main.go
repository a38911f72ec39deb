// variant-engine plays move sequences in configurable chess variants and
// reports the resulting position, legal moves and outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/errors"
	"github.com/lgbarn/chess-variants-go/internal/game"
	"github.com/lgbarn/chess-variants-go/internal/output"
	"github.com/lgbarn/chess-variants-go/internal/variant"
	"github.com/lgbarn/chess-variants-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("variant-engine version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	setupOutputFile(cfg)
	slog.SetDefault(cfg.Logger())

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, parseOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration errors and 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, errors.ErrInvalidConfig) {
		return 2
	}
	return 1
}

// run performs the action selected by opts.
func run(ctx context.Context, cfg *config.Config, opts options) error {
	switch {
	case opts.list:
		return listAll(cfg)
	case opts.count:
		return countAll(ctx, cfg, opts.moves)
	case opts.all:
		return play(cfg, variant.Names(), opts.moves)
	default:
		return play(cfg, []string{cfg.Variant}, opts.moves)
	}
}

// play plays moves for the side to move in each named variant and writes
// the final states. Moves after a win are reported as errors.
func play(cfg *config.Config, names []string, moves []string) error {
	w := output.NewStateWriter(cfg.OutputFile, cfg)
	for _, name := range names {
		g, err := playMoves(cfg, name, moves)
		if err != nil {
			return err
		}
		if err := w.WriteState(g); err != nil {
			return errors.Wrap(err, "write state")
		}
	}
	return errors.Wrap(w.Close(), "write state")
}

func playMoves(cfg *config.Config, name string, moves []string) (*game.Game, error) {
	setup, err := variant.New(name, cfg)
	if err != nil {
		return nil, err
	}
	g := game.New(setup)

	for i, mv := range moves {
		ev, err := g.Submit(mv, g.Turn())
		if err != nil {
			return nil, errors.Wrapf(err, "%s move %d", name, i+1)
		}
		slog.Info("played", "variant", name, "move", mv, "event", ev)
	}
	return g, nil
}

// countAll counts the legal moves after moves in every variant, one game
// per worker job.
func countAll(ctx context.Context, cfg *config.Config, moves []string) error {
	items := worker.VariantItems(variant.Names(), moves)
	results, err := worker.Run(ctx, items, worker.CountLegalMoves(cfg), worker.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}

	counts := make([]output.JSONCount, len(results))
	for i, r := range results {
		counts[i] = output.JSONCount{Variant: r.Variant, Moves: r.Legal}
		if r.Error != nil {
			counts[i].Error = r.Error.Error()
		}
	}

	if cfg.Output.JSONFormat {
		return output.OutputCountsJSON(counts, cfg.OutputFile, cfg)
	}
	for _, c := range counts {
		if c.Error != "" {
			fmt.Fprintf(cfg.OutputFile, "%-18s error: %s\n", c.Variant, c.Error)
			continue
		}
		fmt.Fprintf(cfg.OutputFile, "%-18s %d\n", c.Variant, c.Moves)
	}
	return nil
}

// listAll prints the registered variants.
func listAll(cfg *config.Config) error {
	for _, info := range variant.Describe() {
		fmt.Fprintf(cfg.OutputFile, "%-18s %dx%d  %s (%s)\n", info.Name, info.Cols, info.Rows, info.Description, strings.Join(info.Pieces, ""))
	}
	return nil
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: variant-engine [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays moves in a chess variant and prints the resulting position.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are coordinate pairs (e2e4, a10a9), each played by the side to move.\n")
	fmt.Fprintf(os.Stderr, "\nVariants:\n")
	for _, name := range variant.Names() {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
}
