// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/chess-variants-go/internal/config"
)

var (
	// Game options
	variantName = flag.String("variant", config.DefaultVariant, "Variant to play (see -list)")
	moveList    = flag.String("moves", "", "Space-separated moves to play, e.g. \"e2e4 e7e5\"")
	maxDepth    = flag.Int("depth", config.DefaultMaxLookahead, "Maximum rule lookahead (0 = unbounded)")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	showLegal    = flag.Bool("legal", false, "List the legal moves of the side to move")
	noCoords     = flag.Bool("nocoords", false, "Print boards without rank and file labels")
	compactJSON  = flag.Bool("compact", false, "Compact JSON output")
	listVariants = flag.Bool("list", false, "List the available variants and exit")
	playAll      = flag.Bool("all", false, "Play -moves in every variant and print each final state")

	// Batch options
	countMoves = flag.Bool("count", false, "Count legal moves for every variant after -moves")
	workers    = flag.Int("workers", config.DefaultWorkers, "Number of worker goroutines for -count")

	// Diagnostics
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 0, "Verbosity: 0 warnings, 1 info, 2 debug")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// options are the actions requested on the command line.
type options struct {
	list  bool
	count bool
	all   bool
	moves []string
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Variant = *variantName
	cfg.MaxLookahead = *maxDepth
	cfg.Workers = *workers
	cfg.Verbosity = *verbosity
	applyOutputFlags(cfg)
}

// applyOutputFlags configures output settings.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowLegal = *showLegal
	cfg.Output.Coordinates = !*noCoords
	if *compactJSON {
		cfg.Output.Indent = ""
	}
	cfg.Output.Batch = *playAll
}

// parseOptions collects the requested actions.
func parseOptions() options {
	return options{
		list:  *listVariants,
		count: *countMoves,
		all:   *playAll,
		moves: strings.Fields(*moveList),
	}
}
