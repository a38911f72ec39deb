// Package config provides configuration for the variant engine and server.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lgbarn/chess-variants-go/internal/errors"
)

// Defaults.
const (
	DefaultVariant      = "standard"
	DefaultMaxLookahead = 2
	DefaultWorkers      = 1
	DefaultAddr         = ":3000"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=warnings, 1=info, 2+=debug

	// Variant is the identifier used when a request names none.
	Variant string

	// MaxLookahead bounds how deeply rule predicates may nest "for every"
	// quantifiers. 0 disables the check.
	MaxLookahead int

	// Workers is the size of the batch worker pool.
	Workers int

	Output *OutputConfig
	Server *ServerConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:    0,
		Variant:      DefaultVariant,
		MaxLookahead: DefaultMaxLookahead,
		Workers:      DefaultWorkers,
		Output:       NewOutputConfig(),
		Server:       NewServerConfig(),
		OutputFile:   os.Stdout,
		LogFile:      os.Stderr,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.MaxLookahead < 0 {
		return fmt.Errorf("max lookahead %d is negative: %w", c.MaxLookahead, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.Variant == "" {
		return fmt.Errorf("no default variant: %w", errors.ErrInvalidConfig)
	}
	if c.Server != nil && c.Server.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// Level maps Verbosity to a log level.
func (c *Config) Level() slog.Level {
	switch {
	case c.Verbosity <= 0:
		return slog.LevelWarn
	case c.Verbosity == 1:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Logger builds a text logger writing to LogFile at the configured level.
func (c *Config) Logger() *slog.Logger {
	w := c.LogFile
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
