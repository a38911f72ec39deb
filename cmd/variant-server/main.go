// variant-server hosts variant games over HTTP and WebSocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chess-variants-go/internal/config"
	"github.com/lgbarn/chess-variants-go/internal/server"
	"github.com/lgbarn/chess-variants-go/internal/service"
)

var (
	addr      = flag.String("addr", envOr("VARIANT_ADDR", config.DefaultAddr), "Listen address ($VARIANT_ADDR)")
	name      = flag.String("variant", envOr("VARIANT_NAME", config.DefaultVariant), "Default variant ($VARIANT_NAME)")
	origins   = flag.String("origins", envOr("VARIANT_ORIGINS", "*"), "Allowed CORS origins ($VARIANT_ORIGINS)")
	maxDepth  = flag.Int("depth", config.DefaultMaxLookahead, "Maximum rule lookahead (0 = unbounded)")
	verbosity = flag.Int("v", 1, "Verbosity: 0 warnings, 1 info, 2 debug")
)

// envOr returns the environment value of key, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func buildConfig() *config.Config {
	return config.NewConfigBuilder().
		WithAddr(*addr).
		WithAllowOrigins(*origins).
		WithVariant(*name).
		WithMaxLookahead(*maxDepth).
		WithVerbosity(*verbosity).
		Build()
}

func main() {
	flag.Parse()

	cfg := buildConfig()
	slog.SetDefault(cfg.Logger())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	app := server.New(cfg, service.NewGameManager(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("listening", "addr", cfg.Server.Addr, "variant", cfg.Variant)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
