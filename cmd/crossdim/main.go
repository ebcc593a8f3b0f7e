// Command crossdim checks, fetches and demonstrates the crossdim engine
// libraries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/crossdim"
	"github.com/phanxgames/crossdim/cmd/crossdim/commands"
	"github.com/rs/zerolog"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	log := setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, Version); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogging points the crossdim logger at the console, filtered by
// CROSSDIM_LOG_LEVEL (default info).
func setupLogging() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("CROSSDIM_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "crossdim").Logger()
	crossdim.SetLogger(log)
	return log
}
