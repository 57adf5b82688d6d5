// Command libraryd serves the library rental API and runs the outbox relay that feeds the waitlist.
//
// Usage:
//
//	libraryd [serve]   start the HTTP API and the relay until SIGINT or SIGTERM
//	libraryd seed      add the demo titles and members, keeping existing ones
//
// Configuration is read from CONFIG_PATH (fallback ./config.yaml) and the environment.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-rentals-go/shell/config"
	"github.com/AntonStoeckl/library-rentals-go/shell/logging"
)

const (
	commandServe = "serve"
	commandSeed  = "seed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("libraryd failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := commandServe
	if len(args) > 0 {
		command = args[0]
	}

	if command != commandServe && command != commandSeed {
		return fmt.Errorf("unknown command %q, want %s or %s", command, commandServe, commandSeed)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	if command == commandSeed {
		return seed(ctx, deps.store, logger)
	}

	return serve(ctx, cfg, deps, logger)
}
