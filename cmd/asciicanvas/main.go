// Package main is the entry point for the asciicanvas drawing tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/asciicanvas/internal/console"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		console.NewSystem().Fatal(err)
		return 1
	}
	return 0
}
