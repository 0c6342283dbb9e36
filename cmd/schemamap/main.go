package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/schemamap/internal/config"
	"github.com/usestring/schemamap/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// LOG_* and SCHEMAMAP_* variables seed the flag defaults
	cfg := config.Load()

	cleanup, err := logging.Setup(logging.FromConfig(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "schemamap: setting up logging:", err)
		os.Exit(1)
	}

	err = newRootCommand(cfg).ExecuteContext(ctx)
	_ = cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "schemamap:", err)
		os.Exit(1)
	}
}
