package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Cancelling the context stops scheduling further sections
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
