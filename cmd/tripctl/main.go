package main

import (
	"context"
	"fmt"
	"go-tripplanner/internal/cli"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.DefaultFactory).ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\ncancelled")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
