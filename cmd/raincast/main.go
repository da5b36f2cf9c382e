package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/izzyreal/raincast/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "raincast: %v\n", err)
		}
		os.Exit(1)
	}
}
