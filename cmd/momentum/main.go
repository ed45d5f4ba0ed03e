package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"momentum/internal/cli"
	"momentum/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader(), cli.NewAPIFactory(os.Stderr), os.Stdout)
	if err := root.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
