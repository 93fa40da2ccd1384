package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mmtype/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(cli.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := cli.NewApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", "mmtype", err)
		os.Exit(1)
	}
}
