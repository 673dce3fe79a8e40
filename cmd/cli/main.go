package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/escc-report-api/internal/client/cli"
	"github.com/dmitrijs2005/escc-report-api/internal/client/config"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	log, sync, err := logging.New(os.Stderr, "text", "info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer sync()

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
