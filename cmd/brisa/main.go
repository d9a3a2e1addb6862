package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/cli"
	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger.Get())
	err = cli.Execute(ctx, app, os.Args[1:])
	if cerr := app.Close(); cerr != nil {
		logger.Get().Warn("closing storage", zap.Error(cerr))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
