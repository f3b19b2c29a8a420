package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/app"
	"github.com/mamadbah2/canehaul/internal/cli"
	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(open)
	if err := cli.Execute(ctx, root, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

func open(ctx context.Context, envFile string) (cli.Backend, func(), error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	baseLogger, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	baseLogger = baseLogger.Named("haulctl")

	application, err := app.New(ctx, cfg, baseLogger)
	if err != nil {
		_ = baseLogger.Sync()
		return nil, nil, err
	}

	closeFn := func() {
		if err := application.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
		_ = baseLogger.Sync()
	}
	return application.Reporting, closeFn, nil
}
