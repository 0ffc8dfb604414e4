package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/mentionkit/internal/app"
	"github.com/dmitrymomot/mentionkit/pkg/config"
	"github.com/dmitrymomot/mentionkit/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[app.Config]()
	if err != nil {
		return err
	}
	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build service", logger.Error(err))
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
