package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/soundverse/soundverse/internal/app"
	"github.com/soundverse/soundverse/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := app.Seed(ctx, cfg); err != nil {
			return err
		}

		slog.Info("seeded catalog with fixture clips")
		return nil
	}

	return app.Run(ctx, cfg)
}
