package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/soundverse/soundverse/internal/config"
	"github.com/soundverse/soundverse/internal/database/postgres"
	"github.com/soundverse/soundverse/internal/service"
	pkgpostgres "github.com/soundverse/soundverse/pkg/postgres"
	"golang.org/x/sync/errgroup"

	api "github.com/soundverse/soundverse/internal/api/http"
)

const migrationsPath = "file://migrations"

// Run starts the service in normal mode: non-destructive schema sync, then
// HTTP listening until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := pkgpostgres.New(
		ctx,
		cfg.Postgres.DSN(),
		pkgpostgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pkgpostgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pkgpostgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pkgpostgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pkgpostgres.RunMigrations(migrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	clipRepo := postgres.NewClipRepository(db)
	clipSvc := service.NewClipService(clipRepo)

	logger := httplog.NewLogger("soundverse", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  cfg.Env != config.EnvProd,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        api.NewRouter(logger, clipSvc),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

// Seed rebuilds the schema from scratch and inserts the fixture clips.
// The HTTP listener is never started; the caller exits once Seed returns.
func Seed(ctx context.Context, cfg *config.Config) error {
	const op = "app.Seed"

	if err := pkgpostgres.ResetAndMigrate(migrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to reset schema: %w", op, err)
	}

	db, err := postgres.New(cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	clipRepo := postgres.NewClipRepository(db)
	clipSvc := service.NewClipService(clipRepo)

	if err := clipSvc.SeedClips(ctx); err != nil {
		return fmt.Errorf("%s: failed to seed clips: %w", op, err)
	}

	return nil
}
