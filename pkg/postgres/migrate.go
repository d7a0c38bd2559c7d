package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the database migrations from the specified path using
// the provided Data Source Name (DSN). Existing data is left untouched.
func RunMigrations(path string, dsn string) error {
	const op = "postgres.RunMigrations"

	m, err := migrate.New(path, dsn)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}

// ResetAndMigrate drops everything in the database and re-applies the
// migrations from scratch. Used only by seed mode.
func ResetAndMigrate(path string, dsn string) error {
	const op = "postgres.ResetAndMigrate"

	m, err := migrate.New(path, dsn)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Drop(); err != nil {
		return fmt.Errorf("%s: failed to drop database objects: %w", op, err)
	}

	// migrate caches the dirty/version state per instance; a fresh one is
	// needed after Drop.
	m2, err := migrate.New(path, dsn)
	if err != nil {
		return fmt.Errorf("%s: failed to reinitialize migrations: %w", op, err)
	}
	defer m2.Close()

	if err := m2.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
