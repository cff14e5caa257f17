package store

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/wppsim/internal/store/migrations"
)

// MigrateResult is the schema version before and after a migration run.
type MigrateResult struct {
	From    uint
	Version uint
	Dirty   bool
}

// Changed reports whether any migration was applied.
func (r MigrateResult) Changed() bool {
	return r.From != r.Version
}

// Migrate applies the embedded migrations that have not run yet.
func (db *DB) Migrate() (MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return MigrateResult{}, fmt.Errorf("migration source: %w", err)
	}
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return MigrateResult{}, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return MigrateResult{}, fmt.Errorf("migration instance: %w", err)
	}

	var res MigrateResult
	if res.From, _, err = version(m); err != nil {
		return res, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return res, fmt.Errorf("migrate up from %d: %w", res.From, err)
	}
	res.Version, res.Dirty, err = version(m)
	return res, err
}

// version reads the schema version; a fresh database is version 0.
func version(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return v, dirty, nil
}
