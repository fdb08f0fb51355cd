package app

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrator is a thin wrapper over goose running against the service's own
// database handle.
type Migrator struct {
	db             *sql.DB
	migrationsPath string
}

func NewMigrator(db *sql.DB, migrationsPath string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{
		db:             db,
		migrationsPath: migrationsPath,
	}, nil
}

// Run applies all pending migrations.
func (mg *Migrator) Run() error {
	if err := goose.Up(mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Version reports the current migration version.
func (mg *Migrator) Version() (int64, error) {
	version, err := goose.GetDBVersion(mg.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}

	return version, nil
}
