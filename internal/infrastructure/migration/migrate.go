package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"storefront-backend/pkg/logger"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator chạy schema migrations đã embed trong binary
type Migrator struct {
	migrate *migrate.Migrate
}

// New tạo Migrator trên một *sql.DB đã mở (driver "postgres" của lib/pq)
func New(db *sql.DB) (*Migrator, error) {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	logger.Info("Running migrations up", nil)

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to apply", nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info("Migrations completed", map[string]interface{}{
		"version": version,
		"dirty":   dirty,
	})
	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	logger.Info("Running migrations down", nil)

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to roll back", nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	logger.Info("All migrations rolled back", nil)
	return nil
}

// Version returns the current migration version
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Close giải phóng source + db driver
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
