// cmd/migrate/main.go
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/migration"
	"storefront-backend/pkg/logger"
)

const usage = "usage: migrate [up|down|version]"

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables", nil)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := run(cmd); err != nil {
		logger.Fatal("Migration failed", err)
	}
}

func run(cmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.App.Environment)

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	m, err := migration.New(db)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Error("Failed to close migrator", err)
		}
	}()

	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logger.Info("Current migration version", map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		})
		return nil
	default:
		return fmt.Errorf("unknown command %q (%s)", cmd, usage)
	}
}
