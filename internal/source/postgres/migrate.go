package postgres

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the source's own schema up to date.
func (s *Source) Migrate(logger *zap.Logger) error {
	return Migrate(s.db, logger)
}

// Migrate executes all pending catalog schema migrations.
func Migrate(db *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Checking for pending catalog migrations...")

	if err := goose.Up(db, "migrations"); err != nil {
		logger.Error("Failed to run catalog migrations", zap.Error(err))
		return fmt.Errorf("failed to run catalog migrations: %w", err)
	}

	logger.Info("Catalog migrations completed successfully")
	return nil
}
