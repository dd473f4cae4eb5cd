package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration found under dir for the configured driver.
// A database already at the latest version is not an error.
func RunMigrations(logger *slog.Logger, dir, driver, connectionString string) error {
	sourceURL, databaseURL, err := migrationURLs(dir, driver, connectionString)
	if err != nil {
		return err
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("source", sourceURL),
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationURLs maps the driver to its migration folder and a URL golang-migrate accepts.
// MySQL connection strings use the go-sql-driver DSN form, which needs a scheme prefix.
func migrationURLs(dir, driver, connectionString string) (string, string, error) {
	switch driver {
	case "postgres":
		return "file://" + filepath.ToSlash(filepath.Join(dir, "postgresql")), connectionString, nil
	case "mysql":
		databaseURL := connectionString
		if !strings.HasPrefix(databaseURL, "mysql://") {
			databaseURL = "mysql://" + databaseURL
		}
		return "file://" + filepath.ToSlash(filepath.Join(dir, "mysql")), databaseURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
