package iostore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/benchboard/schema"
)

// migrationsTable records the applied schema version.
const migrationsTable = "benchboard_schema_migrations"

//go:embed migrations
var migrationsFS embed.FS

// migrationDir returns the embedded directory holding the DDL for the backend.
func migrationDir(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "migrations/mysql"
	case schema.PostgreSQLBackend:
		return "migrations/postgres"
	default:
		return "migrations/sqlite"
	}
}

// newMigrator wraps an open database in a migrate instance.
func newMigrator(db *sql.DB, backend schema.DatabaseBackend) (*migrate.Migrate, error) {
	var driver database.Driver
	var err error
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	default:
		return nil, fmt.Errorf("migrations are not supported for %s backend", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	// Get the migrations subdirectory
	sub, err := fs.Sub(migrationsFS, migrationDir(backend))
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	// Create source driver from embedded FS
	sourceDriver, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "benchboard", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// currentVersion returns the applied version, refusing a dirty database.
func currentVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", version)
	}
	return version, nil
}

// ensureSchema migrates a freshly opened store to the latest version.
// SQLite migrates on the store connection so a :memory: database sees its tables.
// Server backends migrate over a short-lived connection of their own.
func ensureSchema(db *sql.DB, backend schema.DatabaseBackend, connStr string) error {
	if backend != schema.SQLiteBackend {
		return Migrate(backend, connStr, -1, false)
	}
	m, err := newMigrator(db, backend)
	if err != nil {
		return err
	}
	if _, err := currentVersion(m); err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate to latest version: %w", err)
	}
	return nil
}

// Migrate runs database migrations for the record store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
// Progress is printed when verbose is set.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int, verbose bool) error {
	if backend == schema.MemoryBackend {
		return fmt.Errorf("migrations are not supported for memory backend")
	}

	db, _, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	m, err := newMigrator(db, backend)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() { _, _ = m.Close() }()

	from, err := currentVersion(m)
	if err != nil {
		return err
	}
	say := func(format string, args ...any) {
		if verbose {
			fmt.Printf(format, args...)
		}
	}

	// Perform migration
	switch {
	case targetVersion < 0:
		err = m.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			say("No migration needed. Database is already at the latest version.\n")
		} else {
			to, _, _ := m.Version()
			say("Successfully migrated from version %d to version %d\n", from, to)
		}

	case targetVersion == 0:
		// Roll back every table
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			say("No migration needed. Database is already at version 0\n")
		} else {
			say("Successfully rolled back from version %d to version 0\n", from)
		}

	default:
		err = m.Migrate(uint(targetVersion))
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			say("No migration needed. Database is already at version %d\n", targetVersion)
		} else {
			say("Successfully migrated from version %d to version %d\n", from, targetVersion)
		}
	}
	return nil
}
