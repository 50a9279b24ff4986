package iostore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// errDuplicateID is returned when a record ID is already stored.
func errDuplicateID(id string) error {
	return fmt.Errorf("record %s already exists", id)
}

// RecordStoreImpl handles durable leaderboard storage using various database backends.
type RecordStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	target  string
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// openDB opens and pings the database of a SQL backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	var db *sql.DB
	var err error
	target := connStr

	switch backend {
	case schema.SQLiteBackend:
		if target == "" {
			target = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", target)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", target, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		// and to keep one shared :memory: database.
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		target = redactTarget(backend, connStr)

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		target = redactTarget(backend, connStr)

	default:
		return nil, "", fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or memory", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, target, nil
}

// NewRecordStore opens the backend and brings its schema to the latest version.
// The memory backend returns a MemoryStore.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	if backend == schema.MemoryBackend {
		return NewMemoryStore(), nil
	}
	for _, v := range schema.AllVariants {
		if err := validateTableName(v.Table); err != nil {
			return nil, err
		}
	}

	db, target, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, backend, connStr); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare %s schema: %w", backend, err)
	}

	return &RecordStoreImpl{db: db, backend: backend, target: target}, nil
}

// FetchRecords implements the RecordStore interface.
func (rs *RecordStoreImpl) FetchRecords(ctx context.Context, variant schema.Variant, order *schema.SortSpec) ([]schema.BenchmarkRecord, error) {
	rows, err := rs.db.QueryContext(ctx, getSelectQuery(variant, rs.backend, order))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", variant.Table, err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.BenchmarkRecord
	scanner := newRowScanner(variant)
	for rows.Next() {
		if err := rows.Scan(scanner.dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", variant.Table, err)
		}
		records = append(records, scanner.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", variant.Table, err)
	}
	return records, nil
}

// InsertRecord implements the RecordStore interface.
func (rs *RecordStoreImpl) InsertRecord(ctx context.Context, variant schema.Variant, record schema.BenchmarkRecord) error {
	if record.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}
	if _, err := rs.db.ExecContext(ctx, getInsertQuery(variant, rs.backend), insertArgs(variant, record)...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", variant.Table, err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns row counts of every leaderboard table and the schema version.
func (rs *RecordStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
		Target:    rs.target,
		Tables:    make(map[string]int64, len(schema.AllVariants)),
	}
	if rs.db == nil {
		return status, nil
	}

	for _, v := range schema.AllVariants {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(v.Table, rs.backend))
		if err := rs.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count %s rows: %w", v.Table, err)
		}
		status.Tables[v.Table] = count
	}

	query := fmt.Sprintf("SELECT version FROM %s LIMIT 1", quoteTableName(migrationsTable, rs.backend))
	var version int64
	if err := rs.db.QueryRowContext(ctx, query).Scan(&version); err == nil && version > 0 {
		status.SchemaVersion = uint(version)
	}
	return status, nil
}
