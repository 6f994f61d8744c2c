// Package database owns the single store connection shared by every
// repository. Both the embedded sqlite store and postgres are reached through
// database/sql so repositories are written once with '?' placeholders and
// rebound per driver.
package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DB is the exclusively-owned store handle. Writes go through WithWriteLock so
// only one logical writer is active at a time.
type DB struct {
	*sqlx.DB
	driver  string
	writeMu sync.Mutex
}

// New opens the store and verifies it answers a ping.
// The handle is limited to one open connection.
func New(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one connection, kept for the life of the process; an in-memory sqlite
	// database disappears with its connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infof("Database connection established (%s)", driver)
	return &DB{DB: conn, driver: driver}, nil
}

// sqliteDSN enables foreign key enforcement, which sqlite leaves off by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Driver returns the database/sql driver name in use.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded schema for the active driver. Every statement
// is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	file := "schema/sqlite.sql"
	if db.driver == DriverPostgres {
		file = "schema/postgres.sql"
	}
	ddl, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", file, err)
	}

	for _, stmt := range strings.Split(string(ddl), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// WithWriteLock runs fn while holding the single-writer lock.
func (db *DB) WithWriteLock(fn func() error) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	return fn()
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	log.Info("Database connection closed")
	return db.DB.Close()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
