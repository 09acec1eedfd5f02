// Package sqlite records extraction history in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/fwojciec/sitescrape"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order. The database's user_version records how
// many have run, so append new steps and never edit old ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS extractions (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		strategy TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT '{}',
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_extractions_url ON extractions(url);
	CREATE INDEX IF NOT EXISTS idx_extractions_fetched_at ON extractions(fetched_at);`,
}

// DB wraps the history database. A single connection is kept open since
// SQLite serializes writers anyway.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use MemoryPath for a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, tunes the connection and brings the schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "opening %s", db.path)
	}
	conn.SetMaxOpenConns(1)

	if err := db.setup(conn); err != nil {
		conn.Close()
		return err
	}
	db.db = conn
	return nil
}

func (db *DB) setup(conn *sql.DB) error {
	if err := conn.Ping(); err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "connecting to %s", db.path)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	// In-memory databases have no journal file to switch.
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return sitescrape.WrapError(sitescrape.EINTERNAL, err, "applying %q", p)
		}
	}

	return migrate(conn)
}

// migrate runs every migration past the stored user_version inside one
// transaction.
func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "reading schema version")
	}
	if version >= len(migrations) {
		return nil
	}

	tx, err := conn.Begin()
	if err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "starting migration")
	}
	defer tx.Rollback()

	for i := version; i < len(migrations); i++ {
		if _, err := tx.Exec(migrations[i]); err != nil {
			return sitescrape.WrapError(sitescrape.EINTERNAL, err, "applying migration %d", i+1)
		}
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.Exec("PRAGMA user_version = " + strconv.Itoa(len(migrations))); err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "recording schema version")
	}
	if err := tx.Commit(); err != nil {
		return sitescrape.WrapError(sitescrape.EINTERNAL, err, "committing migration")
	}
	return nil
}

// SchemaVersion reports how many migrations the open database has applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, sitescrape.WrapError(sitescrape.EINTERNAL, err, "reading schema version")
	}
	return version, nil
}

// Close closes the connection. It is a no-op on a DB that was never opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
