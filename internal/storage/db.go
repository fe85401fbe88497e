// ABOUTME: SQLite connection setup for the template store.
// ABOUTME: Pragmas ride on the DSN so every pooled connection enforces foreign keys.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// pragmas are applied by the driver to each new connection. Cascading
// template deletes depend on foreign_keys.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// DB is the SQLite-backed template store.
type DB struct {
	db     *sql.DB
	dbPath string
}

var _ Repository = (*DB)(nil)

// Open opens or creates the template store at dbPath and brings its schema
// up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer; saves are small transactions and SQLite serializes them anyway.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(time.Hour)

	// sql.Open is lazy; the file exists only after the first connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := os.Chmod(dbPath, 0600); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := &DB{db: db, dbPath: dbPath}
	if err := d.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return d, nil
}

func dsn(dbPath string) string {
	params := make([]string, 0, len(pragmas)+1)
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	params = append(params, "_txlock=immediate")
	return dbPath + "?" + strings.Join(params, "&")
}

// OpenDefault opens the store at DefaultDBPath.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir is $XDG_DATA_HOME/forge, falling back to ~/.local/share/forge.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "forge")
}

// DefaultDBPath returns DataDir()/forge.db.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "forge.db")
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
