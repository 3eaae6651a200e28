package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names understood by ConnectDB
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DriverFor picks the SQL driver for a database setting: a postgres URL
// selects PostgreSQL, anything else is a SQLite file path
func DriverFor(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// ConnectDB opens the local state database
func ConnectDB(dsn string) (*sql.DB, string, error) {
	driver := DriverFor(dsn)
	if driver == DriverPostgres {
		db, err := sql.Open(driver, dsn)
		return db, driver, err
	}

	// Expand tilde to home directory if present
	dbPath := dsn
	if strings.HasPrefix(dbPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, driver, err
		}
		dbPath = homeDir + dbPath[1:]
	}

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, driver, err
		}
	}

	// SQLite will create the database file if it doesn't exist
	db, err := sql.Open(driver, dbPath)
	return db, driver, err
}

// EnsureSchema creates the state table if it doesn't exist.
// The statement is valid for both SQLite and PostgreSQL.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS local_state (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			lastmodified TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
