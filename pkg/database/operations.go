package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tickit/pkg/utils"
)

// Store is the persisted client state: session, preferences and local caches.
// A missing key reads as the empty string.
type Store struct {
	db     *sql.DB
	driver string
}

// NewStore wraps an open database
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Open connects to the configured database and makes sure the schema exists
func Open(dsn string) (*Store, error) {
	db, driver, err := ConnectDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	utils.Log("Opened %s state store", driver)
	return NewStore(db, driver), nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind turns ? placeholders into $n for PostgreSQL
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const upsertQuery = `INSERT INTO local_state (name, value, lastmodified) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (name) DO UPDATE SET value = excluded.value, lastmodified = CURRENT_TIMESTAMP`

// Get returns the value stored under key
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(s.rebind("SELECT value FROM local_state WHERE name = ?"), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(s.rebind(upsertQuery), key, value)
	utils.Log("Stored key: %s", key)
	return err
}

// Delete removes key
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(s.rebind("DELETE FROM local_state WHERE name = ?"), key)
	utils.Log("Deleted key: %s", key)
	return err
}

// Entries lists every stored pair ordered by key
func (s *Store) Entries() ([]Entry, error) {
	rows, err := s.db.Query("SELECT name, value, lastmodified FROM local_state ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.LastModified); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge removes every stored pair and reports how many were deleted
func (s *Store) Purge() (int64, error) {
	result, err := s.db.Exec("DELETE FROM local_state")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SaveSession stores what a successful login returned
func (s *Store) SaveSession(token, username, email string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, kv := range [][2]string{{KeyToken, token}, {KeyUsername, username}, {KeyEmail, email}} {
		if _, err := tx.Exec(s.rebind(upsertQuery), kv[0], kv[1]); err != nil {
			tx.Rollback()
			return err
		}
	}
	utils.Log("Saved session for %s", username)
	return tx.Commit()
}

// ClearSession forgets the logged-in user
func (s *Store) ClearSession() error {
	for _, key := range SessionKeys {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Token returns the bearer token of the current session, empty when logged out
func (s *Store) Token() (string, error) {
	return s.Get(KeyToken)
}

// Username returns who is logged in, empty when nobody is
func (s *Store) Username() (string, error) {
	return s.Get(KeyUsername)
}
