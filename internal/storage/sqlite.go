// Package storage provides SQLite-based persistence for host-integration
// settings: the telemetry auth token, the API base URL, and the last
// selected gesture. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies. Game scores are deliberately not persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Setting keys used by the arcade.
const (
	KeyAuthToken = "auth_token"
	KeyAPIURL    = "api_url"
	KeyGesture   = "gesture_code"
)

// Store manages the SQLite database connection for settings persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetSetting stores a value under the given key, replacing any previous
// value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}

// Setting returns the value stored under the given key, or "" if the key
// has never been set.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query setting %s: %w", key, err)
	}
	return value, nil
}

// DeleteSetting removes the value stored under the given key, if any.
func (s *Store) DeleteSetting(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete setting %s: %w", key, err)
	}
	return nil
}

// SetAuthToken persists the telemetry bearer token so it survives process
// restarts.
func (s *Store) SetAuthToken(token string) error {
	return s.SetSetting(KeyAuthToken, token)
}

// AuthToken returns the persisted bearer token, or "" if none is stored.
func (s *Store) AuthToken() (string, error) {
	return s.Setting(KeyAuthToken)
}

// SetAPIURL persists the telemetry API base URL.
func (s *Store) SetAPIURL(url string) error {
	return s.SetSetting(KeyAPIURL, url)
}

// APIURL returns the persisted API base URL, or "" if none is stored.
func (s *Store) APIURL() (string, error) {
	return s.Setting(KeyAPIURL)
}

// SetGesture persists the last selected gesture code so the menu can
// restore it on the next run.
func (s *Store) SetGesture(code string) error {
	return s.SetSetting(KeyGesture, code)
}

// Gesture returns the persisted gesture code, or "" if none is stored.
func (s *Store) Gesture() (string, error) {
	return s.Setting(KeyGesture)
}
