// Package storage provides a namespaced JSON key/value store backed by
// SQLite. It is the persistence layer for settings, credentials, and the
// monthly usage counter.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/critiq-cli/critiq/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Fixed, namespaced keys for every value the application persists.
const (
	KeySettings = "critiq.settings"
	KeyAPIKeys  = "critiq.apikeys"
	KeyUsage    = "critiq.usage"
	KeyTheme    = "critiq.theme"
)

// Store is a SQLite-backed key/value store holding JSON-serialized values.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the store at the given path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set serializes the value to JSON and upserts it under the key.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Get reads the value stored under the key into out. Missing keys and
// corrupted stored values both return ErrNotFound so callers fall back
// to their defaults; corruption is logged but never surfaced.
func (s *Store) Get(key string, out any) error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		common.LogDebug("discarding corrupted stored value", common.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Load reads the value under key, returning fallback when the key is
// missing, unreadable, or corrupted.
func Load[T any](s *Store, key string, fallback T) T {
	var v T
	if err := s.Get(key, &v); err != nil {
		return fallback
	}
	return v
}

// setRaw stores an unvalidated string, bypassing JSON serialization.
func (s *Store) setRaw(key, raw string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, raw,
	)
	return err
}
