package uistate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/paceman/internal/migrations"
	"github.com/studiowebux/paceman/internal/tabs"
)

// Store is a tabs.Store backed by sqlite.
// Reads and writes go to memory; Flush persists changed entries.
type Store struct {
	db     *sql.DB
	states map[string]tabs.State
	dirty  map[string]bool
}

// Open opens (or creates) the state database and loads every entry
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to state database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{
		db:     db,
		states: make(map[string]tabs.State),
		dirty:  make(map[string]bool),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query("SELECT key, value FROM ui_state")
	if err != nil {
		return fmt.Errorf("failed to load ui state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan ui state: %w", err)
		}

		var state tabs.State
		if err := json.Unmarshal([]byte(value), &state); err != nil {
			// Skip unreadable rows; they are rewritten on the next Flush
			continue
		}
		s.states[key] = state
	}

	return rows.Err()
}

// Get returns the state stored for id
func (s *Store) Get(id string) (tabs.State, bool) {
	state, ok := s.states[id]
	return state, ok
}

// Set stores state for id. Writing an unchanged value does not mark it dirty.
func (s *Store) Set(id string, state tabs.State) {
	if current, ok := s.states[id]; ok && sameState(current, state) {
		return
	}
	s.states[id] = state
	s.dirty[id] = true
}

func sameState(a, b tabs.State) bool {
	if (a.Active == nil) != (b.Active == nil) {
		return false
	}
	return a.Name() == b.Name()
}

// Flush writes every changed entry in one transaction
func (s *Store) Flush() error {
	if len(s.dirty) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ui_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare ui state upsert: %w", err)
	}
	defer stmt.Close()

	timestampStr := time.Now().Local().Format("2006-01-02 15:04:05")
	for key := range s.dirty {
		data, err := json.Marshal(s.states[key])
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to marshal ui state %q: %w", key, err)
		}
		if _, err := stmt.Exec(key, string(data), timestampStr); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save ui state %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ui state: %w", err)
	}

	s.dirty = make(map[string]bool)
	return nil
}

// Close flushes pending changes and closes the database
func (s *Store) Close() error {
	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}
