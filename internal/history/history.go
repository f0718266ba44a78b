package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/paceman/internal/config"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/migrations"
	"github.com/studiowebux/paceman/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one sent request and how it ended
type Entry struct {
	ID           int64     `json:"id" yaml:"id"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Method       string    `json:"method" yaml:"method"`
	URL          string    `json:"url" yaml:"url"`
	Status       int       `json:"status,omitempty" yaml:"status,omitempty"`
	DurationMs   int64     `json:"durationMs" yaml:"durationMs"`
	ResponseSize *int64    `json:"responseSize,omitempty" yaml:"responseSize,omitempty"`
	Error        string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the request never produced a response
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Manager stores history in sqlite
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

var _ dispatch.Recorder = (*Manager)(nil)

// NewManager opens (or creates) the history database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// Record saves a dispatched request with its outcome
func (m *Manager) Record(req types.Request, outcome *types.Outcome) error {
	var (
		status     int
		durationMs int64
		size       sql.NullInt64
		errText    sql.NullString
	)

	switch {
	case outcome == nil:
		errText = sql.NullString{String: "no outcome", Valid: true}
	case outcome.IsError():
		errText = sql.NullString{String: outcome.Err.Message, Valid: true}
	default:
		status = outcome.Response.Status
		durationMs = outcome.Response.Duration().Milliseconds()
		if outcome.Response.ContentLength != nil {
			size = sql.NullInt64{Int64: *outcome.Response.ContentLength, Valid: true}
		}
	}

	_, err := m.db.Exec(`
		INSERT INTO history (timestamp, method, url, status, duration_ms, response_size, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		m.now().Local().Format(timestampLayout),
		req.Method.String(),
		req.URL,
		status,
		durationMs,
		size,
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less returns all of them.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, method, url, status, duration_ms, response_size, error
		FROM history
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			timestamp string
			size      sql.NullInt64
			errText   sql.NullString
		)

		if err := rows.Scan(&e.ID, &timestamp, &e.Method, &e.URL, &e.Status, &e.DurationMs, &size, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Timestamp = parseTimestamp(timestamp)
		if size.Valid {
			n := size.Int64
			e.ResponseSize = &n
		}
		e.Error = errText.String

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// parseTimestamp reads the stored local wall clock.
// The sqlite driver hands DATETIME columns back as UTC carrying that same wall clock.
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
	}
	return time.Time{}
}

// Count returns the number of stored entries
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

// Clear deletes all entries
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
