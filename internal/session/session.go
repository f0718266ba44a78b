package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiowebux/paceman/internal/config"
	"github.com/studiowebux/paceman/internal/types"
)

const maxRecentURLs = 10

// Session is what survives a restart of the composer
type Session struct {
	Request    types.Request `json:"request"`
	RecentURLs []string      `json:"recentUrls,omitempty"`
}

// Manager loads and saves the session file
type Manager struct {
	path    string
	session *Session
}

// NewManager creates a manager for the session file at path
func NewManager(path string) *Manager {
	return &Manager{
		path:    path,
		session: defaultSession(),
	}
}

func defaultSession() *Session {
	return &Session{
		Request: types.Request{
			Method: types.MethodGet,
			Body:   types.NewBody(types.BodyNone),
		},
	}
}

// Load reads the session file. A missing file leaves the default session in place.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.session = defaultSession()
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if !s.Request.Method.Valid() {
		s.Request.Method = types.MethodGet
	}

	m.session = &s
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Request returns a copy of the stored request
func (m *Manager) Request() types.Request {
	return m.session.Request.Clone()
}

// SetRequest stores a copy of req; call Save to persist it
func (m *Manager) SetRequest(req types.Request) {
	m.session.Request = req.Clone()
}

// AddRecentURL moves rawURL to the front of the MRU list
// Duplicates are removed and the list is capped at maxRecentURLs
func (m *Manager) AddRecentURL(rawURL string) {
	if rawURL == "" {
		return
	}

	recent := []string{rawURL}
	for _, u := range m.session.RecentURLs {
		if u != rawURL {
			recent = append(recent, u)
		}
	}

	if len(recent) > maxRecentURLs {
		recent = recent[:maxRecentURLs]
	}

	m.session.RecentURLs = recent
}

// RecentURLs returns the MRU list, most recent first
func (m *Manager) RecentURLs() []string {
	if m.session.RecentURLs == nil {
		return []string{}
	}
	return m.session.RecentURLs
}
