package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/session"
	"github.com/studiowebux/paceman/internal/tabs"
)

// testEnv bundles a model with the fakes it was built with
type testEnv struct {
	m           *Model
	store       *tabs.MemoryStore
	sessionPath string
	copied      []string
	copyErr     error
	flushes     int
}

// CreateTestModel creates a Model instance for testing with minimal dependencies
func CreateTestModel(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:       tabs.NewMemoryStore(),
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
	}

	mgr := session.NewManager(env.sessionPath)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	client := executor.NewClient(executor.WithTimeout(5 * time.Second))
	m := New(Options{
		Session:    mgr,
		Dispatcher: dispatch.New(client),
		TabStore:   env.store,
		Flush: func() error {
			env.flushes++
			return nil
		},
		CopyText: func(s string) error {
			if env.copyErr != nil {
				return env.copyErr
			}
			env.copied = append(env.copied, s)
			return nil
		},
		Version: "test-version",
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	env.m = &m
	return env
}

// press sends a key to the model and returns the resulting command
func (e *testEnv) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = e.m.Update(k)
	}
	return cmd
}

// typeText sends s as typed runes
func (e *testEnv) typeText(s string) {
	e.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
