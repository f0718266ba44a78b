package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/paceman/internal/config"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/history"
	"github.com/studiowebux/paceman/internal/keybinds"
	"github.com/studiowebux/paceman/internal/session"
	"github.com/studiowebux/paceman/internal/tabs"
	"github.com/studiowebux/paceman/internal/types"
	"github.com/studiowebux/paceman/internal/uistate"
)

// RunOptions configures an interactive session
type RunOptions struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Version string
	Initial *types.Request // replaces the saved request when set (--load)
}

// Run starts the TUI and blocks until the user quits
func Run(opts RunOptions) (err error) {
	cfg := opts.Config
	log := opts.Logger

	mgr := session.NewManager(cfg.SessionFile)
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if opts.Initial != nil {
		mgr.SetRequest(*opts.Initial)
	}

	keys, err := keybinds.LoadOrDefault(cfg.KeybindsFile)
	if err != nil {
		return err
	}

	var (
		store tabs.Store = tabs.NewMemoryStore()
		flush func() error
	)
	if cfg.PersistTabs {
		db, openErr := uistate.Open(cfg.StateDB)
		if openErr != nil {
			return fmt.Errorf("failed to open ui state: %w", openErr)
		}
		defer func() {
			err = errors.Join(err, db.Close())
		}()
		store = db
		flush = db.Flush
	}

	client := executor.NewClient(
		executor.WithTimeout(cfg.RequestTimeout),
		executor.WithUserAgent(cfg.UserAgent),
	)

	dispatchOpts := []dispatch.Option{dispatch.WithLogger(log)}
	if cfg.RecordHistory {
		hist, openErr := history.NewManager(cfg.StateDB)
		if openErr != nil {
			return fmt.Errorf("failed to open history: %w", openErr)
		}
		defer func() {
			err = errors.Join(err, hist.Close())
		}()
		dispatchOpts = append(dispatchOpts, dispatch.WithRecorder(hist))
	}

	m := New(Options{
		Session:    mgr,
		Dispatcher: dispatch.New(client, dispatchOpts...),
		TabStore:   store,
		Keys:       keys,
		Logger:     log,
		Flush:      flush,
		Highlight:  cfg.Highlight,
		Version:    opts.Version,
	})

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	m.SetNotifier(programNotifier{p: p})

	log.WithField("version", opts.Version).Info("tui started")
	if _, err := p.Run(); err != nil {
		return err
	}

	return m.cleanupErr
}
