package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/paceman/internal/dispatch"
	"github.com/studiowebux/paceman/internal/keybinds"
	"github.com/studiowebux/paceman/internal/session"
	"github.com/studiowebux/paceman/internal/tabs"
	"github.com/studiowebux/paceman/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeURLEdit
	ModeParamAdd
)

// responseReadyMsg is sent by the dispatch notifier when a request finished
type responseReadyMsg struct{}

// errorMsg reports a failure outside of dispatch in the footer
type errorMsg string

// clearStatusMsg clears the footer status
type clearStatusMsg struct{}

// Options holds what the model needs from the outside
type Options struct {
	Session    *session.Manager
	Dispatcher *dispatch.Dispatcher
	TabStore   tabs.Store
	Keys       *keybinds.Registry
	Logger     logrus.FieldLogger
	Flush      func() error       // persists TabStore; nil when nothing to flush
	CopyText   func(string) error // defaults to the system clipboard
	Highlight  bool               // syntax-highlight response bodies
	Version    string
}

// Model represents the TUI state
type Model struct {
	// Core state
	sessionMgr *session.Manager
	dispatcher *dispatch.Dispatcher
	slot       *dispatch.Slot
	notifier   dispatch.Notifier
	tabCtl     *tabs.Controller
	keys       *keybinds.Registry
	log        logrus.FieldLogger
	flush      func() error
	copyText   func(string) error
	highlight  bool
	version    string

	// Request being composed
	request types.Request
	mode    Mode

	urlInput   textinput.Model
	paramInput textinput.Model

	// Response viewport and the outcome it currently shows
	responseView viewport.Model
	shown        *types.Outcome

	// UI state
	width      int
	height     int
	showHelp   bool
	statusMsg  string
	errorMsg   string
	cleanupErr error
}

// New creates a new TUI model
func New(opts Options) Model {
	store := opts.TabStore
	if store == nil {
		store = tabs.NewMemoryStore()
	}

	keys := opts.Keys
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	mgr := opts.Session
	if mgr == nil {
		mgr = session.NewManager("")
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com"
	urlInput.Prompt = ""
	urlInput.CharLimit = 2048

	paramInput := textinput.New()
	paramInput.Placeholder = "key=value"
	paramInput.Prompt = "+ "

	return Model{
		sessionMgr:   mgr,
		dispatcher:   opts.Dispatcher,
		slot:         dispatch.NewSlot(),
		tabCtl:       tabs.NewController(store),
		keys:         keys,
		log:          log,
		flush:        opts.Flush,
		copyText:     copyText,
		highlight:    opts.Highlight,
		version:      opts.Version,
		request:      mgr.Request(),
		mode:         ModeNormal,
		urlInput:     urlInput,
		paramInput:   paramInput,
		responseView: viewport.New(DefaultViewportWidth, MinResponseHeight),
	}
}

// SetNotifier sets the repaint handle passed to every dispatch
func (m *Model) SetNotifier(n dispatch.Notifier) {
	m.notifier = n
}

// Request returns the request being composed
func (m *Model) Request() types.Request {
	return m.request.Clone()
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cleanup persists the composed request and the tab selection
func (m *Model) Cleanup() error {
	var errs []error

	m.sessionMgr.SetRequest(m.request)
	if err := m.sessionMgr.Save(); err != nil {
		m.log.WithError(err).Error("failed to save session")
		errs = append(errs, err)
	}

	if m.flush != nil {
		if err := m.flush(); err != nil {
			m.log.WithError(err).Error("failed to flush tab state")
			errs = append(errs, err)
		}
	}

	m.cleanupErr = errors.Join(errs...)
	return m.cleanupErr
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case responseReadyMsg:
		// the outcome is picked up below

	case clearStatusMsg:
		m.statusMsg = ""

	case errorMsg:
		m.setError(string(msg))
	}

	m.syncResponse()
	return m, cmd
}

// View renders the model
func (m *Model) View() string {
	return m.renderMain()
}

// syncResponse points the viewport at the outcome currently in the slot
func (m *Model) syncResponse() {
	outcome := m.slot.Read()
	if outcome == m.shown {
		return
	}
	m.shown = outcome

	content := ""
	if outcome != nil && !outcome.IsError() {
		content = formatBody(outcome.Response.Text, outcome.Response.Headers, m.highlight)
	}
	m.responseView.SetContent(content)
	m.responseView.GotoTop()
}

func (m *Model) resize() {
	width := m.width - MinimalBorderMargin
	if width < 1 {
		width = DefaultViewportWidth
	}
	height := m.height - ResponseChromeLines
	if height < MinResponseHeight {
		height = MinResponseHeight
	}

	m.responseView.Width = width
	m.responseView.Height = height
	m.urlInput.Width = width - 20
}

func (m *Model) setStatus(msg string) {
	m.errorMsg = ""
	m.statusMsg = truncate(msg)
}

func (m *Model) setError(msg string) {
	m.errorMsg = truncate(msg)
}

func truncate(msg string) string {
	if len(msg) > MaxFooterMessage {
		return msg[:MaxFooterMessage-3] + "..."
	}
	return msg
}

// programNotifier wakes the event loop from a dispatch goroutine
type programNotifier struct {
	p *tea.Program
}

func (n programNotifier) RequestRepaint() {
	n.p.Send(responseReadyMsg{})
}

var _ dispatch.Notifier = programNotifier{}

func describeRequest(req types.Request) string {
	return fmt.Sprintf("%s %s", req.Method, req.URL)
}
