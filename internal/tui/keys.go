package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/paceman/internal/keybinds"
	"github.com/studiowebux/paceman/internal/tabs"
	"github.com/studiowebux/paceman/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if m.mode != ModeNormal {
		return m.handleInputKeys(msg)
	}

	action, ok := m.keys.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	if action == keybinds.ActionQuitForce {
		return m.quit()
	}

	// Any key closes the help view
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	return m.handleNormalAction(action)
}

// handleNormalAction runs a composer action
func (m *Model) handleNormalAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit:
		return m.quit()

	case keybinds.ActionSend:
		m.send()

	case keybinds.ActionEditURL:
		m.mode = ModeURLEdit
		m.urlInput.SetValue(m.request.URL)
		m.urlInput.CursorEnd()
		return m.urlInput.Focus()

	case keybinds.ActionMethodNext:
		m.request.Method = m.request.Method.Next()

	case keybinds.ActionMethodPrev:
		m.request.Method = m.request.Method.Prev()

	case keybinds.ActionRequestTabNext:
		m.tabCtl.Cycle(RequestTabsID, tabs.Names(m.requestPanes()), 1)

	case keybinds.ActionRequestTabPrev:
		m.tabCtl.Cycle(RequestTabsID, tabs.Names(m.requestPanes()), -1)

	case keybinds.ActionResponseTabNext:
		m.tabCtl.Cycle(ResponseTabsID, tabs.Names(m.responsePanes()), 1)

	case keybinds.ActionResponseTabPrev:
		m.tabCtl.Cycle(ResponseTabsID, tabs.Names(m.responsePanes()), -1)

	case keybinds.ActionAddParam:
		m.mode = ModeParamAdd
		m.tabCtl.Click(RequestTabsID, PaneParams)
		m.paramInput.SetValue("")
		return m.paramInput.Focus()

	case keybinds.ActionRemoveParam:
		if m.request.RemoveLastParam() {
			m.setStatus("Param removed")
		} else {
			m.setStatus("No params to remove")
		}

	case keybinds.ActionBodyKindNext:
		m.selectBodyKind(nextBodyKind(m.request.Body.Kind))

	case keybinds.ActionCopyBody:
		m.copyBody()

	case keybinds.ActionScrollUp:
		m.responseView.LineUp(1)

	case keybinds.ActionScrollDown:
		m.responseView.LineDown(1)

	case keybinds.ActionToggleHelp:
		m.showHelp = true
	}

	return nil
}

// handleInputKeys handles keys while the URL or param input has focus
func (m *Model) handleInputKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionQuitForce:
			return m.quit()
		case keybinds.ActionInputSubmit:
			m.submitInput()
			return nil
		case keybinds.ActionInputCancel:
			m.closeInput()
			return nil
		case keybinds.ActionInputComplete:
			if m.mode == ModeURLEdit {
				m.completeURL()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	if m.mode == ModeURLEdit {
		m.urlInput, cmd = m.urlInput.Update(msg)
	} else {
		m.paramInput, cmd = m.paramInput.Update(msg)
	}
	return cmd
}

func (m *Model) submitInput() {
	switch m.mode {
	case ModeURLEdit:
		m.request.URL = strings.TrimSpace(m.urlInput.Value())

	case ModeParamAdd:
		key, value, _ := strings.Cut(m.paramInput.Value(), "=")
		key = strings.TrimSpace(key)
		if key == "" {
			m.setError("Param key is required (key=value)")
			return
		}
		m.request.AddParam(key, strings.TrimSpace(value))
		m.setStatus(fmt.Sprintf("Param %s added", key))
	}

	m.closeInput()
}

func (m *Model) closeInput() {
	m.urlInput.Blur()
	m.paramInput.Blur()
	m.mode = ModeNormal
}

func (m *Model) completeURL() {
	suggestions := suggestURLs(m.urlInput.Value(), m.sessionMgr.RecentURLs())
	if len(suggestions) == 0 {
		return
	}
	m.urlInput.SetValue(suggestions[0])
	m.urlInput.CursorEnd()
}

// send dispatches the current request; the previous outcome stays visible until Trigger clears it
func (m *Model) send() {
	if m.dispatcher == nil {
		m.setError("No dispatcher configured")
		return
	}

	m.dispatcher.Trigger(m.request, m.slot, m.notifier)
	m.sessionMgr.AddRecentURL(m.request.URL)
	m.setStatus("Sent " + describeRequest(m.request))
}

// selectBodyKind replaces the body with an empty one of kind
func (m *Model) selectBodyKind(kind types.BodyKind) {
	if kind == m.request.Body.Kind {
		return
	}
	m.request.Body = types.NewBody(kind)
}

func nextBodyKind(k types.BodyKind) types.BodyKind {
	kinds := types.BodyKinds()
	for i, kind := range kinds {
		if kind == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func (m *Model) copyBody() {
	outcome := m.slot.Read()
	if outcome == nil || outcome.IsError() {
		m.setError("No response body to copy")
		return
	}

	if err := m.copyText(outcome.Response.Text); err != nil {
		m.log.WithError(err).Warn("clipboard write failed")
		m.setError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return
	}
	m.setStatus("Response body copied to clipboard")
}

func (m *Model) quit() tea.Cmd {
	if err := m.Cleanup(); err != nil {
		m.setError(err.Error())
	}
	return tea.Quit
}
