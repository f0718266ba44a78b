package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/keybinds"
	"github.com/studiowebux/paceman/internal/tabs"
	"github.com/studiowebux/paceman/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleMethod = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Padding(0, 1)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// requestContext is what the request panes render from
type requestContext struct {
	req        types.Request
	adding     bool
	paramInput string
}

// responseContext is what the response panes render from
type responseContext struct {
	resp *types.Response
	body string
}

func (m *Model) requestPanes() []tabs.Pane[requestContext] {
	return []tabs.Pane[requestContext]{
		tabs.NewPane(PaneParams, renderParams),
		tabs.EmptyPane[requestContext](PaneAuthorization),
		tabs.EmptyPane[requestContext](PaneHeaders),
		tabs.NewPane(PaneBody, renderBodyKinds),
	}
}

func (m *Model) responsePanes() []tabs.Pane[responseContext] {
	return []tabs.Pane[responseContext]{
		tabs.NewPane(PaneResponseBody, func(ctx responseContext) string { return ctx.body }),
		tabs.NewPane(PaneResponseHeaders, renderResponseHeaders),
	}
}

// renderMain renders the composer: top row, request tabs, response area and footer
func (m *Model) renderMain() string {
	if m.showHelp {
		return m.renderHelp()
	}

	// The slot is read once per frame
	outcome := m.slot.Read()

	sections := []string{
		m.renderTopRow(),
		tabs.Show(m.tabCtl, RequestTabsID, m.requestPanes(), requestContext{
			req:        m.request,
			adding:     m.mode == ModeParamAdd,
			paramInput: m.paramInput.View(),
		}),
	}

	if response := m.renderOutcome(outcome); response != "" {
		sections = append(sections, response)
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderTopRow() string {
	method := styleMethod.Render(m.request.Method.String())

	var url string
	switch {
	case m.mode == ModeURLEdit:
		url = m.urlInput.View()
	case m.request.URL == "":
		url = styleSubtle.Render("press e to enter a URL")
	default:
		url = m.request.URL
	}

	send := styleTitle.Render("[ send ]")
	row := fmt.Sprintf("%s %s  %s", method, url, send)

	if m.mode == ModeURLEdit {
		for _, s := range suggestURLs(m.urlInput.Value(), m.sessionMgr.RecentURLs()) {
			row += "\n" + styleSubtle.Render("  "+s)
		}
	}
	return row
}

// renderOutcome renders nothing without a result, the error text for a failed
// dispatch, or the status line followed by the response tabs
func (m *Model) renderOutcome(outcome *types.Outcome) string {
	if outcome == nil {
		return ""
	}

	if outcome.IsError() {
		return styleTitle.Render("response") + "\n" + styleError.Render("err: "+outcome.Err.Message)
	}

	resp := outcome.Response
	status := statusStyle(resp.Status).Render(executor.StatusLine(resp))

	body := resp.Text
	if outcome == m.shown {
		body = m.responseView.View()
	}

	return status + "\n" + tabs.Show(m.tabCtl, ResponseTabsID, m.responsePanes(), responseContext{
		resp: resp,
		body: body,
	})
}

func statusStyle(status int) lipgloss.Style {
	switch {
	case status >= 400:
		return styleError
	case status >= 300:
		return styleWarning
	}
	return styleSuccess
}

func renderParams(ctx requestContext) string {
	var lines []string
	for _, p := range ctx.req.Params {
		lines = append(lines, fmt.Sprintf("  %s = %s", p.Key, p.Value))
	}

	if ctx.adding {
		lines = append(lines, ctx.paramInput)
	} else if len(lines) == 0 {
		lines = append(lines, styleSubtle.Render("  no params (p to add)"))
	}
	return strings.Join(lines, "\n")
}

func renderBodyKinds(ctx requestContext) string {
	options := make([]string, 0, len(types.BodyKinds()))
	for _, kind := range types.BodyKinds() {
		mark := "( )"
		if kind == ctx.req.Body.Kind {
			mark = "(•)"
		}
		options = append(options, mark+" "+kind.String())
	}
	return "  " + strings.Join(options, "  ")
}

// renderResponseHeaders renders a name/value table; values that are not text render empty
func renderResponseHeaders(ctx responseContext) string {
	width := 0
	for _, h := range ctx.resp.Headers {
		if len(h.Name) > width {
			width = len(h.Name)
		}
	}

	lines := make([]string, 0, len(ctx.resp.Headers))
	for _, h := range ctx.resp.Headers {
		value, _ := h.Value.String()
		lines = append(lines, strings.TrimRight(fmt.Sprintf("  %-*s  %s", width, h.Name, value), " "))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var msg string
	switch {
	case m.errorMsg != "":
		msg = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		msg = styleSubtle.Render(m.statusMsg)
	}

	hint := styleSubtle.Render(fmt.Sprintf("%s help • %s quit",
		m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionToggleHelp),
		m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionQuit)))

	if msg == "" {
		return hint
	}
	return msg + "\n" + hint
}

func (m *Model) renderHelp() string {
	byAction := make(map[keybinds.Action][]string)
	for _, b := range m.keys.ListBindings(keybinds.ContextNormal) {
		byAction[b.Action] = append(byAction[b.Action], b.Key)
	}

	lines := []string{styleTitle.Render("Keys"), ""}
	for _, action := range keybinds.AllActions() {
		keys, ok := byAction[action]
		if !ok {
			continue
		}
		sort.Strings(keys)
		lines = append(lines, fmt.Sprintf("  %-16s %s", strings.Join(keys, "/"), strings.ReplaceAll(string(action), "_", " ")))
	}
	lines = append(lines, "", styleSubtle.Render("press any key to close"))

	if m.version != "" {
		lines = append(lines, styleSubtle.Render("paceman "+m.version))
	}
	return strings.Join(lines, "\n")
}
