package tabs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"})

	styleInactiveTab = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
)

// Renderer draws a pane body for a shared context value
type Renderer[T any] interface {
	Render(ctx T) string
}

// RenderFunc adapts a plain function to Renderer
type RenderFunc[T any] func(ctx T) string

// Render calls f
func (f RenderFunc[T]) Render(ctx T) string {
	return f(ctx)
}

// Pane is one named section of a tab bar.
// A pane without a Renderer is valid and renders an empty body.
type Pane[T any] struct {
	Name     string
	Renderer Renderer[T]
}

// NewPane creates a pane rendered by fn
func NewPane[T any](name string, fn func(ctx T) string) Pane[T] {
	if fn == nil {
		return EmptyPane[T](name)
	}
	return Pane[T]{Name: name, Renderer: RenderFunc[T](fn)}
}

// EmptyPane creates a pane with no content
func EmptyPane[T any](name string) Pane[T] {
	return Pane[T]{Name: name}
}

// Names returns pane names in order
func Names[T any](panes []Pane[T]) []string {
	names := make([]string, len(panes))
	for i, p := range panes {
		names[i] = p.Name
	}
	return names
}

// Controller renders tab bars and remembers their selection in a Store.
// It is used from the UI goroutine only.
type Controller struct {
	store  Store
	clicks map[string]string
}

// NewController creates a controller persisting into store
func NewController(store Store) *Controller {
	return &Controller{
		store:  store,
		clicks: make(map[string]string),
	}
}

// Store returns the backing store
func (c *Controller) Store() Store {
	return c.store
}

// Click selects the pane called name on the next Show of the tab bar id
func (c *Controller) Click(id, name string) {
	c.clicks[id] = name
}

// Active returns the pane that Show would display for id given names
func (c *Controller) Active(id string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	state, _ := c.store.Get(id)
	if state.Active == nil {
		return names[0]
	}
	return *state.Active
}

// Cycle clicks the pane delta steps away from the active one, wrapping around
func (c *Controller) Cycle(id string, names []string, delta int) {
	if len(names) == 0 {
		return
	}

	current := 0
	active := c.Active(id, names)
	for i, name := range names {
		if name == active {
			current = i
			break
		}
	}

	next := ((current+delta)%len(names) + len(names)) % len(names)
	c.Click(id, names[next])
}

// Show renders the tab bar id: a selector line with every pane name and the
// body of the active pane.
//
// With no panes it renders nothing and does not touch the store. Without a
// stored selection the first pane is active. A pending Click for a listed
// pane becomes the selection. A selection naming no current pane renders the
// selector only. The state is written back on every call.
func Show[T any](c *Controller, id string, panes []Pane[T], ctx T) string {
	if len(panes) == 0 {
		return ""
	}

	state, _ := c.store.Get(id)
	if state.Active == nil {
		state = Selected(panes[0].Name)
	}

	if clicked, ok := c.clicks[id]; ok {
		delete(c.clicks, id)
		for _, p := range panes {
			if p.Name == clicked {
				state = Selected(clicked)
				break
			}
		}
	}

	active := state.Name()

	labels := make([]string, len(panes))
	for i, p := range panes {
		if p.Name == active {
			labels[i] = styleActiveTab.Render("[" + p.Name + "]")
		} else {
			labels[i] = styleInactiveTab.Render(" " + p.Name + " ")
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(labels, " "))
	sb.WriteString("\n")

	for _, p := range panes {
		if p.Name != active {
			continue
		}
		if p.Renderer != nil {
			sb.WriteString(p.Renderer.Render(ctx))
		}
		break
	}

	c.store.Set(id, state)

	return sb.String()
}
