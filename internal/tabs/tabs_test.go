package tabs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStore counts store access
type spyStore struct {
	*MemoryStore
	gets int
	sets int
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: NewMemoryStore()}
}

func (s *spyStore) Get(id string) (State, bool) {
	s.gets++
	return s.MemoryStore.Get(id)
}

func (s *spyStore) Set(id string, state State) {
	s.sets++
	s.MemoryStore.Set(id, state)
}

type request struct {
	url string
}

// recordingPanes builds panes that log which body was rendered
func recordingPanes(rendered *[]string, names ...string) []Pane[*request] {
	panes := make([]Pane[*request], len(names))
	for i, name := range names {
		name := name
		panes[i] = NewPane(name, func(r *request) string {
			*rendered = append(*rendered, name)
			return name + " body for " + r.url
		})
	}
	return panes
}

func TestShow_DefaultsToFirstPane(t *testing.T) {
	store := newSpyStore()
	c := NewController(store)
	var rendered []string

	out := Show(c, "request.tabs", recordingPanes(&rendered, "Params", "Headers", "Body"), &request{url: "u"})

	assert.Equal(t, []string{"Params"}, rendered)
	assert.Contains(t, out, "Params body for u")

	state, ok := store.Get("request.tabs")
	require.True(t, ok)
	assert.Equal(t, "Params", state.Name())
}

func TestShow_StatePersistsAcrossRenders(t *testing.T) {
	store := NewMemoryStore()
	store.Set("request.tabs", Selected("Headers"))
	c := NewController(store)
	var rendered []string
	panes := recordingPanes(&rendered, "Params", "Headers", "Body")

	Show(c, "request.tabs", panes, &request{})
	state, _ := store.Get("request.tabs")
	assert.Equal(t, "Headers", state.Name())

	Show(c, "request.tabs", panes, &request{})
	state, _ = store.Get("request.tabs")
	assert.Equal(t, "Headers", state.Name())

	assert.Equal(t, []string{"Headers", "Headers"}, rendered)
}

func TestShow_EmptyPanesTouchNothing(t *testing.T) {
	store := newSpyStore()
	c := NewController(store)

	out := Show[*request](c, "request.tabs", nil, &request{})

	assert.Empty(t, out)
	assert.Zero(t, store.gets)
	assert.Zero(t, store.sets)
}

func TestShow_WritesEveryRender(t *testing.T) {
	store := newSpyStore()
	c := NewController(store)
	var rendered []string
	panes := recordingPanes(&rendered, "Body", "Headers")

	for i := 0; i < 3; i++ {
		Show(c, "response.tabs", panes, &request{})
	}

	assert.Equal(t, 3, store.sets)
}

func TestShow_ClickSelectsPane(t *testing.T) {
	store := NewMemoryStore()
	c := NewController(store)
	var rendered []string
	panes := recordingPanes(&rendered, "Params", "Headers", "Body")

	Show(c, "request.tabs", panes, &request{})
	c.Click("request.tabs", "Body")
	Show(c, "request.tabs", panes, &request{})
	Show(c, "request.tabs", panes, &request{})

	assert.Equal(t, []string{"Params", "Body", "Body"}, rendered)
	state, _ := store.Get("request.tabs")
	assert.Equal(t, "Body", state.Name())
}

func TestShow_ClickOnUnknownPaneIgnored(t *testing.T) {
	store := NewMemoryStore()
	store.Set("request.tabs", Selected("Headers"))
	c := NewController(store)
	var rendered []string

	c.Click("request.tabs", "Cookies")
	Show(c, "request.tabs", recordingPanes(&rendered, "Params", "Headers"), &request{})

	assert.Equal(t, []string{"Headers"}, rendered)
}

func TestShow_ClickIsScopedToIdentity(t *testing.T) {
	store := NewMemoryStore()
	c := NewController(store)
	var rendered []string

	c.Click("response.tabs", "Headers")
	Show(c, "request.tabs", recordingPanes(&rendered, "Params", "Headers"), &request{})
	Show(c, "response.tabs", recordingPanes(&rendered, "Body", "Headers"), &request{})

	assert.Equal(t, []string{"Params", "Headers"}, rendered)
}

func TestShow_MissingSelectionRendersSelectorOnly(t *testing.T) {
	store := NewMemoryStore()
	store.Set("response.tabs", Selected("Cookies"))
	c := NewController(store)
	var rendered []string

	out := Show(c, "response.tabs", recordingPanes(&rendered, "Body", "Headers"), &request{})

	assert.Empty(t, rendered)
	assert.Contains(t, out, "Body")
	assert.Contains(t, out, "Headers")
	state, _ := store.Get("response.tabs")
	assert.Equal(t, "Cookies", state.Name())
}

func TestShow_FirstMatchingPaneWins(t *testing.T) {
	c := NewController(NewMemoryStore())
	var rendered []string
	panes := []Pane[*request]{
		NewPane("Body", func(*request) string { rendered = append(rendered, "first"); return "" }),
		NewPane("Body", func(*request) string { rendered = append(rendered, "second"); return "" }),
	}

	Show(c, "dup", panes, &request{})

	assert.Equal(t, []string{"first"}, rendered)
}

func TestShow_EmptyPaneRendersNoBody(t *testing.T) {
	c := NewController(NewMemoryStore())
	panes := []Pane[*request]{
		EmptyPane[*request]("Authorization"),
		NewPane[*request]("Headers", nil),
	}

	out := Show(c, "request.tabs", panes, &request{})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Empty(t, lines[1])

	c.Click("request.tabs", "Headers")
	assert.NotPanics(t, func() {
		Show(c, "request.tabs", panes, &request{})
	})
}

func TestController_Cycle(t *testing.T) {
	store := NewMemoryStore()
	c := NewController(store)
	names := []string{"Params", "Authorization", "Headers", "Body"}
	var rendered []string
	panes := recordingPanes(&rendered, names...)

	c.Cycle("request.tabs", names, 1)
	Show(c, "request.tabs", panes, &request{})
	assert.Equal(t, "Authorization", c.Active("request.tabs", names))

	c.Cycle("request.tabs", names, -2)
	Show(c, "request.tabs", panes, &request{})
	assert.Equal(t, "Body", c.Active("request.tabs", names))

	c.Cycle("request.tabs", names, 1)
	Show(c, "request.tabs", panes, &request{})
	assert.Equal(t, "Params", c.Active("request.tabs", names))
}

func TestController_ActiveDefaultsToFirst(t *testing.T) {
	c := NewController(NewMemoryStore())
	assert.Equal(t, "Body", c.Active("response.tabs", []string{"Body", "Headers"}))
	assert.Equal(t, "", c.Active("response.tabs", nil))
}

func TestNames(t *testing.T) {
	var rendered []string
	assert.Equal(t, []string{"A", "B"}, Names(recordingPanes(&rendered, "A", "B")))
}
