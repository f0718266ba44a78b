package tabs

// State is the persisted selection of one tab bar.
// A nil Active means no selection yet, which shows the first pane.
type State struct {
	Active *string `json:"active,omitempty"`
}

// Selected returns a state with name active
func Selected(name string) State {
	return State{Active: &name}
}

// Name returns the active pane name, or "" when unset
func (s State) Name() string {
	if s.Active == nil {
		return ""
	}
	return *s.Active
}

// Store persists tab state keyed by tab bar identity
type Store interface {
	Get(id string) (State, bool)
	Set(id string, state State)
}

// MemoryStore keeps tab state for the lifetime of the process
type MemoryStore struct {
	states map[string]State
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Get(id string) (State, bool) {
	state, ok := s.states[id]
	return state, ok
}

func (s *MemoryStore) Set(id string, state State) {
	s.states[id] = state
}
