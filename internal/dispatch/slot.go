package dispatch

import (
	"sync"

	"github.com/studiowebux/paceman/internal/types"
)

// Slot holds the latest outcome with thread safety.
// It is shared by the TUI goroutine and the background request goroutines;
// the lock only ever covers the pointer swap, never a render or a network call.
type Slot struct {
	mu      sync.Mutex
	outcome *types.Outcome
}

// NewSlot returns an empty slot
func NewSlot() *Slot {
	return &Slot{}
}

// Clear discards the current outcome
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = nil
}

// Set replaces the current outcome
func (s *Slot) Set(outcome *types.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = outcome
}

// Read returns the current outcome, or nil when there is no result yet.
// Outcomes are immutable so the returned pointer stays valid after the lock is released.
func (s *Slot) Read() *types.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}
