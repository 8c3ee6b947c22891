package state

import "sync"

// Token orders requests. Later requests get larger tokens.
type Token uint64

// Store holds the current State and discards results of stale requests
type Store struct {
	mu      sync.Mutex
	state   State
	issued  Token
	applied Token
}

// NewStore creates an empty store; nothing is loaded yet
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Begin issues a token for a new request and marks the store as loading
func (s *Store) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.state.Loading = true
	return s.issued
}

// Apply applies fn for the request holding tok. A result older than the last
// applied one is dropped and Apply returns false.
func (s *Store) Apply(tok Token, fn func(State) State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok < s.applied {
		return false
	}
	s.applied = tok
	s.state = fn(s.state)
	if tok == s.issued {
		s.state.Loading = false
	}
	return true
}

// Update applies fn outside of any request, e.g. dismissing the banner
func (s *Store) Update(fn func(State) State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
}
