package runstate

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kasparro/pagegen/internal/align"
)

// StateError reports a violated state-access contract: a duplicate write or
// a read that cannot be satisfied.
type StateError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("run state: key %q: %s", e.Key, e.Reason)
}

// State is the shared run container. The zero value is not usable; call New.
type State struct {
	mu      sync.Mutex
	values  map[string]any
	waiters map[string]chan struct{}
	aborted chan struct{}

	warnMu   sync.Mutex
	warnings []align.Warning
}

// New creates an empty run state.
func New() *State {
	return &State{
		values:  make(map[string]any),
		waiters: make(map[string]chan struct{}),
		aborted: make(chan struct{}),
	}
}

// Write stores the value produced for key. Writing a key twice violates the
// single-writer invariant and returns a StateError; the first value stands.
func (s *State) Write(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.values[key]; exists {
		return &StateError{Key: key, Reason: "already written in this run"}
	}
	s.values[key] = value

	if ch, ok := s.waiters[key]; ok {
		close(ch)
		delete(s.waiters, key)
	}
	return nil
}

// Read returns the value for key, blocking until it is written, the run is
// aborted, or ctx is done. Nodes only read keys their declared dependencies
// produce, so under a valid graph a blocked read is always released.
func (s *State) Read(ctx context.Context, key string) (any, error) {
	s.mu.Lock()
	if v, ok := s.values[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	ch, ok := s.waiters[key]
	if !ok {
		ch = make(chan struct{})
		s.waiters[key] = ch
	}
	s.mu.Unlock()

	select {
	case <-ch:
		s.mu.Lock()
		v := s.values[key]
		s.mu.Unlock()
		return v, nil
	case <-s.aborted:
		return nil, &StateError{Key: key, Reason: "run aborted before key was written"}
	case <-ctx.Done():
		return nil, &StateError{Key: key, Reason: ctx.Err().Error()}
	}
}

// Get returns the value for key without blocking.
func (s *State) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Abort releases every blocked reader with a StateError. Called by the
// executor when the run ends with unwritten keys outstanding. Safe to call
// more than once.
func (s *State) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.aborted:
	default:
		close(s.aborted)
	}
}

// AddWarnings appends alignment warnings to the run diagnostics.
func (s *State) AddWarnings(ws ...align.Warning) {
	if len(ws) == 0 {
		return
	}
	s.warnMu.Lock()
	defer s.warnMu.Unlock()
	s.warnings = append(s.warnings, ws...)
}

// Warnings returns a copy of the accumulated diagnostics.
func (s *State) Warnings() []align.Warning {
	s.warnMu.Lock()
	defer s.warnMu.Unlock()
	out := make([]align.Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Snapshot returns an independent copy of all written keys, sorted-key
// iteration safe, for consumption after the run has ended.
func (s *State) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns the written keys in sorted order, for deterministic logging.
func (s *State) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
