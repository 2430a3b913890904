package domain

import (
	"iter"
	"time"
)

// UpdateState maps concrete targets to the modification time recorded at
// their last successful build. It is the single piece of state carried
// across invocations: the driver loads it at start, the engine mutates it
// in place, and the driver persists it at the end of the run.
//
// Virtual targets are never recorded here; their freshness is derived from
// their dependencies on every run.
type UpdateState struct {
	lastUpdate map[ConcreteTarget]time.Time
}

// NewUpdateState creates an empty update state.
func NewUpdateState() *UpdateState {
	return &UpdateState{lastUpdate: make(map[ConcreteTarget]time.Time)}
}

// Get returns the recorded modification time for the target, if any.
func (s *UpdateState) Get(target ConcreteTarget) (time.Time, bool) {
	t, ok := s.lastUpdate[target]
	return t, ok
}

// Set records the modification time for the target, overwriting any
// earlier record.
func (s *UpdateState) Set(target ConcreteTarget, modTime time.Time) {
	s.lastUpdate[target] = modTime
}

// Len returns the number of recorded targets.
func (s *UpdateState) Len() int {
	return len(s.lastUpdate)
}

// All iterates over the recorded targets in unspecified order.
func (s *UpdateState) All() iter.Seq2[ConcreteTarget, time.Time] {
	return func(yield func(ConcreteTarget, time.Time) bool) {
		for target, modTime := range s.lastUpdate {
			if !yield(target, modTime) {
				return
			}
		}
	}
}
