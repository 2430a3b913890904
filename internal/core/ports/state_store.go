package ports

import "go.trai.ch/rmk/internal/core/domain"

// StateStore defines the interface for persisting the update state
// between invocations.
//
//go:generate mockgen -source=state_store.go -destination=mocks/mock_state_store.go -package=mocks
type StateStore interface {
	// Load reads the persisted state from the given path. An absent or
	// unreadable file is not an error: it loads as an empty state.
	Load(path string) (*domain.UpdateState, error)

	// Save writes the state to the given path, creating parent
	// directories as needed.
	Save(path string, state *domain.UpdateState) error
}
