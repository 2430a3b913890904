package ports

import (
	"time"

	"go.trai.ch/rmk/internal/core/domain"
)

// ModTimes provides filesystem modification time queries for concrete
// targets.
//
//go:generate mockgen -source=mod_times.go -destination=mocks/mock_mod_times.go -package=mocks
type ModTimes interface {
	// UpdateTime returns the effective modification time of the target.
	// For a shallow target this is the path's own modification time; for
	// a deep target it is the maximum found anywhere in the subtree,
	// recomputed by a full walk on every call.
	UpdateTime(target domain.ConcreteTarget) (time.Time, error)

	// Exists reports whether the target's path currently exists.
	Exists(target domain.ConcreteTarget) bool
}
