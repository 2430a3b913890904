// Package fs implements filesystem metadata queries for concrete targets.
package fs

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Times implements ports.ModTimes against the real filesystem.
type Times struct{}

// NewTimes creates a new Times.
func NewTimes() *Times {
	return &Times{}
}

var _ ports.ModTimes = (*Times)(nil)

// UpdateTime returns the effective modification time of the target. A deep
// target over a directory is the maximum time found anywhere in the
// subtree; the walk is repeated in full on every call, nothing is cached.
func (t *Times) UpdateTime(target domain.ConcreteTarget) (time.Time, error) {
	path := target.Path.String()

	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, domain.ErrStateAccess.Error()), "path", path)
	}

	latest := info.ModTime()
	if info.IsDir() && target.Depth == domain.DepthDeep {
		entries, err := os.ReadDir(path)
		if err != nil {
			return time.Time{}, zerr.With(zerr.Wrap(err, domain.ErrStateAccess.Error()), "path", path)
		}
		for _, entry := range entries {
			child := domain.NewConcreteTarget(domain.DepthDeep, filepath.Join(path, entry.Name()))
			childTime, err := t.UpdateTime(child)
			if err != nil {
				return time.Time{}, err
			}
			if childTime.After(latest) {
				latest = childTime
			}
		}
	}
	return latest, nil
}

// Exists reports whether the target's path currently exists.
func (t *Times) Exists(target domain.ConcreteTarget) bool {
	_, err := os.Stat(target.Path.String())
	return err == nil
}
