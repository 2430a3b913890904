package ports

import (
	"context"
	"iter"
)

// WatchEvent describes a single filesystem change.
type WatchEvent struct {
	// Path is the path that changed.
	Path string
}

// Watcher is the abstraction for filesystem watching in watch mode.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given paths. Directories are watched
	// recursively; paths that do not exist are skipped.
	Start(ctx context.Context, paths []string) error

	// Stop stops the watcher and releases all resources.
	Stop() error

	// Events returns an iterator of filesystem events. The iterator ends
	// when the watcher is stopped or the context is cancelled.
	Events() iter.Seq[WatchEvent]
}
