// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rmk/internal/adapters/fs"
	_ "go.trai.ch/rmk/internal/adapters/logger"
	_ "go.trai.ch/rmk/internal/adapters/rules"
	_ "go.trai.ch/rmk/internal/adapters/shell"
	_ "go.trai.ch/rmk/internal/adapters/state"
	_ "go.trai.ch/rmk/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/rmk/internal/app"
)
