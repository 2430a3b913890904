package app

import (
	"context"

	"github.com/grindlemire/graft"
	adapterfs "go.trai.ch/rmk/internal/adapters/fs"
	"go.trai.ch/rmk/internal/adapters/logger"
	"go.trai.ch/rmk/internal/adapters/rules"
	"go.trai.ch/rmk/internal/adapters/shell"
	"go.trai.ch/rmk/internal/adapters/state"
	"go.trai.ch/rmk/internal/adapters/watcher"
	"go.trai.ch/rmk/internal/core/ports"
)

// Components bundles the fully wired application.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			rules.NodeID,
			state.NodeID,
			adapterfs.NodeID,
			shell.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			ruleLoader, err := graft.Dep[ports.RuleLoader](ctx)
			if err != nil {
				return nil, err
			}
			stateStore, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			times, err := graft.Dep[ports.ModTimes](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(ruleLoader, stateStore, times, runner, watch, log),
				Logger: log,
			}, nil
		},
	})
}
