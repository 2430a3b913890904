package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rmk/internal/core/ports"
)

// NodeID is the unique identifier for the modification time Graft node.
const NodeID graft.ID = "adapter.mod_times"

func init() {
	graft.Register(graft.Node[ports.ModTimes]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModTimes, error) {
			return NewTimes(), nil
		},
	})
}
