package ports

import (
	"context"
	"io"
)

// CommandRunner defines the interface for executing rebuild commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run hands the command string verbatim to a command-line interpreter
	// and blocks until it exits. Only the zero-vs-nonzero exit status is
	// consulted: a non-zero exit is reported as an error.
	Run(ctx context.Context, command string, stdout, stderr io.Writer) error
}
