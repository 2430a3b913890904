package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingRule is returned when a virtual target has no rule,
	// whether requested directly or reached through a dependency.
	ErrMissingRule = zerr.New("no rule to make virtual target")

	// ErrCommandFailed is returned when a rebuild command exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrTargetNotProduced is returned when a rule's commands all succeed
	// but the concrete target's path still does not exist afterwards.
	ErrTargetNotProduced = zerr.New("target was not produced")

	// ErrStateAccess is returned when filesystem metadata cannot be read
	// during a staleness check or a state recording.
	ErrStateAccess = zerr.New("failed to read target modification time")

	// ErrRulesReadFailed is returned when the rules file cannot be read.
	ErrRulesReadFailed = zerr.New("failed to read rules file")

	// ErrStateMarshalFailed is returned when the update state cannot be serialized.
	ErrStateMarshalFailed = zerr.New("failed to marshal update state")

	// ErrStateWriteFailed is returned when the update state cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write update state")

	// ErrBuildFailed is returned by the application when the build as a
	// whole failed; the underlying cause is joined to it.
	ErrBuildFailed = zerr.New("build failed")
)
