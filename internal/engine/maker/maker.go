// Package maker implements the recursive build engine. It walks the
// dependency graph rooted at a requested target, decides staleness against
// the update state, runs rebuild commands, and records the outcome.
package maker

import (
	"context"
	"io"

	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Maker evaluates the dependency graph. It is single-threaded and purely
// recursive: each call blocks until the subtree below it is up to date.
// The rule set is read-only; the update state is mutated in place and owned
// by the caller, which persists it after the run.
type Maker struct {
	rules  *domain.RuleSet
	state  *domain.UpdateState
	times  ports.ModTimes
	runner ports.CommandRunner
	tracer ports.Tracer

	stdout io.Writer
	stderr io.Writer
}

// New creates a Maker over the given rule set and update state.
func New(
	rules *domain.RuleSet,
	state *domain.UpdateState,
	times ports.ModTimes,
	runner ports.CommandRunner,
	tracer ports.Tracer,
	stdout, stderr io.Writer,
) *Maker {
	return &Maker{
		rules:  rules,
		state:  state,
		times:  times,
		runner: runner,
		tracer: tracer,
		stdout: stdout,
		stderr: stderr,
	}
}

// Make brings the target up to date and reports whether it was (re)built.
//
// Dependencies are made first, in declared order; the first failure aborts
// the whole walk. A target is rebuilt when any dependency changed, when it
// is a concrete target whose path does not exist, or when it is a virtual
// target with no dependencies at all (those are rebuilt every invocation).
// There is no cycle detection: a cyclic rule graph recurses without bound.
func (m *Maker) Make(ctx context.Context, target domain.Target) (bool, error) {
	ctx, span := m.tracer.Start(ctx, target.String())
	defer span.End()

	changed, err := m.make(ctx, target)
	if err != nil {
		span.SetError(err)
		return false, err
	}
	span.SetChanged(changed)
	return changed, nil
}

func (m *Maker) make(ctx context.Context, target domain.Target) (bool, error) {
	rule, ok := m.rules.Lookup(target)
	if !ok {
		return m.makeLeaf(target)
	}

	needsMaking := false
	for _, dep := range rule.Dependencies {
		depChanged, err := m.Make(ctx, dep)
		if err != nil {
			return false, err
		}
		needsMaking = needsMaking || depChanged
	}

	if target.Kind == domain.KindConcrete && !m.times.Exists(target.Concrete) {
		needsMaking = true
	}
	if target.Kind == domain.KindVirtual && len(rule.Dependencies) == 0 {
		needsMaking = true
	}

	if !needsMaking {
		// Re-record the concrete target anyway: this absorbs external
		// changes whose timestamp coincides with the recorded one.
		if target.Kind == domain.KindConcrete {
			if err := m.record(target.Concrete); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	for _, command := range rule.Commands {
		if err := m.runner.Run(ctx, command, m.stdout, m.stderr); err != nil {
			return false, err
		}
	}

	if target.Kind == domain.KindConcrete {
		if !m.times.Exists(target.Concrete) {
			return false, zerr.With(domain.ErrTargetNotProduced, "target", target.String())
		}
		if err := m.record(target.Concrete); err != nil {
			return false, err
		}
	}
	return true, nil
}

// makeLeaf handles a target with no rule. A virtual target cannot be made
// without one; a concrete target is treated as a raw leaf dependency whose
// only job is to report whether it changed since the last record.
func (m *Maker) makeLeaf(target domain.Target) (bool, error) {
	if target.Kind == domain.KindVirtual {
		return false, zerr.With(domain.ErrMissingRule, "target", target.String())
	}

	upToDate, err := m.isUpToDate(target.Concrete)
	if err != nil {
		return false, err
	}
	if upToDate {
		return false, nil
	}
	if err := m.record(target.Concrete); err != nil {
		return false, err
	}
	return true, nil
}

// isUpToDate reports whether the target's current modification time is not
// strictly after the recorded one. Equal timestamps count as up to date; a
// target with no prior record never is.
func (m *Maker) isUpToDate(target domain.ConcreteTarget) (bool, error) {
	lastUpdate, ok := m.state.Get(target)
	if !ok {
		return false, nil
	}
	current, err := m.times.UpdateTime(target)
	if err != nil {
		return false, err
	}
	return !current.After(lastUpdate), nil
}

// record recomputes the target's current modification time and overwrites
// its stored record.
func (m *Maker) record(target domain.ConcreteTarget) error {
	current, err := m.times.UpdateTime(target)
	if err != nil {
		return err
	}
	m.state.Set(target, current)
	return nil
}
