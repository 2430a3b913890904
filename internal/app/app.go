// Package app implements the application layer for rmk.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/rmk/internal/adapters/state"
	"go.trai.ch/rmk/internal/adapters/telemetry"
	"go.trai.ch/rmk/internal/adapters/watcher"
	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/rmk/internal/engine/maker"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	ruleLoader ports.RuleLoader
	stateStore ports.StateStore
	times      ports.ModTimes
	runner     ports.CommandRunner
	watch      ports.Watcher
	logger     ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	ruleLoader ports.RuleLoader,
	stateStore ports.StateStore,
	times ports.ModTimes,
	runner ports.CommandRunner,
	watch ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		ruleLoader: ruleLoader,
		stateStore: stateStore,
		times:      times,
		runner:     runner,
		watch:      watch,
		logger:     log,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// WithOutput redirects command output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// RulesFile is the path of the rules file.
	RulesFile string
	// StateFile is the path of the persisted state. Empty means the
	// default location derived from the rules file.
	StateFile string
}

// Run makes one target: it loads the rules and the prior state, walks the
// dependency graph, and persists the state at the end of the run whether or
// not the build succeeded — records of completed sub-targets are kept.
func (a *App) Run(ctx context.Context, targetToken string, opts RunOptions) error {
	rules, err := a.ruleLoader.Load(opts.RulesFile)
	if err != nil {
		return err
	}

	statePath := opts.StateFile
	if statePath == "" {
		statePath = state.DefaultStatePath(opts.RulesFile)
	}

	st, err := a.stateStore.Load(statePath)
	if err != nil {
		return err
	}

	target := resolveTarget(rules, targetToken)

	telemetry.Setup(telemetry.NewBridge(a.logger))
	tracer := telemetry.NewOTelTracer("rmk")

	mk := maker.New(rules, st, a.times, a.runner, tracer, a.stdout, a.stderr)
	changed, makeErr := mk.Make(ctx, target)

	if saveErr := a.stateStore.Save(statePath, st); saveErr != nil {
		if makeErr == nil {
			return saveErr
		}
		// Don't mask the build failure; the save failure is still reported.
		a.logger.Error(saveErr)
	}

	if makeErr != nil {
		return errors.Join(domain.ErrBuildFailed, makeErr)
	}

	if !changed {
		a.logger.Info("target " + target.String() + " is up to date")
	}
	return nil
}

// Watch runs the build once, then re-runs it whenever the rules file or a
// path named by the rule set changes. It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, targetToken string, opts RunOptions) error {
	if err := a.Run(ctx, targetToken, opts); err != nil {
		// A failed build does not end watch mode.
		a.logger.Error(err)
	}

	rules, err := a.ruleLoader.Load(opts.RulesFile)
	if err != nil {
		return err
	}

	if err := a.watch.Start(ctx, watchPaths(opts.RulesFile, rules)); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() { _ = a.watch.Stop() }()

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(_ []string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	a.logger.Info("watching for changes...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watch.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
				if err := a.Run(ctx, targetToken, opts); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	return g.Wait()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All removes the whole metadata directory instead of just the state.
	All bool
}

// Clean removes persisted state.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	path := domain.DefaultStateDir()
	if opts.All {
		path = domain.DefaultRmkPath()
	}

	a.logger.Info("removing " + path)
	if err := os.RemoveAll(path); err != nil {
		return zerr.Wrap(err, "failed to remove "+path)
	}
	return nil
}

// resolveTarget parses the requested token. A token whose parsed form has
// no rule is retried as a virtual target of the same name, so "rmk make
// all" finds a "$all" rule without the caller spelling the prefix. A token
// matching neither keeps its parsed form: a ruleless concrete path is a
// valid leaf request.
func resolveTarget(rules *domain.RuleSet, token string) domain.Target {
	target := domain.ParseTarget(token)
	if target.Kind == domain.KindVirtual || rules.Has(target) {
		return target
	}
	if fallback := domain.NewVirtualTarget(token); rules.Has(fallback) {
		return fallback
	}
	return target
}

// watchPaths collects the rules file plus every concrete path the rule set
// names, as targets or as dependencies.
func watchPaths(rulesFile string, rules *domain.RuleSet) []string {
	seen := map[string]bool{rulesFile: true}
	paths := []string{rulesFile}

	addTarget := func(t domain.Target) {
		if t.Kind != domain.KindConcrete {
			return
		}
		p := t.Concrete.Path.String()
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, target := range rules.Targets() {
		addTarget(target)
		if rule, ok := rules.Lookup(target); ok {
			for _, dep := range rule.Dependencies {
				addTarget(dep)
			}
		}
	}
	return paths
}
