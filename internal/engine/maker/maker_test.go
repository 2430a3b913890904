package maker_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rmk/internal/adapters/fs"
	"go.trai.ch/rmk/internal/adapters/telemetry"
	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/rmk/internal/engine/maker"
	"go.trai.ch/zerr"
)

// fakeRunner records executed commands and lets tests attach effects to
// them, standing in for the shell.
type fakeRunner struct {
	ran   []string
	onRun map[string]func() error
}

var _ ports.CommandRunner = (*fakeRunner)(nil)

func newFakeRunner() *fakeRunner {
	return &fakeRunner{onRun: make(map[string]func() error)}
}

func (r *fakeRunner) Run(_ context.Context, command string, _, _ io.Writer) error {
	r.ran = append(r.ran, command)
	if effect, ok := r.onRun[command]; ok {
		return effect()
	}
	return nil
}

func (r *fakeRunner) count(command string) int {
	n := 0
	for _, c := range r.ran {
		if c == command {
			n++
		}
	}
	return n
}

func newMaker(rules *domain.RuleSet, state *domain.UpdateState, runner ports.CommandRunner) *maker.Maker {
	return maker.New(rules, state, fs.NewTimes(), runner, telemetry.NewNoopTracer(), io.Discard, io.Discard)
}

func writeFileAt(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestMaker_BuildsMissingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	writeFileAt(t, in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget(in)},
		Commands:     []string{"produce out"},
	})

	runner := newFakeRunner()
	runner.onRun["produce out"] = func() error {
		return os.WriteFile(out, []byte("hi"), 0o600)
	}

	state := domain.NewUpdateState()
	m := newMaker(rs, state, runner)

	changed, err := m.Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.FileExists(t, out)
	assert.Equal(t, []string{"produce out"}, runner.ran)

	// Both the produced target and the leaf dependency got recorded.
	_, ok := state.Get(domain.NewConcreteTarget(domain.DepthShallow, out))
	assert.True(t, ok)
	_, ok = state.Get(domain.NewConcreteTarget(domain.DepthShallow, in))
	assert.True(t, ok)
}

func TestMaker_SecondRunIsUpToDate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	writeFileAt(t, in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget(in)},
		Commands:     []string{"produce out"},
	})

	runner := newFakeRunner()
	runner.onRun["produce out"] = func() error {
		return os.WriteFile(out, []byte("hi"), 0o600)
	}

	state := domain.NewUpdateState()

	changed, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	require.True(t, changed)

	// Same state, no filesystem changes: nothing to do.
	changed, err = newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, runner.count("produce out"))
}

func TestMaker_RebuildsWhenInputNewer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	writeFileAt(t, in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget(in)},
		Commands:     []string{"produce out"},
	})

	runner := newFakeRunner()
	runner.onRun["produce out"] = func() error {
		return os.WriteFile(out, []byte("hi"), 0o600)
	}

	state := domain.NewUpdateState()
	_, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)

	// Touch the input past the recorded time.
	later := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(in, later, later))

	changed, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, runner.count("produce out"))
}

func TestMaker_DeepDependencySeesNewFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	require.NoError(t, os.Mkdir(assets, 0o750))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFileAt(t, filepath.Join(assets, "a.txt"), base)
	require.NoError(t, os.Chtimes(assets, base, base))

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget("$pack"), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget("^" + assets)},
		Commands:     []string{"pack assets"},
	})

	runner := newFakeRunner()
	state := domain.NewUpdateState()

	// First run records the subtree max.
	changed, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget("$pack"))
	require.NoError(t, err)
	require.True(t, changed, "first run rebuilds, nothing was recorded yet")
	require.Equal(t, 1, runner.count("pack assets"))

	// Unchanged subtree: up to date.
	changed, err = newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget("$pack"))
	require.NoError(t, err)
	require.False(t, changed)

	// A file added anywhere inside the directory makes it stale.
	writeFileAt(t, filepath.Join(assets, "b.txt"), base.Add(72*time.Hour))

	changed, err = newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget("$pack"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, runner.count("pack assets"))
}

func TestMaker_MissingVirtualRule(t *testing.T) {
	t.Parallel()

	m := newMaker(domain.NewRuleSet(), domain.NewUpdateState(), newFakeRunner())

	_, err := m.Make(context.Background(), domain.ParseTarget("$clean"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingRule.Error())
}

func TestMaker_MissingVirtualRuleInDependencies(t *testing.T) {
	t.Parallel()

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget("$all"), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget("$nope")},
		Commands:     []string{"echo all"},
	})

	runner := newFakeRunner()
	m := newMaker(rs, domain.NewUpdateState(), runner)

	_, err := m.Make(context.Background(), domain.ParseTarget("$all"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingRule.Error())
	// The failure unwinds before the outer commands run.
	assert.Empty(t, runner.ran)
}

func TestMaker_RulelessConcreteLeafIdempotence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leaf := filepath.Join(dir, "leaf.txt")
	writeFileAt(t, leaf, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	state := domain.NewUpdateState()
	target := domain.ParseTarget(leaf)

	// First sighting records the leaf and reports a change; after that,
	// with no filesystem change, it stays quiet.
	changed, err := newMaker(domain.NewRuleSet(), state, newFakeRunner()).Make(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, changed)

	for range 3 {
		changed, err = newMaker(domain.NewRuleSet(), state, newFakeRunner()).Make(context.Background(), target)
		require.NoError(t, err)
		assert.False(t, changed)
	}
}

func TestMaker_RulelessConcreteLeafMissing(t *testing.T) {
	t.Parallel()

	target := domain.ParseTarget(filepath.Join(t.TempDir(), "absent.txt"))
	m := newMaker(domain.NewRuleSet(), domain.NewUpdateState(), newFakeRunner())

	_, err := m.Make(context.Background(), target)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStateAccess.Error())
}

func TestMaker_VirtualLeafAlwaysRebuilds(t *testing.T) {
	t.Parallel()

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget("$gen"), domain.Rule{Commands: []string{"generate"}})

	runner := newFakeRunner()
	state := domain.NewUpdateState()

	for i := 1; i <= 3; i++ {
		changed, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget("$gen"))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, i, runner.count("generate"))
	}
}

func TestMaker_CommandFailureAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget("$broken"), domain.Rule{Commands: []string{"boom", "never runs"}})
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget("$broken"), domain.ParseTarget("$also never made")},
		Commands:     []string{"produce out"},
	})

	runner := newFakeRunner()
	bang := zerr.New("command failed")
	runner.onRun["boom"] = func() error { return bang }

	m := newMaker(rs, domain.NewUpdateState(), runner)

	_, err := m.Make(context.Background(), domain.ParseTarget(out))
	require.Error(t, err)
	assert.ErrorIs(t, err, bang)

	// Fail fast: the rest of the failing rule, the remaining
	// dependencies, and the outer commands are all skipped.
	assert.Equal(t, []string{"boom"}, runner.ran)
}

func TestMaker_TargetNotProduced(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.txt")

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{Commands: []string{"forgets to write out"}})

	m := newMaker(rs, domain.NewUpdateState(), newFakeRunner())

	_, err := m.Make(context.Background(), domain.ParseTarget(out))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrTargetNotProduced.Error())
}

func TestMaker_DependencyChangePropagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFileAt(t, in, base)
	writeFileAt(t, out, base)

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget(in)},
		Commands:     []string{"refresh out"},
	})

	// The output exists, but the input has never been recorded: the leaf
	// reports changed and the rule's commands must run.
	runner := newFakeRunner()
	m := newMaker(rs, domain.NewUpdateState(), runner)

	changed, err := m.Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"refresh out"}, runner.ran)
}

func TestMaker_UpToDateConcreteStillRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFileAt(t, in, base)

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{
		Dependencies: []domain.Target{domain.ParseTarget(in)},
		Commands:     []string{"produce out"},
	})

	runner := newFakeRunner()
	runner.onRun["produce out"] = func() error {
		return os.WriteFile(out, []byte("hi"), 0o600)
	}

	state := domain.NewUpdateState()
	_, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)

	// Nudge the output's timestamp without making any input newer. The
	// next run has nothing to do, but still re-records the target so the
	// persisted record tracks reality.
	nudged := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(out, nudged, nudged))

	changed, err := newMaker(rs, state, runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	require.False(t, changed)

	recorded, ok := state.Get(domain.NewConcreteTarget(domain.DepthShallow, out))
	require.True(t, ok)
	assert.True(t, recorded.Equal(nudged))
}

func TestMaker_DependenciesRunInDeclaredOrder(t *testing.T) {
	t.Parallel()

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget("$all"), domain.Rule{
		Dependencies: []domain.Target{
			domain.ParseTarget("$first"),
			domain.ParseTarget("$second"),
		},
		Commands: []string{"finish a", "finish b"},
	})
	rs.Add(domain.ParseTarget("$first"), domain.Rule{Commands: []string{"run first"}})
	rs.Add(domain.ParseTarget("$second"), domain.Rule{Commands: []string{"run second"}})

	runner := newFakeRunner()
	m := newMaker(rs, domain.NewUpdateState(), runner)

	changed, err := m.Make(context.Background(), domain.ParseTarget("$all"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"run first", "run second", "finish a", "finish b"}, runner.ran)
}

func TestMaker_MissingConcreteTargetWithRuleIsRebuilt(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.txt")

	rs := domain.NewRuleSet()
	rs.Add(domain.ParseTarget(out), domain.Rule{Commands: []string{"produce out"}})

	runner := newFakeRunner()
	runner.onRun["produce out"] = func() error {
		return os.WriteFile(out, []byte("hi"), 0o600)
	}

	// No dependencies at all: the path's absence alone forces the build.
	changed, err := newMaker(rs, domain.NewUpdateState(), runner).Make(context.Background(), domain.ParseTarget(out))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"produce out"}, runner.ran)
}
