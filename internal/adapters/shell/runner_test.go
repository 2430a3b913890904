package shell_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rmk/internal/adapters/shell"
	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
)

type captureLogger struct {
	infos []string
	warns []string
}

var _ ports.Logger = (*captureLogger)(nil)

func (l *captureLogger) Info(msg string)     { l.infos = append(l.infos, msg) }
func (l *captureLogger) Warn(msg string)     { l.warns = append(l.warns, msg) }
func (l *captureLogger) Error(error)         {}
func (l *captureLogger) SetOutput(io.Writer) {}
func (l *captureLogger) SetJSON(bool)        {}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	log := &captureLogger{}
	runner := shell.NewRunner(log)

	var stdout, stderr bytes.Buffer
	err := runner.Run(context.Background(), "echo hello", &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Contains(t, log.infos, "$ echo hello")
	assert.Contains(t, log.infos, "hello")
}

func TestRunner_RunShellSyntax(t *testing.T) {
	t.Parallel()

	runner := shell.NewRunner(&captureLogger{})

	// The command string goes to the interpreter verbatim, so pipes and
	// redirection work.
	var stdout bytes.Buffer
	err := runner.Run(context.Background(), "printf 'a\\nb\\n' | wc -l", &stdout, io.Discard)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "2")
}

func TestRunner_RunFailure(t *testing.T) {
	t.Parallel()

	runner := shell.NewRunner(&captureLogger{})

	err := runner.Run(context.Background(), "exit 3", io.Discard, io.Discard)

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())
}

func TestRunner_RunStderrGoesToLogger(t *testing.T) {
	t.Parallel()

	log := &captureLogger{}
	runner := shell.NewRunner(log)

	err := runner.Run(context.Background(), "echo oops >&2", io.Discard, io.Discard)

	require.NoError(t, err)
	assert.Contains(t, log.warns, "oops")
}

func TestRunner_RunCancelledContext(t *testing.T) {
	t.Parallel()

	runner := shell.NewRunner(&captureLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, "sleep 10", io.Discard, io.Discard)
	require.Error(t, err)
}
