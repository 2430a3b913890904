// Package shell provides a shell-based runner for rebuild commands.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using "sh -c".
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run hands the command string verbatim to sh and blocks until it exits.
// Output is streamed both to the given writers and, line-buffered, into the
// structured logger. A non-zero exit is reported as a command failure
// carrying the exit code.
func (r *Runner) Run(ctx context.Context, command string, stdout, stderr io.Writer) error {
	r.logger.Info("$ " + command)

	stdoutLog := &logWriter{logger: r.logger, level: "info"}
	stderrLog := &logWriter{logger: r.logger, level: "warn"}

	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec // user provided command
	cmd.Env = os.Environ()
	cmd.Stdout = io.MultiWriter(stdoutLog, stdout)
	cmd.Stderr = io.MultiWriter(stderrLog, stderr)

	err := cmd.Run()

	// Flush any trailing partial lines.
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.Wrap(err, domain.ErrCommandFailed.Error())
		return zerr.With(zerr.With(wrapped, "command", command), "exit_code", exitCode)
	}
	return nil
}

// logWriter buffers raw process output and forwards it to the structured
// logger one line at a time.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}
