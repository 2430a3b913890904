package rules_test

import (
	"io"

	"go.trai.ch/rmk/internal/core/ports"
)

// recordingLogger is a hand-written ports.Logger fake that captures
// messages for assertions.
type recordingLogger struct {
	infos    []string
	warnings []string
	errs     []error
}

var _ ports.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Info(msg string)      { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string)      { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(err error)      { l.errs = append(l.errs, err) }
func (l *recordingLogger) SetOutput(io.Writer) {}
func (l *recordingLogger) SetJSON(bool)        {}
