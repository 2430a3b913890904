package rules

import (
	"os"

	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.RuleLoader for rule files on disk.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the rules file at path and parses it. The rule set is parsed
// fresh on every invocation and never cached.
func (l *Loader) Load(path string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the CLI flag
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRulesReadFailed.Error()), "path", path)
	}

	rs := Parse(string(data))
	if rs.Len() == 0 {
		l.logger.Warn("no rules found in " + path)
	}
	return rs, nil
}
