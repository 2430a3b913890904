// Package rules implements the rule-file loader and parser.
package rules

import (
	"strings"

	"go.trai.ch/rmk/internal/core/domain"
)

// Parse converts rule-file text into a rule set.
//
// The file is a flat sequence of rule blocks. A block is a header line — a
// single non-whitespace target token, a ':' separator, and the remainder of
// the line as whitespace-separated dependency tokens — followed by zero or
// more command lines, each beginning with leading whitespace. The block
// ends at the first line that is blank or not indented.
//
// Text that does not match this grammar is silently skipped: malformed
// input yields fewer rules, not an error. Declaring the same target twice
// replaces the earlier rule.
func Parse(text string) *domain.RuleSet {
	rs := domain.NewRuleSet()
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); {
		target, deps, ok := parseHeader(lines[i])
		if !ok {
			i++
			continue
		}
		i++

		var commands []string
		for i < len(lines) && isIndented(lines[i]) {
			// Indented lines that are blank after stripping are dropped,
			// not recorded as empty commands.
			if cmd := strings.TrimSpace(lines[i]); cmd != "" {
				commands = append(commands, cmd)
			}
			i++
		}

		rs.Add(target, domain.Rule{Dependencies: deps, Commands: commands})
	}

	return rs
}

// parseHeader recognizes a rule header line: a non-whitespace target token,
// a ':' separator, and dependency tokens in the rest of the line.
func parseHeader(line string) (domain.Target, []domain.Target, bool) {
	if isIndented(line) {
		return domain.Target{}, nil, false
	}

	token, rest, found := strings.Cut(line, ":")
	if !found {
		return domain.Target{}, nil, false
	}

	token = strings.TrimRight(token, " \t")
	if token == "" || strings.ContainsAny(token, " \t") {
		return domain.Target{}, nil, false
	}

	depTokens := strings.Fields(rest)
	deps := make([]domain.Target, 0, len(depTokens))
	for _, t := range depTokens {
		deps = append(deps, domain.ParseTarget(t))
	}

	return domain.ParseTarget(token), deps, true
}

// isIndented reports whether the line begins with leading whitespace.
func isIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
