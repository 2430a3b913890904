package ports

import "go.trai.ch/rmk/internal/core/domain"

// RuleLoader defines the interface for loading the rule set.
//
//go:generate mockgen -source=rule_loader.go -destination=mocks/mock_rule_loader.go -package=mocks
type RuleLoader interface {
	// Load reads the rules file at the given path and parses it into a
	// rule set. Text that does not match the rule-block grammar is
	// silently skipped; malformed input yields fewer rules, not an error.
	Load(path string) (*domain.RuleSet, error)
}
