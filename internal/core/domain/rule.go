package domain

// Rule describes how to produce a target: the dependencies to bring up to
// date first (in declared order) and the commands to run (in declared order).
type Rule struct {
	Dependencies []Target
	Commands     []string
}

// RuleSet maps targets to their rules. It is built once by the parser and
// read-only for the rest of the run.
type RuleSet struct {
	rules map[Target]Rule
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[Target]Rule)}
}

// Add inserts a rule for the target. Declaring the same target twice
// replaces the earlier rule; last write wins.
func (rs *RuleSet) Add(target Target, rule Rule) {
	rs.rules[target] = rule
}

// Lookup returns the rule for the target, if one is declared.
func (rs *RuleSet) Lookup(target Target) (Rule, bool) {
	rule, ok := rs.rules[target]
	return rule, ok
}

// Has reports whether a rule is declared for the target.
func (rs *RuleSet) Has(target Target) bool {
	_, ok := rs.rules[target]
	return ok
}

// Len returns the number of declared rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Targets returns the declared targets in unspecified order.
func (rs *RuleSet) Targets() []Target {
	targets := make([]Target, 0, len(rs.rules))
	for t := range rs.rules {
		targets = append(targets, t)
	}
	return targets
}
