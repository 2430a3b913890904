// Package domain contains the core types of the build engine: targets,
// rules, and the persisted update state.
package domain

import "strings"

// Depth selects how a concrete target's modification time is computed.
type Depth uint8

const (
	// DepthShallow uses the modification time of the path itself.
	DepthShallow Depth = iota
	// DepthDeep uses the maximum modification time found anywhere in the
	// path's subtree.
	DepthDeep
)

// ConcreteTarget is a buildable filesystem path. Shallow and Deep targets
// with the same path are distinct targets; equality is structural over both
// fields, so either can be used directly as a map key.
type ConcreteTarget struct {
	Depth Depth
	Path  InternedString
}

// NewConcreteTarget creates a concrete target for the given path.
func NewConcreteTarget(depth Depth, path string) ConcreteTarget {
	return ConcreteTarget{Depth: depth, Path: NewInternedString(path)}
}

// String renders the target in token syntax: deep paths carry a "^" prefix.
func (ct ConcreteTarget) String() string {
	if ct.Depth == DepthDeep {
		return "^" + ct.Path.String()
	}
	return ct.Path.String()
}

// Kind discriminates the target variants.
type Kind uint8

const (
	// KindVirtual is a target with no filesystem identity.
	KindVirtual Kind = iota
	// KindConcrete is a target backed by a filesystem path.
	KindConcrete
)

// Target is a node in the dependency graph: either a virtual name or a
// concrete path. Only the fields of the active variant are meaningful;
// equality is structural over the full value, so a virtual target never
// compares equal to a concrete one.
type Target struct {
	Kind     Kind
	Name     InternedString
	Concrete ConcreteTarget
}

// NewVirtualTarget creates a virtual target with the given name.
func NewVirtualTarget(name string) Target {
	return Target{Kind: KindVirtual, Name: NewInternedString(name)}
}

// NewConcreteFileTarget wraps a concrete target. The Name field stays at its
// zero value so that structural equality only depends on the active variant.
func NewConcreteFileTarget(ct ConcreteTarget) Target {
	return Target{Kind: KindConcrete, Concrete: ct}
}

// ParseTarget converts a token into a target. A "$" prefix marks a virtual
// name, a "^" prefix a deep concrete path, anything else a shallow concrete
// path. The prefix is stripped before construction. The same syntax is used
// for rule-file tokens and for the target requested on the command line.
func ParseTarget(token string) Target {
	if name, ok := strings.CutPrefix(token, "$"); ok {
		return NewVirtualTarget(name)
	}
	if path, ok := strings.CutPrefix(token, "^"); ok {
		return NewConcreteFileTarget(NewConcreteTarget(DepthDeep, path))
	}
	return NewConcreteFileTarget(NewConcreteTarget(DepthShallow, token))
}

// String renders the target in token syntax.
func (t Target) String() string {
	if t.Kind == KindVirtual {
		return "$" + t.Name.String()
	}
	return t.Concrete.String()
}
