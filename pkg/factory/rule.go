package factory

import (
	"context"
	"reflect"
)

// DefaultOverlayPriority is the priority assigned to overlay setters'
// SingletonRules: lower than any normal rule's default, so overlay
// overrides win.
const DefaultOverlayPriority = -1000

// Rule (a.k.a. factory machine) declares, for a requested class, the set
// of Names it can produce, and exposes the Engine to build any one of
// them. Smaller Priority values resolve earlier (take precedence).
type Rule interface {
	// NamesProducedFor enumerates the Names this rule can build whose
	// component type is assignable to class.
	NamesProducedFor(class reflect.Type) []Name
	// EngineFor returns the build procedure for name. Must only be called
	// for a Name this rule declared via NamesProducedFor; implementations
	// must keep it side-effect-free.
	EngineFor(name Name) (Engine, bool)
	// CanBuild reports whether this rule declares name.
	CanBuild(name Name) bool
	Priority() int
}

// SimpleRule is a Rule that builds exactly one Name, the common case for
// hand-authored rules.
type SimpleRule struct {
	name     Name
	bom      BOM
	build    func(ctx context.Context, sb *SatisfiedBOM) (*Box, error)
	priority int
}

// NewRule builds a SimpleRule producing name via build, declaring bom as
// its dependencies, at the given priority.
func NewRule(name Name, priority int, bom BOM, build func(ctx context.Context, sb *SatisfiedBOM) (*Box, error)) *SimpleRule {
	return &SimpleRule{name: name, bom: bom, build: build, priority: priority}
}

func (r *SimpleRule) NamesProducedFor(class reflect.Type) []Name {
	if assignableTo(r.name.Class, class) {
		return []Name{r.name}
	}
	return nil
}

func (r *SimpleRule) EngineFor(name Name) (Engine, bool) {
	if name != r.name {
		return nil, false
	}
	return NewEngine(r.name, r.bom, r.build), true
}

func (r *SimpleRule) CanBuild(name Name) bool { return name == r.name }
func (r *SimpleRule) Priority() int           { return r.priority }

// SingletonRule wraps an already-built value as a Rule producing exactly
// one Name with no dependencies, used by overlay convenience setters and
// by any caller that wants to inject a ready-made component.
type SingletonRule struct {
	name     Name
	value    interface{}
	priority int
}

// NewSingletonRule wraps value under name at DefaultOverlayPriority.
func NewSingletonRule(name Name, value interface{}) *SingletonRule {
	return &SingletonRule{name: name, value: value, priority: DefaultOverlayPriority}
}

// WithPriority overrides the default overlay priority and returns the
// receiver.
func (r *SingletonRule) WithPriority(p int) *SingletonRule {
	r.priority = p
	return r
}

func (r *SingletonRule) NamesProducedFor(class reflect.Type) []Name {
	if assignableTo(r.name.Class, class) {
		return []Name{r.name}
	}
	return nil
}

func (r *SingletonRule) EngineFor(name Name) (Engine, bool) {
	if name != r.name {
		return nil, false
	}
	value := r.value
	return NewEngine(r.name, nil, func(ctx context.Context, sb *SatisfiedBOM) (*Box, error) {
		return NewBox(r.name, value, true), nil
	}), true
}

func (r *SingletonRule) CanBuild(name Name) bool { return name == r.name }
func (r *SingletonRule) Priority() int           { return r.priority }
