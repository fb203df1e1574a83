package factory

// Customizer is a post-construction transform applied to a Box: it has a
// Priority (stable-sort key, smaller runs first), a Predicate restricting
// which Names it applies to, and a Transform folded over the matching Box.
type Customizer struct {
	Priority  int
	Label     string
	Predicate func(Name) bool
	Transform func(*Box) *Box
}

// Applies reports whether this customizer matches name.
func (c *Customizer) Applies(name Name) bool {
	if c == nil || c.Predicate == nil {
		return false
	}
	return c.Predicate(name)
}

// CustomizerEngine produces a Customizer for any Name it can customize.
// CustomizerEngines are themselves built like any other component, but are
// never customized (section 4.5): doing so would make the bootstrap
// ill-founded.
type CustomizerEngine interface {
	// CanCustomize reports whether this engine has a Customizer to offer
	// for name.
	CanCustomize(name Name) bool
	// CustomizerFor returns the Customizer to apply to name. Only called
	// when CanCustomize(name) holds.
	CustomizerFor(name Name) *Customizer
}

// FuncCustomizerEngine adapts a predicate/transform pair into a
// CustomizerEngine, the usual way callers define one.
type FuncCustomizerEngine struct {
	priority  int
	label     string
	predicate func(Name) bool
	transform func(*Box) *Box
}

// NewCustomizerEngine builds a CustomizerEngine from a predicate and a
// transform, at the given priority.
func NewCustomizerEngine(label string, priority int, predicate func(Name) bool, transform func(*Box) *Box) *FuncCustomizerEngine {
	return &FuncCustomizerEngine{label: label, priority: priority, predicate: predicate, transform: transform}
}

func (e *FuncCustomizerEngine) CanCustomize(name Name) bool {
	return e.predicate != nil && e.predicate(name)
}

func (e *FuncCustomizerEngine) CustomizerFor(name Name) *Customizer {
	return &Customizer{Priority: e.priority, Label: e.label, Predicate: e.predicate, Transform: e.transform}
}
