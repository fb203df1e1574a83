package factory

// Box is an opaque wrapper around a built (or absent) component. It
// supports Customize, which folds a Customizer over the wrapped value, and
// Pick, which surfaces the wrapped NamedComponent if present.
//
// Two variants exist per the data model: singleton-bounded (Bounded=true,
// one component handed to one consumer chain) and boundless (handed out
// repeatedly, e.g. a query returning many matches). The distinction is
// informational only; Go's garbage collector makes no distinction in
// ownership the way a resource-bounded box would in other runtimes.
type Box struct {
	name    Name
	value   interface{}
	present bool
	bounded bool
}

// NewBox wraps a present component value under name.
func NewBox(name Name, value interface{}, bounded bool) *Box {
	return &Box{name: name, value: value, present: true, bounded: bounded}
}

// AbsentBox returns a Box representing a legitimately absent component.
func AbsentBox(name Name) *Box {
	return &Box{name: name, present: false}
}

// Name returns the Name this Box was built for.
func (b *Box) Name() Name { return b.name }

// Present reports whether the Box actually wraps a component.
func (b *Box) Present() bool { return b.present }

// Value returns the wrapped value, or nil if absent.
func (b *Box) Value() interface{} { return b.value }

// Bounded reports whether this is the singleton-bounded variant.
func (b *Box) Bounded() bool { return b.bounded }

// Customize folds a Customizer's transform over the Box. Absent boxes and
// nil customizers pass through unchanged.
func (b *Box) Customize(c *Customizer) *Box {
	if b == nil || !b.present || c == nil || c.Transform == nil {
		return b
	}
	out := c.Transform(b)
	if out == nil {
		return b
	}
	return out
}

// Pick surfaces the wrapped NamedComponent, if present.
func (b *Box) Pick() (NamedComponent, bool) {
	if b == nil || !b.present {
		return NamedComponent{}, false
	}
	return NamedComponent{Name: b.name, Value: b.value}, true
}
