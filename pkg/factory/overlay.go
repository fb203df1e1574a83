package factory

import (
	"sync"

	"github.com/google/uuid"
)

// Overlay is a mutable list of Rules merged into a Factory at build time,
// scoped either to an OverlayHandle (the Go rendition's stand-in for
// thread-scope, since Go has no ThreadLocal) or to a caller-supplied
// context name. Mutations after a Factory has been built never affect
// that Factory (snapshot-on-build, see Builder.AddOverlay).
type Overlay struct {
	mu         sync.Mutex
	id         string
	rules      []Rule
	registered bool
}

func newOverlay(id string, registered bool) *Overlay {
	return &Overlay{id: id, registered: registered}
}

// ID returns the key this overlay is registered under (a handle id or a
// context name); for the unregistered overlay returned by ThreadLocalFrom
// on an unknown id, it returns that id.
func (o *Overlay) ID() string { return o.id }

// Registered reports whether this overlay lives in a global registry, as
// opposed to the empty, unregistered overlay returned by cross-goroutine
// lookups of an unknown id.
func (o *Overlay) Registered() bool { return o.registered }

// AddRule appends r to the overlay's rule list.
func (o *Overlay) AddRule(r Rule) *Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rules = append(o.rules, r)
	return o
}

// Clear empties the overlay's rule list.
func (o *Overlay) Clear() *Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rules = nil
	return o
}

// Snapshot returns a copy of the overlay's current rule list, the form the
// Builder reads once at Build time.
func (o *Overlay) Snapshot() []Rule {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Rule, len(o.rules))
	copy(out, o.rules)
	return out
}

// Set is the convenience setter from SPEC_FULL.md section 4.6: it wraps
// value into a SingletonRule for Name{T, id} at DefaultOverlayPriority and
// adds it to the overlay.
func Set[T any](o *Overlay, id string, value T) *Overlay {
	return o.AddRule(NewSingletonRule(Of[T](id), value))
}

// OverlayHandle is an opaque per-caller identifier, acquired once (usually
// stored in a goroutine-local variable by convention, or threaded through a
// context.Context) and passed explicitly to ThreadLocal. It plays the role
// the original design gave a ThreadLocal<String> id: the id is what is
// actually thread-local, not the overlay itself, which is why passing the
// id explicitly is a faithful adaptation rather than a compromise.
type OverlayHandle struct {
	id string
}

// NewOverlayHandle mints a fresh handle backed by a random id.
func NewOverlayHandle() OverlayHandle {
	return OverlayHandle{id: uuid.NewString()}
}

// ID returns the handle's opaque identifier string.
func (h OverlayHandle) ID() string { return h.id }

var (
	threadOverlays  sync.Map // id string -> *Overlay
	contextOverlays sync.Map // name string -> *Overlay
)

// ThreadLocal lazily creates (on first access) and returns the overlay
// registered under h's identifier.
func ThreadLocal(h OverlayHandle) *Overlay {
	v, _ := threadOverlays.LoadOrStore(h.id, newOverlay(h.id, true))
	return v.(*Overlay)
}

// ThreadLocalFrom retrieves another handle's overlay by its identifier
// string without creating one. If absent, it returns an empty,
// unregistered overlay, so mutating the return value never leaks into the
// global registry.
func ThreadLocalFrom(id string) *Overlay {
	if v, ok := threadOverlays.Load(id); ok {
		return v.(*Overlay)
	}
	return newOverlay(id, false)
}

// ContextLocal lazily creates (if absent) and returns the overlay
// registered under the caller-supplied name.
func ContextLocal(name string) *Overlay {
	v, _ := contextOverlays.LoadOrStore(name, newOverlay(name, true))
	return v.(*Overlay)
}

// ResetOverlaysForTest clears both global overlay registries. Exposed as a
// test hook per SPEC_FULL.md section 11's design note on global registries.
func ResetOverlaysForTest() {
	threadOverlays = sync.Map{}
	contextOverlays = sync.Map{}
}
