package factory

import (
	"fmt"
	"sync"
	"time"
)

// Closer is the optional capability interface a built component may
// implement to participate in Warehouse.Close.
type Closer interface {
	Close() error
}

type warehouseEntry struct {
	box           *Box
	satisfiedBOM  *SatisfiedBOM
	buildDuration time.Duration
	order         int
}

// Warehouse is the memoization store of built components, keyed by Name,
// plus the close-order registry. It is append-only during Factory
// construction and read-mostly thereafter; a single Name's Box, once
// checked in, never changes (second check-in is rejected silently, first
// writer wins).
type Warehouse struct {
	mu        sync.RWMutex
	store     map[Name]*warehouseEntry
	order     []Name
	seq       int
	providers []*Warehouse
}

// NewWarehouse creates an empty Warehouse with the given provider chain:
// parent warehouses consulted read-only on a local lookup miss, in order.
func NewWarehouse(providers ...*Warehouse) *Warehouse {
	return &Warehouse{store: make(map[Name]*warehouseEntry), providers: providers}
}

// CheckOut consults the local store, then each provider in declared order,
// returning the first hit.
func (w *Warehouse) CheckOut(name Name) (NamedComponent, bool) {
	w.mu.RLock()
	e, ok := w.store[name]
	w.mu.RUnlock()
	if ok {
		return NamedComponent{Name: name, Value: e.box.Value()}, true
	}
	for _, p := range w.providers {
		if nc, ok := p.CheckOut(name); ok {
			return nc, true
		}
	}
	return NamedComponent{}, false
}

// Has reports whether name is already checked in, locally or via a
// provider.
func (w *Warehouse) Has(name Name) bool {
	_, ok := w.CheckOut(name)
	return ok
}

// CheckIn stores box under its Name with provenance, unless the Name is
// already stored, in which case the call is a silent no-op (the documented
// first-writer-wins overwrite policy). Returns true if this call actually
// stored the box.
func (w *Warehouse) CheckIn(box *Box, sb *SatisfiedBOM, buildDuration time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.store[box.Name()]; exists {
		return false
	}
	w.store[box.Name()] = &warehouseEntry{box: box, satisfiedBOM: sb, buildDuration: buildDuration, order: w.seq}
	w.seq++
	w.order = append(w.order, box.Name())
	return true
}

// Entries returns every locally stored Name in check-in order.
func (w *Warehouse) Entries() []Name {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Name, len(w.order))
	copy(out, w.order)
	return out
}

// Provenance returns the SatisfiedBOM and build duration recorded for name,
// if it was checked in locally.
func (w *Warehouse) Provenance(name Name) (*SatisfiedBOM, time.Duration, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.store[name]
	if !ok {
		return nil, 0, false
	}
	return e.satisfiedBOM, e.buildDuration, true
}

// Close releases locally stored components implementing Closer, in reverse
// of build order, skipping selfName (the Factory's own self-registered
// component) to avoid recursive close. Every failure is recorded and
// closing continues; the aggregate of failures is returned.
func (w *Warehouse) Close(selfName Name) []error {
	w.mu.RLock()
	names := make([]Name, len(w.order))
	copy(names, w.order)
	w.mu.RUnlock()

	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		n := names[i]
		if n == selfName {
			continue
		}
		w.mu.RLock()
		e := w.store[n]
		w.mu.RUnlock()
		if e == nil || !e.box.Present() {
			continue
		}
		if closer, ok := e.box.Value().(Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", n, err))
			}
		}
	}
	return errs
}
