package factory

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/xraph/foundry/pkg/common"
	"github.com/xraph/foundry/pkg/logger"
	"github.com/xraph/foundry/pkg/metrics"
)

// FactoryName is the well-known Name under which a Factory self-registers
// into its own Warehouse, so a Query[*Factory] is always satisfied without
// recursion.
var FactoryName = Of[*Factory]("FACTORY")

// AutoStartable is the optional capability interface a built component may
// implement to participate in Factory.Start.
type AutoStartable interface {
	Start(ctx context.Context) error
}

// Factory is the immutable, built container: a stable rule set plus a
// Warehouse. Rule-set mutations never happen in place; Concat and the
// Builder always produce a fresh Factory.
type Factory struct {
	rules             []Rule
	customizerEngines []CustomizerEngine
	warehouse         *Warehouse
	metrics           metrics.Sink
	log               logger.Logger
	selfName          Name

	startOrder []Name // Names whose Start hook ran, in the order it ran

	buckets           map[string][]Rule // rule-source name -> rules, for Dump
	discoveryFailures []error           // rule sources that failed to instantiate
}

func newFactory(rules []Rule, customizerEngines []CustomizerEngine, warehouse *Warehouse, sink metrics.Sink, log logger.Logger) *Factory {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Default()
	}
	// Stable sort by priority; ties preserve insertion order (sort.SliceStable).
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	f := &Factory{
		rules:             sorted,
		customizerEngines: customizerEngines,
		warehouse:         warehouse,
		metrics:           sink,
		log:               log,
		selfName:          FactoryName,
	}
	f.warehouse.CheckIn(NewBox(FactoryName, f, true), newSatisfiedBOM(FactoryName), 0)
	return f
}

// effectiveRule returns the highest-priority (lowest-numbered) Rule able to
// build name, plus every other rule that also declared it, in priority
// order, for diagnostics ("overridden" rules).
func (f *Factory) effectiveRule(name Name) (Rule, []Rule) {
	var matches []Rule
	for _, r := range f.rules {
		if r.CanBuild(name) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], matches[1:]
}

// namesProducedForClass enumerates, in rule-priority order and deduplicated
// by Name, every Name any rule declares for class.
func (f *Factory) namesProducedForClass(class reflect.Type) []Name {
	seen := make(map[Name]bool)
	var out []Name
	for _, r := range f.rules {
		for _, n := range r.NamesProducedFor(class) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// findNames evaluates q against f, without building anything.
func (f *Factory) findNames(q Query) []Name {
	switch qq := q.(type) {
	case factoryQuery:
		return []Name{f.selfName}
	case *nameQuery:
		return []Name{qq.name}
	case *classQuery:
		return f.namesProducedForClass(qq.class)
	default:
		if n, ok := q.ExplicitName(); ok {
			return []Name{n}
		}
		return f.namesProducedForClass(q.Class())
	}
}

// GetComponent resolves the single Name{T, id}, building it (and its
// transitive dependencies) if necessary.
func GetComponent[T any](ctx context.Context, f *Factory, id string) (T, error) {
	var zero T
	ncs, err := f.Resolve(ctx, QueryByName[T](id))
	if err != nil {
		return zero, err
	}
	if len(ncs) == 0 {
		return zero, nil
	}
	v, ok := ncs[0].Value.(T)
	if !ok {
		return zero, fmt.Errorf("component %s is not assignable to requested type", ncs[0].Name)
	}
	return v, nil
}

// GetComponents resolves every Name producing a T.
func GetComponents[T any](ctx context.Context, f *Factory) ([]T, error) {
	ncs, err := f.Resolve(ctx, QueryByClass[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ncs))
	for _, nc := range ncs {
		v, ok := nc.Value.(T)
		if !ok {
			return nil, fmt.Errorf("component %s is not assignable to requested type", nc.Name)
		}
		out = append(out, v)
	}
	return out, nil
}

// Resolve evaluates q against f, returning every NamedComponent that
// satisfies it (at most one for a NameQuery/FactoryQuery). This is the
// general entry point QueryByName/QueryByClass/QueryFactory feed into.
func (f *Factory) Resolve(ctx context.Context, q Query) ([]NamedComponent, error) {
	if _, ok := q.(factoryQuery); ok {
		nc, _ := f.warehouse.CheckOut(f.selfName)
		return []NamedComponent{nc}, nil
	}

	names := f.findNames(q)
	if len(names) == 0 {
		if !q.Mandatory() {
			return nil, nil
		}
		if _, ok := q.ExplicitName(); ok {
			return nil, &common.UnsatisfiedDependency{Path: []string{q.String()}, Cause: "no machine found"}
		}
		return nil, &common.UnsatisfiedDependency{Path: []string{q.String()}, Cause: common.ErrMachineNotFound(q.String(), q.Class().String(), nil).Error()}
	}

	if !q.Multiple() && len(names) > 1 {
		ns := make([]string, len(names))
		for i, n := range names {
			ns[i] = n.String()
		}
		return nil, common.ErrAmbiguous(q.Class().String(), ns)
	}

	out := make([]NamedComponent, 0, len(names))
	for _, n := range names {
		nc, err := f.buildName(ctx, n, []string{q.String()})
		if err != nil {
			return nil, err
		}
		if nc == nil {
			continue
		}
		out = append(out, *nc)
	}
	if q.Mandatory() && len(out) == 0 {
		return nil, &common.UnsatisfiedDependency{Path: []string{q.String()}, Cause: "resolved to an absent component"}
	}
	return out, nil
}

// resolveTolerant evaluates q like Resolve, but never aborts the whole
// query because one candidate Name failed to build: it is used only by
// Builder's fixed-point bootstrap (SPEC_FULL.md section 4.5), where a
// meta-rule's BOM may depend on a component that only becomes buildable in
// a later round. Every Name that fails to build has its error collected
// into failures instead of short-circuiting the rest of names; an
// ambiguous query still aborts immediately, since no later round changes a
// static rule-set conflict.
func (f *Factory) resolveTolerant(ctx context.Context, q Query) (produced []NamedComponent, failures []error, err error) {
	if _, ok := q.(factoryQuery); ok {
		nc, _ := f.warehouse.CheckOut(f.selfName)
		return []NamedComponent{nc}, nil, nil
	}

	names := f.findNames(q)
	if len(names) == 0 {
		return nil, nil, nil
	}
	if !q.Multiple() && len(names) > 1 {
		ns := make([]string, len(names))
		for i, n := range names {
			ns[i] = n.String()
		}
		return nil, nil, common.ErrAmbiguous(q.Class().String(), ns)
	}

	for _, n := range names {
		nc, berr := f.buildName(ctx, n, []string{q.String()})
		if berr != nil {
			failures = append(failures, berr)
			continue
		}
		if nc == nil {
			continue
		}
		produced = append(produced, *nc)
	}
	return produced, failures, nil
}

// CheckSatisfy verifies that every Name in the transitive BOM of q can be
// satisfied, without building anything. Exposed as a public operation per
// the resolved Open Question in SPEC_FULL.md section 11.
func (f *Factory) CheckSatisfy(q Query) error {
	names := f.findNames(q)
	if len(names) == 0 && q.Mandatory() {
		return &common.UnsatisfiedDependency{Path: []string{q.String()}, Cause: "no machine found"}
	}
	for _, n := range names {
		if f.warehouse.Has(n) {
			continue
		}
		if _, err := f.planGraph(n, []string{q.String()}); err != nil {
			return err
		}
	}
	return nil
}

// Concat returns a new Factory with rule appended to the rule set and a
// fresh Warehouse (seeded with this Factory's Warehouse as a read-only
// provider, so already-built components stay cached). For any Name not
// provided by rule, Concat(rule).GetComponent(N) == f.GetComponent(N).
func (f *Factory) Concat(rule Rule) *Factory {
	rules := make([]Rule, len(f.rules)+1)
	copy(rules, f.rules)
	rules[len(rules)-1] = rule
	return newFactory(rules, f.customizerEngines, NewWarehouse(f.warehouse), f.metrics, f.log)
}

// Start invokes Start(ctx) on every built component implementing
// AutoStartable, in the order they were checked into the Warehouse.
func (f *Factory) Start(ctx context.Context) error {
	for _, n := range f.warehouse.Entries() {
		if n == f.selfName {
			continue
		}
		nc, ok := f.warehouse.CheckOut(n)
		if !ok {
			continue
		}
		if s, ok := nc.Value.(AutoStartable); ok {
			if err := s.Start(ctx); err != nil {
				return common.ErrAutoStartFailed(n.String(), err)
			}
			f.startOrder = append(f.startOrder, n)
		}
	}
	return nil
}

// Close releases the Warehouse in reverse build order, skipping the
// Factory's own self-registered component.
func (f *Factory) Close() []error {
	return f.warehouse.Close(f.selfName)
}

// matchingCustomizers collects every CustomizerEngine able to customize
// name, asks each for its Customizer, and returns them stable-sorted by
// priority (ties preserve insertion order).
func (f *Factory) matchingCustomizers(name Name) []*Customizer {
	var out []*Customizer
	for _, ce := range f.customizerEngines {
		if ce.CanCustomize(name) {
			out = append(out, ce.CustomizerFor(name))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Rules returns the Factory's effective rule set, sorted by priority.
func (f *Factory) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}
