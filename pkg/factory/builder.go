package factory

import (
	"context"
	"errors"

	"github.com/xraph/foundry/pkg/logger"
	"github.com/xraph/foundry/pkg/metrics"
)

type ruleBucket struct {
	name  string
	rules []Rule
}

// Builder bootstraps a Factory via the fixed-point loop described in
// SPEC_FULL.md section 4.5: it seeds an initial rule set, repeatedly
// builds any Rule-producing Rules (meta-rules) until a round adds nothing
// new, then builds the stable set of CustomizerEngines (which are never
// themselves customized), and finally produces the immutable Factory.
type Builder struct {
	rules             []Rule
	ruleSources       []ruleBucket
	overlays          []*Overlay
	providers         []*Warehouse
	metricsSink       metrics.Sink
	log               logger.Logger
	discoveryFailures []error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddRule adds a single hand-authored Rule.
func (b *Builder) AddRule(r Rule) *Builder {
	b.rules = append(b.rules, r)
	return b
}

// AddRuleSource adds a named bucket of rules discovered from a single
// source, kept separate so Dump can report rules grouped by source bucket.
func (b *Builder) AddRuleSource(name string, rules ...Rule) *Builder {
	b.ruleSources = append(b.ruleSources, ruleBucket{name: name, rules: rules})
	return b
}

// AddDiscoveredRuleSources invokes every process-globally registered rule
// source (see registry.go's RegisterRuleSource) and adds each one that
// instantiated successfully as a named bucket. Sources whose constructor
// panicked or returned an error are recorded for Dump's warning section
// instead of failing the build.
func (b *Builder) AddDiscoveredRuleSources() *Builder {
	buckets, failures := DiscoverRuleSources()
	for name, rules := range buckets {
		b.ruleSources = append(b.ruleSources, ruleBucket{name: name, rules: rules})
	}
	b.discoveryFailures = append(b.discoveryFailures, failures...)
	return b
}

// AddOverlay merges an Overlay's current rule list into the seed set. The
// Builder reads the overlay's contents once, at Build time (snapshot-on-
// build); later mutations to the overlay do not affect the built Factory.
func (b *Builder) AddOverlay(o *Overlay) *Builder {
	b.overlays = append(b.overlays, o)
	return b
}

// WithMetricsSink sets the sink used to time <BUILD>/<CUSTOMIZE>
// operations. If never called, a default in-memory sink is used.
func (b *Builder) WithMetricsSink(s metrics.Sink) *Builder {
	b.metricsSink = s
	return b
}

// WithLogger sets the structured logger used by the built Factory.
func (b *Builder) WithLogger(l logger.Logger) *Builder {
	b.log = l
	return b
}

// WithProviders sets the parent Warehouses consulted read-only by the
// final Factory's Warehouse on a local lookup miss.
func (b *Builder) WithProviders(providers ...*Warehouse) *Builder {
	b.providers = providers
	return b
}

// Build runs the fixed-point bootstrap and returns the resulting immutable
// Factory.
func (b *Builder) Build(ctx context.Context) (*Factory, error) {
	sink := b.metricsSink
	if sink == nil {
		sink = metrics.NewMemorySink()
	}
	current := make([]Rule, 0, len(b.rules))
	current = append(current, b.rules...)
	for _, bucket := range b.ruleSources {
		current = append(current, bucket.rules...)
	}
	for _, o := range b.overlays {
		current = append(current, o.Snapshot()...)
	}

	// Per Factory.java's Builder.build()/buildFactoryMachines: a meta-rule
	// (a Rule producing Rules) may itself depend on a component only
	// produced by another meta-rule discovered in a later round, so a
	// single round's failures must not abort the whole bootstrap. Each
	// round tolerates per-name build failures via resolveTolerant and only
	// raises once a round makes zero progress while failures remain, the
	// fixed point reached without satisfying everything.
	known := make(map[Name]bool)
	for {
		round := newFactory(current, nil, NewWarehouse(), sink, b.log)
		produced, failures, err := round.resolveTolerant(ctx, Optional(QueryByClass[Rule]()))
		if err != nil {
			return nil, err
		}
		addedAny := false
		for _, nc := range produced {
			if known[nc.Name] {
				continue
			}
			known[nc.Name] = true
			r, ok := nc.Value.(Rule)
			if !ok {
				continue
			}
			current = append(current, r)
			addedAny = true
		}
		if !addedAny {
			if len(failures) > 0 {
				return nil, errors.Join(failures...)
			}
			break
		}
	}

	ruleStageFactory := newFactory(current, nil, NewWarehouse(), sink, b.log)
	producedCustomizers, err := ruleStageFactory.Resolve(ctx, Optional(QueryByClass[CustomizerEngine]()))
	if err != nil {
		return nil, err
	}
	customizerEngines := make([]CustomizerEngine, 0, len(producedCustomizers))
	for _, nc := range producedCustomizers {
		if ce, ok := nc.Value.(CustomizerEngine); ok {
			customizerEngines = append(customizerEngines, ce)
		}
	}

	final := newFactory(current, customizerEngines, NewWarehouse(b.providers...), sink, b.log)
	final.buckets = make(map[string][]Rule, len(b.ruleSources))
	for _, bucket := range b.ruleSources {
		final.buckets[bucket.name] = bucket.rules
	}
	final.discoveryFailures = b.discoveryFailures
	for _, f := range b.discoveryFailures {
		final.log.Warn("rule source failed to instantiate", logger.Error(f))
	}
	return final, nil
}
