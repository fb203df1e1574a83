package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/foundry/pkg/common"
	"github.com/xraph/foundry/pkg/logger"
)

// buildName runs the full resolution pipeline for name: Warehouse check,
// graph construction (BFS), topological sort, BOM satisfaction,
// construction, customization, and check-in, per SPEC_FULL.md section 4.4.
func (f *Factory) buildName(ctx context.Context, name Name, path []string) (*NamedComponent, error) {
	if nc, ok := f.warehouse.CheckOut(name); ok {
		return &nc, nil
	}

	all, err := f.buildGraph(name, path)
	if err != nil {
		return nil, err
	}
	sorted, err := topoSort(all)
	if err != nil {
		return nil, err
	}
	if err := f.materialize(ctx, sorted); err != nil {
		return nil, err
	}
	if nc, ok := f.warehouse.CheckOut(name); ok {
		return &nc, nil
	}
	return nil, nil // absent: engine legitimately chose not to produce
}

// planGraph is the dry-run counterpart of buildName: it performs graph
// construction and topological sort (catching cycles and unsatisfied
// dependencies) but never invokes an Engine. Used by CheckSatisfy.
func (f *Factory) planGraph(name Name, path []string) ([]*buildingBox, error) {
	all, err := f.buildGraph(name, path)
	if err != nil {
		return nil, err
	}
	return topoSort(all)
}

// buildGraph performs a BFS from a root buildingBox for name, expanding
// each box's Engine.BOM() into child boxes and recording the dependency
// edges needed for the topological sort. Unsatisfied dependencies are
// accumulated across the whole pass rather than failing fast, so a single
// UnsatisfiedDependencies can list every missing leaf.
func (f *Factory) buildGraph(rootName Name, rootPath []string) (map[Name]*buildingBox, error) {
	all := make(map[Name]*buildingBox)
	var agg common.UnsatisfiedDependencies

	getOrCreate := func(name Name, path []string) (*buildingBox, error) {
		if b, ok := all[name]; ok {
			return b, nil
		}
		if nc, ok := f.warehouse.CheckOut(name); ok {
			b := &buildingBox{name: name, queryPath: path, done: true, built: nc}
			all[name] = b
			return b, nil
		}
		rule, _ := f.effectiveRule(name)
		if rule == nil {
			hints := f.namesProducedForClass(name.Class)
			hintStrs := make([]string, 0, len(hints))
			for _, h := range hints {
				if h != name {
					hintStrs = append(hintStrs, h.String())
				}
			}
			return nil, &common.UnsatisfiedDependency{
				Path:  append(append([]string{}, path...), name.String()),
				Cause: common.ErrMachineNotFound(name.String(), name.Class.String(), hintStrs).Error(),
			}
		}
		engine, _ := rule.EngineFor(name)
		b := &buildingBox{name: name, engine: engine, queryPath: path, resolvedNames: make(map[Query][]Name)}
		all[name] = b
		return b, nil
	}

	root, err := getOrCreate(rootName, rootPath)
	if err != nil {
		return nil, err
	}

	queue := []*buildingBox{root}
	visited := map[Name]bool{}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if visited[b.name] {
			continue
		}
		visited[b.name] = true
		if b.engine == nil {
			continue
		}
		childPath := append(append([]string{}, b.queryPath...), b.name.String())
		for _, q := range b.engine.BOM() {
			names := f.findNames(q)
			if len(names) == 0 {
				if q.Mandatory() {
					agg.Add(&common.UnsatisfiedDependency{
						Path:  append(append([]string{}, childPath...), q.String()),
						Cause: common.ErrMachineNotFound(q.String(), q.Class().String(), nil).Error(),
					})
				}
				b.resolvedNames[q] = nil
				continue
			}
			if !q.Multiple() && len(names) > 1 {
				ns := make([]string, len(names))
				for i, n := range names {
					ns[i] = n.String()
				}
				return nil, common.ErrAmbiguous(q.Class().String(), ns)
			}
			resolved := make([]Name, 0, len(names))
			for _, n := range names {
				child, cerr := getOrCreate(n, childPath)
				if cerr != nil {
					if ud, ok := cerr.(*common.UnsatisfiedDependency); ok {
						// An explicit NameQuery always yields its Name from
						// findNames even when no Rule builds it, so the
						// mandatory check has to happen here rather than in
						// the empty-names branch above.
						if q.Mandatory() {
							agg.Add(ud)
						}
						continue
					}
					return nil, cerr
				}
				resolved = append(resolved, n)
				b.deps = append(b.deps, child)
				child.predecessors = append(child.predecessors, b)
				if !visited[child.name] {
					queue = append(queue, child)
				}
			}
			b.resolvedNames[q] = resolved
		}
	}

	if err := agg.AsError(); err != nil {
		return nil, err
	}
	return all, nil
}

// topoSort runs Kahn's algorithm over the graph produced by buildGraph:
// boxes with no outgoing edges (leaves) seed the worklist; each time a box
// is emitted, its predecessors' outstanding-dependency counts are
// decremented, and zero-count predecessors are enqueued. A non-empty
// remainder after the queue drains means the graph contains a cycle.
func topoSort(all map[Name]*buildingBox) ([]*buildingBox, error) {
	queue := make([]*buildingBox, 0, len(all))
	for _, b := range all {
		b.depsToSort = len(b.deps)
		if b.depsToSort == 0 {
			queue = append(queue, b)
		}
	}
	order := make([]*buildingBox, 0, len(all))
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		order = append(order, b)
		for _, p := range b.predecessors {
			p.depsToSort--
			if p.depsToSort == 0 {
				queue = append(queue, p)
			}
		}
	}
	if len(order) != len(all) {
		var cyclic []string
		for _, b := range all {
			if b.depsToSort > 0 {
				cyclic = append(cyclic, b.name.String())
			}
		}
		return nil, common.ErrCycle(cyclic)
	}
	return order, nil
}

// materialize walks the topologically sorted boxes leaves-first, building
// each one that is not already done: it assembles the SatisfiedBOM from
// already-materialized children, invokes the Engine, applies matching
// Customizers in stable priority order, and checks the result into the
// Warehouse.
func (f *Factory) materialize(ctx context.Context, sorted []*buildingBox) error {
	for _, b := range sorted {
		if b.done {
			continue
		}
		if nc, ok := f.warehouse.CheckOut(b.name); ok {
			b.built = nc
			b.done = true
			continue
		}

		sb := newSatisfiedBOM(b.name)
		for q, names := range b.resolvedNames {
			components := make([]NamedComponent, 0, len(names))
			for _, n := range names {
				child := b.findDep(n)
				if child == nil || !child.done {
					return fmt.Errorf("internal error: dependency %s not materialized before %s", n, b.name)
				}
				if !child.absent {
					components = append(components, child.built)
				}
			}
			if q.Mandatory() && !q.Multiple() && len(components) == 0 {
				return &common.UnsatisfiedDependency{
					Path:  append(append([]string{}, b.queryPath...), b.name.String(), q.String()),
					Cause: "dependency resolved to an absent component",
				}
			}
			sb.set(q, components)
		}

		start := time.Now()
		built, err := b.engine.Build(ctx, sb)
		dur := time.Since(start)
		f.metrics.Time(fmt.Sprintf("<BUILD> %s", simpleName(b.name.Class)), dur)
		if err != nil {
			return fmt.Errorf("building %s: %w", b.name, err)
		}
		if built == nil || !built.Present() {
			b.absent = true
			b.done = true
			f.log.Debug("component absent", logger.String("name", b.name.String()))
			continue
		}

		if b.name != f.selfName {
			for _, c := range f.matchingCustomizers(b.name) {
				cstart := time.Now()
				built = built.Customize(c)
				f.metrics.Time(fmt.Sprintf("<CUSTOMIZE> %s <WITH> %s", b.name, c.Label), time.Since(cstart))
			}
		}

		f.warehouse.CheckIn(built, sb, dur)
		nc, _ := f.warehouse.CheckOut(b.name)
		b.built = nc
		b.done = true
		f.log.Debug("built component", logger.String("name", b.name.String()), logger.Duration("duration", dur))
	}
	return nil
}

func (b *buildingBox) findDep(name Name) *buildingBox {
	for _, d := range b.deps {
		if d.name == name {
			return d
		}
	}
	return nil
}
