package factory

// buildingBox is the ephemeral graph node used during a single resolution
// pass. It holds the Engine for its Name, the BOM-query -> resolved-Names
// mapping needed to assemble a SatisfiedBOM, the outgoing edges to the
// child boxes it depends on, the incoming edges from boxes that depend on
// it, and scratch fields used by the topological sort.
type buildingBox struct {
	name   Name
	engine Engine

	// queryPath is the chain of query descriptions leading from the
	// resolution root to this box, used to render UnsatisfiedDependency
	// paths.
	queryPath []string

	// resolvedNames maps each of engine.BOM()'s queries to the Names that
	// satisfy it, discovered during graph construction.
	resolvedNames map[Query][]Name

	deps         []*buildingBox // boxes this one depends on (children)
	predecessors []*buildingBox // boxes that depend on this one (parents)

	// depsToSort is Kahn's algorithm scratch: the outstanding count of
	// unresolved dependencies. Non-zero after the sort terminates signals
	// a cycle.
	depsToSort int

	// done is true once this box already has a component, either because
	// it was found in the Warehouse during graph construction (no further
	// expansion needed) or because the materialization phase built it.
	done    bool
	built   NamedComponent
	absent  bool
}
