package factory

import "context"

// Engine produces a component for one specific Name. It is purely
// declarative until invoked: its BOM is a static property. Under
// single-threaded access its Build method runs once per Name per Factory,
// since later requests are served from the Warehouse; concurrent first
// requests for the same Name may each run Build, and only the first
// check-in is kept.
type Engine interface {
	Name() Name
	BOM() BOM
	Build(ctx context.Context, sb *SatisfiedBOM) (*Box, error)
}

type funcEngine struct {
	name  Name
	bom   BOM
	build func(ctx context.Context, sb *SatisfiedBOM) (*Box, error)
}

// NewEngine builds an Engine from a name, a BOM, and a build function. This
// is the usual way rules hand back build procedures for the Names they
// declare.
func NewEngine(name Name, bom BOM, build func(ctx context.Context, sb *SatisfiedBOM) (*Box, error)) Engine {
	return &funcEngine{name: name, bom: bom, build: build}
}

func (e *funcEngine) Name() Name { return e.name }
func (e *funcEngine) BOM() BOM   { return e.bom }
func (e *funcEngine) Build(ctx context.Context, sb *SatisfiedBOM) (*Box, error) {
	return e.build(ctx, sb)
}
