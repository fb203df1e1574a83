package factory

import (
	"fmt"
	"reflect"
)

// Query is the type-erased form of Query<T>: a request for one or more
// Names of a given class, evaluated against a Factory. It is bound to a
// Factory only at evaluation time (see findNames in factory.go), so the
// same Query value can be reused across factories.
type Query interface {
	// Class is the target component class this query requests.
	Class() reflect.Type
	// ExplicitName returns the single Name this query targets, if it is a
	// name query; ok is false for class and factory queries.
	ExplicitName() (Name, bool)
	// Mandatory reports whether an empty result is an error.
	Mandatory() bool
	// Multiple reports whether this query may legitimately yield more than
	// one Name (a ClassQuery) as opposed to at most one (a NameQuery,
	// FactoryQuery).
	Multiple() bool
	// WithMandatory returns a copy of this query with the mandatory flag
	// set as given; the receiver is left unchanged (Query<T> is immutable).
	WithMandatory(mandatory bool) Query
	String() string
}

type nameQuery struct {
	name      Name
	mandatory bool
}

// QueryByName returns a Query targeting the specific Name{T, id}. Mandatory
// by default; pass it to Optional for an optional variant.
func QueryByName[T any](id string) Query {
	return &nameQuery{name: Of[T](id), mandatory: true}
}

func (q *nameQuery) Class() reflect.Type           { return q.name.Class }
func (q *nameQuery) ExplicitName() (Name, bool)    { return q.name, true }
func (q *nameQuery) Mandatory() bool               { return q.mandatory }
func (q *nameQuery) Multiple() bool                { return false }
func (q *nameQuery) WithMandatory(m bool) Query    { return &nameQuery{name: q.name, mandatory: m} }
func (q *nameQuery) String() string                { return fmt.Sprintf("QueryByName{%s}", q.name) }

type classQuery struct {
	class     reflect.Type
	mandatory bool
}

// QueryByClass returns a Query targeting every Name producing a T.
// Mandatory by default; pass it to Optional for an optional variant.
func QueryByClass[T any]() Query {
	return &classQuery{class: classOf[T](), mandatory: true}
}

func (q *classQuery) Class() reflect.Type        { return q.class }
func (q *classQuery) ExplicitName() (Name, bool) { return Name{}, false }
func (q *classQuery) Mandatory() bool            { return q.mandatory }
func (q *classQuery) Multiple() bool             { return true }
func (q *classQuery) WithMandatory(m bool) Query { return &classQuery{class: q.class, mandatory: m} }
func (q *classQuery) String() string             { return fmt.Sprintf("QueryByClass{%s}", q.class) }

type factoryQuery struct{}

// QueryFactory returns the current Factory itself. Always mandatory, never
// errors: the Factory is self-registered into its own Warehouse.
func QueryFactory() Query { return factoryQuery{} }

func (factoryQuery) Class() reflect.Type        { return classOf[*Factory]() }
func (factoryQuery) ExplicitName() (Name, bool) { return Name{}, false }
func (factoryQuery) Mandatory() bool            { return true }
func (factoryQuery) Multiple() bool             { return false }
func (q factoryQuery) WithMandatory(bool) Query { return q }
func (factoryQuery) String() string             { return "QueryFactory{}" }

// Optional returns q with its mandatory flag cleared.
func Optional(q Query) Query { return q.WithMandatory(false) }

// Mandatory returns q with its mandatory flag set.
func Mandatory(q Query) Query { return q.WithMandatory(true) }

// BOM is the ordered set of sub-queries an Engine needs satisfied before it
// can build its component.
type BOM []Query

// SatisfiedBOM maps each BOM query to the NamedComponents that satisfied
// it, in the order they were resolved.
type SatisfiedBOM struct {
	EngineName Name
	materials  map[Query][]NamedComponent
}

func newSatisfiedBOM(name Name) *SatisfiedBOM {
	return &SatisfiedBOM{EngineName: name, materials: make(map[Query][]NamedComponent)}
}

func (s *SatisfiedBOM) set(q Query, components []NamedComponent) {
	s.materials[q] = components
}

// Get returns the components that satisfied q.
func (s *SatisfiedBOM) Get(q Query) []NamedComponent {
	return s.materials[q]
}

// One returns the single component that satisfied q, for single-expected
// (non-multiple) queries. ok is false if q was optional and unsatisfied.
func (s *SatisfiedBOM) One(q Query) (NamedComponent, bool) {
	cs := s.materials[q]
	if len(cs) == 0 {
		return NamedComponent{}, false
	}
	return cs[0], true
}
