// Package factory implements the dependency-injection factory runtime: a
// container that resolves component requests by class or by name, building
// a fully satisfied dependency graph on demand, memoizing built components
// in a Warehouse, applying post-construction Customizers, and reporting
// structured diagnostics on failure.
package factory

import (
	"fmt"
	"reflect"
)

// Name is the (component class, string identifier) primary key of a
// buildable component. Equality is by both fields.
type Name struct {
	Class reflect.Type
	ID    string
}

// String renders a Name as "id@SimpleClassName", matching the rendering
// used throughout diagnostics and metric keys.
func (n Name) String() string {
	return fmt.Sprintf("%s@%s", n.ID, simpleName(n.Class))
}

func simpleName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// classOf returns the reflect.Type of T, working for both concrete and
// interface type parameters.
func classOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Of builds a typed Name for component type T under the given string id.
func Of[T any](id string) Name {
	return Name{Class: classOf[T](), ID: id}
}

// NamedComponent is a (Name, value) pair: a built component along with the
// Name it was built under.
type NamedComponent struct {
	Name  Name
	Value interface{}
}

// assignableTo reports whether a component of type componentType can
// satisfy a query for target (target may be a concrete type or an
// interface).
func assignableTo(componentType, target reflect.Type) bool {
	if componentType == nil || target == nil {
		return false
	}
	if componentType == target {
		return true
	}
	if target.Kind() == reflect.Interface {
		return componentType.Implements(target)
	}
	return false
}
