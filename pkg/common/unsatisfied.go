package common

import "strings"

// UnsatisfiedDependency is a single path from a root query through nested
// sub-queries down to the leaf that could not be satisfied.
type UnsatisfiedDependency struct {
	Path  []string
	Cause string
}

func (u *UnsatisfiedDependency) Error() string {
	var b strings.Builder
	for i, p := range u.Path {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("  ", i))
			b.WriteString("-> ")
		}
		b.WriteString(p)
	}
	b.WriteString(": ")
	b.WriteString(u.Cause)
	return b.String()
}

// Prepend returns a copy of u with the given query segment prepended to its
// path, used when an outer query wraps an inner failing query.
func (u *UnsatisfiedDependency) Prepend(segment string) *UnsatisfiedDependency {
	path := make([]string, 0, len(u.Path)+1)
	path = append(path, segment)
	path = append(path, u.Path...)
	return &UnsatisfiedDependency{Path: path, Cause: u.Cause}
}

// UnsatisfiedDependencies aggregates one or more UnsatisfiedDependency
// instances discovered during a single graph-construction pass.
type UnsatisfiedDependencies struct {
	Deps []*UnsatisfiedDependency
}

func (u *UnsatisfiedDependencies) Error() string {
	parts := make([]string, 0, len(u.Deps))
	for _, d := range u.Deps {
		parts = append(parts, d.Error())
	}
	return strings.Join(parts, "\n")
}

// Add appends a dependency failure to the aggregate.
func (u *UnsatisfiedDependencies) Add(dep *UnsatisfiedDependency) {
	u.Deps = append(u.Deps, dep)
}

// Empty reports whether no failures have been recorded.
func (u *UnsatisfiedDependencies) Empty() bool {
	return len(u.Deps) == 0
}

// Prepend prepends the given query segment to every member's path.
func (u *UnsatisfiedDependencies) Prepend(segment string) *UnsatisfiedDependencies {
	out := &UnsatisfiedDependencies{Deps: make([]*UnsatisfiedDependency, len(u.Deps))}
	for i, d := range u.Deps {
		out.Deps[i] = d.Prepend(segment)
	}
	return out
}

// AsError returns nil if there are no accumulated failures, otherwise the
// aggregate itself (so callers can `if err := agg.AsError(); err != nil`).
func (u *UnsatisfiedDependencies) AsError() error {
	if u.Empty() {
		return nil
	}
	if len(u.Deps) == 1 {
		return u.Deps[0]
	}
	return u
}
