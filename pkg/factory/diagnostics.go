package factory

import (
	"fmt"
	"sort"
	"strings"
)

// NameLister is an optional capability a Rule may implement to enumerate
// every Name it declares, independent of any particular target class.
// SimpleRule and SingletonRule implement it; Dump falls back gracefully
// for rules that don't.
type NameLister interface {
	DeclaredNames() []Name
}

func (r *SimpleRule) DeclaredNames() []Name    { return []Name{r.name} }
func (r *SingletonRule) DeclaredNames() []Name { return []Name{r.name} }

// Dump renders a human-readable snapshot of the Factory: rules by
// priority, rules by source bucket, buildable Names with their chosen
// Engine and any overridden rules, BOM queries with satisfaction status,
// and a warning section for rule sources that failed to instantiate.
func (f *Factory) Dump() string {
	var b strings.Builder

	fmt.Fprintln(&b, "RULES (by priority):")
	for _, r := range f.rules {
		fmt.Fprintf(&b, "  [%d] %T\n", r.Priority(), r)
	}

	if len(f.buckets) > 0 {
		fmt.Fprintln(&b, "\nRULE SOURCES:")
		names := make([]string, 0, len(f.buckets))
		for name := range f.buckets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %s: %d rule(s)\n", name, len(f.buckets[name]))
		}
	}

	fmt.Fprintln(&b, "\nBUILDABLE NAMES:")
	seen := make(map[Name]bool)
	for _, r := range f.rules {
		lister, ok := r.(NameLister)
		if !ok {
			continue
		}
		for _, n := range lister.DeclaredNames() {
			if seen[n] {
				continue
			}
			seen[n] = true
			owner, overridden := f.effectiveRule(n)
			if owner == nil {
				fmt.Fprintf(&b, "  %s -> <none>", n)
			} else {
				fmt.Fprintf(&b, "  %s -> %T", n, owner)
			}
			if len(overridden) > 0 {
				fmt.Fprint(&b, " (OVERRIDING:")
				for _, o := range overridden {
					fmt.Fprintf(&b, " %T[%d]", o, o.Priority())
				}
				fmt.Fprint(&b, ")")
			}
			if !r.CanBuild(n) {
				fmt.Fprint(&b, " [inconsistent: rule declares this Name but CanBuild returns false]")
			}
			fmt.Fprintln(&b)
		}
	}

	fmt.Fprintln(&b, "\nWAREHOUSE ENTRIES (build order):")
	for _, n := range f.warehouse.Entries() {
		sb, dur, ok := f.warehouse.Provenance(n)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s (built in %s)\n", n, dur)
		if sb != nil {
			for q, components := range sb.materials {
				status := "satisfied"
				if len(components) == 0 {
					status = "empty"
				}
				fmt.Fprintf(&b, "    %s: %s (%d component(s))\n", q.String(), status, len(components))
			}
		}
	}

	if len(f.discoveryFailures) > 0 {
		fmt.Fprintln(&b, "\nWARNING: rule sources registered but failed to instantiate:")
		for _, e := range f.discoveryFailures {
			fmt.Fprintf(&b, "  - %v\n", e)
		}
	}

	return b.String()
}
