// Package metrics defines the narrow timer-sink interface the factory core
// consumes for the <BUILD> and <CUSTOMIZE> timer key families, plus two
// concrete sinks: an in-memory default and a Prometheus-backed one.
package metrics

import "time"

// Sink records the duration of a named operation. Keys follow the two
// families "<BUILD> <simple-name>" and "<CUSTOMIZE> <name> <WITH> <customizer>".
type Sink interface {
	Time(key string, d time.Duration)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Time(string, time.Duration) {}
