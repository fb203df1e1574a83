// cmd/foundryctl/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/foundry/pkg/factory"
	"github.com/xraph/foundry/pkg/logger"
	"github.com/xraph/foundry/pkg/metrics"
)

// Bootstrap config has exactly two knobs, neither of which the core itself
// needs: log verbosity and which metrics sink to wire. Flags first, then
// environment variable fallback; there is no config file, since the
// resolution engine is config-free by design.
type bootstrapConfig struct {
	logLevel string
	metrics  string
}

func loadBootstrapConfig() bootstrapConfig {
	cfg := bootstrapConfig{
		logLevel: envOr("FOUNDRYCTL_LOG_LEVEL", "info"),
		metrics:  envOr("FOUNDRYCTL_METRICS", "memory"),
	}
	flag.StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "debug or info")
	flag.StringVar(&cfg.metrics, "metrics", cfg.metrics, "memory, prometheus, or none")
	flag.Parse()
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cfg := loadBootstrapConfig()

	var log logger.Logger
	if cfg.logLevel == "debug" {
		log = logger.NewDevelopment()
	} else {
		log = logger.New()
	}
	defer log.Sync()
	logger.SetDefault(log)

	var sink metrics.Sink
	switch cfg.metrics {
	case "prometheus":
		sink = metrics.NewPrometheusSink(prometheus.DefaultRegisterer, "foundryctl")
	case "none":
		sink = metrics.NopSink{}
	default:
		sink = metrics.NewMemorySink()
	}

	ctx := context.Background()
	f, err := factory.NewInstance(ctx, factory.NewBuilder().
		AddDiscoveredRuleSources().
		WithLogger(log).
		WithMetricsSink(sink))
	if err != nil {
		fmt.Fprintf(os.Stderr, "foundryctl: build failed: %v\n", err)
		os.Exit(1)
	}

	g, err := factory.GetComponent[*greeter](ctx, f, "demo-greeter")
	if err != nil {
		fmt.Fprintf(os.Stderr, "foundryctl: resolve failed: %v\n", err)
		os.Exit(1)
	}

	if err := f.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foundryctl: start failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		for _, err := range f.Close() {
			fmt.Fprintf(os.Stderr, "foundryctl: close: %v\n", err)
		}
	}()

	fmt.Println(boldGreen(g.Greet()))

	fmt.Println()
	fmt.Println(boldCyan("--- factory dump ---"))
	fmt.Println(f.Dump())

	if m, ok := sink.(*metrics.MemorySink); ok {
		fmt.Println(boldYellow("--- timers ---"))
		for _, key := range m.Keys() {
			snap, _ := m.Snapshot(key)
			fmt.Printf("%s: count=%d total=%s max=%s\n", key, snap.Count, snap.Total, snap.Max)
		}
	}
}
