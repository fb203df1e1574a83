package main

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/foundry/pkg/factory"
)

// clock is a trivial AutoStartable/Closer component: it records when it was
// started and stopped, so the demo exercises both lifecycle hooks without
// needing any real external dependency.
type clock struct {
	startedAt time.Time
	stoppedAt time.Time
}

func (c *clock) Start(ctx context.Context) error {
	c.startedAt = time.Now()
	return nil
}

func (c *clock) Close() error {
	c.stoppedAt = time.Now()
	return nil
}

// greeter depends on the clock, demonstrating a one-hop BOM.
type greeter struct {
	clock *clock
}

func (g *greeter) Greet() string {
	return fmt.Sprintf("hello from foundryctl, clock started at %s", g.clock.startedAt.Format(time.RFC3339))
}

var clockName = factory.Of[*clock]("demo-clock")
var greeterName = factory.Of[*greeter]("demo-greeter")

func demoRules() []factory.Rule {
	clockRule := factory.NewRule(clockName, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(clockName, &clock{}, true), nil
	})

	clockDep := factory.QueryByName[*clock]("demo-clock")
	greeterRule := factory.NewRule(greeterName, 0, factory.BOM{clockDep}, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		nc, ok := sb.One(clockDep)
		if !ok {
			return factory.AbsentBox(greeterName), nil
		}
		return factory.NewBox(greeterName, &greeter{clock: nc.Value.(*clock)}, true), nil
	})

	return []factory.Rule{clockRule, greeterRule}
}

func init() {
	factory.RegisterRuleSource("demo", func() ([]factory.Rule, error) {
		return demoRules(), nil
	})
}
