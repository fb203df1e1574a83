package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/foundry/pkg/factory"
)

func TestDump_ReportsBuildableNamesAndOverrides(t *testing.T) {
	name := factory.Of[string]("X")
	low := factory.NewRule(name, 10, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(name, "low", true), nil
	})
	high := factory.NewRule(name, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(name, "high", true), nil
	})

	f, err := factory.NewBuilder().AddRule(low).AddRule(high).Build(context.Background())
	require.NoError(t, err)

	dump := f.Dump()
	assert.Contains(t, dump, "BUILDABLE NAMES")
	assert.Contains(t, dump, "X@string")
	assert.Contains(t, dump, "OVERRIDING")
}

func TestDump_ReportsWarehouseEntriesAfterResolution(t *testing.T) {
	name := factory.Of[string]("built")
	rule := factory.NewRule(name, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(name, "v", true), nil
	})
	f, err := factory.NewBuilder().AddRule(rule).Build(context.Background())
	require.NoError(t, err)

	_, err = factory.GetComponent[string](context.Background(), f, "built")
	require.NoError(t, err)

	dump := f.Dump()
	assert.Contains(t, dump, "WAREHOUSE ENTRIES")
	assert.Contains(t, dump, "built@string")
}

func TestDump_ReportsRuleSourceBucketsByName(t *testing.T) {
	rule := factory.NewSingletonRule(factory.Of[int]("n"), 1)
	f, err := factory.NewBuilder().AddRuleSource("plugin-a", rule).Build(context.Background())
	require.NoError(t, err)

	dump := f.Dump()
	assert.Contains(t, dump, "RULE SOURCES")
	assert.Contains(t, dump, "plugin-a: 1 rule(s)")
}
