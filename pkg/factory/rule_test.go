package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/foundry/pkg/factory"
)

func TestSimpleRule_EngineForRejectsForeignName(t *testing.T) {
	r := factory.NewRule(factory.Of[string]("a"), 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(factory.Of[string]("a"), "v", true), nil
	})
	_, ok := r.EngineFor(factory.Of[string]("b"))
	assert.False(t, ok)
	assert.False(t, r.CanBuild(factory.Of[string]("b")))
	assert.True(t, r.CanBuild(factory.Of[string]("a")))
}

func TestSimpleRule_NamesProducedForMatchesAssignableInterfaceOnly(t *testing.T) {
	r := factory.NewRule(factory.Of[widget]("a"), 0, nil, nil)
	assert.Equal(t, []factory.Name{factory.Of[widget]("a")}, r.NamesProducedFor(factory.Of[widget]("a").Class))
	assert.Equal(t, []factory.Name{factory.Of[widget]("a")}, r.NamesProducedFor(factory.Of[widgetLike]("a").Class))
	assert.Nil(t, r.NamesProducedFor(factory.Of[int]("unrelated").Class))
}

func TestSingletonRule_DefaultsToOverlayPriority(t *testing.T) {
	r := factory.NewSingletonRule(factory.Of[int]("x"), 1)
	assert.Equal(t, factory.DefaultOverlayPriority, r.Priority())
	r.WithPriority(5)
	assert.Equal(t, 5, r.Priority())
}

func TestSingletonRule_BuildsWithoutDependencies(t *testing.T) {
	r := factory.NewSingletonRule(factory.Of[int]("x"), 42)
	f, err := factory.NewBuilder().AddRule(r).Build(context.Background())
	require.NoError(t, err)
	v, err := factory.GetComponent[int](context.Background(), f, "x")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
