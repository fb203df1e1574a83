package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/foundry/pkg/factory"
)

func TestQueryByName_DefaultsToMandatoryAndSingle(t *testing.T) {
	q := factory.QueryByName[string]("x")
	assert.True(t, q.Mandatory())
	assert.False(t, q.Multiple())
	n, ok := q.ExplicitName()
	assert.True(t, ok)
	assert.Equal(t, factory.Of[string]("x"), n)
}

func TestQueryByClass_DefaultsToMandatoryAndMultiple(t *testing.T) {
	q := factory.QueryByClass[string]()
	assert.True(t, q.Mandatory())
	assert.True(t, q.Multiple())
	_, ok := q.ExplicitName()
	assert.False(t, ok)
}

func TestOptionalAndMandatory_DoNotMutateTheOriginal(t *testing.T) {
	q := factory.QueryByName[string]("x")
	opt := factory.Optional(q)
	assert.True(t, q.Mandatory())
	assert.False(t, opt.Mandatory())

	back := factory.Mandatory(opt)
	assert.False(t, opt.Mandatory())
	assert.True(t, back.Mandatory())
}

func TestSatisfiedBOM_OneReturnsFalseForAnUnresolvedOptionalDependency(t *testing.T) {
	optionalDep := factory.Optional(factory.QueryByName[string]("absent"))
	var sawOk bool
	rule := factory.NewRule(factory.Of[string]("consumer"), 0, factory.BOM{optionalDep},
		func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
			_, sawOk = sb.One(optionalDep)
			return factory.NewBox(factory.Of[string]("consumer"), "v", true), nil
		})
	f, err := factory.NewBuilder().AddRule(rule).Build(context.Background())
	require.NoError(t, err)
	_, err = factory.GetComponent[string](context.Background(), f, "consumer")
	require.NoError(t, err)
	assert.False(t, sawOk)
}
