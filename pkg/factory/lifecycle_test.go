package factory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/foundry/pkg/factory"
)

type startRecorder struct {
	started bool
	failErr error
}

func (s *startRecorder) Start(ctx context.Context) error {
	s.started = true
	return s.failErr
}

type closeRecorder struct {
	closed  bool
	failErr error
	label   string
	log     *[]string
}

func (c *closeRecorder) Close() error {
	c.closed = true
	if c.log != nil {
		*c.log = append(*c.log, c.label+"-closed")
	}
	return c.failErr
}

func TestFactory_StartInvokesAutoStartableComponents(t *testing.T) {
	rec := &startRecorder{}
	name := factory.Of[*startRecorder]("svc")
	rule := factory.NewRule(name, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(name, rec, true), nil
	})
	f, err := factory.NewBuilder().AddRule(rule).Build(context.Background())
	require.NoError(t, err)

	_, err = factory.GetComponent[*startRecorder](context.Background(), f, "svc")
	require.NoError(t, err)

	require.NoError(t, f.Start(context.Background()))
	assert.True(t, rec.started)
}

func TestFactory_StartPropagatesFailureWrapped(t *testing.T) {
	rec := &startRecorder{failErr: errors.New("nope")}
	name := factory.Of[*startRecorder]("svc")
	rule := factory.NewRule(name, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		return factory.NewBox(name, rec, true), nil
	})
	f, err := factory.NewBuilder().AddRule(rule).Build(context.Background())
	require.NoError(t, err)
	_, err = factory.GetComponent[*startRecorder](context.Background(), f, "svc")
	require.NoError(t, err)

	err = f.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rec.failErr)
}

func TestFactory_CloseReleasesInReverseBuildOrder(t *testing.T) {
	var closeOrder []string

	firstName := factory.Of[*closeRecorder]("first")
	secondName := factory.Of[*closeRecorder]("second")
	first := &closeRecorder{label: "first", log: &closeOrder}
	second := &closeRecorder{label: "second", log: &closeOrder}

	firstRule := factory.NewRule(firstName, 0, nil, func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
		closeOrder = append(closeOrder, "first-built")
		return factory.NewBox(firstName, first, true), nil
	})
	secondRule := factory.NewRule(secondName, 0, factory.BOM{factory.QueryByName[*closeRecorder]("first")},
		func(ctx context.Context, sb *factory.SatisfiedBOM) (*factory.Box, error) {
			closeOrder = append(closeOrder, "second-built")
			return factory.NewBox(secondName, second, true), nil
		})

	f, err := factory.NewBuilder().AddRule(firstRule).AddRule(secondRule).Build(context.Background())
	require.NoError(t, err)

	_, err = factory.GetComponent[*closeRecorder](context.Background(), f, "second")
	require.NoError(t, err)
	require.Equal(t, []string{"first-built", "second-built"}, closeOrder)

	errs := f.Close()
	assert.Empty(t, errs)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.Equal(t, []string{"first-built", "second-built", "second-closed", "first-closed"}, closeOrder)
}
