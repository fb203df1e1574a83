package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xraph/foundry/pkg/factory"
)

func TestBox_PickReturnsOkFalseWhenAbsent(t *testing.T) {
	b := factory.AbsentBox(factory.Of[string]("missing"))
	_, ok := b.Pick()
	assert.False(t, ok)
	assert.False(t, b.Present())
}

func TestBox_PickReturnsValueWhenPresent(t *testing.T) {
	name := factory.Of[string]("x")
	b := factory.NewBox(name, "v", true)
	nc, ok := b.Pick()
	assert.True(t, ok)
	assert.Equal(t, name, nc.Name)
	assert.Equal(t, "v", nc.Value)
}

func TestBox_CustomizePassesThroughAbsentBox(t *testing.T) {
	b := factory.AbsentBox(factory.Of[string]("missing"))
	c := &factory.Customizer{Transform: func(box *factory.Box) *factory.Box {
		t := factory.NewBox(box.Name(), "should-not-appear", true)
		return t
	}}
	out := b.Customize(c)
	assert.Same(t, b, out)
}

func TestBox_CustomizePassesThroughNilCustomizer(t *testing.T) {
	b := factory.NewBox(factory.Of[string]("x"), "v", true)
	out := b.Customize(nil)
	assert.Same(t, b, out)
}

func TestBox_CustomizeAppliesTransform(t *testing.T) {
	b := factory.NewBox(factory.Of[string]("x"), "v", true)
	c := &factory.Customizer{Transform: func(box *factory.Box) *factory.Box {
		return factory.NewBox(box.Name(), box.Value().(string)+"!", box.Bounded())
	}}
	out := b.Customize(c)
	assert.Equal(t, "v!", out.Value())
}
