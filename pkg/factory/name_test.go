package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xraph/foundry/pkg/factory"
)

type widget struct{ N int }

type widgetLike interface{ Describe() string }

func (w widget) Describe() string { return "widget" }

func TestName_StringRendersIDAtSimpleClassName(t *testing.T) {
	n := factory.Of[widget]("primary")
	assert.Equal(t, "primary@widget", n.String())
}

func TestName_EqualityIsByClassAndID(t *testing.T) {
	a := factory.Of[widget]("x")
	b := factory.Of[widget]("x")
	c := factory.Of[widget]("y")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestName_PointerClassSimpleNameStripsIndirection(t *testing.T) {
	n := factory.Of[*widget]("p")
	assert.Equal(t, "p@widget", n.String())
}

func TestOf_DistinguishesConcreteFromInterfaceOfSameName(t *testing.T) {
	concrete := factory.Of[widget]("same")
	iface := factory.Of[widgetLike]("same")
	assert.NotEqual(t, concrete, iface)
}
