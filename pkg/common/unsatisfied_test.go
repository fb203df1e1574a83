package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xraph/foundry/pkg/common"
)

func TestUnsatisfiedDependency_PrependAddsLeadingSegment(t *testing.T) {
	d := &common.UnsatisfiedDependency{Path: []string{"B"}, Cause: "missing"}
	prepended := d.Prepend("A")
	assert.Equal(t, []string{"A", "B"}, prepended.Path)
	assert.Equal(t, []string{"B"}, d.Path, "Prepend must not mutate the receiver")
}

func TestUnsatisfiedDependencies_AsError(t *testing.T) {
	var agg common.UnsatisfiedDependencies
	assert.Nil(t, agg.AsError())

	agg.Add(&common.UnsatisfiedDependency{Path: []string{"A"}, Cause: "x"})
	assert.Equal(t, agg.Deps[0], agg.AsError())

	agg.Add(&common.UnsatisfiedDependency{Path: []string{"B"}, Cause: "y"})
	assert.Same(t, &agg, agg.AsError())
}

func TestUnsatisfiedDependencies_Empty(t *testing.T) {
	var agg common.UnsatisfiedDependencies
	assert.True(t, agg.Empty())
	agg.Add(&common.UnsatisfiedDependency{Path: []string{"A"}, Cause: "x"})
	assert.False(t, agg.Empty())
}
