package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xraph/foundry/pkg/common"
)

func TestError_UnwrapReturnsCause(t *testing.T) {
	cause := errors.New("underlying")
	e := common.New(common.ErrCodeCycle, "boom").WithCause(cause)
	assert.Same(t, cause, errors.Unwrap(e))
	assert.True(t, errors.Is(e, cause))
}

func TestError_MessageIncludesCodeAndCause(t *testing.T) {
	e := common.New(common.ErrCodeAmbiguous, "too many").WithCause(errors.New("x"))
	assert.Contains(t, e.Error(), "AMBIGUOUS")
	assert.Contains(t, e.Error(), "too many")
	assert.Contains(t, e.Error(), "x")
}

func TestError_WithContextAccumulates(t *testing.T) {
	e := common.New(common.ErrCodeDuplicateName, "dup").
		WithContext("a", 1).
		WithContext("b", 2)
	assert.Equal(t, 1, e.Context["a"])
	assert.Equal(t, 2, e.Context["b"])
}

func TestErrMachineNotFound_IncludesHints(t *testing.T) {
	e := common.ErrMachineNotFound("n@Widget", "Widget", []string{"other@Widget"})
	assert.Equal(t, common.ErrCodeMachineNotFound, e.Code)
	assert.Equal(t, []string{"other@Widget"}, e.Context["buildable_of_same_class"])
}

func TestErrMachineNotFound_OmitsHintsKeyWhenEmpty(t *testing.T) {
	e := common.ErrMachineNotFound("n@Widget", "Widget", nil)
	_, ok := e.Context["buildable_of_same_class"]
	assert.False(t, ok)
}

func TestErrCycle_JoinsNamesInOrder(t *testing.T) {
	e := common.ErrCycle([]string{"a", "b", "c"})
	assert.Contains(t, e.Error(), "a -> b -> c")
}
