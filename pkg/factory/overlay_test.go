package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/foundry/pkg/factory"
)

func TestContextLocal_SameNameReturnsSameOverlay(t *testing.T) {
	factory.ResetOverlaysForTest()
	a := factory.ContextLocal("feature-x")
	b := factory.ContextLocal("feature-x")
	assert.Same(t, a, b)
}

func TestThreadLocalFrom_UnknownIDReturnsUnregisteredEmptyOverlay(t *testing.T) {
	factory.ResetOverlaysForTest()
	o := factory.ThreadLocalFrom("never-created")
	assert.False(t, o.Registered())
	assert.Empty(t, o.Snapshot())
}

func TestThreadLocalFrom_KnownIDReturnsSameOverlay(t *testing.T) {
	factory.ResetOverlaysForTest()
	h := factory.NewOverlayHandle()
	created := factory.ThreadLocal(h)
	created.AddRule(factory.NewSingletonRule(factory.Of[int]("v"), 1))

	fetched := factory.ThreadLocalFrom(h.ID())
	assert.True(t, fetched.Registered())
	assert.Len(t, fetched.Snapshot(), 1)
}

func TestOverlay_SnapshotIsTakenAtBuildTime(t *testing.T) {
	factory.ResetOverlaysForTest()
	h := factory.NewOverlayHandle()
	overlay := factory.ThreadLocal(h)
	factory.Set(overlay, "v", 1)

	f, err := factory.NewBuilder().AddOverlay(overlay).Build(context.Background())
	require.NoError(t, err)

	// mutating the overlay after Build must not affect the already-built Factory.
	overlay.Clear()
	factory.Set(overlay, "v", 2)

	v, err := factory.GetComponent[int](context.Background(), f, "v")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
