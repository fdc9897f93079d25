package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/internal/testutil"
)

func TestInMemoryStore_Lifecycle(t *testing.T) {
	store := NewInMemoryStore()
	ctx := testutil.NewScriptedContext(nil)

	sess, err := store.Create(ctx.Factory())
	require.NoError(t, err)
	_, err = uuid.Parse(sess.ID)
	assert.NoError(t, err, "handles are uuids")
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got, "the live session is returned, not a copy")

	require.NoError(t, store.Delete(sess.ID))
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(sess.ID), ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestInMemoryStore_CreatePassesOptions(t *testing.T) {
	store := NewInMemoryStore()
	ctx := testutil.NewScriptedContext(nil)

	_, err := store.Create(ctx.Factory(), func(o *core.SessionOptions) {
		o.Bootstrap = []string{"use units"}
	})
	require.NoError(t, err)
	calls := ctx.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "use units", calls[0].Source)
}

func TestInMemoryStore_RejectsNilFactory(t *testing.T) {
	_, err := NewInMemoryStore().Create(nil)
	assert.Error(t, err)
}

func TestInMemoryStore_DuplicateHandle(t *testing.T) {
	store := NewInMemoryStore()
	store.newID = func() string { return "fixed" }
	ctx := testutil.NewScriptedContext(nil)

	_, err := store.Create(ctx.Factory())
	require.NoError(t, err)
	_, err = store.Create(ctx.Factory())
	assert.Error(t, err)
}

func TestInMemoryStore_ConcurrentCreate(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(testutil.NewScriptedContext(nil).Factory())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}
