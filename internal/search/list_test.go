package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddKeepsInsertionOrder(t *testing.T) {
	l := NewList()
	_, err := l.Add("b", false)
	require.NoError(t, err)
	_, err = l.Add("a", true)
	require.NoError(t, err)

	snap := l.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Term)
	assert.Equal(t, "a", snap[1].Term)
	assert.True(t, snap[1].IsRegex)
}

func TestListRejectedTermLeavesListUntouched(t *testing.T) {
	l := NewList()
	_, err := l.Add("keep", false)
	require.NoError(t, err)

	_, err = l.Add("(", true)
	require.Error(t, err)
	_, err = l.Add("   ", false)
	require.ErrorIs(t, err, ErrEmptyTerm)

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "keep", l.Snapshot()[0].Term)
}

func TestListRemove(t *testing.T) {
	l := NewList()
	for _, term := range []string{"a", "b", "c"} {
		_, err := l.Add(term, false)
		require.NoError(t, err)
	}
	before := l.Snapshot()

	assert.True(t, l.Remove(1))
	assert.False(t, l.Remove(5))
	assert.False(t, l.Remove(-1))

	after := l.Snapshot()
	require.Len(t, after, 2)
	assert.Equal(t, "a", after[0].Term)
	assert.Equal(t, "c", after[1].Term)
	assert.Len(t, before, 3, "earlier snapshots are not affected")
	assert.Equal(t, "b", before[1].Term)

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestListSnapshotIsSafeUnderConcurrentEdits(t *testing.T) {
	l := NewList()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = l.Add("term", false)
		}()
		go func() {
			defer wg.Done()
			_ = l.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, l.Len())
}
