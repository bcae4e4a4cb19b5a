package recency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerEvictsOldest(t *testing.T) {
	tr := New(5)
	for id := int64(1); id <= 6; id++ {
		tr.Record(id)
	}

	assert.Equal(t, []int64{2, 3, 4, 5, 6}, tr.List())
	assert.Equal(t, []int64{6, 5, 4, 3, 2}, tr.Newest())
	assert.NotContains(t, tr.List(), int64(1))
	assert.Equal(t, 5, tr.Len())
}

func TestTrackerKeepsDuplicates(t *testing.T) {
	tr := New(3)
	for _, id := range []int64{1, 2, 3, 3, 3} {
		tr.Record(id)
	}

	assert.Equal(t, []int64{3, 3, 3}, tr.List())
}

func TestTrackerDefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		assert.Equal(t, DefaultCapacity, New(capacity).Cap())
	}
}

func TestTrackerListIsACopy(t *testing.T) {
	tr := New(2)
	tr.Record(7)

	got := tr.List()
	got[0] = 99

	assert.Equal(t, []int64{7}, tr.List())
}

func TestTrackerReset(t *testing.T) {
	tr := New(2)
	tr.Record(1)
	tr.Reset()

	assert.Empty(t, tr.List())
	assert.Zero(t, tr.Len())
}

func TestTrackerConcurrentRecord(t *testing.T) {
	tr := New(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			tr.Record(id)
		}(int64(i))
	}
	wg.Wait()

	require.Equal(t, 10, tr.Len())
}
