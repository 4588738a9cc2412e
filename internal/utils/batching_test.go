package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchBufferAddAndSize(t *testing.T) {
	buf := NewBatchBuffer[string]()
	require.False(t, buf.HasData())

	buf.Add("a")
	buf.Add("b")

	require.Equal(t, 2, buf.Size())
	require.True(t, buf.HasData())
}

func TestBatchBufferGetAndClearResets(t *testing.T) {
	buf := NewBatchBuffer[int]()
	buf.Add(1)
	buf.Add(2)
	buf.Add(3)

	batch := buf.GetAndClear()

	require.Equal(t, []int{1, 2, 3}, batch)
	require.Equal(t, 0, buf.Size())
	require.Nil(t, buf.GetAndClear())
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buf := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buf.Add(n)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 100, buf.Size())
	require.Len(t, buf.GetAndClear(), 100)
}
