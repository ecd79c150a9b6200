package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBuffer(t *testing.T) {
	t.Run("drain returns everything and resets", func(t *testing.T) {
		buffer := NewBatchBuffer[int]()
		buffer.Add(1)
		buffer.Add(2)
		buffer.Add(3)

		assert.Equal(t, 3, buffer.Size())
		assert.True(t, buffer.HasData())

		batch := buffer.GetAndClear()
		assert.Equal(t, []int{1, 2, 3}, batch)
		assert.Equal(t, 0, buffer.Size())
		assert.False(t, buffer.HasData())
	})

	t.Run("draining an empty buffer yields nil", func(t *testing.T) {
		buffer := NewBatchBuffer[string]()
		assert.Nil(t, buffer.GetAndClear())
	})

	t.Run("concurrent producers lose nothing", func(t *testing.T) {
		buffer := NewBatchBuffer[int]()

		var wg sync.WaitGroup
		for w := 0; w < 10; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					buffer.Add(i)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1000, buffer.Size())
	})
}
