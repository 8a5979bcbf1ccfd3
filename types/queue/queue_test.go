package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	t.Run("fifo order", func(t *testing.T) {
		q := New(1, 2, 3)
		assert.Equal(t, 3, q.Len())

		for _, want := range []int{1, 2, 3} {
			got, ok := q.Dequeue()
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}

		_, ok := q.Dequeue()
		assert.False(t, ok)
	})

	t.Run("wraps and grows", func(t *testing.T) {
		var q Queue[int]
		next := 0
		for i := 0; i < 100; i++ {
			q.Enqueue(i)
			if i%3 == 0 {
				v, ok := q.Dequeue()
				assert.True(t, ok)
				assert.Equal(t, next, v)
				next++
			}
		}

		for q.Len() > 0 {
			v, _ := q.Dequeue()
			assert.Equal(t, next, v)
			next++
		}
		assert.Equal(t, 100, next)
	})

	t.Run("peek", func(t *testing.T) {
		q := New[string]()
		_, ok := q.Peek()
		assert.False(t, ok)

		q.Enqueue("a")
		v, ok := q.Peek()
		assert.True(t, ok)
		assert.Equal(t, "a", v)
		assert.Equal(t, 1, q.Len())
	})
}
