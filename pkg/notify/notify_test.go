package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster(t *testing.T) {
	t.Run("every subscriber is woken", func(t *testing.T) {
		b := NewBroadcaster()
		a, cancelA := b.Subscribe()
		defer cancelA()
		c, cancelC := b.Subscribe()
		defer cancelC()

		b.Notify()

		assert.Len(t, a, 1)
		assert.Len(t, c, 1)
	})

	t.Run("bursts coalesce", func(t *testing.T) {
		b := NewBroadcaster()
		ch, cancel := b.Subscribe()
		defer cancel()

		b.Notify()
		b.Notify()
		b.Notify()

		require.Len(t, ch, 1)
		<-ch
		assert.Len(t, ch, 0)
	})

	t.Run("cancel removes and closes", func(t *testing.T) {
		b := NewBroadcaster()
		ch, cancel := b.Subscribe()
		require.Equal(t, 1, b.Len())

		cancel()
		cancel()

		assert.Equal(t, 0, b.Len())
		_, open := <-ch
		assert.False(t, open)

		b.Notify()
	})
}
