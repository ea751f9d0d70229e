// ABOUTME: Tests for the session registry and bounded outbound queues.
// ABOUTME: Covers lifecycle, FIFO ordering, eviction-on-full, and concurrent access.

package session

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(10, slog.Default())

	sess := r.Create()
	require.NotEmpty(t, sess.ID)

	got, ok := r.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(10, slog.Default())

	_, ok := r.Get("no-such-session")
	assert.False(t, ok)
}

func TestRegistryUniqueIDs(t *testing.T) {
	r := NewRegistry(10, slog.Default())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess := r.Create()
		require.False(t, seen[sess.ID], "duplicate session id %s", sess.ID)
		seen[sess.ID] = true
	}
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry(10, slog.Default())
	sess := r.Create()

	assert.True(t, r.Remove(sess.ID))
	assert.False(t, r.Remove(sess.ID))
	assert.Equal(t, 0, r.Count())

	_, ok := r.Get(sess.ID)
	assert.False(t, ok)
}

func TestPublishFIFOOrder(t *testing.T) {
	r := NewRegistry(10, slog.Default())
	sess := r.Create()

	for i := 0; i < 5; i++ {
		evicted, ok := sess.Publish(Message{Event: EventMessage, Data: fmt.Sprintf("msg-%d", i)})
		require.True(t, ok)
		require.False(t, evicted)
	}

	for i := 0; i < 5; i++ {
		msg := <-sess.Messages()
		assert.Equal(t, fmt.Sprintf("msg-%d", i), msg.Data)
	}
}

func TestPublishEvictsExactlyOneOldest(t *testing.T) {
	r := NewRegistry(3, slog.Default())
	sess := r.Create()

	for i := 0; i < 3; i++ {
		_, ok := sess.Publish(Message{Event: EventMessage, Data: fmt.Sprintf("msg-%d", i)})
		require.True(t, ok)
	}

	// Queue is full; the next publish must evict msg-0 only.
	evicted, ok := sess.Publish(Message{Event: EventMessage, Data: "msg-3"})
	require.True(t, ok)
	assert.True(t, evicted)

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, (<-sess.Messages()).Data)
	}
	assert.Equal(t, []string{"msg-1", "msg-2", "msg-3"}, got)
}

func TestPublishNeverBlocksOnFullQueue(t *testing.T) {
	r := NewRegistry(1, slog.Default())
	sess := r.Create()

	// No consumer at all; every publish must still return promptly.
	for i := 0; i < 50; i++ {
		_, ok := sess.Publish(Message{Event: EventMessage, Data: fmt.Sprintf("msg-%d", i)})
		require.True(t, ok)
	}

	msg := <-sess.Messages()
	assert.Equal(t, "msg-49", msg.Data)
}

func TestPublishAfterRemoveIsDiscarded(t *testing.T) {
	r := NewRegistry(10, slog.Default())
	sess := r.Create()
	r.Remove(sess.ID)

	evicted, ok := sess.Publish(Message{Event: EventMessage, Data: "late"})
	assert.False(t, ok)
	assert.False(t, evicted)
}

func TestRemoveClosesMessageChannel(t *testing.T) {
	r := NewRegistry(10, slog.Default())
	sess := r.Create()
	r.Remove(sess.ID)

	_, open := <-sess.Messages()
	assert.False(t, open)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry(4, slog.Default())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := r.Create()
			for j := 0; j < 100; j++ {
				sess.Publish(Message{Event: EventMessage, Data: "x"})
			}
			r.Get(sess.ID)
			r.Remove(sess.ID)
			// Late publishers racing with removal must not panic.
			sess.Publish(Message{Event: EventMessage, Data: "late"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Count())
}

func TestConcurrentPublishersSingleConsumer(t *testing.T) {
	r := NewRegistry(1000, slog.Default())
	sess := r.Create()

	const producers = 10
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_, ok := sess.Publish(Message{Event: EventMessage, Data: "m"})
				require.True(t, ok)
			}
		}()
	}
	wg.Wait()

	count := 0
	for len(sess.Messages()) > 0 {
		<-sess.Messages()
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}
