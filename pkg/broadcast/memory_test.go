package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/pkg/broadcast"
)

func receiveOne[T any](t *testing.T, sub broadcast.Subscriber[T]) T {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "channel closed before message arrived")
		return msg.Data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		panic("unreachable")
	}
}

func TestMemoryBroadcaster_DeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[int](4)
	defer bc.Close()

	ctx := context.Background()
	sub1 := bc.Subscribe(ctx)
	sub2 := bc.Subscribe(ctx)

	require.NoError(t, bc.Broadcast(ctx, broadcast.Message[int]{Data: 42}))

	assert.Equal(t, 42, receiveOne(t, sub1))
	assert.Equal(t, 42, receiveOne(t, sub2))
}

func TestMemoryBroadcaster_CloseClosesSubscribers(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[int](1)
	ctx := context.Background()
	sub := bc.Subscribe(ctx)

	require.NoError(t, bc.Close())

	_, ok := <-sub.Receive(ctx)
	assert.False(t, ok, "expected closed receive channel")
}

func TestMemoryBroadcaster_SubscribeAfterClose(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[int](1)
	require.NoError(t, bc.Close())

	sub := bc.Subscribe(context.Background())
	_, ok := <-sub.Receive(context.Background())
	assert.False(t, ok)
}

func TestMemoryBroadcaster_ContextCancelCleansUp(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[int](1)
	defer bc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := bc.Subscribe(ctx)
	cancel()

	// The receive channel eventually closes once cleanup runs.
	select {
	case _, ok := <-sub.Receive(context.Background()):
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not cleaned up after context cancellation")
	}
}

func TestMemoryBroadcaster_SlowConsumerDropped(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[int](1)
	defer bc.Close()

	ctx := context.Background()
	sub := bc.Subscribe(ctx)

	// Fill the buffer, then overflow it. The second broadcast is dropped
	// and the subscriber removed.
	require.NoError(t, bc.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	require.NoError(t, bc.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

	assert.Equal(t, 1, receiveOne(t, sub))

	// Buffered message was the only delivery; the channel closes on removal.
	select {
	case _, ok := <-sub.Receive(ctx):
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected subscriber channel to close")
	}
}

func TestMemoryBroadcaster_BroadcastAfterClose(t *testing.T) {
	t.Parallel()

	bc := broadcast.NewMemoryBroadcaster[string](1)
	require.NoError(t, bc.Close())
	assert.NoError(t, bc.Broadcast(context.Background(), broadcast.Message[string]{Data: "ignored"}))
}
