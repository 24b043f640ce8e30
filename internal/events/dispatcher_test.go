package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var got []string
	d.Subscribe(EventSubmissionCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.EntityID)
		return errors.New("ignored")
	})
	d.Subscribe(EventSubmissionCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventSubmissionDeleted, func(context.Context, Event) error {
		panic("must not be called")
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityContact, "c-1", nil)))
	assert.Equal(t, []string{"first:c-1", "second:c-1"}, got)
}

func TestAsyncDispatcher_DrainsOnClose(t *testing.T) {
	d := NewAsyncDispatcher(8, zap.NewNop())
	var (
		mu  sync.Mutex
		ids []string
	)
	d.Subscribe(EventSubmissionStatusChanged, func(_ context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, e.EntityID)
		return nil
	})
	d.Start()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Publish(context.Background(), NewEvent(EventSubmissionStatusChanged, EntityDemo, id, StatusChangedPayload{})))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	assert.ErrorIs(t, d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityDemo, "late", nil)), ErrDispatcherClosed)
	assert.NoError(t, d.Close(ctx))
}

func TestAsyncDispatcher_DropsWhenFull(t *testing.T) {
	d := NewAsyncDispatcher(1, zap.NewNop())

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityMeeting, "m-1", nil)))
	err := d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityMeeting, "m-2", nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestAsyncDispatcher_HandlerPanicDoesNotStopWorker(t *testing.T) {
	d := NewAsyncDispatcher(4, zap.NewNop())
	delivered := make(chan string, 2)
	d.Subscribe(EventSubmissionCreated, func(_ context.Context, e Event) error {
		if e.EntityID == "bad" {
			panic("boom")
		}
		delivered <- e.EntityID
		return nil
	})
	d.Start()

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityContact, "bad", nil)))
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventSubmissionCreated, EntityContact, "good", nil)))

	select {
	case id := <-delivered:
		assert.Equal(t, "good", id)
	case <-time.After(time.Second):
		t.Fatal("event after panic was not delivered")
	}
	require.NoError(t, d.Close(context.Background()))
}
