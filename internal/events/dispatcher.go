package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrQueueFull is returned when the async buffer has no room.
var ErrQueueFull = errors.New("event queue full")

// ErrDispatcherClosed is returned after Close.
var ErrDispatcherClosed = errors.New("event dispatcher closed")

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, entity EntityKind, entityID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

type registry struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

func (r *registry) subscribe(eventType EventType, handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listeners == nil {
		r.listeners = make(map[EventType][]EventHandler)
	}
	r.listeners[eventType] = append(r.listeners[eventType], handler)
}

func (r *registry) handlers(eventType EventType) []EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]EventHandler{}, r.listeners[eventType]...)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	registry
	logger *zap.Logger
}

// NewInMemoryDispatcher creates a synchronous dispatcher instance.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &inMemoryDispatcher{logger: logger}
}

// Publish synchronously invokes handlers for the given event.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	deliver(ctx, d.logger, d.handlers(event.Type), event)
	return nil
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.subscribe(eventType, handler)
}

// AsyncDispatcher queues events on a buffered channel drained by a single
// goroutine. Publish never blocks.
type AsyncDispatcher struct {
	registry
	logger *zap.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
	start  sync.Once
}

// NewAsyncDispatcher builds a dispatcher with the given buffer size.
func NewAsyncDispatcher(buffer int, logger *zap.Logger) *AsyncDispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &AsyncDispatcher{
		logger: logger,
		queue:  make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

var _ Dispatcher = (*AsyncDispatcher)(nil)

func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.subscribe(eventType, handler)
}

// Publish enqueues the event, dropping it when the buffer is full.
func (d *AsyncDispatcher) Publish(_ context.Context, event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("event dropped: queue full",
			zap.String("type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
		)
		return ErrQueueFull
	}
}

// Start launches the worker goroutine. Calling it more than once is a no-op.
func (d *AsyncDispatcher) Start() {
	d.start.Do(func() {
		go func() {
			defer close(d.done)
			for event := range d.queue {
				deliver(context.Background(), d.logger, d.handlers(event.Type), event)
			}
		}()
	})
}

// Close stops accepting events and waits for queued ones to drain or ctx to expire.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.Start()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func deliver(ctx context.Context, logger *zap.Logger, handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("event handler panicked", zap.String("type", string(event.Type)), zap.Any("panic", r))
				}
			}()
			if err := handler(ctx, event); err != nil {
				logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
			}
		}()
	}
}
