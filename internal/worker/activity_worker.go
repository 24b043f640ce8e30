package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/events"
)

// ActivityWorker records submission events and forwards them to an optional webhook.
type ActivityWorker struct {
	logger  *zap.Logger
	client  *resty.Client
	webhook string
}

// NewActivityWorker builds a worker. An empty webhookURL disables forwarding.
func NewActivityWorker(webhookURL string, timeout time.Duration, logger *zap.Logger) *ActivityWorker {
	w := &ActivityWorker{logger: logger, webhook: webhookURL}
	if webhookURL != "" {
		w.client = resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "lead-intake-activity/1")
	}
	return w
}

// Register subscribes the worker to every submission event.
func (w *ActivityWorker) Register(dispatcher events.Dispatcher) {
	for _, t := range []events.EventType{
		events.EventSubmissionCreated,
		events.EventSubmissionStatusChanged,
		events.EventSubmissionDeleted,
	} {
		dispatcher.Subscribe(t, w.Handle)
	}
}

// Handle logs the event and, when configured, POSTs it once to the webhook.
func (w *ActivityWorker) Handle(ctx context.Context, event events.Event) error {
	w.logger.Info("submission activity",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("entity", string(event.Entity)),
		zap.String("entity_id", event.EntityID),
	)
	if w.client == nil {
		return nil
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(w.webhook)
	if err != nil {
		return fmt.Errorf("activity webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("activity webhook: unexpected status %d", resp.StatusCode())
	}
	return nil
}
