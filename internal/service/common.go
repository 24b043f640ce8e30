package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// ListQuery is the admin listing filter. Empty strings match everything.
type ListQuery struct {
	Status  string
	Service string
	Page    int
	Limit   int
}

func (q ListQuery) filter() repository.ListFilter {
	return repository.ListFilter{
		Status:     q.Status,
		Service:    q.Service,
		Pagination: repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize(),
	}
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}

func newPage[T any](items []T, total int, p repository.Pagination) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: p.Normalize().Page, TotalPages: p.TotalPages(total)}
}

// exportLimit caps the number of rows collected for a spreadsheet export.
const exportLimit = 10000

// collectAll pages through list until exhaustion or exportLimit.
func collectAll[T any](ctx context.Context, filter repository.ListFilter, list func(context.Context, repository.ListFilter) ([]T, int, error)) ([]T, error) {
	var out []T
	filter.Pagination = repository.Pagination{Page: 1, Limit: repository.MaxPageLimit}
	for len(out) < exportLimit {
		items, total, err := list(ctx, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || len(out) >= total {
			break
		}
		filter.Page++
	}
	return out, nil
}

// storeError maps repository failures to domain errors. resource names the
// entity in the 404 message.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource)
	default:
		return apperrors.NewPersistenceError(err)
	}
}

// publisher wraps an optional dispatcher. Delivery problems are logged, never returned.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && !errors.Is(err, events.ErrQueueFull) && p.logger != nil {
		p.logger.Warn("event not published", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func (p publisher) created(ctx context.Context, entity events.EntityKind, id, name, email, service, status string) {
	p.publish(ctx, events.NewEvent(events.EventSubmissionCreated, entity, id, events.SubmissionCreatedPayload{
		Name: name, Email: email, Service: service, Status: status,
	}))
}

func (p publisher) statusChanged(ctx context.Context, entity events.EntityKind, id, oldStatus, newStatus string) {
	p.publish(ctx, events.NewEvent(events.EventSubmissionStatusChanged, entity, id, events.StatusChangedPayload{
		OldStatus: oldStatus, NewStatus: newStatus,
	}))
}

func (p publisher) deleted(ctx context.Context, entity events.EntityKind, id string) {
	p.publish(ctx, events.NewEvent(events.EventSubmissionDeleted, entity, id, nil))
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
