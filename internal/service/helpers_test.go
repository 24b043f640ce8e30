package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/notify"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

type fakeNotifier struct {
	mu    sync.Mutex
	kinds []notify.Kind
	send  func(kind notify.Kind, payload any) bool
}

var _ notify.Notifier = (*fakeNotifier)(nil)

func (f *fakeNotifier) Send(_ context.Context, kind notify.Kind, payload any) bool {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()
	if f.send == nil {
		return true
	}
	return f.send(kind, payload)
}

func (f *fakeNotifier) calls() []notify.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Kind{}, f.kinds...)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

var errStoreDown = errors.New("connection refused")

type failingContacts struct {
	repository.ContactRepository
}

func (failingContacts) Create(context.Context, *domain.Contact) error { return errStoreDown }

type failingDemos struct {
	repository.DemoRepository
}

func (failingDemos) Create(context.Context, *domain.Demo) error { return errStoreDown }

func requireDomainError(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, "error: %v", err)
	return de
}

func violationFields(de *apperrors.DomainError) []string {
	fields := make([]string, len(de.Violations))
	for i, v := range de.Violations {
		fields[i] = v.Field
	}
	return fields
}

const (
	statusBadRequest = http.StatusBadRequest
	statusNotFound   = http.StatusNotFound
	statusInternal   = http.StatusInternalServerError
)
