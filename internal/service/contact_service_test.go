package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/notify"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

func newContactService(t *testing.T, n *fakeNotifier) (*ContactService, repository.ContactRepository, *recordingDispatcher) {
	t.Helper()
	repo := repository.NewMemoryContactRepository()
	d := &recordingDispatcher{}
	return NewContactService(ContactDependencies{ContactRepo: repo, Notifier: n, Dispatcher: d}), repo, d
}

func validContact() ContactInput {
	return ContactInput{
		Name:    "  Ada Lovelace ",
		Email:   "ada@example.com",
		Subject: "Website rebuild",
		Message: "We need a new marketing site this quarter.",
	}
}

func TestContactService_Submit_DefaultsServiceToOther(t *testing.T) {
	n := &fakeNotifier{}
	svc, _, d := newContactService(t, n)

	result, err := svc.Submit(context.Background(), validContact())
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, domain.ContactStatusNew, result.Contact.Status)
	assert.Equal(t, domain.ServiceOther, result.Contact.Service)
	assert.Equal(t, "Ada Lovelace", result.Contact.Name)
	assert.Equal(t, []notify.Kind{notify.KindContactAdminNotice}, n.calls())
	assert.Equal(t, []events.EventType{events.EventSubmissionCreated}, d.types())
}

func TestContactService_Submit_KeepsSuppliedService(t *testing.T) {
	svc, _, _ := newContactService(t, &fakeNotifier{})
	in := validContact()
	in.Service = "seo-backlinks"

	result, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceSEOBacklinks, result.Contact.Service)
}

func TestContactService_Submit_EmailFailureStillCreates(t *testing.T) {
	n := &fakeNotifier{send: func(notify.Kind, any) bool { return false }}
	svc, repo, _ := newContactService(t, n)

	result, err := svc.Submit(context.Background(), validContact())
	require.NoError(t, err)
	assert.False(t, result.EmailSent)

	stored, err := repo.GetByID(context.Background(), result.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Contact.ID, stored.ID)
}

func TestContactService_Submit_ValidationStopsEverything(t *testing.T) {
	n := &fakeNotifier{}
	svc, repo, d := newContactService(t, n)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Jo", Email: "jo@x.com", Message: "short"})
	de := requireDomainError(t, err, statusBadRequest)
	assert.Equal(t, []string{"message"}, violationFields(de))

	count, err := repo.Count(context.Background(), repository.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, n.calls())
	assert.Empty(t, d.types())
}

func TestContactService_Submit_WhitespaceOnlyFieldsRejected(t *testing.T) {
	svc, _, _ := newContactService(t, &fakeNotifier{})
	in := validContact()
	in.Message = "            "

	_, err := svc.Submit(context.Background(), in)
	de := requireDomainError(t, err, statusBadRequest)
	assert.Equal(t, []string{"message"}, violationFields(de))
}

func TestMissingContactFields(t *testing.T) {
	tests := []struct {
		name  string
		input ContactInput
		want  []apperrors.FieldViolation
	}{
		{name: "complete", input: ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hello there"}},
		{
			name:  "all empty",
			input: ContactInput{},
			want: []apperrors.FieldViolation{
				{Field: "name", Reason: "Name is required"},
				{Field: "email", Reason: "Email is required"},
				{Field: "message", Reason: "Message is required"},
			},
		},
		{
			name:  "email only",
			input: ContactInput{Name: "Ada", Message: "hello there"},
			want:  []apperrors.FieldViolation{{Field: "email", Reason: "Email is required"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingContactFields(tt.input)
			assert.Equal(t, tt.want, got)

			err := validationFailed(got)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			de := requireDomainError(t, err, statusBadRequest)
			assert.Equal(t, tt.want, de.Violations)
		})
	}
}

func TestContactService_Submit_PersistenceFailureSkipsNotify(t *testing.T) {
	n := &fakeNotifier{}
	svc := NewContactService(ContactDependencies{ContactRepo: failingContacts{}, Notifier: n})

	_, err := svc.Submit(context.Background(), validContact())
	de := requireDomainError(t, err, statusInternal)
	assert.Equal(t, "Internal server error", de.Message)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, n.calls())
}

func TestContactService_Update_StatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, d := newContactService(t, &fakeNotifier{})
	created, err := svc.Submit(ctx, validContact())
	require.NoError(t, err)

	high := "high"
	empty := "   "
	updated, err := svc.Update(ctx, created.Contact.ID, ContactUpdateInput{Status: "completed", Priority: &high, Notes: &empty})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusCompleted, updated.Status)
	require.NotNil(t, updated.Priority)
	assert.Equal(t, domain.PriorityHigh, *updated.Priority)
	assert.Empty(t, updated.Notes)

	got, err := svc.Get(ctx, created.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusCompleted, got.Status)

	_, err = svc.Update(ctx, created.Contact.ID, ContactUpdateInput{Status: "bogus"})
	requireDomainError(t, err, statusBadRequest)

	got, err = svc.Get(ctx, created.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusCompleted, got.Status, "invalid status leaves record unchanged")

	assert.Equal(t, []events.EventType{events.EventSubmissionCreated, events.EventSubmissionStatusChanged}, d.types())
}

func TestContactService_Update_AnyTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newContactService(t, &fakeNotifier{})
	created, err := svc.Submit(ctx, validContact())
	require.NoError(t, err)

	for _, status := range []string{"completed", "new", "contacted", "in-progress", "new"} {
		updated, err := svc.Update(ctx, created.Contact.ID, ContactUpdateInput{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, string(updated.Status))
	}
}

func TestContactService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newContactService(t, &fakeNotifier{})

	de := requireDomainError(t, svc.Delete(ctx, "unknown-id"), statusNotFound)
	assert.Equal(t, "Contact not found", de.Message)

	_, err := svc.Get(ctx, "unknown-id")
	requireDomainError(t, err, statusNotFound)

	_, err = svc.Update(ctx, "unknown-id", ContactUpdateInput{Status: "new"})
	requireDomainError(t, err, statusNotFound)
}

func TestContactService_GetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newContactService(t, &fakeNotifier{})
	created, err := svc.Submit(ctx, validContact())
	require.NoError(t, err)

	first, err := svc.Get(ctx, created.Contact.ID)
	require.NoError(t, err)
	second, err := svc.Get(ctx, created.Contact.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestContactService_ListPagination(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newContactService(t, &fakeNotifier{})

	var ids []string
	for i := 0; i < 23; i++ {
		in := validContact()
		in.Subject = fmt.Sprintf("Subject %02d", i)
		result, err := svc.Submit(ctx, in)
		require.NoError(t, err)
		ids = append(ids, result.Contact.ID)
		time.Sleep(time.Microsecond)
	}

	for k := 1; k <= 3; k++ {
		page, err := svc.List(ctx, ListQuery{Page: k, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 23, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, k, page.Page)

		start := (k - 1) * 10
		end := min(start+10, 23)
		require.Len(t, page.Items, end-start)
		for i, item := range page.Items {
			assert.Equal(t, ids[22-(start+i)], item.ID, "page %d item %d", k, i)
		}
	}

	page, err := svc.List(ctx, ListQuery{Page: 7})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestContactService_DeleteThenExport(t *testing.T) {
	ctx := context.Background()
	svc, _, d := newContactService(t, &fakeNotifier{})
	a, err := svc.Submit(ctx, validContact())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, validContact())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.Contact.ID))
	rows, err := svc.Export(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Contains(t, d.types(), events.EventSubmissionDeleted)
}
