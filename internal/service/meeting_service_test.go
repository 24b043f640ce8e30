package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/repository"
)

func newMeetingService() *MeetingService {
	return NewMeetingService(MeetingDependencies{MeetingRepo: repository.NewMemoryMeetingRepository()})
}

func TestMeetingService_Schedule(t *testing.T) {
	svc := newMeetingService()

	meeting, err := svc.Schedule(context.Background(), MeetingInput{Name: "Ken", Email: "ken@example.com", Message: "Intro call"})
	require.NoError(t, err)
	assert.NotEmpty(t, meeting.ID)
	assert.Equal(t, domain.BookingStatusPending, meeting.Status)
}

func TestMeetingService_Schedule_Validation(t *testing.T) {
	svc := newMeetingService()
	tests := []struct {
		name    string
		input   MeetingInput
		message string
	}{
		{name: "missing name", input: MeetingInput{Email: "ken@example.com"}, message: "Name and email are required."},
		{name: "missing email", input: MeetingInput{Name: "Ken"}, message: "Name and email are required."},
		{name: "bad email", input: MeetingInput{Name: "Ken", Email: "not-an-email"}, message: "Please provide a valid email address."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Schedule(context.Background(), tt.input)
			de := requireDomainError(t, err, statusBadRequest)
			assert.Equal(t, tt.message, de.Message)
		})
	}

	page, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestMeetingService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := newMeetingService()
	meeting, err := svc.Schedule(ctx, MeetingInput{Name: "Ken", Email: "ken@example.com"})
	require.NoError(t, err)

	link := "https://meet.example.com/xyz"
	updated, err := svc.UpdateStatus(ctx, meeting.ID, MeetingStatusInput{Status: "confirmed", MeetingLink: &link})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, link, updated.MeetingLink)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = svc.UpdateStatus(ctx, meeting.ID, MeetingStatusInput{})
	requireDomainError(t, err, statusBadRequest)

	_, err = svc.UpdateStatus(ctx, "missing", MeetingStatusInput{Status: "completed"})
	de := requireDomainError(t, err, statusNotFound)
	assert.Equal(t, "Meeting not found", de.Message)

	page, err := svc.List(ctx, ListQuery{Status: "confirmed", Service: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}
