package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

const (
	msgMeetingRequired     = "Name and email are required."
	msgMeetingInvalidEmail = "Please provide a valid email address."
)

// MeetingInput is a public meeting request.
type MeetingInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simpleemail"`
	Message string `json:"message"`
}

// MeetingStatusInput is an admin status change with an optional link.
type MeetingStatusInput struct {
	Status      string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	MeetingLink *string `json:"meetingLink"`
}

// MeetingService coordinates meeting requests. Meetings send no email.
type MeetingService struct {
	meetings  repository.MeetingRepository
	validator *Validator
	events    publisher
	logger    *zap.Logger
}

// MeetingDependencies bundles collaborators for MeetingService.
type MeetingDependencies struct {
	MeetingRepo repository.MeetingRepository
	Validator   *Validator
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewMeetingService constructs the service.
func NewMeetingService(deps MeetingDependencies) *MeetingService {
	v := deps.Validator
	if v == nil {
		v = NewValidator()
	}
	logger := loggerOrNop(deps.Logger)
	return &MeetingService{
		meetings:  deps.MeetingRepo,
		validator: v,
		events:    publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:    logger,
	}
}

// Schedule validates and stores a meeting request.
func (s *MeetingService) Schedule(ctx context.Context, input MeetingInput) (*domain.Meeting, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	if violations := s.validator.Check(input, map[string]string{
		"name":  msgMeetingRequired,
		"email": msgMeetingInvalidEmail,
	}); len(violations) > 0 {
		message := msgMeetingInvalidEmail
		if input.Name == "" || input.Email == "" {
			message = msgMeetingRequired
		}
		return nil, apperrors.NewValidationError(message, violations)
	}

	meeting := &domain.Meeting{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Status:  domain.BookingStatusPending,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		s.logger.Error("create meeting failed", zap.Error(err))
		return nil, apperrors.NewPersistenceError(err)
	}
	s.events.created(ctx, events.EntityMeeting, meeting.ID, meeting.Name, meeting.Email, "", string(meeting.Status))
	return meeting, nil
}

// List returns one page of meetings, newest first. Only the status filter applies.
func (s *MeetingService) List(ctx context.Context, query ListQuery) (*Page[domain.Meeting], error) {
	query.Service = ""
	filter := query.filter()
	items, total, err := s.meetings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return newPage(items, total, filter.Pagination), nil
}

// Get fetches one meeting.
func (s *MeetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Meeting")
	}
	return meeting, nil
}

// UpdateStatus sets the status and, when supplied and non-empty, the meeting link.
func (s *MeetingService) UpdateStatus(ctx context.Context, id string, input MeetingStatusInput) (*domain.Meeting, error) {
	input.Status = strings.TrimSpace(input.Status)
	input.MeetingLink = trimPtr(input.MeetingLink)
	if err := validationFailed(s.validator.Check(input, bookingStatusMessages)); err != nil {
		return nil, err
	}

	current, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Meeting")
	}
	updated, err := s.meetings.Update(ctx, id, domain.MeetingUpdate{
		Status:      domain.BookingStatus(input.Status),
		MeetingLink: input.MeetingLink,
	})
	if err != nil {
		return nil, storeError(err, "Meeting")
	}

	if current.Status != updated.Status {
		s.events.statusChanged(ctx, events.EntityMeeting, id, string(current.Status), string(updated.Status))
	}
	return updated, nil
}
