package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/notify"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// DemoInput is a public demo-booking request.
type DemoInput struct {
	Name               string `json:"name" validate:"min=2,max=50"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required"`
	Company            string `json:"company"`
	Service            string `json:"service" validate:"required,oneof=website-development app-development game-development logo-design seo-backlinks ui-ux-design video-production chatbot-development crm-erp-integration custom-api-development content-writing"`
	PreferredDate      string `json:"preferredDate" validate:"required,iso8601date"`
	PreferredTime      string `json:"preferredTime" validate:"required,oneof=morning afternoon evening"`
	ProjectDescription string `json:"projectDescription" validate:"min=10,max=500"`
	Budget             string `json:"budget" validate:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-50k 50k+ not-sure"`
	Timeline           string `json:"timeline" validate:"omitempty,oneof=asap 1-month 2-3-months 3-6-months 6-months+"`
}

var demoMessages = map[string]string{
	"name":               "Name must be between 2 and 50 characters",
	"email":              "Please provide a valid email",
	"phone":              "Phone number is required",
	"service":            "Invalid service selection",
	"preferredDate":      "Please provide a valid date",
	"preferredTime":      "Invalid time selection",
	"projectDescription": "Project description must be between 10 and 500 characters",
	"budget":             "Invalid budget selection",
	"timeline":           "Invalid timeline selection",
}

// DemoUpdateInput is an admin booking update.
type DemoUpdateInput struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Notes  *string `json:"notes"`
}

var bookingStatusMessages = map[string]string{
	"status": "Invalid status. Allowed values: " + allowedSet(domain.BookingStatuses),
}

// DemoSubmission reports the stored booking and both email outcomes.
type DemoSubmission struct {
	Demo              *domain.Demo
	Confirmation      bool
	AdminNotification bool
}

// DemoService coordinates demo bookings.
type DemoService struct {
	demos     repository.DemoRepository
	notifier  notify.Notifier
	validator *Validator
	events    publisher
	logger    *zap.Logger
}

// DemoDependencies bundles collaborators for DemoService.
type DemoDependencies struct {
	DemoRepo   repository.DemoRepository
	Notifier   notify.Notifier
	Validator  *Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDemoService constructs the service.
func NewDemoService(deps DemoDependencies) *DemoService {
	v := deps.Validator
	if v == nil {
		v = NewValidator()
	}
	logger := loggerOrNop(deps.Logger)
	return &DemoService{
		demos:     deps.DemoRepo,
		notifier:  deps.Notifier,
		validator: v,
		events:    publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:    logger,
	}
}

// Book validates and stores a demo request, then sends the requester
// confirmation and the staff notice concurrently and waits for both.
func (s *DemoService) Book(ctx context.Context, input DemoInput) (*DemoSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.ProjectDescription = strings.TrimSpace(input.ProjectDescription)

	if err := validationFailed(s.validator.Check(input, demoMessages)); err != nil {
		return nil, err
	}
	preferredDate, _ := parseISODate(input.PreferredDate)

	demo := &domain.Demo{
		Name:               input.Name,
		Email:              strings.ToLower(input.Email),
		Phone:              input.Phone,
		Company:            input.Company,
		Service:            domain.ServiceID(input.Service),
		PreferredDate:      preferredDate,
		PreferredTime:      domain.PreferredTime(input.PreferredTime),
		ProjectDescription: input.ProjectDescription,
		Budget:             input.Budget,
		Timeline:           input.Timeline,
		Status:             domain.BookingStatusPending,
	}
	if err := s.demos.Create(ctx, demo); err != nil {
		s.logger.Error("create demo failed", zap.Error(err))
		return nil, apperrors.NewPersistenceError(err)
	}

	result := &DemoSubmission{Demo: demo}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Confirmation = s.notifier.Send(ctx, notify.KindDemoConfirmation, demo)
	}()
	go func() {
		defer wg.Done()
		result.AdminNotification = s.notifier.Send(ctx, notify.KindDemoAdminNotice, demo)
	}()
	wg.Wait()

	s.events.created(ctx, events.EntityDemo, demo.ID, demo.Name, demo.Email, string(demo.Service), string(demo.Status))
	return result, nil
}

// List returns one page of demos, newest first.
func (s *DemoService) List(ctx context.Context, query ListQuery) (*Page[domain.Demo], error) {
	filter := query.filter()
	items, total, err := s.demos.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return newPage(items, total, filter.Pagination), nil
}

// Export returns every demo matching the query's filters.
func (s *DemoService) Export(ctx context.Context, query ListQuery) ([]domain.Demo, error) {
	items, err := collectAll(ctx, query.filter(), s.demos.List)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return items, nil
}

// Get fetches one demo booking.
func (s *DemoService) Get(ctx context.Context, id string) (*domain.Demo, error) {
	demo, err := s.demos.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Demo booking")
	}
	return demo, nil
}

// Update changes status and, when supplied and non-empty, notes.
func (s *DemoService) Update(ctx context.Context, id string, input DemoUpdateInput) (*domain.Demo, error) {
	input.Status = strings.TrimSpace(input.Status)
	input.Notes = trimPtr(input.Notes)
	if err := validationFailed(s.validator.Check(input, bookingStatusMessages)); err != nil {
		return nil, err
	}

	current, err := s.demos.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Demo booking")
	}
	updated, err := s.demos.Update(ctx, id, domain.DemoUpdate{Status: domain.BookingStatus(input.Status), Notes: input.Notes})
	if err != nil {
		return nil, storeError(err, "Demo booking")
	}

	if current.Status != updated.Status {
		s.events.statusChanged(ctx, events.EntityDemo, id, string(current.Status), string(updated.Status))
	}
	return updated, nil
}

// Delete removes a demo booking.
func (s *DemoService) Delete(ctx context.Context, id string) error {
	if err := s.demos.Delete(ctx, id); err != nil {
		return storeError(err, "Demo booking")
	}
	s.events.deleted(ctx, events.EntityDemo, id)
	return nil
}
