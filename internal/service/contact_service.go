package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/events"
	"github.com/spec-kit/lead-intake/internal/notify"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// ContactInput is a public contact-form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"min=2,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject" validate:"omitempty,min=5,max=100"`
	Message string `json:"message" validate:"min=10,max=1000"`
	Service string `json:"service" validate:"omitempty,oneof=website-development app-development game-development logo-design seo-backlinks ui-ux-design video-production chatbot-development crm-erp-integration custom-api-development content-writing other"`
}

var contactMessages = map[string]string{
	"name":    "Name must be between 2 and 50 characters",
	"email":   "Please provide a valid email",
	"subject": "Subject must be between 5 and 100 characters",
	"message": "Message must be between 10 and 1000 characters",
	"service": "Invalid service selection",
}

// ContactUpdateInput is an admin triage update.
type ContactUpdateInput struct {
	Status   string  `json:"status" validate:"required,oneof=new in-progress contacted completed"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes    *string `json:"notes"`
}

var contactUpdateMessages = map[string]string{
	"status":   "Invalid status. Allowed values: " + allowedSet(domain.ContactStatuses),
	"priority": "Invalid priority. Allowed values: low, medium, high",
}

// ContactSubmission is the outcome of a successful contact submission.
type ContactSubmission struct {
	Contact   *domain.Contact
	EmailSent bool
}

// ContactService coordinates contact intake and triage.
type ContactService struct {
	contacts  repository.ContactRepository
	notifier  notify.Notifier
	validator *Validator
	events    publisher
	logger    *zap.Logger
}

// ContactDependencies bundles collaborators for ContactService.
type ContactDependencies struct {
	ContactRepo repository.ContactRepository
	Notifier    notify.Notifier
	Validator   *Validator
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	v := deps.Validator
	if v == nil {
		v = NewValidator()
	}
	logger := loggerOrNop(deps.Logger)
	return &ContactService{
		contacts:  deps.ContactRepo,
		notifier:  deps.Notifier,
		validator: v,
		events:    publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:    logger,
	}
}

// Submit validates, persists and notifies staff. The email outcome never fails the call.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*ContactSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Message = strings.TrimSpace(input.Message)

	if err := validationFailed(s.validator.Check(input, contactMessages)); err != nil {
		return nil, err
	}
	if err := validationFailed(missingContactFields(input)); err != nil {
		return nil, err
	}

	service := domain.ServiceID(input.Service)
	if service == "" {
		service = domain.ServiceOther
	}
	contact := &domain.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Subject: input.Subject,
		Message: input.Message,
		Service: service,
		Status:  domain.ContactStatusNew,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Error("create contact failed", zap.Error(err))
		return nil, apperrors.NewPersistenceError(err)
	}

	sent := s.notifier.Send(ctx, notify.KindContactAdminNotice, contact)
	s.events.created(ctx, events.EntityContact, contact.ID, contact.Name, contact.Email, string(contact.Service), string(contact.Status))

	return &ContactSubmission{Contact: contact, EmailSent: sent}, nil
}

// missingContactFields reports the required contact fields left empty.
func missingContactFields(input ContactInput) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation
	if input.Name == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "name", Reason: "Name is required"})
	}
	if input.Email == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "email", Reason: "Email is required"})
	}
	if input.Message == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "message", Reason: "Message is required"})
	}
	return violations
}

// List returns one page of contacts, newest first.
func (s *ContactService) List(ctx context.Context, query ListQuery) (*Page[domain.Contact], error) {
	filter := query.filter()
	items, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return newPage(items, total, filter.Pagination), nil
}

// Export returns every contact matching the query's filters.
func (s *ContactService) Export(ctx context.Context, query ListQuery) ([]domain.Contact, error) {
	items, err := collectAll(ctx, query.filter(), s.contacts.List)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return items, nil
}

// Get fetches one contact.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Contact")
	}
	return contact, nil
}

// Update changes status and, when supplied and non-empty, priority and notes.
// Any status may follow any other.
func (s *ContactService) Update(ctx context.Context, id string, input ContactUpdateInput) (*domain.Contact, error) {
	input.Status = strings.TrimSpace(input.Status)
	input.Priority = trimPtr(input.Priority)
	input.Notes = trimPtr(input.Notes)
	if err := validationFailed(s.validator.Check(input, contactUpdateMessages)); err != nil {
		return nil, err
	}

	current, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Contact")
	}

	update := domain.ContactUpdate{Status: domain.ContactStatus(input.Status), Notes: input.Notes}
	if input.Priority != nil {
		p := domain.Priority(*input.Priority)
		update.Priority = &p
	}
	updated, err := s.contacts.Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, "Contact")
	}

	if current.Status != updated.Status {
		s.events.statusChanged(ctx, events.EntityContact, id, string(current.Status), string(updated.Status))
	}
	return updated, nil
}

// Delete removes a contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return storeError(err, "Contact")
	}
	s.events.deleted(ctx, events.EntityContact, id)
	return nil
}
