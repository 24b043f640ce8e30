package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/repository"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// UserUpdateInput carries admin edits. Empty values leave the field unchanged.
type UserUpdateInput struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	Role    string `json:"role" validate:"omitempty,oneof=user admin"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

var userMessages = map[string]string{
	"name":  "Name must be between 2 and 50 characters",
	"email": "Please provide a valid email",
	"role":  "Invalid role. Allowed values: user, admin",
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Role  string
	Page  int
	Limit int
}

// UserService manages accounts for administrators.
type UserService struct {
	users     repository.UserRepository
	validator *Validator
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, validator *Validator) *UserService {
	if validator == nil {
		validator = NewValidator()
	}
	return &UserService{users: users, validator: validator}
}

// List returns one page of users, newest first.
func (s *UserService) List(ctx context.Context, query UserQuery) (*Page[domain.User], error) {
	filter := repository.UserFilter{
		Role:       query.Role,
		Pagination: repository.Pagination{Page: query.Page, Limit: query.Limit}.Normalize(),
	}
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return newPage(items, total, filter.Pagination), nil
}

// Get fetches one user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User")
	}
	return user, nil
}

// Update applies the non-empty fields of input.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.TrimSpace(input.Role)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	if err := validationFailed(s.validator.Check(input, userMessages)); err != nil {
		return nil, err
	}

	var update domain.UserUpdate
	if input.Name != "" {
		update.Name = &input.Name
	}
	if input.Email != "" {
		update.Email = &input.Email
	}
	if input.Role != "" {
		role := domain.UserRole(input.Role)
		update.Role = &role
	}
	if input.Phone != "" {
		update.Phone = &input.Phone
	}
	if input.Company != "" {
		update.Company = &input.Company
	}

	user, err := s.users.Update(ctx, id, update)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperrors.NewConflict("Email already in use")
	}
	if err != nil {
		return nil, storeError(err, "User")
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return storeError(err, "User")
	}
	return nil
}
