package domain

import "time"

// UserRole gates access to admin routes.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is an account able to authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Company      string    `json:"company,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate carries admin edits. Nil means unchanged.
type UserUpdate struct {
	Name    *string
	Email   *string
	Role    *UserRole
	Phone   *string
	Company *string
}

// Apply merges the update into u.
func (up UserUpdate) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
	if up.Phone != nil {
		u.Phone = *up.Phone
	}
	if up.Company != nil {
		u.Company = *up.Company
	}
}
