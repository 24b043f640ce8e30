package domain

import "time"

// ContactStatus tracks admin triage of a contact inquiry.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusContacted  ContactStatus = "contacted"
	ContactStatusCompleted  ContactStatus = "completed"
)

// ContactStatuses lists every legal contact status.
var ContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusContacted,
	ContactStatusCompleted,
}

// Priority is an optional admin-assigned urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Contact is a contact-form inquiry.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Company   string        `json:"company,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message"`
	Service   ServiceID     `json:"service"`
	Status    ContactStatus `json:"status"`
	Priority  *Priority     `json:"priority,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ContactUpdate carries the admin-mutable fields. Nil means unchanged.
type ContactUpdate struct {
	Status   ContactStatus
	Priority *Priority
	Notes    *string
}

// Apply merges the update into c.
func (u ContactUpdate) Apply(c *Contact) {
	c.Status = u.Status
	if u.Priority != nil {
		p := *u.Priority
		c.Priority = &p
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}
