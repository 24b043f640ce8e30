package domain

import "time"

// Meeting is a lightweight meeting request.
type Meeting struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Message     string        `json:"message,omitempty"`
	Status      BookingStatus `json:"status"`
	MeetingLink string        `json:"meetingLink,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// MeetingUpdate carries the status change and an optional link.
type MeetingUpdate struct {
	Status      BookingStatus
	MeetingLink *string
}

// Apply merges the update into m.
func (u MeetingUpdate) Apply(m *Meeting) {
	m.Status = u.Status
	if u.MeetingLink != nil {
		m.MeetingLink = *u.MeetingLink
	}
}
