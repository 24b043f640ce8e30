package domain

import "time"

// BookingStatus is shared by demos and meetings.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every legal demo/meeting status.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// PreferredTime is the requested time-of-day slot.
type PreferredTime string

const (
	PreferredTimeMorning   PreferredTime = "morning"
	PreferredTimeAfternoon PreferredTime = "afternoon"
	PreferredTimeEvening   PreferredTime = "evening"
)

// Demo is a demo-booking request.
type Demo struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Company            string        `json:"company,omitempty"`
	Service            ServiceID     `json:"service"`
	PreferredDate      time.Time     `json:"preferredDate"`
	PreferredTime      PreferredTime `json:"preferredTime"`
	ProjectDescription string        `json:"projectDescription"`
	Budget             string        `json:"budget,omitempty"`
	Timeline           string        `json:"timeline,omitempty"`
	Status             BookingStatus `json:"status"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// DemoUpdate carries the admin-mutable fields. Nil means unchanged.
type DemoUpdate struct {
	Status BookingStatus
	Notes  *string
}

// Apply merges the update into d.
func (u DemoUpdate) Apply(d *Demo) {
	d.Status = u.Status
	if u.Notes != nil {
		d.Notes = *u.Notes
	}
}
