package dto

import (
	"time"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// ContactSummary is the trimmed record echoed after a public submission.
type ContactSummary struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Email   string               `json:"email"`
	Subject string               `json:"subject"`
	Status  domain.ContactStatus `json:"status"`
}

// ContactCreatedResponse is returned by POST /api/contact.
type ContactCreatedResponse struct {
	Contact   ContactSummary `json:"contact"`
	EmailSent bool           `json:"emailSent"`
}

// NewContactCreated builds the public submission response.
func NewContactCreated(contact *domain.Contact, emailSent bool) ContactCreatedResponse {
	return ContactCreatedResponse{
		Contact: ContactSummary{
			ID:      contact.ID,
			Name:    contact.Name,
			Email:   contact.Email,
			Subject: contact.Subject,
			Status:  contact.Status,
		},
		EmailSent: emailSent,
	}
}

// ContactListResponse is one admin page of contacts.
type ContactListResponse struct {
	Contacts      []domain.Contact `json:"contacts"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
	TotalContacts int              `json:"totalContacts"`
}

// DemoSummary is the trimmed booking echoed after a public submission.
type DemoSummary struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Service       domain.ServiceID     `json:"service"`
	PreferredDate time.Time            `json:"preferredDate"`
	PreferredTime domain.PreferredTime `json:"preferredTime"`
	Status        domain.BookingStatus `json:"status"`
}

// EmailsSent reports both demo notification outcomes.
type EmailsSent struct {
	Confirmation      bool `json:"confirmation"`
	AdminNotification bool `json:"adminNotification"`
}

// DemoCreatedResponse is returned by POST /api/demo.
type DemoCreatedResponse struct {
	Demo       DemoSummary `json:"demo"`
	EmailsSent EmailsSent  `json:"emailsSent"`
}

// NewDemoCreated builds the public booking response.
func NewDemoCreated(demo *domain.Demo, confirmation, adminNotification bool) DemoCreatedResponse {
	return DemoCreatedResponse{
		Demo: DemoSummary{
			ID:            demo.ID,
			Name:          demo.Name,
			Email:         demo.Email,
			Service:       demo.Service,
			PreferredDate: demo.PreferredDate,
			PreferredTime: demo.PreferredTime,
			Status:        demo.Status,
		},
		EmailsSent: EmailsSent{Confirmation: confirmation, AdminNotification: adminNotification},
	}
}

// DemoListResponse is one admin page of demo bookings.
type DemoListResponse struct {
	Demos       []domain.Demo `json:"demos"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	TotalDemos  int           `json:"totalDemos"`
}

// MeetingCreatedResponse is returned by POST /api/meetings/schedule.
type MeetingCreatedResponse struct {
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Email  string               `json:"email"`
	Status domain.BookingStatus `json:"status"`
}

// MeetingListResponse is one admin page of meeting requests.
type MeetingListResponse struct {
	Meetings      []domain.Meeting `json:"meetings"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
	TotalMeetings int              `json:"totalMeetings"`
}
