package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDemoInput() DemoInput {
	return DemoInput{
		Name:               "Jordan Lee",
		Email:              "j@x.com",
		Phone:              "555-1212",
		Service:            "app-development",
		PreferredDate:      "2025-06-01",
		PreferredTime:      "morning",
		ProjectDescription: "Build me an app please",
	}
}

func TestValidator_ContactShortMessage(t *testing.T) {
	v := NewValidator()
	violations := v.Check(ContactInput{Name: "Jo", Email: "jo@x.com", Message: "short"}, contactMessages)

	require.Len(t, violations, 1)
	assert.Equal(t, "message", violations[0].Field)
	assert.Equal(t, "Message must be between 10 and 1000 characters", violations[0].Reason)
}

func TestValidator_ContactOrderedViolations(t *testing.T) {
	v := NewValidator()
	violations := v.Check(ContactInput{
		Name:    "J",
		Email:   "nope",
		Subject: "Hey",
		Message: "This one is long enough",
		Service: "knitting",
	}, contactMessages)

	fields := make([]string, len(violations))
	for i, fv := range violations {
		fields[i] = fv.Field
	}
	assert.Equal(t, []string{"name", "email", "subject", "service"}, fields)
}

func TestValidator_ContactOptionalFields(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.Check(ContactInput{Name: "Jo", Email: "jo@x.com", Message: "Long enough message"}, contactMessages))
}

func TestValidator_DemoRules(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name   string
		mutate func(*DemoInput)
		field  string
	}{
		{name: "missing service", mutate: func(in *DemoInput) { in.Service = "" }, field: "service"},
		{name: "other is not bookable", mutate: func(in *DemoInput) { in.Service = "other" }, field: "service"},
		{name: "impossible date", mutate: func(in *DemoInput) { in.PreferredDate = "2025-02-30" }, field: "preferredDate"},
		{name: "free text date", mutate: func(in *DemoInput) { in.PreferredDate = "next tuesday" }, field: "preferredDate"},
		{name: "bad time slot", mutate: func(in *DemoInput) { in.PreferredTime = "night" }, field: "preferredTime"},
		{name: "missing phone", mutate: func(in *DemoInput) { in.Phone = "" }, field: "phone"},
		{name: "short description", mutate: func(in *DemoInput) { in.ProjectDescription = "app" }, field: "projectDescription"},
		{name: "bad budget", mutate: func(in *DemoInput) { in.Budget = "millions" }, field: "budget"},
		{name: "bad timeline", mutate: func(in *DemoInput) { in.Timeline = "someday" }, field: "timeline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validDemoInput()
			tt.mutate(&in)
			violations := v.Check(in, demoMessages)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
		})
	}

	assert.Empty(t, v.Check(validDemoInput(), demoMessages))
}

func TestValidator_StatusNamesAllowedSet(t *testing.T) {
	v := NewValidator()
	for _, status := range []string{"", "bogus"} {
		violations := v.Check(ContactUpdateInput{Status: status}, contactUpdateMessages)
		require.Len(t, violations, 1, "status %q", status)
		assert.Equal(t, "status", violations[0].Field)
		assert.Contains(t, violations[0].Reason, "new, in-progress, contacted, completed")
	}
}

func TestValidator_MeetingEmailPattern(t *testing.T) {
	v := NewValidator()
	assert.NotEmpty(t, v.Check(MeetingInput{Name: "Ken", Email: "not-an-email"}, nil))
	assert.NotEmpty(t, v.Check(MeetingInput{Name: "Ken", Email: "a b@x.com"}, nil))
	assert.Empty(t, v.Check(MeetingInput{Name: "Ken", Email: "ken@x.io"}, nil))
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2025-06-01", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2025-06-01T14:30:00Z", want: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), ok: true},
		{in: "2025-06-01T14:30:00+02:00", want: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), ok: true},
		{in: "2025-06-01T09:15", want: time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC), ok: true},
		{in: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2025-02-29"},
		{in: "06/01/2025"},
		{in: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseISODate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
