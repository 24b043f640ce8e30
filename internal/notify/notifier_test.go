package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/domain"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	send func(ctx context.Context, msg Message) error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	if f.send == nil {
		return nil
	}
	return f.send(ctx, msg)
}

type countingRecorder struct {
	mu      sync.Mutex
	results map[string][]bool
}

func (r *countingRecorder) RecordNotification(kind string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[string][]bool{}
	}
	r.results[kind] = append(r.results[kind], ok)
}

var testSettings = Settings{
	From:           "noreply@example.com",
	AdminRecipient: "staff@example.com",
	CompanyName:    "Acme Studio",
	Timeout:        200 * time.Millisecond,
}

func sampleDemo() *domain.Demo {
	return &domain.Demo{
		Name:               "Grace <b>Hopper</b>",
		Email:              "grace@example.com",
		Phone:              "555-0100",
		Service:            domain.ServiceAppDevelopment,
		PreferredDate:      time.Date(2031, 3, 14, 0, 0, 0, 0, time.UTC),
		PreferredTime:      domain.PreferredTimeAfternoon,
		ProjectDescription: "A mobile companion app",
	}
}

func TestNotifier_ContactAdminNotice(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, testSettings, zap.NewNop(), nil)

	ok := n.Send(context.Background(), KindContactAdminNotice, &domain.Contact{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Pricing question",
		Message: "How much for a site?",
		Service: domain.ServiceOther,
	})
	require.True(t, ok)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "staff@example.com", msg.To)
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, "New Contact Form Submission: Pricing question", msg.Subject)
	assert.Contains(t, msg.HTML, "<strong>Phone:</strong> Not provided")
	assert.Contains(t, msg.HTML, "<strong>Service:</strong> other")
}

func TestNotifier_DemoMessages(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, testSettings, zap.NewNop(), nil)
	demo := sampleDemo()

	require.True(t, n.Send(context.Background(), KindDemoConfirmation, demo))
	require.True(t, n.Send(context.Background(), KindDemoAdminNotice, demo))
	require.Len(t, sender.sent, 2)

	confirmation := sender.sent[0]
	assert.Equal(t, "grace@example.com", confirmation.To)
	assert.Equal(t, "Demo Booking Confirmation - Acme Studio", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "March 14, 2031")
	assert.Contains(t, confirmation.HTML, "Grace &lt;b&gt;Hopper&lt;/b&gt;")
	assert.NotContains(t, confirmation.HTML, "<b>Hopper</b>")

	admin := sender.sent[1]
	assert.Equal(t, "staff@example.com", admin.To)
	assert.Equal(t, "New Demo Booking: app-development", admin.Subject)
	assert.Contains(t, admin.HTML, "<strong>Budget:</strong> Not specified")
}

func TestNotifier_FailuresReturnFalse(t *testing.T) {
	tests := []struct {
		name string
		send func(ctx context.Context, msg Message) error
	}{
		{name: "transport error", send: func(context.Context, Message) error { return errors.New("connection refused") }},
		{name: "panic", send: func(context.Context, Message) error { panic("boom") }},
		{name: "timeout", send: func(ctx context.Context, _ Message) error {
			time.Sleep(2 * time.Second)
			return nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &countingRecorder{}
			n := NewNotifier(&fakeSender{send: tt.send}, testSettings, zap.NewNop(), recorder)

			start := time.Now()
			ok := n.Send(context.Background(), KindDemoConfirmation, sampleDemo())
			assert.False(t, ok)
			assert.Less(t, time.Since(start), time.Second)
			assert.Equal(t, []bool{false}, recorder.results[string(KindDemoConfirmation)])
		})
	}
}

func TestNotifier_BadPayload(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, testSettings, zap.NewNop(), nil)

	assert.False(t, n.Send(context.Background(), KindContactAdminNotice, sampleDemo()))
	assert.False(t, n.Send(context.Background(), Kind("sms"), sampleDemo()))
	assert.Empty(t, sender.sent)
}

func TestLogSender_AlwaysSucceeds(t *testing.T) {
	assert.NoError(t, NewLogSender(zap.NewNop()).Send(context.Background(), Message{To: "x@example.com"}))
}
