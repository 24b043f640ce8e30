// Package notify renders and delivers the emails that accompany new
// submissions. Delivery is best effort: failures surface only as a false
// result.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/config"
)

// Kind names a notification template.
type Kind string

const (
	KindContactAdminNotice Kind = "contact_admin_notice"
	KindDemoConfirmation   Kind = "demo_confirmation"
	KindDemoAdminNotice    Kind = "demo_admin_notice"
)

// Settings are the addressing values shared by all messages.
type Settings struct {
	From           string
	AdminRecipient string
	CompanyName    string
	Timeout        time.Duration
}

// SettingsFromConfig maps the notification config.
func SettingsFromConfig(cfg config.NotificationConfig) Settings {
	return Settings{
		From:           cfg.EmailFrom,
		AdminRecipient: cfg.AdminRecipient(),
		CompanyName:    cfg.CompanyName,
		Timeout:        cfg.Timeout(),
	}
}

// Recorder receives delivery outcomes.
type Recorder interface {
	RecordNotification(kind string, ok bool)
}

// Notifier sends a single notification and reports whether it went out.
type Notifier interface {
	Send(ctx context.Context, kind Kind, payload any) bool
}

type notifier struct {
	sender   Sender
	settings Settings
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// NewNotifier wraps sender. recorder may be nil.
func NewNotifier(sender Sender, settings Settings, logger *zap.Logger, recorder Recorder) Notifier {
	if settings.Timeout <= 0 {
		settings.Timeout = 5 * time.Second
	}
	return &notifier{sender: sender, settings: settings, logger: logger, recorder: recorder, now: time.Now}
}

// Send never panics and never blocks past the configured timeout. A timed
// out attempt is abandoned and counted as failed.
func (n *notifier) Send(ctx context.Context, kind Kind, payload any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("notification panicked", zap.String("kind", string(kind)), zap.Any("panic", r))
			ok = false
		}
		if n.recorder != nil {
			n.recorder.RecordNotification(string(kind), ok)
		}
	}()

	msg, err := render(kind, payload, n.settings, n.now())
	if err != nil {
		n.logger.Error("notification render failed", zap.String("kind", string(kind)), zap.Error(err))
		return false
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.settings.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("sender panic: %v", r)
			}
		}()
		done <- n.sender.Send(ctx, msg)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		n.logger.Warn("notification not delivered",
			zap.String("kind", string(kind)),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return false
	}
	return true
}
