package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/spec-kit/lead-intake/internal/domain"
)

const (
	notProvided  = "Not provided"
	notSpecified = "Not specified"
	dateLayout   = "January 2, 2006"
	stampLayout  = "January 2, 2006 15:04 MST"
)

var templates = template.Must(template.New("notify").Funcs(template.FuncMap{
	"orDefault": func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	},
}).Parse(`
{{define "contact_admin_notice"}}<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Contact.Name}}</p>
<p><strong>Email:</strong> {{.Contact.Email}}</p>
<p><strong>Phone:</strong> {{orDefault .Contact.Phone "Not provided"}}</p>
<p><strong>Company:</strong> {{orDefault .Contact.Company "Not provided"}}</p>
<p><strong>Service:</strong> {{orDefault (print .Contact.Service) "Not specified"}}</p>
<p><strong>Subject:</strong> {{orDefault .Contact.Subject "Not provided"}}</p>
<p><strong>Message:</strong></p>
<p>{{.Contact.Message}}</p>
<hr>
<p><em>Submitted on: {{.Stamp}}</em></p>
{{end}}
{{define "demo_confirmation"}}<h2>Demo Booking Confirmation</h2>
<p>Dear {{.Demo.Name}},</p>
<p>Thank you for booking a demo with {{.Company}}!</p>
<p><strong>Booking Details:</strong></p>
<ul>
  <li><strong>Service:</strong> {{.Demo.Service}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Demo.PreferredTime}}</li>
</ul>
<p>We will contact you shortly to confirm the details and schedule your demo.</p>
<p>Best regards,<br>Team {{.Company}}</p>
{{end}}
{{define "demo_admin_notice"}}<h2>New Demo Booking</h2>
<p><strong>Name:</strong> {{.Demo.Name}}</p>
<p><strong>Email:</strong> {{.Demo.Email}}</p>
<p><strong>Phone:</strong> {{.Demo.Phone}}</p>
<p><strong>Company:</strong> {{orDefault .Demo.Company "Not provided"}}</p>
<p><strong>Service:</strong> {{.Demo.Service}}</p>
<p><strong>Preferred Date:</strong> {{.Date}}</p>
<p><strong>Preferred Time:</strong> {{.Demo.PreferredTime}}</p>
<p><strong>Budget:</strong> {{orDefault .Demo.Budget "Not specified"}}</p>
<p><strong>Timeline:</strong> {{orDefault .Demo.Timeline "Not specified"}}</p>
<p><strong>Project Description:</strong></p>
<p>{{.Demo.ProjectDescription}}</p>
<hr>
<p><em>Booked on: {{.Stamp}}</em></p>
{{end}}`))

type templateData struct {
	Company string
	Stamp   string
	Date    string
	Contact *domain.Contact
	Demo    *domain.Demo
}

// render builds the message for kind. Recipients are resolved by the caller.
func render(kind Kind, payload any, settings Settings, now time.Time) (Message, error) {
	data := templateData{Company: settings.CompanyName, Stamp: now.Format(stampLayout)}
	var msg Message

	switch kind {
	case KindContactAdminNotice:
		contact, ok := payload.(*domain.Contact)
		if !ok || contact == nil {
			return Message{}, fmt.Errorf("%s: unexpected payload %T", kind, payload)
		}
		data.Contact = contact
		subject := contact.Subject
		if subject == "" {
			subject = notProvided
		}
		msg.To = settings.AdminRecipient
		msg.Subject = "New Contact Form Submission: " + subject
	case KindDemoConfirmation, KindDemoAdminNotice:
		demo, ok := payload.(*domain.Demo)
		if !ok || demo == nil {
			return Message{}, fmt.Errorf("%s: unexpected payload %T", kind, payload)
		}
		data.Demo = demo
		data.Date = demo.PreferredDate.Format(dateLayout)
		if kind == KindDemoConfirmation {
			msg.To = demo.Email
			msg.Subject = "Demo Booking Confirmation - " + settings.CompanyName
		} else {
			msg.To = settings.AdminRecipient
			msg.Subject = "New Demo Booking: " + string(demo.Service)
		}
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(kind), data); err != nil {
		return Message{}, err
	}
	msg.From = settings.From
	msg.HTML = body.String()
	return msg, nil
}
