package domain

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// MailSettings - адреса для доставки писем из форм.
type MailSettings struct {
	From       string
	ContactTo  string
	FeedbackTo string
}

// RecipientFor возвращает получателя для типа формы.
// Для отзывов используется ContactTo, если FeedbackTo не задан.
func (s MailSettings) RecipientFor(kind FormKind) string {
	if kind == FormKindFeedback && strings.TrimSpace(s.FeedbackTo) != "" {
		return strings.TrimSpace(s.FeedbackTo)
	}
	return strings.TrimSpace(s.ContactTo)
}

// Missing перечисляет незаданные настройки для типа формы.
func (s MailSettings) Missing(kind FormKind) []string {
	var missing []string
	if strings.TrimSpace(s.From) == "" {
		missing = append(missing, "sender address")
	}
	if s.RecipientFor(kind) == "" {
		missing = append(missing, "recipient address")
	}
	return missing
}

// NotificationMessage - готовое к отправке письмо.
type NotificationMessage struct {
	Kind    FormKind `json:"kind"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// NotificationRow - строка тела письма "Подпись: значение".
type NotificationRow struct {
	Label string
	Value string
}

var notificationHTML = template.Must(template.New("notification").Parse(`<h2>{{.Heading}}</h2>
<table cellpadding="4" cellspacing="0">
{{- range .Rows}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
<h3>Message</h3>
<p style="white-space: pre-wrap">{{.Message}}</p>
`))

// BuildNotification рендерит письмо для уже провалидированной формы.
func BuildNotification(sub FormSubmission, settings MailSettings) (NotificationMessage, error) {
	var (
		subject string
		heading string
		rows    []NotificationRow
		message string
	)

	switch p := sub.(type) {
	case ContactPayload:
		subject, heading, rows, message = contactContent(p)
	case FeedbackPayload:
		subject, heading, rows, message = feedbackContent(p)
	default:
		return NotificationMessage{}, fmt.Errorf("unsupported form submission type %T", sub)
	}

	text, err := renderText(heading, rows, message)
	if err != nil {
		return NotificationMessage{}, err
	}

	var html bytes.Buffer
	if err := notificationHTML.Execute(&html, struct {
		Heading string
		Rows    []NotificationRow
		Message string
	}{heading, rows, message}); err != nil {
		return NotificationMessage{}, fmt.Errorf("failed to render notification html: %w", err)
	}

	return NotificationMessage{
		Kind:    sub.Kind(),
		From:    strings.TrimSpace(settings.From),
		To:      settings.RecipientFor(sub.Kind()),
		ReplyTo: sub.ReplyTo(),
		Subject: subject,
		Text:    text,
		HTML:    html.String(),
	}, nil
}

func contactContent(p ContactPayload) (subject, heading string, rows []NotificationRow, message string) {
	enquiry := EnquiryTypeLabels.Label(p.EnquiryType)
	if enquiry == "" {
		enquiry = EnquiryTypeLabels["general"]
	}

	subject = fmt.Sprintf("New Contact Enquiry: %s - %s", enquiry, p.Name)
	if u := strings.ToLower(p.Urgency); u == "urgent" || u == "high" {
		subject = "[" + UrgencyLabels.Label(u) + "] " + subject
	}

	rows = appendRows(nil,
		NotificationRow{"Name", p.Name},
		NotificationRow{"Email", p.Email},
		NotificationRow{"Phone", p.Phone},
		NotificationRow{"Organisation", p.Organization},
		NotificationRow{"Relationship", RelationshipLabels.Label(p.Relationship)},
		NotificationRow{"Enquiry Type", EnquiryTypeLabels.Label(p.EnquiryType)},
		NotificationRow{"Preferred Contact Method", PreferredContactLabels.Label(p.PreferredContact)},
		NotificationRow{"Best Time to Contact", BestTimeLabels.Label(p.BestTimeToContact)},
		NotificationRow{"NDIS Status", NDISStatusLabels.Label(p.NDISStatus)},
		NotificationRow{"Service Interest", p.ServiceInterest},
		NotificationRow{"Heard About Us", HearAboutUsLabels.Label(p.HearAboutUs)},
		NotificationRow{"Urgency", UrgencyLabels.Label(p.Urgency)},
		NotificationRow{"Specific Requirements", p.SpecificRequirements},
	)
	return subject, "New contact form submission", rows, p.Message
}

func feedbackContent(p FeedbackPayload) (subject, heading string, rows []NotificationRow, message string) {
	submitter := p.Name
	if p.Anonymous || submitter == "" {
		submitter = "Anonymous"
	}
	feedbackType := FeedbackTypeLabels.Label(p.FeedbackType)
	serviceArea := ServiceAreaLabels.Label(p.ServiceArea)

	subject = fmt.Sprintf("New Feedback (%s): %s - %s", feedbackType, serviceArea, submitter)

	rows = appendRows(nil,
		NotificationRow{"Feedback Type", feedbackType},
		NotificationRow{"Service Area", serviceArea},
		NotificationRow{"Anonymous", yesNo(p.Anonymous)},
	)
	if !p.Anonymous {
		rows = appendRows(rows,
			NotificationRow{"Name", p.Name},
			NotificationRow{"Email", p.Email},
			NotificationRow{"Phone", p.Phone},
			NotificationRow{"Consent to Contact", yesNo(p.ContactConsent)},
		)
	}
	return subject, "New feedback submission", rows, p.Message
}

// appendRows добавляет только строки с непустым значением.
func appendRows(rows []NotificationRow, candidates ...NotificationRow) []NotificationRow {
	for _, r := range candidates {
		if strings.TrimSpace(r.Value) != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

func renderText(heading string, rows []NotificationRow, message string) (string, error) {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, r := range rows {
		if _, err := fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value); err != nil {
			return "", fmt.Errorf("failed to render notification text: %w", err)
		}
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(message)
	b.WriteString("\n")
	return b.String(), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
