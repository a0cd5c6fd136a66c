package domain

import "strings"

// FormKind - закрытый набор типов форм.
type FormKind string

const (
	FormKindContact  FormKind = "contact"
	FormKindFeedback FormKind = "feedback"
)

// FormSubmission - провалидированное представление формы.
// Реализации: ContactPayload и FeedbackPayload.
type FormSubmission interface {
	Kind() FormKind
	// Trimmed возвращает копию с обрезанными пробелами во всех строковых полях.
	Trimmed() FormSubmission
	// Validate возвращает *ValidationError со списком незаполненных полей.
	Validate() error
	// ReplyTo - адрес для ответа или "" для анонимного отзыва.
	ReplyTo() string
}

// ContactPayload - общая форма обратной связи.
type ContactPayload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Organization         string `json:"organization"`
	Relationship         string `json:"relationship"`
	EnquiryType          string `json:"enquiryType"`
	PreferredContact     string `json:"preferredContact"`
	BestTimeToContact    string `json:"bestTimeToContact"`
	NDISStatus           string `json:"ndisStatus"`
	ServiceInterest      string `json:"serviceInterest"`
	HearAboutUs          string `json:"hearAboutUs"`
	Urgency              string `json:"urgency"`
	SpecificRequirements string `json:"specificRequirements"`
	Message              string `json:"message"`
}

func (p ContactPayload) Kind() FormKind { return FormKindContact }

func (p ContactPayload) Trimmed() FormSubmission {
	trimAll(
		&p.Name, &p.Email, &p.Phone, &p.Organization, &p.Relationship,
		&p.EnquiryType, &p.PreferredContact, &p.BestTimeToContact, &p.NDISStatus,
		&p.ServiceInterest, &p.HearAboutUs, &p.Urgency, &p.SpecificRequirements,
		&p.Message,
	)
	return p
}

func (p ContactPayload) Validate() error {
	return requireFields(
		field{"name", p.Name},
		field{"email", p.Email},
		field{"message", p.Message},
	)
}

func (p ContactPayload) ReplyTo() string { return strings.TrimSpace(p.Email) }

// FeedbackPayload - форма отзывов и жалоб. При Anonymous контактные поля не обязательны.
type FeedbackPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FeedbackType   string `json:"feedbackType"`
	ServiceArea    string `json:"serviceArea"`
	Message        string `json:"message"`
	Anonymous      bool   `json:"anonymous"`
	ContactConsent bool   `json:"contactConsent"`
}

func (p FeedbackPayload) Kind() FormKind { return FormKindFeedback }

func (p FeedbackPayload) Trimmed() FormSubmission {
	trimAll(&p.Name, &p.Email, &p.Phone, &p.FeedbackType, &p.ServiceArea, &p.Message)
	return p
}

func (p FeedbackPayload) Validate() error {
	fields := []field{
		{"feedbackType", p.FeedbackType},
		{"serviceArea", p.ServiceArea},
		{"message", p.Message},
	}
	if !p.Anonymous {
		fields = append(fields,
			field{"name", p.Name},
			field{"email", p.Email},
			field{"phone", p.Phone},
		)
	}
	return requireFields(fields...)
}

func (p FeedbackPayload) ReplyTo() string {
	if p.Anonymous {
		return ""
	}
	return strings.TrimSpace(p.Email)
}

type field struct {
	name  string
	value string
}

// requireFields проверяет поля в заданном порядке; порядок попадает в ошибку.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
