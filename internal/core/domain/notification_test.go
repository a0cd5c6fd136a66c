package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = MailSettings{
	From:       "Summit <noreply@example.org>",
	ContactTo:  "intake@example.org",
	FeedbackTo: "feedback@example.org",
}

func TestContactValidate(t *testing.T) {
	tests := []struct {
		name       string
		payload    ContactPayload
		wantFields []string
	}{
		{
			name:    "complete",
			payload: ContactPayload{Name: "Jane", Email: "jane@example.com", Message: "Hello"},
		},
		{
			name:       "whitespace message",
			payload:    ContactPayload{Name: "Jane", Email: "jane@example.com", Message: " \n\t"},
			wantFields: []string{"message"},
		},
		{
			name:       "empty",
			payload:    ContactPayload{},
			wantFields: []string{"name", "email", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Trimmed().Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantFields, vErr.Fields)
		})
	}
}

func TestFeedbackValidate(t *testing.T) {
	tests := []struct {
		name       string
		payload    FeedbackPayload
		wantFields []string
	}{
		{
			name:    "anonymous without contact details",
			payload: FeedbackPayload{FeedbackType: "compliment", ServiceArea: "sil", Message: "Thanks", Anonymous: true},
		},
		{
			name: "named with all details",
			payload: FeedbackPayload{
				Name: "Sam", Email: "sam@example.com", Phone: "0400 000 000",
				FeedbackType: "complaint", ServiceArea: "sda", Message: "Late",
			},
		},
		{
			name: "named missing phone",
			payload: FeedbackPayload{
				Name: "Sam", Email: "sam@example.com",
				FeedbackType: "complaint", ServiceArea: "sda", Message: "Late",
			},
			wantFields: []string{"phone"},
		},
		{
			name:       "anonymous missing always-required fields",
			payload:    FeedbackPayload{Anonymous: true},
			wantFields: []string{"feedbackType", "serviceArea", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Trimmed().Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantFields, vErr.Fields)
		})
	}
}

func TestMailSettings(t *testing.T) {
	assert.Equal(t, "feedback@example.org", settings.RecipientFor(FormKindFeedback))
	assert.Equal(t, "intake@example.org", settings.RecipientFor(FormKindContact))

	fallback := MailSettings{From: "a@example.org", ContactTo: "intake@example.org"}
	assert.Equal(t, "intake@example.org", fallback.RecipientFor(FormKindFeedback))
	assert.Empty(t, fallback.Missing(FormKindFeedback))

	assert.Equal(t, []string{"sender address", "recipient address"}, MailSettings{}.Missing(FormKindContact))
}

func TestBuildContactNotification(t *testing.T) {
	sub := ContactPayload{
		Name:             "Jane Citizen",
		Email:            "jane@example.com",
		Phone:            "0400 111 222",
		EnquiryType:      "sda",
		PreferredContact: "phone",
		Urgency:          "urgent",
		Message:          "Looking for a <b>villa</b>",
	}

	msg, err := BuildNotification(sub, settings)
	require.NoError(t, err)

	assert.Equal(t, FormKindContact, msg.Kind)
	assert.Equal(t, "intake@example.org", msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Equal(t, "[Urgent] New Contact Enquiry: Specialist Disability Accommodation - Jane Citizen", msg.Subject)

	// пустые необязательные поля не попадают в письмо
	assert.NotContains(t, msg.Text, "Organisation")
	assert.NotContains(t, msg.Text, "NDIS Status")

	// порядок строк фиксирован
	assert.Less(t, strings.Index(msg.Text, "Name:"), strings.Index(msg.Text, "Phone:"))
	assert.Less(t, strings.Index(msg.Text, "Phone:"), strings.Index(msg.Text, "Enquiry Type:"))
	assert.True(t, strings.HasSuffix(msg.Text, "Message:\nLooking for a <b>villa</b>\n"))

	// HTML экранирует ввод пользователя
	assert.Contains(t, msg.HTML, "&lt;b&gt;villa&lt;/b&gt;")
	assert.NotContains(t, msg.HTML, "<b>villa</b>")
}

func TestBuildContactNotificationDefaultsEnquiryLabel(t *testing.T) {
	msg, err := BuildNotification(ContactPayload{Name: "Jo", Email: "jo@example.com", Message: "Hi"}, settings)
	require.NoError(t, err)
	assert.Equal(t, "New Contact Enquiry: General Enquiry - Jo", msg.Subject)
}

func TestBuildFeedbackNotification(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		msg, err := BuildNotification(FeedbackPayload{
			Name: "Hidden", Email: "hidden@example.com",
			FeedbackType: "compliment", ServiceArea: "sil", Message: "Great staff", Anonymous: true,
		}, settings)
		require.NoError(t, err)

		assert.Equal(t, "New Feedback (Compliment): Supported Independent Living - Anonymous", msg.Subject)
		assert.Equal(t, "feedback@example.org", msg.To)
		assert.Empty(t, msg.ReplyTo)
		assert.NotContains(t, msg.Text, "hidden@example.com")
	})

	t.Run("named with unknown codes", func(t *testing.T) {
		msg, err := BuildNotification(FeedbackPayload{
			Name: "Sam", Email: "sam@example.com", Phone: "0400",
			FeedbackType: "plan-review", ServiceArea: "day_programs", Message: "Ok",
		}, settings)
		require.NoError(t, err)

		assert.Equal(t, "New Feedback (Plan Review): Day Programs - Sam", msg.Subject)
		assert.Equal(t, "sam@example.com", msg.ReplyTo)
		assert.Contains(t, msg.Text, "Consent to Contact: No\n")
	})
}

func TestLabelFallback(t *testing.T) {
	assert.Equal(t, "General Enquiry", EnquiryTypeLabels.Label("GENERAL"))
	assert.Equal(t, "Community Access", EnquiryTypeLabels.Label("community-access"))
	assert.Equal(t, "", EnquiryTypeLabels.Label("  "))
}

func TestValidationErrorText(t *testing.T) {
	assert.Equal(t, "missing required fields: name, phone", (&ValidationError{Fields: []string{"name", "phone"}}).Error())
	assert.Equal(t, "invalid fields: email", (&ValidationError{Fields: []string{"email"}, Reason: "invalid fields"}).Error())
}

func TestDeliveryFailureKindString(t *testing.T) {
	assert.Equal(t, "sender_not_verified", DeliveryFailureSenderNotVerified.String())
	assert.Equal(t, "generic", DeliveryFailureGeneric.String())
	assert.Equal(t, "unclassified", DeliveryFailureUnclassified.String())
}
