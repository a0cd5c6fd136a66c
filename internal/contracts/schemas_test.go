package contracts

import (
	"errors"
	"strings"
	"testing"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasAreRegistered(t *testing.T) {
	assert.Contains(t, compiledSchemas, ContactFormV1)
	assert.Contains(t, compiledSchemas, FeedbackFormV1)
}

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ContactForm/1.0.0", generateKeyFromPath("forms/contact-form/v1.json"))
	assert.Equal(t, "FeedbackForm/2.0.0", generateKeyFromPath("forms/feedback-form/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("forms/v1.json"))
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name       string
		schema     string
		body       string
		wantFields []string
		wantReason string
		wantValid  bool
	}{
		{
			name:      "contact with optional fields",
			schema:    ContactFormV1,
			body:      `{"name":"Jane","email":"jane@example.com","message":"Hi","urgency":"high","extra":"ignored"}`,
			wantValid: true,
		},
		{
			name:      "required fields are checked later",
			schema:    ContactFormV1,
			body:      `{"email":""}`,
			wantValid: true,
		},
		{
			name:      "nulls are accepted",
			schema:    FeedbackFormV1,
			body:      `{"name":null,"email":null,"anonymous":null,"feedbackType":"compliment"}`,
			wantValid: true,
		},
		{
			name:      "email with surrounding whitespace",
			schema:    ContactFormV1,
			body:      `{"name":"Jane","email":" jane@example.com\t","message":"Hi"}`,
			wantValid: true,
		},
		{
			name:      "anonymous feedback ignores contact fields",
			schema:    FeedbackFormV1,
			body:      `{"anonymous":true,"email":"n/a","name":"` + strings.Repeat("x", 300) + `","message":"ok"}`,
			wantValid: true,
		},
		{
			name:       "named feedback still checks email",
			schema:     FeedbackFormV1,
			body:       `{"anonymous":false,"email":"n/a","message":"ok"}`,
			wantFields: []string{"email"},
		},
		{
			name:       "bad email",
			schema:     ContactFormV1,
			body:       `{"name":"Jane","email":"jane-at-example","message":"Hi"}`,
			wantFields: []string{"email"},
		},
		{
			name:       "wrong types",
			schema:     FeedbackFormV1,
			body:       `{"anonymous":"true","contactConsent":1,"message":"ok"}`,
			wantFields: []string{"anonymous", "contactConsent"},
		},
		{
			name:       "too long",
			schema:     ContactFormV1,
			body:       `{"name":"` + strings.Repeat("x", 201) + `"}`,
			wantFields: []string{"name"},
		},
		{
			name:       "not json",
			schema:     ContactFormV1,
			body:       `{"name":`,
			wantReason: "request body is not valid JSON",
		},
		{
			name:       "array body",
			schema:     FeedbackFormV1,
			body:       `[]`,
			wantReason: "request body must be a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateForm(tt.schema, []byte(tt.body))
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, vErr.Fields)
			}
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, vErr.Reason)
			}
		})
	}
}

func TestValidateFormReturnsNormalizedBody(t *testing.T) {
	normalized, err := ValidateForm(FeedbackFormV1,
		[]byte(`{"anonymous":true,"email":"n/a","phone":"0400","message":"  Thanks  ","serviceArea":"sil"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"anonymous":true,"message":"Thanks","serviceArea":"sil"}`, string(normalized))

	normalized, err = ValidateForm(ContactFormV1, []byte(`{"name":" Jane ","email":"jane@example.com "}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jane","email":"jane@example.com"}`, string(normalized))
}

func TestValidateFormUnknownSchema(t *testing.T) {
	_, err := ValidateForm("Nope/1.0.0", []byte(`{}`))
	require.Error(t, err)

	var vErr *domain.ValidationError
	assert.False(t, errors.As(err, &vErr))
}
