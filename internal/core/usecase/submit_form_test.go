package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
	configured bool
}

func (m *mockSender) Configured() bool { return m.configured }

func (m *mockSender) Send(ctx context.Context, msg domain.NotificationMessage) error {
	return m.Called(ctx, msg).Error(0)
}

var settings = domain.MailSettings{
	From:      "noreply@example.org",
	ContactTo: "intake@example.org",
}

var validContact = domain.ContactPayload{Name: " Jane ", Email: "jane@example.com", Message: "Hello"}

func TestSubmitFormSuccessTrimsAndSendsOnce(t *testing.T) {
	sender := &mockSender{configured: true}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.NotificationMessage) bool {
		return msg.To == "intake@example.org" && msg.Subject == "New Contact Enquiry: General Enquiry - Jane"
	})).Return(nil).Once()

	err := NewSubmitFormUseCase(sender, settings).Execute(context.Background(), validContact)

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSubmitFormValidationErrorSkipsSender(t *testing.T) {
	sender := &mockSender{configured: true}

	err := NewSubmitFormUseCase(sender, settings).Execute(context.Background(),
		domain.ContactPayload{Name: "Jane", Email: "jane@example.com"})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"message"}, vErr.Fields)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitFormValidationRunsBeforeConfigurationCheck(t *testing.T) {
	err := NewSubmitFormUseCase(&mockSender{}, domain.MailSettings{}).Execute(context.Background(), domain.ContactPayload{})

	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestSubmitFormConfigurationError(t *testing.T) {
	tests := []struct {
		name        string
		sender      *mockSender
		settings    domain.MailSettings
		wantMissing []string
	}{
		{
			name:        "no credential",
			sender:      &mockSender{configured: false},
			settings:    settings,
			wantMissing: []string{"provider credential"},
		},
		{
			name:        "no sender address or recipient",
			sender:      &mockSender{configured: true},
			settings:    domain.MailSettings{},
			wantMissing: []string{"sender address", "recipient address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSubmitFormUseCase(tt.sender, tt.settings).Execute(context.Background(), validContact)

			var cErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cErr))
			assert.Equal(t, tt.wantMissing, cErr.Missing)
			tt.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitFormNilSenderIsConfigurationError(t *testing.T) {
	err := NewSubmitFormUseCase(nil, settings).Execute(context.Background(), validContact)

	var cErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cErr))
}

func TestSubmitFormDeliveryError(t *testing.T) {
	tests := []struct {
		name     string
		sendErr  error
		wantKind domain.DeliveryFailureKind
	}{
		{
			name:     "text mentions domain",
			sendErr:  errors.New("The example.org Domain is not verified"),
			wantKind: domain.DeliveryFailureSenderNotVerified,
		},
		{
			name:     "structured code wins over text",
			sendErr:  &domain.ProviderError{Code: "rate_limit_exceeded", Message: "domain quota", Kind: domain.DeliveryFailureGeneric},
			wantKind: domain.DeliveryFailureGeneric,
		},
		{
			name:     "structured sender not verified",
			sendErr:  &domain.ProviderError{Code: "invalid_from_address", Message: "Invalid from", Kind: domain.DeliveryFailureSenderNotVerified},
			wantKind: domain.DeliveryFailureSenderNotVerified,
		},
		{
			name:     "plain failure",
			sendErr:  errors.New("dial tcp: i/o timeout"),
			wantKind: domain.DeliveryFailureGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{configured: true}
			sender.On("Send", mock.Anything, mock.Anything).Return(tt.sendErr).Once()

			err := NewSubmitFormUseCase(sender, settings).Execute(context.Background(), validContact)

			var dErr *domain.DeliveryError
			require.True(t, errors.As(err, &dErr))
			assert.Equal(t, tt.wantKind, dErr.Kind)
			assert.ErrorIs(t, err, tt.sendErr)
			sender.AssertNumberOfCalls(t, "Send", 1)
		})
	}
}

func TestSubmitFormRecoversPanicAsUnexpectedError(t *testing.T) {
	sender := &mockSender{configured: true}
	sender.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	err := NewSubmitFormUseCase(sender, settings).Execute(context.Background(), validContact)

	var uErr *domain.UnexpectedError
	assert.True(t, errors.As(err, &uErr))
}

func TestSubmitFormNilSubmission(t *testing.T) {
	err := NewSubmitFormUseCase(&mockSender{configured: true}, settings).Execute(context.Background(), nil)

	var uErr *domain.UnexpectedError
	assert.True(t, errors.As(err, &uErr))
}
