package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
)

// SubmitFormUseCase: Received -> Validated -> Dispatched -> {Succeeded, Failed}.
// Ровно одна попытка отправки на валидную форму, без ретраев.
type SubmitFormUseCase struct {
	sender   port.MailSenderPort
	settings domain.MailSettings
}

func NewSubmitFormUseCase(sender port.MailSenderPort, settings domain.MailSettings) *SubmitFormUseCase {
	return &SubmitFormUseCase{sender: sender, settings: settings}
}

func (uc *SubmitFormUseCase) Execute(ctx context.Context, submission domain.FormSubmission) (err error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SubmitForm"})

	defer func() {
		if r := recover(); r != nil {
			err = &domain.UnexpectedError{Err: fmt.Errorf("panic: %v", r)}
			logger.Error("Use case panicked", err, nil)
		}
	}()

	if submission == nil {
		return &domain.UnexpectedError{Err: errors.New("nil form submission")}
	}

	sub := submission.Trimmed()
	ucLogger := logger.WithFields(port.Fields{"form_kind": sub.Kind()})
	ucLogger.Info("Use case started", nil)

	// 1. Validated
	if err := sub.Validate(); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			ucLogger.Info("Submission rejected by validation", port.Fields{"fields": vErr.Fields})
			return vErr
		}
		ucLogger.Error("Validation failed unexpectedly", err, nil)
		return &domain.UnexpectedError{Err: err}
	}

	// 2. Конфигурация доставки проверяется до любой попытки отправки
	missing := uc.settings.Missing(sub.Kind())
	if uc.sender == nil || !uc.sender.Configured() {
		missing = append(missing, "provider credential")
	}
	if len(missing) > 0 {
		cfgErr := &domain.ConfigurationError{Missing: missing}
		ucLogger.Error("Mail delivery is not configured", cfgErr, nil)
		return cfgErr
	}

	msg, err := domain.BuildNotification(sub, uc.settings)
	if err != nil {
		ucLogger.Error("Failed to build notification", err, nil)
		return &domain.UnexpectedError{Err: err}
	}

	// 3. Dispatched
	ucLogger.Debug("Dispatching notification", port.Fields{"to": msg.To, "subject": msg.Subject})
	if err := uc.sender.Send(ctx, msg); err != nil {
		dErr := &domain.DeliveryError{Kind: ClassifyDeliveryFailure(err), Err: err}
		ucLogger.Error("Mail provider failed to send notification", dErr, port.Fields{"failure_kind": dErr.Kind.String()})
		return dErr
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// ClassifyDeliveryFailure берет категорию из *domain.ProviderError, а если
// провайдер ее не сообщил, ищет "domain" в тексте ошибки.
func ClassifyDeliveryFailure(err error) domain.DeliveryFailureKind {
	var pErr *domain.ProviderError
	if errors.As(err, &pErr) && pErr.Kind != domain.DeliveryFailureUnclassified {
		return pErr.Kind
	}
	if strings.Contains(strings.ToLower(err.Error()), "domain") {
		return domain.DeliveryFailureSenderNotVerified
	}
	return domain.DeliveryFailureGeneric
}
