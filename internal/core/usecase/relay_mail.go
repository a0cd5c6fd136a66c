package usecase

import (
	"context"
	"strings"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
)

// RelayMailUseCase отправляет письмо из outbox провайдеру. Одна попытка на
// сообщение, отказ отдается брокеру как есть.
type RelayMailUseCase struct {
	sender port.MailSenderPort
}

func NewRelayMailUseCase(sender port.MailSenderPort) *RelayMailUseCase {
	return &RelayMailUseCase{sender: sender}
}

func (uc *RelayMailUseCase) Execute(ctx context.Context, msg domain.NotificationMessage) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "RelayMail",
		"form_kind": string(msg.Kind),
	})
	ucLogger.Info("Use case started", nil)

	var missing []string
	if strings.TrimSpace(msg.From) == "" {
		missing = append(missing, "sender address")
	}
	if strings.TrimSpace(msg.To) == "" {
		missing = append(missing, "recipient address")
	}
	if uc.sender == nil || !uc.sender.Configured() {
		missing = append(missing, "provider credential")
	}
	if len(missing) > 0 {
		cfgErr := &domain.ConfigurationError{Missing: missing}
		ucLogger.Error("Queued message cannot be delivered", cfgErr, nil)
		return cfgErr
	}

	if err := uc.sender.Send(ctx, msg); err != nil {
		dErr := &domain.DeliveryError{Kind: ClassifyDeliveryFailure(err), Err: err}
		ucLogger.Error("Mail provider failed to send queued message", dErr, port.Fields{"failure_kind": dErr.Kind.String()})
		return dErr
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
