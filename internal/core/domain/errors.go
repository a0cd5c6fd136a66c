package domain

import (
	"fmt"
	"strings"
)

// ValidationError - ошибка клиента: не заполнены или некорректны поля формы.
type ValidationError struct {
	Fields []string
	// Reason переопределяет стандартный текст ("missing required fields").
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing required fields"
	}
	if len(e.Fields) == 0 {
		return reason
	}
	return fmt.Sprintf("%s: %s", reason, strings.Join(e.Fields, ", "))
}

// ConfigurationError - не настроена доставка (отправитель, получатель или ключ провайдера).
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mail delivery is not configured: missing %s", strings.Join(e.Missing, ", "))
}

// DeliveryFailureKind - категория отказа провайдера почты.
type DeliveryFailureKind int

const (
	// DeliveryFailureUnclassified - провайдер не сообщил категорию.
	DeliveryFailureUnclassified DeliveryFailureKind = iota
	DeliveryFailureGeneric
	// DeliveryFailureSenderNotVerified - домен/адрес отправителя не подтвержден у провайдера.
	DeliveryFailureSenderNotVerified
)

func (k DeliveryFailureKind) String() string {
	switch k {
	case DeliveryFailureGeneric:
		return "generic"
	case DeliveryFailureSenderNotVerified:
		return "sender_not_verified"
	default:
		return "unclassified"
	}
}

// ProviderError - структурированная ошибка, которую возвращает адаптер отправки.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	Kind       DeliveryFailureKind
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("mail provider error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("mail provider error %d: %s", e.StatusCode, e.Message)
}

// DeliveryError - внешняя отправка завершилась неудачей.
type DeliveryError struct {
	Kind DeliveryFailureKind
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery failed (%s): %v", e.Kind, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// UnexpectedError - все остальное. Детали уходят только в лог.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
