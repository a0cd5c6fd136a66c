package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/contracts"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port/usecases_port"
)

// maxFormBodyBytes ограничение тела формы
const maxFormBodyBytes = 64 << 10

// Тексты ответов формы
const (
	MsgNotConfigured      = "Email service is not configured. Please contact the administrator."
	MsgDomainNotVerified  = "Email sending domain is not verified. Please contact the administrator."
	MsgDeliveryFailed     = "Failed to send message. Please try again later."
	MsgUnexpectedError    = "An unexpected error occurred. Please try again later."
	msgInvalidRequestBody = "Invalid request body"
)

type FormsHandler struct {
	submitFormUC usecases_port.SubmitFormUseCase
}

func NewFormsHandler(submitFormUC usecases_port.SubmitFormUseCase) *FormsHandler {
	return &FormsHandler{submitFormUC: submitFormUC}
}

// SubmitContact обрабатывает POST /api/contact
func (h *FormsHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, contracts.ContactFormV1, func(body []byte) (domain.FormSubmission, error) {
		var p domain.ContactPayload
		err := json.Unmarshal(body, &p)
		return p, err
	})
}

// SubmitFeedback обрабатывает POST /api/feedback
func (h *FormsHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, contracts.FeedbackFormV1, func(body []byte) (domain.FormSubmission, error) {
		var p domain.FeedbackPayload
		err := json.Unmarshal(body, &p)
		return p, err
	})
}

func (h *FormsHandler) submit(
	w http.ResponseWriter,
	r *http.Request,
	schemaKey string,
	decode func(body []byte) (domain.FormSubmission, error),
) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "SubmitForm",
		"schema":  schemaKey,
	})

	defer func() {
		if rec := recover(); rec != nil {
			h.writeFormError(w, handlerLogger, &domain.UnexpectedError{Err: fmt.Errorf("panic in form handler: %v", rec)})
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBodyBytes))
	if err != nil {
		handlerLogger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	normalized, err := contracts.ValidateForm(schemaKey, body)
	if err != nil {
		h.writeFormError(w, handlerLogger, err)
		return
	}

	submission, err := decode(normalized)
	if err != nil {
		handlerLogger.Warn("Failed to decode form payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	if err := h.submitFormUC.Execute(r.Context(), submission); err != nil {
		h.writeFormError(w, handlerLogger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// writeFormError переводит ошибку отправки формы в HTTP-ответ.
func (h *FormsHandler) writeFormError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigurationError
		deliveryErr   *domain.DeliveryError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Debug("Form rejected", port.Fields{"fields": validationErr.Fields})
		WriteJSONError(w, http.StatusBadRequest, upperFirst(validationErr.Error()))

	case errors.As(err, &configErr):
		logger.Error("Mail delivery is not configured", err, port.Fields{"missing": configErr.Missing})
		WriteJSONError(w, http.StatusServiceUnavailable, MsgNotConfigured)

	case errors.As(err, &deliveryErr):
		logger.Error("Mail delivery failed", err, port.Fields{"failure_kind": deliveryErr.Kind.String()})
		if deliveryErr.Kind == domain.DeliveryFailureSenderNotVerified {
			WriteJSONError(w, http.StatusInternalServerError, MsgDomainNotVerified)
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, MsgDeliveryFailed)

	default:
		logger.Error("Unexpected error while submitting form", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, MsgUnexpectedError)
	}
}

func upperFirst(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
