package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"

	"github.com/google/uuid"
)

const DefaultBaseURL = "https://api.resend.com"

// Коды ошибок, означающие, что адрес/домен отправителя не подтвержден.
var senderIdentityCodes = map[string]struct{}{
	"invalid_from_address": {},
	"domain_not_verified":  {},
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client отправляет письма через Resend REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ port.MailSenderPort = (*Client)(nil)

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// doRequest прокидывает trace_id и ключ идемпотентности. Без ключа в
// контексте каждая отправка получает новый, trace_id задает клиент и для
// этого не годится.
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	idempotencyKey := contextkeys.IdempotencyKeyFromContext(ctx)
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}
	req.Header.Set("Idempotency-Key", idempotencyKey)

	return c.httpClient.Do(req)
}

func (c *Client) Send(ctx context.Context, msg domain.NotificationMessage) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ResendClient",
		"method":    "Send",
	})

	payload := SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	url := c.baseURL + "/emails"
	clientLogger.Debug("Sending request to mail provider", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		clientLogger.Error("Failed to perform request to mail provider", err, nil)
		return fmt.Errorf("mail provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		pErr := decodeProviderError(resp)
		clientLogger.Error("Received error response from mail provider", pErr, port.Fields{"status_code": resp.StatusCode})
		return pErr
	}

	var sent SendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		// Письмо принято, тело ответа нам не критично.
		clientLogger.Warn("Failed to decode mail provider response", port.Fields{"error": err.Error()})
		return nil
	}

	clientLogger.Info("Email accepted by mail provider", port.Fields{"email_id": sent.ID})
	return nil
}

func decodeProviderError(resp *http.Response) *domain.ProviderError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Message == "" {
		apiErr = ErrorResponse{Message: strings.TrimSpace(string(raw))}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}

	return &domain.ProviderError{
		StatusCode: apiErr.StatusCode,
		Code:       apiErr.Name,
		Message:    apiErr.Message,
		Kind:       classify(apiErr),
	}
}

// classify определяет категорию ошибки по коду провайдера. Для ответа
// validation_error с 403 домен отправителя проверяется по тексту.
func classify(apiErr ErrorResponse) domain.DeliveryFailureKind {
	if _, ok := senderIdentityCodes[apiErr.Name]; ok {
		return domain.DeliveryFailureSenderNotVerified
	}
	if apiErr.StatusCode == http.StatusForbidden && apiErr.Name == "validation_error" &&
		strings.Contains(strings.ToLower(apiErr.Message), "not verified") {
		return domain.DeliveryFailureSenderNotVerified
	}
	if apiErr.Name != "" {
		return domain.DeliveryFailureGeneric
	}
	return domain.DeliveryFailureUnclassified
}
