package fluentlogger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config параметры подключения к Fluent Bit
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // обычно 24224
	TagPrefix string // префикс тегов, обычно имя сервиса
	Timeout   time.Duration
	// Async не блокирует запрос при недоступном Fluent Bit
	Async bool
}

// NewClient создает клиент Fluent Bit. Соединение проверяется только при
// первой отправке лога.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if strings.TrimSpace(cfg.TagPrefix) == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	client, err := fluent.New(fluent.Config{
		FluentHost:         cfg.Host,
		FluentPort:         cfg.Port,
		TagPrefix:          cfg.TagPrefix,
		Timeout:            cfg.Timeout,
		WriteTimeout:       cfg.Timeout,
		Async:              cfg.Async,
		SubSecondPrecision: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return client, nil
}
