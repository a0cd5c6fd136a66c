package rabbitmq_common

import (
	"fmt"
	"strings"
)

// Config общие параметры подключения для производителей
type Config struct {
	URL string
}

// Validate проверяет обязательные поля
func (c Config) Validate() error {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return fmt.Errorf("rabbitmq: URL is required")
	}
	if !strings.HasPrefix(url, "amqp://") && !strings.HasPrefix(url, "amqps://") {
		return fmt.Errorf("rabbitmq: URL must use amqp:// or amqps:// scheme")
	}
	return nil
}
