package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/constants"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type CatalogConfig struct {
	// пустой путь означает встроенный каталог
	Path             string
	PlaceholderImage string
}

// MailConfig настройки отправки писем. Пустые значения не мешают старту,
// они превращаются в ConfigurationError на конкретном запросе.
type MailConfig struct {
	Transport   string
	From        string
	ContactTo   string
	FeedbackTo  string
	HTTPTimeout time.Duration
}

type ResendConfig struct {
	APIKey string
	APIURL string
}

type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	// очередь и префетч нужны только mail-relay
	Queue         string
	PrefetchCount int
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Server       ServerConfig
	Catalog      CatalogConfig
	Mail         MailConfig
	Resend       ResendConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// MailSettings адреса, которые нужны сборке письма
func (c *AppConfig) MailSettings() domain.MailSettings {
	return domain.MailSettings{
		From:       c.Mail.From,
		ContactTo:  c.Mail.ContactTo,
		FeedbackTo: c.Mail.FeedbackTo,
	}
}

// LoadConfig загружает .env (если есть) и переменные окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment only.\n", envPath, err)
	}

	cfg := &AppConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", "support-site")

	cfg.Server.Port = getEnvAsString("PORT", "8080")
	cfg.Server.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.Catalog.Path = getEnvAsString("CATALOG_PATH", "")
	cfg.Catalog.PlaceholderImage = getEnvAsString("LISTING_PLACEHOLDER_IMAGE", "/images/placeholder-property.jpg")

	cfg.Mail.Transport = strings.ToLower(getEnvAsString("MAIL_TRANSPORT", constants.MailTransportResend))
	switch cfg.Mail.Transport {
	case constants.MailTransportResend, constants.MailTransportAMQP:
	default:
		return nil, fmt.Errorf("MAIL_TRANSPORT must be %q or %q, got %q",
			constants.MailTransportResend, constants.MailTransportAMQP, cfg.Mail.Transport)
	}
	cfg.Mail.From = getEnvAsString("EMAIL_FROM", "")
	cfg.Mail.ContactTo = getEnvAsString("CONTACT_EMAIL_TO", "")
	cfg.Mail.FeedbackTo = getEnvAsString("FEEDBACK_EMAIL_TO", "")
	cfg.Mail.HTTPTimeout = getEnvAsDuration("MAIL_HTTP_TIMEOUT", 15*time.Second)

	cfg.Resend.APIKey = getEnvAsString("RESEND_API_KEY", "")
	cfg.Resend.APIURL = getEnvAsString("RESEND_API_URL", "https://api.resend.com")

	cfg.RabbitMQ.URL = getEnvAsString("RABBITMQ_URL", "")
	if cfg.Mail.Transport == constants.MailTransportAMQP && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when MAIL_TRANSPORT=amqp")
	}
	cfg.RabbitMQ.Exchange = getEnvAsString("MAIL_EXCHANGE", constants.MailExchange)
	cfg.RabbitMQ.RoutingKey = getEnvAsString("MAIL_ROUTING_KEY", constants.RoutingKeyMailOutbox)
	cfg.RabbitMQ.Queue = getEnvAsString("MAIL_QUEUE", constants.QueueMailOutbox)
	cfg.RabbitMQ.PrefetchCount = getEnvAsInt("MAIL_PREFETCH_COUNT", 5)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil || d <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
