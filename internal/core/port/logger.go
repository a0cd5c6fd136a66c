package port

// Fields - структурированные данные для записи в лог.
type Fields map[string]interface{}

// LoggerPort определяет контракт для системы логирования.
// Ядро приложения не знает о конкретной реализации логгера.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	// Error записывает ошибку вместе с объектом error.
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields создает новый экземпляр логгера с уже добавленными полями
	// (например, trace_id).
	WithFields(fields Fields) LoggerPort
}
