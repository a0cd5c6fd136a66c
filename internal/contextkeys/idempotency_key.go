package contextkeys

import (
	"context"
)

type idempotencyKeyType struct{}

var idempotencyKey = idempotencyKeyType{}

// ContextWithIdempotencyKey задает ключ идемпотентности для одной отправки.
// Повторная доставка того же сообщения должна приходить с тем же ключом.
func ContextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey, key)
}

// IdempotencyKeyFromContext возвращает ключ или пустую строку.
func IdempotencyKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(idempotencyKey).(string); ok {
		return key
	}
	return ""
}
