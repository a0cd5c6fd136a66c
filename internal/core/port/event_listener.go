package port

import "context"

// EventListenerPort входящий адаптер, читающий события из брокера.
type EventListenerPort interface {
	// Start блокируется до отмены ctx или фатальной ошибки.
	Start(ctx context.Context) error
	Close() error
}
