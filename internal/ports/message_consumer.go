package ports

import "context"

// MessageConsumer - цикл чтения сообщений из брокера.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
