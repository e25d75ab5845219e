// Пакет ctxmeta - нейтральный слой для метаданных, которые прокидываются через context.Context:
// run_id запуска конвейера, координаты текущего сообщения Kafka, request_id ops-запроса.
// Логгер, Kafka-слой и HTTP-слой зависят от него, но не друг от друга.
package ctxmeta

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип - чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyRunID     ctxKey = "run_id"
	KeyMessage   ctxKey = "kafka_message"
)

// Message - координаты сообщения Kafka, которое обрабатывается в этом контексте.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
}

// WithRequestID кладёт request_id в контекст (если пусто - ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// NewRunID - идентификатор одного запуска конвейера.
func NewRunID() string { return uuid.NewString() }

// WithRunID кладёт run_id в контекст (если пусто - ничего не делает).
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil || runID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRunID, runID)
}

// RunIDFromContext достаёт run_id из контекста.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRunID)
}

// WithMessage кладёт координаты сообщения в контекст.
func WithMessage(ctx context.Context, msg Message) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, KeyMessage, msg)
}

// MessageFromContext достаёт координаты сообщения из контекста.
func MessageFromContext(ctx context.Context) (Message, bool) {
	if ctx == nil {
		return Message{}, false
	}
	msg, ok := ctx.Value(KeyMessage).(Message)
	return msg, ok
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
