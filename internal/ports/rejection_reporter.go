package ports

import "context"

// RejectionReporter - приёмник причин отклонения сообщений (консоль и, опционально, файл).
type RejectionReporter interface {
	Report(ctx context.Context, raw []byte, reason string) error
}
