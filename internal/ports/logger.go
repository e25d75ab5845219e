package ports

import "context"

// Logger - минимальный контракт логгера для внешних слоёв.
// Реализация сама достаёт из ctx метаданные сообщения (run_id, offset, trace_id).
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof - эхо сообщений, жизненный цикл.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf - отклонённые сообщения, некритичные сбои.
	Errorf(ctx context.Context, format string, args ...any) // Errorf - фатальные ошибки инфраструктуры.
}
