package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/lmnh_kiosk/pkg/ctxmeta"
)

// ZapLogger - реализация ports.Logger на zap. Каждая строка дополняется метаданными из ctx:
// run_id, координаты сообщения Kafka, request_id и trace_id.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	return wrap(logger, isProd), func() error { return logger.Sync() }, nil
}

// NewFromZap - обёртка над готовым *zap.Logger (например, zaptest в тестах).
func NewFromZap(logger *zap.Logger) *ZapLogger { return wrap(logger, false) }

func wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	// пропускаем собственный фрейм, чтобы caller указывал на место вызова Infof/Warnf/Errorf
	logger = logger.WithOptions(zap.AddCallerSkip(1))
	return &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

// with - sugared-логгер с полями из контекста.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return z.sugar
	}
	return z.base.With(fields...).Sugar()
}

// ContextFields - поля zap из метаданных контекста.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	var fields []zap.Field
	if runID, ok := ctxmeta.RunIDFromContext(ctx); ok {
		fields = append(fields, zap.String("run_id", runID))
	}
	if msg, ok := ctxmeta.MessageFromContext(ctx); ok {
		fields = append(fields,
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
	}
	if requestID, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if traceID, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if spanID, ok := ctxmeta.SpanIDFromContext(ctx); ok {
		fields = append(fields, zap.String("span_id", spanID))
	}
	return fields
}
