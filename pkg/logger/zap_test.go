package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/lmnh_kiosk/pkg/ctxmeta"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/logger"
)

func TestZapLogger_ContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRunID(context.Background(), "run-1")
	ctx = ctxmeta.WithMessage(ctx, ctxmeta.Message{Topic: "lmnh", Partition: 1, Offset: 9})

	log.Warnf(ctx, "MESSAGE ERROR: %s", "Missing at key.")

	entries := logs.All()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "MESSAGE ERROR: Missing at key.", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "run-1", fields["run_id"])
	assert.Equal(t, "lmnh", fields["topic"])
	assert.EqualValues(t, 1, fields["partition"])
	assert.EqualValues(t, 9, fields["offset"])
}

func TestZapLogger_NoContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.NewFromZap(zap.New(core))

	log.Infof(context.Background(), "message received %v", map[string]any{"site": "2"})
	log.Errorf(context.Background(), "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].Context)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestZapLogger_TraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.NewFromZap(zap.New(core))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "interaction.handle")
	defer span.End()
	ctx = ctxmeta.WithRequestID(ctx, "req-7")

	log.Infof(ctx, "rating saved site=%d val=%d", 2, 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.Equal(t, "req-7", fields["request_id"])
}

func TestContextFields_Empty(t *testing.T) {
	assert.Empty(t, logger.ContextFields(context.Background()))
}
