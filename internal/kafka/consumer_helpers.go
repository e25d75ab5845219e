package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/lmnh_kiosk/pkg/metrics"
)

// poll - один опрос брокера с ограничением pollTimeout.
// (msg, true, nil) - сообщение получено; (_, false, nil) - за отведённое время ничего не пришло.
func (c *Consumer) poll(ctx context.Context) (kafka.Message, bool, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	msg, err := c.reader.FetchMessage(pollCtx)
	if err == nil {
		return msg, true, nil
	}
	// Родительский контекст отменён -> выходим
	if ctx.Err() != nil {
		return kafka.Message{}, false, ctx.Err()
	}
	// Истёк только таймаут опроса -> сообщения нет
	if errors.Is(err, context.DeadlineExceeded) {
		return kafka.Message{}, false, nil
	}
	return kafka.Message{}, false, fmt.Errorf("fetch message: %w", err)
}

// handleMessage обрабатывает одно сообщение; ошибка означает остановку конвейера.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	outcome, err := c.handler.HandleMessage(ctxTimeout, msg.Value)
	cancel()

	if err != nil {
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Errorf(ctx, "process failed offset=%d: %v", msg.Offset, err)
		return fmt.Errorf("process message offset=%d: %w", msg.Offset, err)
	}

	metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	metrics.InteractionOutcomes.WithLabelValues(outcome.String()).Inc()
	return nil
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}
