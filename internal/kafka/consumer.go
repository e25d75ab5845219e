package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/ctxmeta"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader - минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler - зависимость на бизнес-логику: разбор, валидация, запись или отказ.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) (domain.Outcome, error)
}

// Consumer - обёртка над kafka.Reader + зависимостями (usecase, logger).
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	limit          int
	pollTimeout    time.Duration
	processTimeout time.Duration
	closeOnce      sync.Once
}

// NewConsumer - конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) (*Consumer, error) {
	rc := cfg.ReaderConfig()
	dialer, err := cfg.Dialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		rc.Dialer = dialer
	}

	return &Consumer{
		reader:         kafka.NewReader(rc),
		handler:        handler,
		log:            log,
		limit:          cfg.Limit,
		pollTimeout:    cfg.pollTimeout(),
		processTimeout: cfg.processTimeout(),
	}, nil
}

// Run - основной цикл:
// 1) ждём сообщение не дольше pollTimeout (пустой опрос не считается);
// 2) обрабатываем: запись или отказ → CommitMessages;
// 3) фатальная ошибка (БД, брокер, не-JSON) → выходим с ошибкой без коммита;
// 4) после limit полученных сообщений выходим с nil.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v limit=%d", rc.Topic, rc.GroupID, rc.Brokers, c.limit)

	if c.limit == 0 {
		c.log.Infof(ctx, "message limit is 0, nothing to consume")
		return nil
	}

	received := 0
	for {
		msg, ok, err := c.poll(ctx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		received++
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		msgCtx := ctxmeta.WithMessage(ctx, ctxmeta.Message{
			Topic:     msg.Topic,
			Partition: msg.Partition,
			Offset:    msg.Offset,
		})
		if err := c.handleMessage(msgCtx, rc.Topic, &msg); err != nil {
			return err
		}
		c.commitSafely(msgCtx, &msg)

		if c.limit > 0 && received >= c.limit {
			c.log.Infof(ctx, "message limit reached received=%d", received)
			return nil
		}
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
