//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup - свежие топик и группа на каждый тест, чтобы оффсеты не пересекались.
func UniqueTopicAndGroup(base string) (topic, group string) {
	topic = base + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	return topic, topic + "-group"
}

// EnsureTopic - создаёт топик с одной партицией (существующий - не ошибка)
// и ждёт, пока он появится в метаданных. broker: "host:port" или "PLAINTEXT://host:port".
func EnsureTopic(ctx context.Context, broker, topic string) error {
	client := &kafka.Client{Addr: kafka.TCP(stripScheme(broker)), Timeout: 10 * time.Second}

	resp, err := client.CreateTopics(ctx, &kafka.CreateTopicsRequest{
		Topics: []kafka.TopicConfig{{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}},
	})
	if err != nil {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	if tErr := resp.Errors[topic]; tErr != nil && !errors.Is(tErr, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, tErr)
	}

	return waitTopicReady(ctx, client, topic)
}

// Produce - публикует payload-ы по одному сообщению, дожидаясь подтверждения всех реплик.
func Produce(ctx context.Context, brokers []string, topic string, payloads ...[]byte) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(payloads))
	for _, p := range payloads {
		msgs = append(msgs, kafka.Message{Value: p})
	}
	return w.WriteMessages(ctx, msgs...)
}

func stripScheme(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if u, err := url.Parse(first); err == nil && u.Host != "" {
		return u.Host
	}
	return first
}

func waitTopicReady(ctx context.Context, client *kafka.Client, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var lastErr error
	for {
		md, err := client.Metadata(ctx, &kafka.MetadataRequest{Topics: []string{topic}})
		switch {
		case err != nil:
			lastErr = err
		case len(md.Topics) == 1 && md.Topics[0].Error == nil && len(md.Topics[0].Partitions) > 0:
			return nil
		case len(md.Topics) == 1 && md.Topics[0].Error != nil:
			lastErr = md.Topics[0].Error
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-ticker.C:
		}
	}
}
