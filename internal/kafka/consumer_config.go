package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Протоколы безопасности в терминах librdkafka (security.protocol).
const (
	ProtocolPlaintext     = "PLAINTEXT"
	ProtocolSSL           = "SSL"
	ProtocolSASLPlaintext = "SASL_PLAINTEXT"
	ProtocolSASLSSL       = "SASL_SSL"
)

// SASL-механизмы.
const (
	MechanismPlain       = "PLAIN"
	MechanismScramSHA256 = "SCRAM-SHA-256"
	MechanismScramSHA512 = "SCRAM-SHA-512"
)

const (
	defaultPollTimeout    = 1 * time.Second
	defaultProcessTimeout = 5 * time.Second
	defaultDialTimeout    = 10 * time.Second
)

// ConsumerConfig - параметры подключения и цикла чтения.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first | last

	// Limit - сколько полученных сообщений обработать до выхода; < 0 - без ограничения.
	Limit          int
	PollTimeout    time.Duration
	ProcessTimeout time.Duration

	SecurityProtocol string
	SASLMechanism    string
	Username         string
	Password         string
}

// ReaderConfig - конфигурация kafka.Reader с ручным коммитом оффсетов (без Dialer).
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

// Dialer - TLS и SASL по SecurityProtocol. Для PLAINTEXT возвращает (nil, nil):
// kafka.Reader тогда использует свой dialer по умолчанию.
func (c *ConsumerConfig) Dialer() (*kafka.Dialer, error) {
	protocol := strings.ToUpper(strings.TrimSpace(c.SecurityProtocol))
	if protocol == "" {
		protocol = ProtocolPlaintext
	}

	dialer := &kafka.Dialer{
		Timeout:   defaultDialTimeout,
		DualStack: true,
	}

	switch protocol {
	case ProtocolPlaintext:
		return nil, nil
	case ProtocolSSL:
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	case ProtocolSASLPlaintext, ProtocolSASLSSL:
		mechanism, err := c.saslMechanism()
		if err != nil {
			return nil, err
		}
		dialer.SASLMechanism = mechanism
		if protocol == ProtocolSASLSSL {
			dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	default:
		return nil, fmt.Errorf("unsupported security protocol: %q", c.SecurityProtocol)
	}
	return dialer, nil
}

func (c *ConsumerConfig) saslMechanism() (sasl.Mechanism, error) {
	if c.Username == "" {
		return nil, fmt.Errorf("sasl: username is required")
	}

	switch strings.ToUpper(strings.TrimSpace(c.SASLMechanism)) {
	case "", MechanismPlain:
		return plain.Mechanism{Username: c.Username, Password: c.Password}, nil
	case MechanismScramSHA256:
		return scram.Mechanism(scram.SHA256, c.Username, c.Password)
	case MechanismScramSHA512:
		return scram.Mechanism(scram.SHA512, c.Username, c.Password)
	default:
		return nil, fmt.Errorf("unsupported sasl mechanism: %q", c.SASLMechanism)
	}
}

func (c *ConsumerConfig) pollTimeout() time.Duration {
	if c.PollTimeout <= 0 {
		return defaultPollTimeout
	}
	return c.PollTimeout
}

func (c *ConsumerConfig) processTimeout() time.Duration {
	if c.ProcessTimeout <= 0 {
		return defaultProcessTimeout
	}
	return c.ProcessTimeout
}
