package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages handled without a fatal error",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages that stopped the pipeline",
		},
		[]string{"topic"},
	)
)

var (
	InteractionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_interaction_outcomes_total",
			Help: "Kiosk messages by outcome",
		},
		[]string{"outcome"}, // rejected|rating_saved|help_saved
	)
	InteractionRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_interaction_rejections_total",
			Help: "Rejected kiosk messages by failed field",
		},
		[]string{"field"}, // at|site|val|type
	)
)

var registerOnce sync.Once

// MustRegister - регистрация в глобальном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			InteractionOutcomes, InteractionRejections,
		)
	})
}
