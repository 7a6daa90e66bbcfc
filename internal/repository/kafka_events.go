package repository

import (
	"context"
	"time"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	"MoneyRoutine/internal/service/metrics"
	pkgkafka "MoneyRoutine/pkg/kafka"
)

const sinkEvents = "kafka_events"

// messageWriter is the part of pkgkafka.Producer the publisher needs.
type messageWriter interface {
	Publish(ctx context.Context, key []byte, value any) error
	Close() error
}

// KafkaEvents publishes content events keyed by entity and key, so every
// change to one record lands on the same partition.
type KafkaEvents struct {
	w messageWriter
}

func NewKafkaEvents(p *pkgkafka.Producer) *KafkaEvents {
	return &KafkaEvents{w: p}
}

func (k *KafkaEvents) Publish(ctx context.Context, ev models.ContentEvent) error {
	start := time.Now()
	err := k.w.Publish(ctx, []byte(ev.Entity+":"+ev.Key), ev)
	metrics.SinkLatency.WithLabelValues(sinkEvents).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SinkErrors.WithLabelValues(sinkEvents).Inc()
	}
	return err
}

func (k *KafkaEvents) Close() error {
	return k.w.Close()
}

// NopEvents drops every event; used when events are disabled.
type NopEvents struct{}

func (NopEvents) Publish(context.Context, models.ContentEvent) error { return nil }
func (NopEvents) Close() error                                      { return nil }

var (
	_ domrepo.EventPublisher = (*KafkaEvents)(nil)
	_ domrepo.EventPublisher = NopEvents{}
)
