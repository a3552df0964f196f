// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metricsRecorder holds the OTel instruments shared across a [Producer],
// [Consumer], or [Worker].
type metricsRecorder struct {
	messagesSent      metric.Int64Counter
	messagesCommitted metric.Int64Counter
	batchesDelivered  metric.Int64Counter
	deliveryFailures  metric.Int64Counter
}

func newMetricsRecorder() (*metricsRecorder, error) {
	m := meter()

	messagesSent, err := m.Int64Counter(
		"klite.producer.messages.sent",
		metric.WithDescription("Total number of messages successfully appended to a partition"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	messagesCommitted, err := m.Int64Counter(
		"klite.consumer.messages.committed",
		metric.WithDescription("Total number of messages marked committed by a consumer group"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	batchesDelivered, err := m.Int64Counter(
		"klite.dispatcher.batches.delivered",
		metric.WithDescription("Total number of batches successfully delivered to a sink"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryFailures, err := m.Int64Counter(
		"klite.dispatcher.delivery.failures",
		metric.WithDescription("Total number of batch deliveries that failed or were rejected by the sink"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsRecorder{
		messagesSent:      messagesSent,
		messagesCommitted: messagesCommitted,
		batchesDelivered:  batchesDelivered,
		deliveryFailures:  deliveryFailures,
	}, nil
}

func (m *metricsRecorder) recordMessagesSent(ctx context.Context, topic string, partition int, count int) {
	if m == nil || m.messagesSent == nil || count == 0 {
		return
	}
	m.messagesSent.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("messaging.destination.name", topic),
		attribute.Int("messaging.destination.partition.id", partition),
	))
}

func (m *metricsRecorder) recordMessagesCommitted(ctx context.Context, group, topic string, partition int, count int) {
	if m == nil || m.messagesCommitted == nil || count == 0 {
		return
	}
	m.messagesCommitted.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("messaging.consumer.group.name", group),
		attribute.String("messaging.destination.name", topic),
		attribute.Int("messaging.destination.partition.id", partition),
	))
}

func (m *metricsRecorder) recordBatchDelivered(ctx context.Context, group, topic string, partition int) {
	if m == nil || m.batchesDelivered == nil {
		return
	}
	m.batchesDelivered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("messaging.consumer.group.name", group),
		attribute.String("messaging.destination.name", topic),
		attribute.Int("messaging.destination.partition.id", partition),
	))
}

func (m *metricsRecorder) recordDeliveryFailure(ctx context.Context, group, topic string, partition int, reason string) {
	if m == nil || m.deliveryFailures == nil {
		return
	}
	m.deliveryFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("messaging.consumer.group.name", group),
		attribute.String("messaging.destination.name", topic),
		attribute.Int("messaging.destination.partition.id", partition),
		attribute.String("klite.delivery.failure.reason", reason),
	))
}
