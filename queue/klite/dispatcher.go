// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoTopics is returned by [NewWorker] when [WorkerConfig] has no topics
// configured; it is a fatal configuration error per spec §4.4.
var ErrNoTopics = errors.New("klite: worker config has no topics")

// sinkMessage is one message in the JSON body posted to a dispatcher sink.
type sinkMessage struct {
	Offset  int64     `json:"offset"`
	Data    any       `json:"data"`
	Created time.Time `json:"created"`
}

// sinkRequest is the JSON body posted to a dispatcher sink.
type sinkRequest struct {
	Topic     string        `json:"topic"`
	Partition int           `json:"partition"`
	Messages  []sinkMessage `json:"messages"`
}

// assignment is one (topic, group) pump: the group's spec plus its parsed
// interval.
type assignment struct {
	topic    string
	group    string
	spec     GroupSpec
	interval time.Duration
}

// WorkerOption configures a [Worker] built by [NewWorker].
type WorkerOption func(*Worker)

// HTTPClient overrides the [Worker]'s HTTP client. By default a client
// wrapping [otelhttp.NewTransport] is used, shared across every pump.
func HTTPClient(client *http.Client) WorkerOption {
	return func(w *Worker) {
		w.httpClient = client
	}
}

// WithCodec overrides the [Codec] used by the consumers each pump creates.
// Defaults to [MsgpackCodec].
func WithCodec(codec Codec) WorkerOption {
	return func(w *Worker) {
		w.codec = codec
	}
}

// Worker is the dispatcher: it orchestrates one pump per (topic, consumer
// group) assignment in [WorkerConfig], fetching pending batches, POSTing
// them to the group's configured sink endpoint, and committing offsets only
// on a successful (2xx) response.
//
// Worker implements [github.com/z5labs/humus/queue.Runtime] via ProcessQueue,
// so it can be hosted with [github.com/z5labs/humus/queue.Builder] the same
// way [github.com/z5labs/humus/queue/kafka] is.
type Worker struct {
	store       Store
	codec       Codec
	httpClient  *http.Client
	assignments []assignment
	tracer      trace.Tracer
	log         *slog.Logger
	m           *metricsRecorder
}

// NewWorker validates cfg and builds a [Worker] over store. Topics with no
// consumerGroups entries are skipped with a warning; a completely empty
// Topics map is a fatal [ErrNoTopics]. Malformed interval strings are a
// fatal configuration error.
func NewWorker(store Store, cfg WorkerConfig, opts ...WorkerOption) (*Worker, error) {
	if len(cfg.Topics) == 0 {
		return nil, ErrNoTopics
	}

	m, err := newMetricsRecorder()
	if err != nil {
		m = nil
	}

	w := &Worker{
		store: store,
		codec: MsgpackCodec{},
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: tracer(),
		log:    logger(),
		m:      m,
	}
	for _, opt := range opts {
		opt(w)
	}

	for topic, spec := range cfg.Topics {
		if len(spec.ConsumerGroups) == 0 {
			w.log.Warn("klite: topic has no consumer groups, skipping", TopicAttr(topic))
			continue
		}

		for group, groupSpec := range spec.ConsumerGroups {
			interval, err := parseInterval(groupSpec.Interval)
			if err != nil {
				return nil, fmt.Errorf("klite: topic %q group %q: %w", topic, group, err)
			}

			w.assignments = append(w.assignments, assignment{
				topic:    topic,
				group:    group,
				spec:     groupSpec,
				interval: interval,
			})
		}
	}

	return w, nil
}

// ProcessQueue launches one pump per configured (topic, group) assignment
// and blocks until every pump exits, which happens only once ctx is
// canceled. It implements [github.com/z5labs/humus/queue.Runtime].
func (w *Worker) ProcessQueue(ctx context.Context) error {
	p := pool.New().WithContext(ctx)

	for _, a := range w.assignments {
		a := a
		p.Go(func(ctx context.Context) error {
			return w.pump(ctx, a)
		})
	}

	w.log.InfoContext(ctx, "klite dispatcher started", slog.Int("pumps", len(w.assignments)))
	return p.Wait()
}

// pump is the per-(group, topic) loop: each cycle it processes every
// configured partition concurrently, waits for all of them, then sleeps the
// configured interval (the same backoff whether or not the cycle hit an
// error) before checking ctx again.
func (w *Worker) pump(ctx context.Context, a assignment) error {
	consumer := NewConsumer(w.store, ConsumerConfig{Group: a.group, Codec: w.codec})

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		partitions := pool.New().WithContext(ctx)
		for _, partition := range a.spec.Partitions {
			partition := partition
			partitions.Go(func(ctx context.Context) error {
				w.processPartition(ctx, consumer, a.topic, partition, a.spec, a.interval)
				return nil
			})
		}
		_ = partitions.Wait()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.interval):
		}
	}
}

// processPartition fetches up to batchSize pending messages for (topic,
// partition) under consumer's group, POSTs them to the sink, and commits
// only on a 2xx response. Any fetch error other than a missing table, any
// non-2xx response, and any transport failure are logged and leave the
// offset uncommitted so the batch is retried next cycle.
func (w *Worker) processPartition(ctx context.Context, consumer *Consumer, topic string, partition int, spec GroupSpec, interval time.Duration) {
	ctx, span := w.tracer.Start(ctx, "klite.dispatch")
	defer span.End()

	messages, err := consumer.Fetch(ctx, topic, partition, spec.BatchSize)
	if err != nil {
		w.log.ErrorContext(ctx, "klite: fetch failed",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition), slog.Any("error", err))
		return
	}
	if len(messages) == 0 {
		return
	}

	body := sinkRequest{
		Topic:     topic,
		Partition: partition,
		Messages:  make([]sinkMessage, len(messages)),
	}
	for i, msg := range messages {
		body.Messages[i] = sinkMessage{Offset: msg.Offset, Data: msg.Data, Created: msg.Created}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		w.log.ErrorContext(ctx, "klite: marshal sink request failed",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition), slog.Any("error", err))
		return
	}

	// Detached from ctx's cancellation: an in-flight delivery is allowed to
	// complete even if the worker is shutting down (spec: no mid-HTTP
	// cancellation), bounded only by the per-request timeout.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout(interval))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, spec.Endpoint, bytes.NewReader(payload))
	if err != nil {
		w.log.ErrorContext(ctx, "klite: build sink request failed",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition), slog.Any("error", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Klite-Delivery-Id", uuid.NewString())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.log.ErrorContext(ctx, "klite: sink request failed",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition), slog.Any("error", err))
		w.m.recordDeliveryFailure(ctx, consumer.Group(), topic, partition, "transport")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		w.log.ErrorContext(ctx, "klite: sink rejected batch",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition),
			slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		w.m.recordDeliveryFailure(ctx, consumer.Group(), topic, partition, "non_2xx")
		return
	}

	last := messages[len(messages)-1]
	if _, err := consumer.Commit(ctx, topic, partition, last.Offset); err != nil {
		w.log.ErrorContext(ctx, "klite: commit failed",
			GroupAttr(consumer.Group()), TopicAttr(topic), PartitionAttr(partition), OffsetAttr(last.Offset), slog.Any("error", err))
		return
	}

	w.m.recordBatchDelivered(ctx, consumer.Group(), topic, partition)
}

// deliveryTimeout bounds each sink POST to the pump's interval, per spec
// §9's "a reasonable default (e.g., <= interval)" guidance; a zero interval
// gets a 30 second timeout instead.
func deliveryTimeout(interval time.Duration) time.Duration {
	if interval <= 0 {
		return 30 * time.Second
	}
	return interval
}
