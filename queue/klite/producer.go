// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ProducerConfig configures a [Producer].
type ProducerConfig struct {
	// BatchDelay is how long a pending batch waits for more sends before
	// flushing. Zero means "flush on the next scheduler tick" (a minimal
	// positive delay is substituted so a timer can still be scheduled).
	BatchDelay time.Duration `config:"batch_delay"`

	// Codec encodes payloads before they are persisted. Defaults to
	// [MsgpackCodec] if nil.
	Codec Codec `config:"-"`
}

func (c ProducerConfig) withDefaults() ProducerConfig {
	if c.Codec == nil {
		c.Codec = MsgpackCodec{}
	}
	return c
}

// waiter is resolved exactly once by flushBatch with either an offset or an
// error, matching spec §4.2's "one per send call" pending-batch waiter list.
type waiter struct {
	done chan struct{}
	off  int64
	err  error
}

func newWaiter() *waiter {
	return &waiter{done: make(chan struct{})}
}

func (w *waiter) resolve(off int64) {
	w.off = off
	close(w.done)
}

func (w *waiter) reject(err error) {
	w.err = err
	close(w.done)
}

func (w *waiter) wait(ctx context.Context) (int64, error) {
	select {
	case <-w.done:
		return w.off, w.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// pendingBatch buffers undrained payloads for one (topic, partition) plus a
// matched waiter per payload and the timer that will flush it. Owned
// exclusively by the [Producer] that created it; never shared across
// producer instances.
type pendingBatch struct {
	payloads [][]byte
	waiters  []*waiter
	timer    *time.Timer
}

// Producer is an auto-batching writer for a single [Store]. Concurrent
// [Producer.Send] calls to the same (topic, partition) are coalesced into
// one atomic multi-row insert; each caller still gets back the offset its
// own message was assigned.
type Producer struct {
	store  Store
	codec  Codec
	delay  time.Duration
	tracer trace.Tracer
	log    *slog.Logger
	m      *metricsRecorder

	mu      sync.Mutex
	ensured map[topicPartition]struct{}
	batches map[topicPartition]*pendingBatch
}

// NewProducer builds a [Producer] over store.
func NewProducer(store Store, cfg ProducerConfig) *Producer {
	cfg = cfg.withDefaults()
	delay := cfg.BatchDelay
	if delay <= 0 {
		delay = time.Millisecond
	}

	m, err := newMetricsRecorder()
	if err != nil {
		m = nil
	}

	return &Producer{
		store:   store,
		codec:   cfg.Codec,
		delay:   delay,
		tracer:  tracer(),
		log:     logger(),
		m:       m,
		ensured: make(map[topicPartition]struct{}),
		batches: make(map[topicPartition]*pendingBatch),
	}
}

// ensureTable issues CREATE TABLE IF NOT EXISTS the first time (topic,
// partition) is seen and memoizes the pair so later sends skip the DDL
// round-trip.
func (p *Producer) ensureTable(ctx context.Context, tp topicPartition) error {
	p.mu.Lock()
	_, ok := p.ensured[tp]
	p.mu.Unlock()
	if ok {
		return nil
	}

	table, err := tableName(tp.topic, tp.partition)
	if err != nil {
		return err
	}

	_, err = p.store.Execute(ctx, Statement{
		SQL: fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				data BLOB NOT NULL,
				created DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			table,
		),
	})
	if err != nil {
		return fmt.Errorf("klite: ensure table for %s: %w", tp, err)
	}

	p.mu.Lock()
	p.ensured[tp] = struct{}{}
	p.mu.Unlock()
	return nil
}

// Send encodes payload and appends it to the pending batch for (topic,
// partition), resetting that batch's flush timer. It blocks until the batch
// flushes (successfully or not) and returns the offset this specific
// payload was assigned.
func (p *Producer) Send(ctx context.Context, topic string, partition int, payload any) (int64, error) {
	ctx, span := p.tracer.Start(ctx, "klite.send")
	defer span.End()

	if err := p.ensureTable(ctx, topicPartition{topic, partition}); err != nil {
		return 0, err
	}

	data, err := p.codec.Encode(payload)
	if err != nil {
		return 0, fmt.Errorf("klite: encode payload: %w", err)
	}

	w := newWaiter()
	tp := topicPartition{topic, partition}

	p.mu.Lock()
	b, ok := p.batches[tp]
	if !ok {
		b = &pendingBatch{}
		p.batches[tp] = b
	}
	b.payloads = append(b.payloads, data)
	b.waiters = append(b.waiters, w)
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(p.delay, func() {
		p.flushBatch(context.WithoutCancel(ctx), tp)
	})
	p.mu.Unlock()

	return w.wait(ctx)
}

// flushBatch atomically detaches the pending batch for tp and issues its
// multi-row insert. Safe to call concurrently with a Send that rebuilds the
// map entry for tp: the detached batch is unaffected by the new one.
func (p *Producer) flushBatch(ctx context.Context, tp topicPartition) {
	p.mu.Lock()
	b, ok := p.batches[tp]
	if ok {
		delete(p.batches, tp)
	}
	p.mu.Unlock()
	if !ok || len(b.payloads) == 0 {
		return
	}

	ctx, span := p.tracer.Start(ctx, "klite.flush")
	defer span.End()

	table, err := tableName(tp.topic, tp.partition)
	if err != nil {
		for _, w := range b.waiters {
			w.reject(err)
		}
		return
	}

	stmts := make([]Statement, len(b.payloads))
	for i, data := range b.payloads {
		stmts[i] = Statement{
			SQL:  fmt.Sprintf("INSERT INTO %s (data) VALUES (?)", table),
			Args: []any{data},
		}
	}

	results, err := p.store.Batch(ctx, stmts)
	if err != nil {
		p.log.ErrorContext(ctx, "klite: batch insert failed",
			TopicAttr(tp.topic), PartitionAttr(tp.partition), slog.Any("error", err))
		for _, w := range b.waiters {
			w.reject(err)
		}
		return
	}

	for i, w := range b.waiters {
		w.resolve(results[i].LastInsertID)
	}
	p.m.recordMessagesSent(ctx, tp.topic, tp.partition, len(b.waiters))
}

// SendBatch bypasses auto-batching: it issues the multi-insert immediately
// and returns the first assigned offset and the number of messages written.
// The i-th payload receives offset firstOffset+i. Does not disturb any
// in-flight auto-batch for the same (topic, partition).
func (p *Producer) SendBatch(ctx context.Context, topic string, partition int, payloads []any) (firstOffset int64, count int, err error) {
	ctx, span := p.tracer.Start(ctx, "klite.send_batch")
	defer span.End()

	tp := topicPartition{topic, partition}
	if err := p.ensureTable(ctx, tp); err != nil {
		return 0, 0, err
	}

	table, err := tableName(topic, partition)
	if err != nil {
		return 0, 0, err
	}

	stmts := make([]Statement, len(payloads))
	for i, payload := range payloads {
		data, err := p.codec.Encode(payload)
		if err != nil {
			return 0, 0, fmt.Errorf("klite: encode payload %d: %w", i, err)
		}
		stmts[i] = Statement{
			SQL:  fmt.Sprintf("INSERT INTO %s (data) VALUES (?)", table),
			Args: []any{data},
		}
	}

	results, err := p.store.Batch(ctx, stmts)
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}

	p.m.recordMessagesSent(ctx, topic, partition, len(results))
	return results[0].LastInsertID, len(results), nil
}

// Flush drains every pending batch across all (topic, partition) pairs and
// waits for each buffered waiter to settle. Intended for graceful shutdown.
func (p *Producer) Flush(ctx context.Context) error {
	p.mu.Lock()
	tps := make([]topicPartition, 0, len(p.batches))
	for tp, b := range p.batches {
		if b.timer != nil {
			b.timer.Stop()
		}
		tps = append(tps, tp)
	}
	p.mu.Unlock()

	for _, tp := range tps {
		p.flushBatch(ctx, tp)
	}
	return nil
}
