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

// ConsumerConfig configures a [Consumer]. Group is immutable after creation.
type ConsumerConfig struct {
	Group string `config:"group"`

	// Codec decodes payloads read back from the store. Defaults to
	// [MsgpackCodec] if nil.
	Codec Codec `config:"-"`
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.Codec == nil {
		c.Codec = MsgpackCodec{}
	}
	return c
}

const defaultMaxMessages = 100

// Consumer reads uncommitted messages from partition logs and tracks a
// commit offset per (group, topic, partition) in the shared offset table.
type Consumer struct {
	store  Store
	codec  Codec
	group  string
	tracer trace.Tracer
	log    *slog.Logger
	m      *metricsRecorder

	mu             sync.Mutex
	offsetsEnsured bool
	knownRows      map[topicPartition]struct{}
}

// NewConsumer builds a [Consumer] for cfg.Group over store.
func NewConsumer(store Store, cfg ConsumerConfig) *Consumer {
	cfg = cfg.withDefaults()

	m, err := newMetricsRecorder()
	if err != nil {
		m = nil
	}

	return &Consumer{
		store:     store,
		codec:     cfg.Codec,
		group:     cfg.Group,
		tracer:    tracer(),
		log:       logger(),
		m:         m,
		knownRows: make(map[topicPartition]struct{}),
	}
}

// Group returns the consumer group this consumer is bound to.
func (c *Consumer) Group() string {
	return c.group
}

func (c *Consumer) ensureOffsetTable(ctx context.Context) error {
	c.mu.Lock()
	if c.offsetsEnsured {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	_, err := c.store.Execute(ctx, Statement{
		SQL: `CREATE TABLE IF NOT EXISTS ` + offsetTableName + ` (
			consumer_group VARCHAR NOT NULL,
			topic          VARCHAR NOT NULL,
			partition      INTEGER NOT NULL,
			commit_offset  INTEGER NOT NULL,
			updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (consumer_group, topic, partition)
		)`,
	})
	if err != nil {
		return fmt.Errorf("klite: ensure offset table: %w", err)
	}

	c.mu.Lock()
	c.offsetsEnsured = true
	c.mu.Unlock()
	return nil
}

// GetLastOffset returns the committed offset for (topic, partition) under
// this consumer's group, or -1 if no commit has been recorded yet (offsets
// start at 1, so -1 means "fetch from the beginning").
func (c *Consumer) GetLastOffset(ctx context.Context, topic string, partition int) (int64, error) {
	if err := c.ensureOffsetTable(ctx); err != nil {
		return 0, err
	}

	rows, err := c.store.Query(ctx, Statement{
		SQL:  `SELECT commit_offset FROM ` + offsetTableName + ` WHERE consumer_group = ? AND topic = ? AND partition = ?`,
		Args: []any{c.group, topic, partition},
	})
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		return -1, rows.Err()
	}

	var offset int64
	if err := rows.Scan(&offset); err != nil {
		return 0, err
	}
	return offset, nil
}

// Fetch reads up to maxMessages messages from (topic, partition) with an
// offset strictly greater than this group's committed offset, ordered
// ascending. A missing partition table is treated as an empty stream, not
// an error (spec: a topic with no produced messages yet is valid).
func (c *Consumer) Fetch(ctx context.Context, topic string, partition int, maxMessages int) ([]Message, error) {
	ctx, span := c.tracer.Start(ctx, "klite.fetch")
	defer span.End()

	if maxMessages <= 0 {
		maxMessages = defaultMaxMessages
	}

	last, err := c.GetLastOffset(ctx, topic, partition)
	if err != nil {
		return nil, err
	}

	table, err := tableName(topic, partition)
	if err != nil {
		return nil, err
	}

	rows, err := c.store.Query(ctx, Statement{
		SQL:  fmt.Sprintf("SELECT id, data, created FROM %s WHERE id > ? ORDER BY id ASC LIMIT ?", table),
		Args: []any{last, maxMessages},
	})
	if err != nil {
		if IsNoSuchTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var (
			offset  int64
			data    []byte
			created time.Time
		)
		if err := rows.Scan(&offset, &data, &created); err != nil {
			return nil, err
		}

		payload, err := decodeAny(c.codec, data)
		if err != nil {
			return nil, fmt.Errorf("klite: decode message at offset %d: %w", offset, err)
		}

		messages = append(messages, Message{
			Offset:  offset,
			Data:    payload,
			Created: created,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// Commit records that every message up to and including offset has been
// processed by this group for (topic, partition). The stored value is
// clamped to never regress: commit_offset = MAX(existing, offset).
//
// Commit returns the value actually stored, which may differ from offset if
// a later commit already advanced past it.
func (c *Consumer) Commit(ctx context.Context, topic string, partition int, offset int64) (int64, error) {
	ctx, span := c.tracer.Start(ctx, "klite.commit")
	defer span.End()

	if err := c.ensureOffsetTable(ctx); err != nil {
		return 0, err
	}

	tp := topicPartition{topic, partition}

	c.mu.Lock()
	_, known := c.knownRows[tp]
	c.mu.Unlock()

	if !known {
		_, err := c.store.Execute(ctx, Statement{
			SQL:  `INSERT INTO ` + offsetTableName + ` (consumer_group, topic, partition, commit_offset) VALUES (?, ?, ?, ?)`,
			Args: []any{c.group, topic, partition, offset},
		})
		if err == nil {
			c.mu.Lock()
			c.knownRows[tp] = struct{}{}
			c.mu.Unlock()
			c.m.recordMessagesCommitted(ctx, c.group, topic, partition, 1)
			return offset, nil
		}
		// Race: a concurrent commit for this (group, topic, partition)
		// inserted the row first. Fall back to the clamped update below.
	}

	_, err := c.store.Execute(ctx, Statement{
		SQL:  `UPDATE ` + offsetTableName + ` SET commit_offset = MAX(commit_offset, ?), updated_at = CURRENT_TIMESTAMP WHERE consumer_group = ? AND topic = ? AND partition = ?`,
		Args: []any{offset, c.group, topic, partition},
	})
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.knownRows[tp] = struct{}{}
	c.mu.Unlock()

	stored, err := c.GetLastOffset(ctx, topic, partition)
	if err != nil {
		return 0, err
	}
	c.m.recordMessagesCommitted(ctx, c.group, topic, partition, 1)
	return stored, nil
}
