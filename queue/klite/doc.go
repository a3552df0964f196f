// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package klite implements an embedded, SQL-backed message queue.
//
// Unlike [github.com/z5labs/humus/queue/kafka], which talks to a real Kafka
// broker, klite stores topic partitions as tables in any SQL engine that
// offers ordered auto-incrementing row ids and atomic batched writes
// (SQLite-class engines). It provides the same three roles as a Kafka-style
// queue:
//
//   - [Producer] coalesces concurrent [Producer.Send] calls into a single
//     batched insert per (topic, partition) and resolves each caller with
//     the offset its message was assigned.
//   - [Consumer] tracks a committed offset per (group, topic, partition) and
//     serves ordered fetches of everything after it.
//   - [Worker] runs one pump per (topic, group) assignment that periodically
//     ships each configured partition's pending batch to an HTTP sink,
//     committing only after a successful
//     delivery (at-least-once semantics).
//
// A [Worker] implements [github.com/z5labs/humus/queue.Runtime], so it can
// be hosted the same way [github.com/z5labs/humus/queue/kafka] is, via
// [github.com/z5labs/humus/queue.Builder] and [github.com/z5labs/humus/queue.Run].
package klite
