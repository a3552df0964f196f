// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import "log/slog"

// GroupAttr returns a slog attribute for the klite consumer group.
func GroupAttr(group string) slog.Attr {
	return slog.String("messaging.consumer.group.name", group)
}

// TopicAttr returns a slog attribute for the klite topic.
func TopicAttr(topic string) slog.Attr {
	return slog.String("messaging.destination.name", topic)
}

// PartitionAttr returns a slog attribute for the klite partition.
func PartitionAttr(partition int) slog.Attr {
	return slog.Int("messaging.destination.partition.id", partition)
}

// OffsetAttr returns a slog attribute for a klite message offset.
func OffsetAttr(offset int64) slog.Attr {
	return slog.Int64("messaging.klite.offset", offset)
}
