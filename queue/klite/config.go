// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"github.com/z5labs/humus"
)

// GroupSpec configures one consumer group's assignment to a topic: which
// partitions to read, where to ship batches, and how often to run.
type GroupSpec struct {
	Partitions []int  `config:"partitions"`
	Endpoint   string `config:"endpoint"`
	BatchSize  int    `config:"batch_size"`
	Interval   string `config:"interval"`
}

// TopicSpec configures the consumer groups subscribed to a topic.
type TopicSpec struct {
	ConsumerGroups map[string]GroupSpec `config:"consumer_groups"`
}

// WorkerConfig is the dispatcher worker's configuration surface: one entry
// per topic, each with its own set of named consumer groups.
type WorkerConfig struct {
	Topics map[string]TopicSpec `config:"topics"`
}

// Config is the base configuration type for klite-backed queue
// applications. It embeds [humus.Config] (OpenTelemetry defaults) and adds
// the SQL data source name the [Store] connects to, plus the dispatcher's
// [WorkerConfig], mirroring how [github.com/z5labs/humus/queue.Config]
// embeds humus.Config for the Kafka-backed worker.
type Config struct {
	humus.Config `config:",squash"`

	DSN    string       `config:"dsn"`
	Worker WorkerConfig `config:"worker"`
}
