// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message is a single record read back from a partition log.
//
// Data has already been run through the configured [Codec]; it is never the
// raw encoded blob stored in the partition table.
type Message struct {
	Offset  int64
	Data    any
	Created time.Time
}

// topicPartition identifies a single partition log within a topic.
type topicPartition struct {
	topic     string
	partition int
}

func (tp topicPartition) String() string {
	return tp.topic + "/" + strconv.Itoa(tp.partition)
}

// tableName returns the quoted SQL identifier for a partition's table, per
// spec: "klite_<topic>_<partition>", always quoted because topic strings may
// contain characters (like hyphens) that are unsafe as bare identifiers.
func tableName(topic string, partition int) (string, error) {
	if strings.ContainsRune(topic, '`') {
		return "", fmt.Errorf("klite: topic %q contains a quote character", topic)
	}
	return "`klite_" + topic + "_" + strconv.Itoa(partition) + "`", nil
}

const offsetTableName = "`klite_consumer_offsets`"
