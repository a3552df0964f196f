// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite_test

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/z5labs/humus/queue/klite"
)

// This example produces three messages to a partition, commits the offset
// after the second, and shows a fresh fetch only returning the remainder.
func Example() {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		fmt.Println("open:", err)
		return
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	store := klite.NewStore(db)
	ctx := context.Background()

	producer := klite.NewProducer(store, klite.ProducerConfig{})
	for i := 1; i <= 3; i++ {
		off, err := producer.Send(ctx, "orders", 0, map[string]any{"order_id": i})
		if err != nil {
			fmt.Println("send:", err)
			return
		}
		fmt.Println("sent offset", off)
	}

	consumer := klite.NewConsumer(store, klite.ConsumerConfig{Group: "billing"})
	if _, err := consumer.Commit(ctx, "orders", 0, 2); err != nil {
		fmt.Println("commit:", err)
		return
	}

	messages, err := consumer.Fetch(ctx, "orders", 0, 10)
	if err != nil {
		fmt.Println("fetch:", err)
		return
	}
	for _, msg := range messages {
		fmt.Println("remaining offset", msg.Offset)
	}

	// Output:
	// sent offset 1
	// sent offset 2
	// sent offset 3
	// remaining offset 3
}
