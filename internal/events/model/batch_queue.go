/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"bytes"
	"strings"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
)

// BatchQueue is the FIFO of sealed event queues waiting for delivery.
type BatchQueue struct {
	batches []*EventQueue
}

func NewBatchQueue() *BatchQueue {
	return &BatchQueue{}
}

// ParseBatchQueue hydrates the FIFO from a JSON array of arrays. Elements that
// are not arrays, or hold no valid event, are dropped.
func ParseBatchQueue(raw string) *BatchQueue {
	bq := NewBatchQueue()
	if strings.TrimSpace(raw) == "" {
		return bq
	}
	outer, err := decodeArray([]byte(raw))
	if err != nil {
		log.GetLogger().Warn("Stored batches are corrupt, starting empty",
			log.String("reason", utils.DescribeDecodeError(err, "stored batches")))
		return bq
	}
	for _, inner := range outer {
		items, err := decodeArray(inner)
		if err != nil {
			continue
		}
		events := parseEvents(items)
		if len(events) == 0 {
			continue
		}
		bq.batches = append(bq.batches, &EventQueue{events: events, sealed: true})
	}
	return bq
}

// Enqueue seals q and appends it to the tail.
func (bq *BatchQueue) Enqueue(q *EventQueue) {
	q.Seal()
	bq.batches = append(bq.batches, q)
}

// Peek returns the oldest batch, or nil when empty.
func (bq *BatchQueue) Peek() *EventQueue {
	if len(bq.batches) == 0 {
		return nil
	}
	return bq.batches[0]
}

// Dequeue removes and returns the oldest batch, or nil when empty.
func (bq *BatchQueue) Dequeue() *EventQueue {
	if len(bq.batches) == 0 {
		return nil
	}
	head := bq.batches[0]
	bq.batches[0] = nil
	bq.batches = bq.batches[1:]
	return head
}

func (bq *BatchQueue) Len() int {
	return len(bq.batches)
}

func (bq *BatchQueue) Serialize() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, q := range bq.batches {
		if i > 0 {
			buf.WriteByte(',')
		}
		q.writeJSON(&buf)
	}
	buf.WriteByte(']')
	return buf.String()
}
