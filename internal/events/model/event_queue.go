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
	"encoding/json"
	"strings"

	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
)

// ErrQueueSealed is returned when appending to a queue that became a batch.
var ErrQueueSealed = errors2.NewClientErrorWithoutCode(errors2.QUEUE_SEALED)

// EventQueue is an ordered list of events. It accepts appends until sealed.
type EventQueue struct {
	events []*Event
	sealed bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// ParseEventQueue hydrates a queue from a JSON array. Malformed entries are
// skipped; input that is not an array yields an empty queue.
func ParseEventQueue(raw string) *EventQueue {
	q := NewEventQueue()
	if strings.TrimSpace(raw) == "" {
		return q
	}
	items, err := decodeArray([]byte(raw))
	if err != nil {
		log.GetLogger().Warn("Stored event queue is corrupt, starting empty",
			log.String("reason", utils.DescribeDecodeError(err, "stored event queue")))
		return q
	}
	q.events = parseEvents(items)
	return q
}

func parseEvents(items []json.RawMessage) []*Event {
	var events []*Event
	for _, item := range items {
		if e := ParseEvent(item); e != nil {
			events = append(events, e)
		}
	}
	return events
}

func (q *EventQueue) Add(e *Event) error {
	if q.sealed {
		return ErrQueueSealed
	}
	q.events = append(q.events, e)
	return nil
}

// Seal freezes the queue.
func (q *EventQueue) Seal() {
	q.sealed = true
}

func (q *EventQueue) Sealed() bool {
	return q.sealed
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

func (q *EventQueue) Events() []*Event {
	return append([]*Event(nil), q.events...)
}

// Serialize renders the queue as a JSON array of events.
func (q *EventQueue) Serialize() string {
	var buf bytes.Buffer
	q.writeJSON(&buf)
	return buf.String()
}

func (q *EventQueue) writeJSON(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, e := range q.events {
		if i > 0 {
			buf.WriteByte(',')
		}
		e.writeJSON(buf)
	}
	buf.WriteByte(']')
}
