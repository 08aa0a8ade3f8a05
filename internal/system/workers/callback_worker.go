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

package workers

import (
	"context"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// CallbackQueue hands work produced on background goroutines back to the host
// thread. Producers never block; the host drains the queue once per tick.
type CallbackQueue struct {
	queue chan func()
}

func NewCallbackQueue(size int) *CallbackQueue {
	if size <= 0 {
		size = constants.DefaultCallbackQueueSize
	}
	return &CallbackQueue{queue: make(chan func(), size)}
}

// Enqueue returns false and drops fn when the queue is full.
func (q *CallbackQueue) Enqueue(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case q.queue <- fn:
		return true
	default:
		log.GetLogger().Warn("Callback queue is full, dropping callback", log.Int("capacity", cap(q.queue)))
		return false
	}
}

// Drain runs every callback queued before the call on the calling goroutine
// and returns how many ran. A panicking callback is logged and skipped.
func (q *CallbackQueue) Drain() int {
	n := len(q.queue)
	ran := 0
	for i := 0; i < n; i++ {
		select {
		case fn := <-q.queue:
			runSafely(fn)
			ran++
		default:
			return ran
		}
	}
	return ran
}

func (q *CallbackQueue) Len() int {
	return len(q.queue)
}

// Run drains the queue every interval until ctx is done, for hosts that have
// no frame loop of their own.
func (q *CallbackQueue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			q.Drain()
			return
		case <-ticker.C:
			q.Drain()
		}
	}
}

func runSafely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.GetLogger().Error("Callback panicked", log.Any("panic", rec))
		}
	}()
	fn()
}
