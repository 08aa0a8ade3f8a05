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
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestCallbackQueue_DrainRunsInOrder(t *testing.T) {
	q := NewCallbackQueue(4)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		assert.True(t, q.Enqueue(func() { order = append(order, i) }))
	}

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, q.Drain())
}

func TestCallbackQueue_FullQueueDrops(t *testing.T) {
	q := NewCallbackQueue(1)
	assert.True(t, q.Enqueue(func() {}))
	assert.False(t, q.Enqueue(func() {}))
	assert.False(t, q.Enqueue(nil))
	assert.Equal(t, 1, q.Len())
}

func TestCallbackQueue_PanicIsContained(t *testing.T) {
	q := NewCallbackQueue(2)
	ran := false
	q.Enqueue(func() { panic("bad callback") })
	q.Enqueue(func() { ran = true })

	assert.NotPanics(t, func() { q.Drain() })
	assert.True(t, ran)
}

func TestCallbackQueue_Run(t *testing.T) {
	q := NewCallbackQueue(8)
	var count int32
	q.Enqueue(func() { atomic.AddInt32(&count, 1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&count) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
