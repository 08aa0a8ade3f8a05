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

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/events/model"
	"github.com/metriqus/metriqus-sdk-go/internal/events/store"
	rsmodel "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/backoff"
	sysContext "github.com/metriqus/metriqus-sdk-go/internal/system/context"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/metrics"
)

// BatchSenderInterface delivers one serialized batch and reports whether the
// collector accepted it.
type BatchSenderInterface interface {
	PostEventBatch(ctx context.Context, batchJSON string) bool
}

// SettingsSource supplies the tunables read on every seal decision.
type SettingsSource interface {
	Current() rsmodel.RemoteSettings
}

type EventQueueControllerInterface interface {
	AddEvent(e *model.Event, forceFlush bool)
	Flush()
	ProcessPending()
	Wait()
	Close()
	CurrentCount() int
	PendingCount() int
	IsFlushing() bool
}

// EventQueueController owns the live queue and the pending batches. At most
// one delivery loop runs at a time; it drains pending batches oldest first and
// removes a batch only after the collector accepted it.
type EventQueueController struct {
	store    store.EventQueueStoreInterface
	sender   BatchSenderInterface
	settings SettingsSource
	retrier  *backoff.Retrier
	now      func() time.Time
	sleep    backoff.Sleeper

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	current    *model.EventQueue
	pending    *model.BatchQueue
	lastFlush  time.Time
	isFlushing bool
	wg         sync.WaitGroup
}

type ControllerOption func(*EventQueueController)

// WithClock replaces time.Now for seal decisions.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *EventQueueController) { c.now = now }
}

func WithRetrier(r *backoff.Retrier) ControllerOption {
	return func(c *EventQueueController) { c.retrier = r }
}

// WithIntervalSleeper replaces the wait between consecutive batch sends.
func WithIntervalSleeper(s backoff.Sleeper) ControllerOption {
	return func(c *EventQueueController) { c.sleep = s }
}

// NewEventQueueController hydrates the live queue and pending batches from
// st. Missing or corrupt state degrades to empty instances. Delivery loops
// run until ctx is cancelled or Close is called.
func NewEventQueueController(ctx context.Context, st store.EventQueueStoreInterface, sender BatchSenderInterface,
	settings SettingsSource, opts ...ControllerOption) *EventQueueController {

	c := &EventQueueController{
		store:    st,
		sender:   sender,
		settings: settings,
		retrier:  backoff.New("flush_events", backoff.DefaultDeliveryPolicy),
		now:      time.Now,
		sleep:    backoff.ContextSleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(ctx)

	c.current = st.LoadCurrent()
	c.pending = st.LoadPending()
	if t, ok := st.LoadLastFlushTime(); ok {
		c.lastFlush = t
	} else {
		// A fresh install starts its age window now instead of sealing its first event.
		c.lastFlush = c.now()
		_ = st.SaveLastFlushTime(c.lastFlush)
	}
	metrics.PendingBatches.Set(float64(c.pending.Len()))

	log.GetLogger().Debug("Event queues restored", log.Int("current", c.current.Len()),
		log.Int("pending", c.pending.Len()))
	return c
}

// AddEvent appends e to the live queue, persists it and seals the queue when
// it is full, too old, or forceFlush is set.
func (c *EventQueueController) AddEvent(e *model.Event, forceFlush bool) {

	logger := log.GetLogger()
	if e == nil {
		logger.Warn("Ignoring nil event")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.current.Add(e); err != nil {
		// A sealed live queue is never kept; recover with a fresh one.
		logger.Error("Live queue was sealed, starting a new one", log.Error(err))
		c.current = model.NewEventQueue()
		_ = c.current.Add(e)
	}
	_ = c.store.SaveCurrent(c.current)
	metrics.EventsTrackedTotal.Inc()

	trigger, ok := c.sealTrigger(forceFlush)
	if !ok {
		return
	}
	logger.Debug("Sealing event queue", log.String("trigger", trigger), log.Int("events", c.current.Len()))
	c.sealLocked(trigger)
	c.startDeliveryLocked()
}

func (c *EventQueueController) sealTrigger(forceFlush bool) (string, bool) {

	settings := c.settings.Current()
	switch {
	case forceFlush:
		return metrics.TriggerForce, true
	case c.current.Len() >= settings.MaxEventBatchCount:
		return metrics.TriggerSize, true
	case c.now().Sub(c.lastFlush) > settings.MaxEventStore():
		return metrics.TriggerAge, true
	}
	return "", false
}

// sealLocked moves the live queue to the tail of the pending batches.
func (c *EventQueueController) sealLocked(trigger string) {

	c.lastFlush = c.now()
	_ = c.store.SaveLastFlushTime(c.lastFlush)

	sealed := c.current
	c.pending.Enqueue(sealed)
	_ = c.store.SavePending(c.pending)

	c.current = model.NewEventQueue()
	_ = c.store.SaveCurrent(c.current)

	metrics.BatchesSealedTotal.WithLabelValues(trigger).Inc()
	metrics.PendingBatches.Set(float64(c.pending.Len()))

	var targetID string
	if events := sealed.Events(); len(events) > 0 {
		targetID = events[0].ID()
	}
	log.GetLogger().Audit(log.AuditEvent{
		ActionID:   log.ActionBatchSealed,
		TargetType: log.TargetTypeBatch,
		TargetID:   targetID,
		Data:       map[string]interface{}{"trigger": trigger, "events": sealed.Len()},
	})
}

// Flush seals the live queue if it holds any events and starts delivery.
func (c *EventQueueController) Flush() {

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Len() > 0 {
		c.sealLocked(metrics.TriggerForce)
	}
	c.startDeliveryLocked()
}

// ProcessPending starts delivery of batches left over from an earlier run or
// an exhausted attempt.
func (c *EventQueueController) ProcessPending() {

	c.mu.Lock()
	defer c.mu.Unlock()
	c.startDeliveryLocked()
}

func (c *EventQueueController) startDeliveryLocked() {

	if c.isFlushing || c.pending.Len() == 0 || c.ctx.Err() != nil {
		return
	}
	c.isFlushing = true
	c.wg.Add(1)
	go c.deliver()
}

// deliver drains pending batches in order, one backoff run per batch.
func (c *EventQueueController) deliver() {

	logger := log.GetLogger()
	defer c.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event delivery failed unexpectedly", log.String("panic", fmt.Sprint(r)))
			c.setFlushing(false)
		}
	}()

	runCtx := sysContext.NewDeliveryContext(c.ctx)
	for {
		c.mu.Lock()
		head := c.pending.Peek()
		if head == nil {
			c.isFlushing = false
			c.mu.Unlock()
			return
		}
		payload := head.Serialize()
		c.mu.Unlock()

		_, err := backoff.Do(runCtx, c.retrier, func(ctx context.Context) (bool, error) {
			start := time.Now()
			ok := c.sender.PostEventBatch(ctx, payload)
			metrics.DeliveryRequestDuration.Observe(time.Since(start).Seconds())
			return ok, nil
		}, backoff.Options[bool]{
			Validate: func(ok bool) bool { return ok },
		})
		if err != nil {
			c.setFlushing(false)
			if errors.Is(err, backoff.ErrRetriesExhausted) {
				metrics.DeliveryExhaustedTotal.Inc()
				logger.Audit(log.AuditEvent{
					ActionID:   log.ActionDeliveryExhausted,
					TargetType: log.TargetTypeBatch,
					Data:       map[string]interface{}{"events": head.Len()},
				})
				logger.Warn("Event batch not delivered, keeping it for a later attempt", log.Error(err))
			} else {
				logger.Debug("Event delivery aborted", log.Error(err))
			}
			return
		}

		c.mu.Lock()
		if c.pending.Peek() == head {
			c.pending.Dequeue()
		}
		_ = c.store.SavePending(c.pending)
		remaining := c.pending.Len()
		metrics.PendingBatches.Set(float64(remaining))
		metrics.BatchesDeliveredTotal.Inc()
		logger.Audit(log.AuditEvent{
			ActionID:   log.ActionBatchDelivered,
			TargetType: log.TargetTypeBatch,
			Data:       map[string]interface{}{"events": head.Len(), "remaining": remaining},
		})
		if remaining == 0 {
			c.isFlushing = false
			c.mu.Unlock()
			return
		}
		interval := c.settings.Current().SendEventInterval()
		c.mu.Unlock()

		if err := c.sleep(c.ctx, interval); err != nil {
			c.setFlushing(false)
			return
		}
	}
}

func (c *EventQueueController) setFlushing(v bool) {
	c.mu.Lock()
	c.isFlushing = v
	c.mu.Unlock()
}

// Wait blocks until the running delivery loop, if any, has returned.
func (c *EventQueueController) Wait() {
	c.wg.Wait()
}

// Close aborts in-flight delivery and waits for it to stop. Pending batches
// stay persisted.
func (c *EventQueueController) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *EventQueueController) CurrentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Len()
}

func (c *EventQueueController) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Len()
}

func (c *EventQueueController) IsFlushing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFlushing
}
