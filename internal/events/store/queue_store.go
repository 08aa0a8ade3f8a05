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

package store

import (
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/events/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// EventQueueStoreInterface persists the queue controller's state.
type EventQueueStoreInterface interface {
	LoadCurrent() *model.EventQueue
	SaveCurrent(q *model.EventQueue) error
	LoadPending() *model.BatchQueue
	SavePending(bq *model.BatchQueue) error
	LoadLastFlushTime() (time.Time, bool)
	SaveLastFlushTime(t time.Time) error
}

type EventQueueStore struct {
	storage storageService.StorageServiceInterface
}

func NewEventQueueStore(storage storageService.StorageServiceInterface) *EventQueueStore {
	return &EventQueueStore{storage: storage}
}

// LoadCurrent never returns nil; missing or corrupt data yields an empty queue.
func (s *EventQueueStore) LoadCurrent() *model.EventQueue {
	if !s.storage.Exists(constants.CurrentEventsKey) {
		return model.NewEventQueue()
	}
	return model.ParseEventQueue(s.storage.LoadString(constants.CurrentEventsKey))
}

func (s *EventQueueStore) SaveCurrent(q *model.EventQueue) error {
	if err := s.storage.SaveString(constants.CurrentEventsKey, q.Serialize()); err != nil {
		log.GetLogger().Error("Failed to persist current events", log.Error(err))
		return err
	}
	return nil
}

// LoadPending never returns nil; missing or corrupt data yields an empty FIFO.
func (s *EventQueueStore) LoadPending() *model.BatchQueue {
	if !s.storage.Exists(constants.EventsToSendKey) {
		return model.NewBatchQueue()
	}
	return model.ParseBatchQueue(s.storage.LoadString(constants.EventsToSendKey))
}

func (s *EventQueueStore) SavePending(bq *model.BatchQueue) error {
	if err := s.storage.SaveString(constants.EventsToSendKey, bq.Serialize()); err != nil {
		log.GetLogger().Error("Failed to persist pending batches", log.Error(err))
		return err
	}
	return nil
}

func (s *EventQueueStore) LoadLastFlushTime() (time.Time, bool) {
	return s.storage.LoadTime(constants.LastFlushTimeKey)
}

func (s *EventQueueStore) SaveLastFlushTime(t time.Time) error {
	return s.storage.SaveTime(constants.LastFlushTimeKey, t)
}
