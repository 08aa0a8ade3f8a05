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

package provider

import (
	"context"

	"github.com/metriqus/metriqus-sdk-go/internal/events/service"
	"github.com/metriqus/metriqus-sdk-go/internal/events/store"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
)

// EventsProviderInterface defines the interface for the events provider.
type EventsProviderInterface interface {
	GetQueueController() service.EventQueueControllerInterface
}

// EventsProvider wires the queue store and controller over a storage service.
type EventsProvider struct {
	controller *service.EventQueueController
}

// NewEventsProvider creates the queue controller, hydrating it from storage.
func NewEventsProvider(ctx context.Context, storage storageService.StorageServiceInterface,
	sender service.BatchSenderInterface, settings service.SettingsSource,
	opts ...service.ControllerOption) EventsProviderInterface {

	queueStore := store.NewEventQueueStore(storage)
	return &EventsProvider{
		controller: service.NewEventQueueController(ctx, queueStore, sender, settings, opts...),
	}
}

// GetQueueController returns the queue controller instance.
func (ep *EventsProvider) GetQueueController() service.EventQueueControllerInterface {

	return ep.controller
}
