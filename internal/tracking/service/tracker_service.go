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
	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

// EventSink receives finished events. The queue controller implements it.
type EventSink interface {
	AddEvent(e *eventsModel.Event, forceFlush bool)
}

type TrackerServiceInterface interface {
	TrackSessionStart()
	TrackSessionBeat()
	TrackCustomEvent(e model.CustomEvent)
	TrackIAPEvent(r model.InAppRevenue)
	TrackAdRevenue(r model.AdRevenue)
	TrackAttribution(a model.Attribution)
	TrackPerformance(fps int32, params ...eventsModel.TypedValue)
	TrackScreenView(screenName string, params ...eventsModel.TypedValue)
	TrackButtonClick(buttonName string, params ...eventsModel.TypedValue)
}

// TrackerService turns domain events into wire events and hands them to the
// queue.
type TrackerService struct {
	builder *PackageBuilder
	sink    EventSink
}

func NewTrackerService(builder *PackageBuilder, sink EventSink) *TrackerService {
	return &TrackerService{builder: builder, sink: sink}
}

func (t *TrackerService) TrackSessionStart() {
	t.emit(t.builder.SessionStart())
}

func (t *TrackerService) TrackSessionBeat() {
	t.emit(t.builder.SessionBeat())
}

func (t *TrackerService) TrackCustomEvent(e model.CustomEvent) {

	if e.EventName() == "" {
		log.GetLogger().Warn("Dropping custom event without a name")
		return
	}
	t.emit(t.builder.Custom(e))
}

func (t *TrackerService) TrackIAPEvent(r model.InAppRevenue) {
	t.emit(t.builder.InAppRevenue(r))
}

func (t *TrackerService) TrackAdRevenue(r model.AdRevenue) {
	t.emit(t.builder.AdRevenue(r))
}

func (t *TrackerService) TrackAttribution(a model.Attribution) {
	t.emit(t.builder.Attribution(a))
}

func (t *TrackerService) TrackPerformance(fps int32, params ...eventsModel.TypedValue) {
	t.TrackCustomEvent(model.NewCustomEvent(model.EventPerformance,
		withValue(params, eventsModel.NewIntValue(model.ParameterFps, fps))...))
}

func (t *TrackerService) TrackScreenView(screenName string, params ...eventsModel.TypedValue) {
	t.TrackCustomEvent(model.NewCustomEvent(model.EventScreenView,
		withValue(params, eventsModel.NewStringValue(model.ParameterScreenName, screenName))...))
}

func (t *TrackerService) TrackButtonClick(buttonName string, params ...eventsModel.TypedValue) {
	t.TrackCustomEvent(model.NewCustomEvent(model.EventButtonClick,
		withValue(params, eventsModel.NewStringValue(model.ParameterButtonName, buttonName))...))
}

func (t *TrackerService) emit(e *eventsModel.Event) {
	log.GetLogger().Debug("Tracking event", log.String("event", e.Name()), log.String("eventId", e.ID()))
	t.sink.AddEvent(e, false)
}

func withValue(params []eventsModel.TypedValue, v eventsModel.TypedValue) []eventsModel.TypedValue {
	out := make([]eventsModel.TypedValue, 0, len(params)+1)
	out = append(out, params...)
	return append(out, v)
}
