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
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	geoModel "github.com/metriqus/metriqus-sdk-go/internal/geolocation/model"
	"github.com/metriqus/metriqus-sdk-go/internal/platform"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeState struct {
	session  string
	geo      *geoModel.Geolocation
	attrs    []eventsModel.TypedValue
	adID     string
	tracking bool
}

func (s *fakeState) SessionID() string { return s.session }
func (s *fakeState) UniqueUserID() string { return "user-1" }
func (s *fakeState) IsFirstLaunch() bool { return true }
func (s *fakeState) UserFirstTouchTimestamp() int64 { return 1700000000 }
func (s *fakeState) Geolocation() *geoModel.Geolocation { return s.geo }
func (s *fakeState) UserAttributes() []eventsModel.TypedValue { return s.attrs }
func (s *fakeState) AdID() string { return s.adID }
func (s *fakeState) IsTrackingEnabled() bool { return s.tracking }

type MockSink struct {
	mock.Mock
}

func (m *MockSink) AddEvent(e *eventsModel.Event, forceFlush bool) {
	m.Called(e, forceFlush)
}

func testDevice() platform.DeviceInfo {
	return platform.DeviceInfo{
		PackageName:  "com.example.game",
		AppVersion:   "1.4.0",
		DeviceType:   constants.DeviceTypePhone,
		DeviceModel:  "Pixel 8",
		Platform:     constants.PlatformCodeAndroid,
		Country:      "US",
		ScreenDPI:    420.5,
		ScreenWidth:  1080,
		ScreenHeight: 2400,
		DeviceID:     "device-1",
	}
}

func newBuilder(state StateSource) *PackageBuilder {
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return NewPackageBuilder(state, testDevice(), constants.EnvironmentProduction).
		WithClock(func() time.Time { return fixed })
}

func paramValue(params []eventsModel.DynamicParameter, name string) (interface{}, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func TestPackageBuilder_Envelope(t *testing.T) {
	state := &fakeState{
		session:  "session-1",
		attrs:    []eventsModel.TypedValue{eventsModel.NewStringValue("tier", "gold")},
		adID:     "gaid-1",
		tracking: true,
	}
	e := newBuilder(state).SessionStart()
	d := e.Data()

	assert.Equal(t, model.EventSessionStart, d.EventName)
	_, err := uuid.Parse(d.EventID)
	require.NoError(t, err)
	assert.Equal(t, "session-1", d.SessionID)
	assert.Equal(t, constants.ClientSDK, d.ClientSDK)
	assert.True(t, d.IsFirstLaunch)
	assert.Equal(t, int64(1748772000), d.EventTimestamp)
	assert.Equal(t, "user-1", d.UserID)
	assert.Equal(t, int64(1700000000), d.UserFirstTouchTimestamp)
	assert.Equal(t, constants.EnvironmentProduction, d.Environment)
	assert.Equal(t, &eventsModel.AppInfo{PackageName: "com.example.game", AppVersion: "1.4.0"}, d.AppInfo)
	assert.Equal(t, state.attrs, d.UserAttributes)

	adID, ok := paramValue(d.Device, "ad_id")
	require.True(t, ok)
	assert.Equal(t, "gaid-1", adID)
	tracking, _ := paramValue(d.Device, "tracking_enabled")
	assert.Equal(t, true, tracking)
	dpi, _ := paramValue(d.Device, "screen_dpi")
	assert.Equal(t, float32(420.5), dpi)
	platformCode, _ := paramValue(d.Device, "platform")
	assert.Equal(t, int32(1), platformCode)
	_, hasVendor := paramValue(d.Device, "vendor_id")
	assert.False(t, hasVendor)

	assert.Equal(t, []eventsModel.DynamicParameter{
		{Name: "country", Value: "US"},
		{Name: "country_code", Value: "US"},
	}, d.Geolocation)

	assert.True(t, json.Valid([]byte(e.ToJSON())))
	assert.NotEqual(t, d.EventID, newBuilder(state).SessionStart().ID())
}

func TestPackageBuilder_GeolocationOverridesDeviceCountry(t *testing.T) {
	state := &fakeState{geo: &geoModel.Geolocation{CountryCode: "TR", City: "Ankara", RegionName: "Ankara"}}
	d := newBuilder(state).SessionBeat().Data()

	assert.Equal(t, model.EventSessionBeat, d.EventName)
	assert.Equal(t, []eventsModel.DynamicParameter{
		{Name: "country", Value: "TR"},
		{Name: "country_code", Value: "TR"},
		{Name: "city", Value: "Ankara"},
		{Name: "region_name", Value: "Ankara"},
	}, d.Geolocation)
}

func TestPackageBuilder_Groups(t *testing.T) {
	b := newBuilder(&fakeState{session: "s"})

	iap := b.InAppRevenue(model.NewInAppRevenue(0.99, "USD")).Data()
	assert.Equal(t, model.EventIAPRevenue, iap.EventName)
	revenue, _ := paramValue(iap.Item, "revenue")
	assert.Equal(t, int64(990000), revenue)
	assert.Nil(t, iap.Publisher)

	ad := b.AdRevenue(model.NewAppLovinAdRevenue(0.002, "USD")).Data()
	assert.Equal(t, model.EventAdRevenue, ad.EventName)
	source, _ := paramValue(ad.Publisher, "ad_source")
	assert.Equal(t, "applovin", source)

	attribution := model.ParseAndroidReferrer("utm_source=google")
	require.NotNil(t, attribution)
	attr := b.Attribution(*attribution).Data()
	assert.Equal(t, model.EventAttribution, attr.EventName)
	assert.Contains(t, attr.Attribution, constants.PlatformAndroid)

	custom := b.Custom(model.NewCampaignActionEvent("c1", "", model.CampaignClose)).Data()
	assert.Equal(t, model.EventCampaignDetails, custom.EventName)
	require.Len(t, custom.Parameters, 2)
	assert.Equal(t, "close", custom.Parameters[1].Value())
}

func TestTrackerService_ForwardsToSink(t *testing.T) {
	tests := []struct {
		name      string
		track     func(tr *TrackerService)
		eventName string
		lastParam eventsModel.TypedValue
	}{
		{
			name:      "performance",
			track:     func(tr *TrackerService) { tr.TrackPerformance(58, eventsModel.NewStringValue("scene", "menu")) },
			eventName: model.EventPerformance,
			lastParam: eventsModel.NewIntValue(model.ParameterFps, 58),
		},
		{
			name:      "screen view",
			track:     func(tr *TrackerService) { tr.TrackScreenView("shop") },
			eventName: model.EventScreenView,
			lastParam: eventsModel.NewStringValue(model.ParameterScreenName, "shop"),
		},
		{
			name:      "button click",
			track:     func(tr *TrackerService) { tr.TrackButtonClick("buy") },
			eventName: model.EventButtonClick,
			lastParam: eventsModel.NewStringValue(model.ParameterButtonName, "buy"),
		},
		{
			name: "level completed",
			track: func(tr *TrackerService) {
				tr.TrackCustomEvent(model.NewLevelCompletedEvent(model.EventFields{LevelReward: model.Ptr(int32(3))}))
			},
			eventName: model.EventLevelCompleted,
			lastParam: eventsModel.NewIntValue(model.ParameterLevelReward, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := new(MockSink)
			sink.On("AddEvent", mock.MatchedBy(func(e *eventsModel.Event) bool {
				params := e.Data().Parameters
				return e.Name() == tt.eventName && len(params) > 0 && params[len(params)-1] == tt.lastParam
			}), false).Once()

			tt.track(NewTrackerService(newBuilder(&fakeState{session: "s"}), sink))
			sink.AssertExpectations(t)
		})
	}
}

func TestTrackerService_Lifecycle(t *testing.T) {
	sink := new(MockSink)
	sink.On("AddEvent", mock.Anything, false).Return()
	tracker := NewTrackerService(newBuilder(&fakeState{session: "s"}), sink)

	tracker.TrackSessionStart()
	tracker.TrackSessionBeat()
	tracker.TrackIAPEvent(model.NewInAppRevenue(1, "EUR"))
	tracker.TrackAdRevenue(model.NewAdMobAdRevenue(0.01, "EUR"))
	tracker.TrackAttribution(model.Attribution{Platform: constants.PlatformAndroid, Source: "x"})

	var got []string
	for _, call := range sink.Calls {
		got = append(got, call.Arguments.Get(0).(*eventsModel.Event).Name())
	}
	assert.Equal(t, []string{
		model.EventSessionStart, model.EventSessionBeat, model.EventIAPRevenue,
		model.EventAdRevenue, model.EventAttribution,
	}, got)
}

func TestTrackerService_DropsUnnamedCustomEvent(t *testing.T) {
	sink := new(MockSink)
	NewTrackerService(newBuilder(&fakeState{}), sink).TrackCustomEvent(model.NewCustomEvent(""))
	sink.AssertNotCalled(t, "AddEvent", mock.Anything, mock.Anything)
}
