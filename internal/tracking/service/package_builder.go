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
	"time"

	"github.com/google/uuid"

	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	geoModel "github.com/metriqus/metriqus-sdk-go/internal/geolocation/model"
	"github.com/metriqus/metriqus-sdk-go/internal/platform"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
	"github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

// StateSource exposes the per-install state stamped onto every event. It is
// read at build time, so events always carry the current session.
type StateSource interface {
	SessionID() string
	UniqueUserID() string
	IsFirstLaunch() bool
	UserFirstTouchTimestamp() int64
	Geolocation() *geoModel.Geolocation
	UserAttributes() []eventsModel.TypedValue
	AdID() string
	IsTrackingEnabled() bool
}

// PackageBuilder assembles events with the shared envelope: identity, session,
// device, geo, app info and user attributes.
type PackageBuilder struct {
	state       StateSource
	device      platform.DeviceInfo
	environment string
	now         func() time.Time
}

func NewPackageBuilder(state StateSource, device platform.DeviceInfo, environment string) *PackageBuilder {

	if environment == "" {
		environment = constants.EnvironmentSandbox
	}
	return &PackageBuilder{state: state, device: device, environment: environment, now: time.Now}
}

// WithClock replaces time.Now, mostly for tests.
func (b *PackageBuilder) WithClock(now func() time.Time) *PackageBuilder {
	b.now = now
	return b
}

func (b *PackageBuilder) SessionStart() *eventsModel.Event {
	return eventsModel.NewEvent(b.base(model.EventSessionStart))
}

func (b *PackageBuilder) SessionBeat() *eventsModel.Event {
	return eventsModel.NewEvent(b.base(model.EventSessionBeat))
}

func (b *PackageBuilder) Custom(e model.CustomEvent) *eventsModel.Event {
	d := b.base(e.EventName())
	d.Parameters = e.EventParameters()
	return eventsModel.NewEvent(d)
}

func (b *PackageBuilder) InAppRevenue(r model.InAppRevenue) *eventsModel.Event {
	d := b.base(model.EventIAPRevenue)
	d.Item = r.ItemParameters()
	return eventsModel.NewEvent(d)
}

func (b *PackageBuilder) AdRevenue(r model.AdRevenue) *eventsModel.Event {
	d := b.base(model.EventAdRevenue)
	d.Publisher = r.PublisherParameters()
	return eventsModel.NewEvent(d)
}

func (b *PackageBuilder) Attribution(a model.Attribution) *eventsModel.Event {
	d := b.base(model.EventAttribution)
	d.Attribution = a.Parameters()
	return eventsModel.NewEvent(d)
}

func (b *PackageBuilder) base(name string) eventsModel.EventData {

	return eventsModel.EventData{
		EventName:               name,
		EventID:                 uuid.NewString(),
		SessionID:               b.state.SessionID(),
		ClientSDK:               constants.ClientSDK,
		IsFirstLaunch:           b.state.IsFirstLaunch(),
		EventTimestamp:          utils.DateToTimestamp(b.now()),
		UserID:                  b.state.UniqueUserID(),
		UserFirstTouchTimestamp: b.state.UserFirstTouchTimestamp(),
		Environment:             b.environment,
		Device:                  b.deviceParameters(),
		Geolocation:             b.geoParameters(),
		AppInfo:                 &eventsModel.AppInfo{PackageName: b.device.PackageName, AppVersion: b.device.AppVersion},
		UserAttributes:          b.state.UserAttributes(),
	}
}

func (b *PackageBuilder) deviceParameters() []eventsModel.DynamicParameter {

	d := b.device
	var p model.Parameters
	p.AddString("device_type", d.DeviceType)
	p.AddString("device_name", d.DeviceName)
	p.AddString("device_model", d.DeviceModel)
	p.AddString("graphics_device_name", d.GraphicsDeviceName)
	p.AddString("os_name", d.OSName)
	p.AddInteger("system_memory_size", &d.SystemMemorySize)
	p.AddInteger("graphics_memory_size", &d.GraphicsMemorySize)
	p.AddString("language", d.Language)
	p.AddString("country", d.Country)
	p.AddFloat("screen_dpi", &d.ScreenDPI)
	p.AddInteger("screen_width", &d.ScreenWidth)
	p.AddInteger("screen_height", &d.ScreenHeight)
	p.AddString("device_id", d.DeviceID)
	p.AddString("vendor_id", d.VendorID)
	p.AddInteger("platform", &d.Platform)
	p.AddString("ad_id", b.state.AdID())
	tracking := b.state.IsTrackingEnabled()
	p.AddBool("tracking_enabled", &tracking)
	return p
}

// geoParameters falls back to the device locale's country when no location
// has been resolved.
func (b *PackageBuilder) geoParameters() []eventsModel.DynamicParameter {

	country := b.device.Country
	var city, region, regionName string
	if g := b.state.Geolocation(); g != nil {
		if g.CountryCode != "" {
			country = g.CountryCode
		}
		city, region, regionName = g.City, g.Region, g.RegionName
	}
	var p model.Parameters
	p.AddString("country", country)
	p.AddString("country_code", country)
	p.AddString("city", city)
	p.AddString("region", region)
	p.AddString("region_name", regionName)
	return p
}
