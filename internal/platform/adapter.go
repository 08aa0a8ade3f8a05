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

package platform

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
	trackingModel "github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

// ErrNoAttribution is returned when the platform has no attribution payload.
var ErrNoAttribution = errors.New("no attribution payload available")

// Adapter is the boundary to the host platform: advertising id, install
// attribution, install time and SKAdNetwork conversion values.
type Adapter interface {
	Name() string
	DeviceInfo() DeviceInfo
	ReadAdID(ctx context.Context) (string, error)
	ReadAttribution(ctx context.Context) (*trackingModel.Attribution, error)
	InstallTime(ctx context.Context) (time.Time, error)
	OnFirstLaunch(ctx context.Context)
	UpdateConversionValue(ctx context.Context, value int) error
}

// HostAdapter serves the Adapter contract from configuration. It fits hosts
// that hand the SDK their advertising id and install referrer up front.
type HostAdapter struct {
	app                     config.AppConfig
	iosUserTrackingDisabled bool
	storage                 storageService.StorageServiceInterface
	device                  DeviceInfo
	now                     func() time.Time

	mu              sync.Mutex
	conversionValue int
}

func NewHostAdapter(cfg config.Config, storage storageService.StorageServiceInterface) *HostAdapter {

	return &HostAdapter{
		app:                     cfg.App,
		iosUserTrackingDisabled: cfg.Client.IOSUserTrackingDisabled,
		storage:                 storage,
		device:                  NewDeviceInfo(cfg.App, storage),
		now:                     time.Now,
		conversionValue:         -1,
	}
}

// WithClock replaces time.Now, mostly for tests.
func (a *HostAdapter) WithClock(now func() time.Time) *HostAdapter {
	a.now = now
	return a
}

func (a *HostAdapter) Name() string {
	return strings.ToLower(a.app.Platform)
}

func (a *HostAdapter) DeviceInfo() DeviceInfo {
	return a.device
}

// ReadAdID returns an empty id when the user opted out of ad tracking.
func (a *HostAdapter) ReadAdID(ctx context.Context) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.app.LimitAdTracking {
		return "", nil
	}
	if a.Name() == constants.PlatformIOS && a.iosUserTrackingDisabled {
		return "", nil
	}
	return strings.TrimSpace(a.app.AdvertisingID), nil
}

// ReadAttribution parses the Apple Ads token on iOS and the install referrer
// everywhere else.
func (a *HostAdapter) ReadAttribution(ctx context.Context) (*trackingModel.Attribution, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var attribution *trackingModel.Attribution
	if a.Name() == constants.PlatformIOS {
		attribution = trackingModel.ParseIOSAttribution(a.app.AttributionToken)
	} else {
		attribution = trackingModel.ParseAndroidReferrer(a.app.AttributionReferrer)
	}
	if attribution == nil {
		return nil, ErrNoAttribution
	}
	return attribution, nil
}

// InstallTime prefers the configured install time, then the time recorded on
// first launch.
func (a *HostAdapter) InstallTime(ctx context.Context) (time.Time, error) {

	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if a.app.InstallTime != "" {
		t, ok := utils.ParseDate(a.app.InstallTime)
		if !ok {
			return time.Time{}, errors.Errorf("invalid install time %q", a.app.InstallTime)
		}
		return t, nil
	}
	millis := a.storage.LoadInt64(constants.InstallTimeKey, 0)
	if millis <= 0 {
		return time.Time{}, errors.New("install time is not recorded")
	}
	return time.UnixMilli(millis).UTC(), nil
}

// OnFirstLaunch records the install time in unix milliseconds.
func (a *HostAdapter) OnFirstLaunch(ctx context.Context) {

	if a.storage.Exists(constants.InstallTimeKey) {
		return
	}
	millis := strconv.FormatInt(a.now().UnixMilli(), 10)
	if err := a.storage.SaveString(constants.InstallTimeKey, millis); err != nil {
		log.GetLogger().Warn("Failed to record install time", log.Error(err))
	}
}

// UpdateConversionValue only applies on iOS. The host adapter keeps the last
// value so the embedding app can forward it to SKAdNetwork.
func (a *HostAdapter) UpdateConversionValue(ctx context.Context, value int) error {

	if a.Name() != constants.PlatformIOS {
		log.GetLogger().Debug("Conversion value ignored outside iOS", log.Int("value", value))
		return nil
	}
	if value < 0 || value > 63 {
		return errors.Errorf("conversion value %d out of range [0,63]", value)
	}
	a.mu.Lock()
	a.conversionValue = value
	a.mu.Unlock()
	log.GetLogger().Debug("Conversion value updated", log.Int("value", value))
	return nil
}

// ConversionValue returns the last accepted conversion value, or -1.
func (a *HostAdapter) ConversionValue() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conversionValue
}
