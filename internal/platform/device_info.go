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
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"

	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// DeviceInfo is the hardware and locale snapshot attached to every event.
type DeviceInfo struct {
	PackageName        string
	AppVersion         string
	DeviceType         string
	DeviceName         string
	DeviceModel        string
	Platform           int32
	GraphicsDeviceName string
	OSName             string
	SystemMemorySize   int32
	GraphicsMemorySize int32
	Language           string
	Country            string
	ScreenDPI          float32
	ScreenWidth        int32
	ScreenHeight       int32
	DeviceID           string
	VendorID           string
}

// PlatformCode maps a platform name onto the numeric code the collector
// expects.
func PlatformCode(name string) int32 {
	switch strings.ToLower(name) {
	case constants.PlatformAndroid:
		return constants.PlatformCodeAndroid
	case constants.PlatformIOS:
		return constants.PlatformCodeIOS
	default:
		return constants.PlatformCodeOther
	}
}

// DeviceType classifies a device. Handhelds with a diagonal above 6.5 inches
// and an aspect ratio under 2 count as tablets; screens without a known DPI
// count as phones.
func DeviceType(platformName string, width, height int, dpi float32) string {

	switch strings.ToLower(platformName) {
	case constants.PlatformAndroid, constants.PlatformIOS:
	default:
		return constants.DeviceTypeDesktop
	}
	if dpi <= 0 || width <= 0 || height <= 0 {
		return constants.DeviceTypePhone
	}
	w := float64(width) / float64(dpi)
	h := float64(height) / float64(dpi)
	diagonal := math.Sqrt(w*w + h*h)
	long, short := math.Max(float64(width), float64(height)), math.Min(float64(width), float64(height))
	if diagonal > 6.5 && long/short < 2 {
		return constants.DeviceTypeTablet
	}
	return constants.DeviceTypePhone
}

// NewDeviceInfo builds the snapshot from configuration, filling unset fields
// from the running host. The device id is generated once and kept in storage.
func NewDeviceInfo(app config.AppConfig, storage storageService.StorageServiceInterface) DeviceInfo {

	d := app.Device
	info := DeviceInfo{
		PackageName:        app.PackageName,
		AppVersion:         app.AppVersion,
		DeviceType:         d.DeviceType,
		DeviceName:         d.DeviceName,
		DeviceModel:        d.DeviceModel,
		Platform:           PlatformCode(app.Platform),
		GraphicsDeviceName: d.GraphicsDeviceName,
		OSName:             d.OSName,
		SystemMemorySize:   int32(d.SystemMemoryMB),
		GraphicsMemorySize: int32(d.GraphicsMemoryMB),
		Language:           d.Language,
		Country:            d.Country,
		ScreenDPI:          d.ScreenDPI,
		ScreenWidth:        int32(d.ScreenWidth),
		ScreenHeight:       int32(d.ScreenHeight),
		DeviceID:           d.DeviceID,
		VendorID:           d.VendorID,
	}

	if info.DeviceType == "" {
		info.DeviceType = DeviceType(app.Platform, d.ScreenWidth, d.ScreenHeight, d.ScreenDPI)
	}
	if info.DeviceName == "" {
		info.DeviceName, _ = os.Hostname()
	}
	if info.DeviceModel == "" {
		info.DeviceModel = runtime.GOARCH
	}
	if info.OSName == "" {
		info.OSName = runtime.GOOS
	}
	if info.Language == "" || info.Country == "" {
		lang, country := localeFromEnv()
		if info.Language == "" {
			info.Language = lang
		}
		if info.Country == "" {
			info.Country = country
		}
	}
	if info.DeviceID == "" {
		info.DeviceID = storedDeviceID(storage)
	}
	return info
}

// localeFromEnv reads a POSIX locale such as "en_US.UTF-8".
func localeFromEnv() (language, country string) {
	for _, key := range []string{"LC_ALL", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		value, _, _ = strings.Cut(value, ".")
		lang, region, _ := strings.Cut(value, "_")
		return strings.ToLower(lang), strings.ToUpper(region)
	}
	return "", ""
}

func storedDeviceID(storage storageService.StorageServiceInterface) string {
	if id := strings.TrimSpace(storage.LoadString(constants.DeviceIDKey)); id != "" {
		return id
	}
	id := uuid.NewString()
	if err := storage.SaveString(constants.DeviceIDKey, id); err != nil {
		log.GetLogger().Warn("Failed to persist device id", log.Error(err))
	}
	return id
}
