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

package config

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

// ClientConfig mirrors the settings asset a host application ships with.
type ClientConfig struct {
	ClientKey               string `yaml:"client_key"`
	ClientSecret            string `yaml:"client_secret"`
	Environment             string `yaml:"environment"`
	LogLevel                string `yaml:"log_level"`
	ManualStart             bool   `yaml:"manual_start"`
	IOSUserTrackingDisabled bool   `yaml:"ios_user_tracking_disabled"`
}

type DeviceConfig struct {
	DeviceID           string  `yaml:"device_id"`
	VendorID           string  `yaml:"vendor_id"`
	DeviceName         string  `yaml:"device_name"`
	DeviceModel        string  `yaml:"device_model"`
	DeviceType         string  `yaml:"device_type"`
	GraphicsDeviceName string  `yaml:"graphics_device_name"`
	OSName             string  `yaml:"os_name"`
	SystemMemoryMB     int     `yaml:"system_memory_mb"`
	GraphicsMemoryMB   int     `yaml:"graphics_memory_mb"`
	Language           string  `yaml:"language"`
	Country            string  `yaml:"country"`
	ScreenWidth        int     `yaml:"screen_width"`
	ScreenHeight       int     `yaml:"screen_height"`
	ScreenDPI          float32 `yaml:"screen_dpi"`
}

type AppConfig struct {
	PackageName         string       `yaml:"package_name"`
	AppVersion          string       `yaml:"app_version"`
	Platform            string       `yaml:"platform"`
	AdvertisingID       string       `yaml:"advertising_id"`
	LimitAdTracking     bool         `yaml:"limit_ad_tracking"`
	AttributionReferrer string       `yaml:"attribution_referrer"`
	AttributionToken    string       `yaml:"attribution_token"`
	InstallTime         string       `yaml:"install_time"`
	Device              DeviceConfig `yaml:"device"`
}

type StorageConfig struct {
	Backend         string `yaml:"backend"`
	Path            string `yaml:"path"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type EndpointsConfig struct {
	RemoteSettingsURL string `yaml:"remote_settings_url"`
	GeolocationURL    string `yaml:"geolocation_url"`
	ConnectivityURL   string `yaml:"connectivity_url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

type SchedulerConfig struct {
	TickIntervalSeconds   int `yaml:"tick_interval_seconds"`
	CallbackQueueSize     int `yaml:"callback_queue_size"`
	HostLoopIntervalMilli int `yaml:"host_loop_interval_ms"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Client    ClientConfig    `yaml:"client"`
	App       AppConfig       `yaml:"app"`
	Storage   StorageConfig   `yaml:"storage"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
