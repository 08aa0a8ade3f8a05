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

package constants

import "time"

// ClientSDK is the version tag attached to every event.
const ClientSDK = "go-1.0.11"

// Persisted storage keys.
const (
	CurrentEventsKey              = "metriqus_current_events"
	EventsToSendKey               = "metriqus_events_to_send"
	LastFlushTimeKey              = "metriqus_event_last_flush_time"
	SessionIDKey                  = "metriqus_session_id"
	LastSessionStartTimeKey       = "metriqus_last_session_start_time"
	FirstLaunchTimeKey            = "metriqus_first_launch_time"
	LastSendAttributionDateKey    = "metriqus_last_send_attribution_date"
	RemoteSettingsKey             = "metriqus_remote_settings"
	GeolocationSettingsKey        = "geolocation_settings"
	GeolocationLastFetchedTimeKey = "geolocation_last_fetched_time"
	UniqueUserIdentifierKey       = "UniqueUserIdentifier"
	UserAttributesKey             = "UserAttributes"
	InstallTimeKey                = "MetriqusInstallTime"
	DeviceIDKey                   = "metriqus_device_id"
)

// HTTP header names and values used by the collector protocol.
const (
	ContentTypeHeader = "Content-Type"
	AcceptHeader      = "Accept"
	ClientKeyHeader   = "ClientKey"
	SignatureHeader   = "Signature"
	TimestampHeader   = "Timestamp"
	ContentTypeJSON   = "application/json"
)

// Platform names.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformDesktop = "desktop"
)

// Platform codes sent with the remote settings request.
const (
	PlatformCodeIOS     = 0
	PlatformCodeAndroid = 1
	PlatformCodeOther   = -1
)

// Device types.
const (
	DeviceTypePhone   = "phone"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeConsole = "console"
)

// Environment names.
const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// Storage backends.
const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendMemory = "memory"
)

const (
	DefaultCallbackQueueSize = 256
	DefaultTickInterval      = 60 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
)

// RevenueScale converts monetary amounts into integer micros.
const RevenueScale = 1000000
