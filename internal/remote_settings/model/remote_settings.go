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

package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RemoteSettings tunes the pipeline from the collector side.
type RemoteSettings struct {
	MaxEventBatchCount           int
	MaxEventStoreSeconds         int
	SendEventIntervalSeconds     int
	SessionIntervalMinutes       int
	AttributionCheckWindow       int
	GeolocationFetchIntervalDays int
	EventPostURL                 string
}

// Defaults returns the settings used before the first successful fetch.
func Defaults() RemoteSettings {

	return RemoteSettings{
		MaxEventBatchCount:           10,
		MaxEventStoreSeconds:         30 * 60,
		SendEventIntervalSeconds:     2,
		SessionIntervalMinutes:       30,
		AttributionCheckWindow:       20,
		GeolocationFetchIntervalDays: 2,
	}
}

func (s RemoteSettings) MaxEventStore() time.Duration {
	return time.Duration(s.MaxEventStoreSeconds) * time.Second
}

func (s RemoteSettings) SendEventInterval() time.Duration {
	return time.Duration(s.SendEventIntervalSeconds) * time.Second
}

func (s RemoteSettings) SessionInterval() time.Duration {
	return time.Duration(s.SessionIntervalMinutes) * time.Minute
}

// Parse reads a settings object. Numeric fields may be JSON numbers or numeric
// strings; a missing or malformed field keeps its default. Parse returns nil
// when raw is not a JSON object.
func Parse(raw string) *RemoteSettings {

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil
	}

	s := Defaults()
	readInt(fields, "maxEventBatchCount", &s.MaxEventBatchCount)
	readInt(fields, "maxEventStoreSeconds", &s.MaxEventStoreSeconds)
	readInt(fields, "sendEventIntervalSeconds", &s.SendEventIntervalSeconds)
	readInt(fields, "sessionIntervalMinutes", &s.SessionIntervalMinutes)
	readInt(fields, "attributionCheckWindow", &s.AttributionCheckWindow)
	readInt(fields, "geolocationFetchIntervalDays", &s.GeolocationFetchIntervalDays)

	if rawURL, ok := fields["eventPostUrl"]; ok {
		var url string
		if json.Unmarshal(rawURL, &url) == nil {
			s.EventPostURL = url
		}
	}
	return &s
}

func readInt(fields map[string]json.RawMessage, key string, dst *int) {

	raw, ok := fields[key]
	if !ok {
		return
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return
	}
	*dst = int(v)
}
