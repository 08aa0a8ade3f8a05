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
	"bytes"
	"sort"
	"strconv"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
)

// Event JSON keys.
const (
	eventNameKey               = "event_name"
	eventIDKey                 = "event_id"
	sessionIDKey               = "session_id"
	clientSDKKey               = "client_sdk"
	isFirstLaunchKey           = "is_first_launch"
	eventTimestampKey          = "event_timestamp"
	userIDKey                  = "user_id"
	userFirstTouchTimestampKey = "user_first_touch_timestamp"
	environmentKey             = "environment"
	deviceKey                  = "device"
	geoKey                     = "geo"
	itemKey                    = "item"
	publisherKey               = "publisher"
	appInfoKey                 = "app_info"
	attributionKey             = "attribution"
	eventParamsKey             = "event_params"
	userPropertiesKey          = "user_properties"

	// ItemParamsKey is the item member carrying typed values.
	ItemParamsKey = "item_params"
)

// EventData carries every field of an Event. Empty optional groups are
// treated as absent.
type EventData struct {
	EventName               string
	EventID                 string
	SessionID               string
	ClientSDK               string
	IsFirstLaunch           bool
	EventTimestamp          int64
	UserID                  string
	UserFirstTouchTimestamp int64
	Environment             string

	Parameters     []TypedValue
	UserAttributes []TypedValue
	Device         []DynamicParameter
	Geolocation    []DynamicParameter
	AppInfo        *AppInfo
	Item           []DynamicParameter
	Publisher      []DynamicParameter
	Attribution    map[string][]DynamicParameter
}

// Event is an immutable analytics record. Data is copied in on construction
// and copied out on access.
type Event struct {
	data EventData
}

func NewEvent(data EventData) *Event {
	return &Event{data: cloneData(data)}
}

func (e *Event) Data() EventData {
	return cloneData(e.data)
}

func (e *Event) Name() string {
	return e.data.EventName
}

func (e *Event) ID() string {
	return e.data.EventID
}

func cloneData(d EventData) EventData {
	out := d
	out.Parameters = cloneTypedValues(d.Parameters)
	out.UserAttributes = cloneTypedValues(d.UserAttributes)
	out.Device = cloneParameters(d.Device)
	out.Geolocation = cloneParameters(d.Geolocation)
	out.Item = cloneParameters(d.Item)
	out.Publisher = cloneParameters(d.Publisher)
	if d.AppInfo != nil {
		info := *d.AppInfo
		out.AppInfo = &info
	}
	out.Attribution = nil
	for platform, params := range d.Attribution {
		cloned := cloneParameters(params)
		if cloned == nil {
			continue
		}
		if out.Attribution == nil {
			out.Attribution = make(map[string][]DynamicParameter, len(d.Attribution))
		}
		out.Attribution[platform] = cloned
	}
	return out
}

func (e *Event) ToJSON() string {
	var buf bytes.Buffer
	e.writeJSON(&buf)
	return buf.String()
}

func (e *Event) writeJSON(buf *bytes.Buffer) {
	d := e.data
	buf.WriteByte('{')
	writeKey(buf, eventNameKey)
	writeString(buf, d.EventName)
	buf.WriteByte(',')
	writeKey(buf, eventIDKey)
	writeString(buf, d.EventID)
	buf.WriteByte(',')
	writeKey(buf, sessionIDKey)
	writeString(buf, d.SessionID)
	buf.WriteByte(',')
	writeKey(buf, clientSDKKey)
	writeString(buf, d.ClientSDK)
	buf.WriteByte(',')
	writeKey(buf, isFirstLaunchKey)
	buf.WriteString(strconv.FormatBool(d.IsFirstLaunch))
	buf.WriteByte(',')
	writeKey(buf, eventTimestampKey)
	buf.WriteString(strconv.FormatInt(d.EventTimestamp, 10))
	buf.WriteByte(',')
	writeKey(buf, userIDKey)
	writeString(buf, d.UserID)
	buf.WriteByte(',')
	writeKey(buf, userFirstTouchTimestampKey)
	buf.WriteString(strconv.FormatInt(d.UserFirstTouchTimestamp, 10))
	buf.WriteByte(',')
	writeKey(buf, environmentKey)
	writeString(buf, d.Environment)

	writeGroup(buf, deviceKey, d.Device)
	writeGroup(buf, geoKey, d.Geolocation)
	writeGroup(buf, itemKey, d.Item)
	writeGroup(buf, publisherKey, d.Publisher)

	if d.AppInfo != nil {
		buf.WriteByte(',')
		writeKey(buf, appInfoKey)
		d.AppInfo.writeJSON(buf)
	}

	if len(d.Attribution) > 0 {
		platforms := make([]string, 0, len(d.Attribution))
		for p := range d.Attribution {
			platforms = append(platforms, p)
		}
		sort.Strings(platforms)
		buf.WriteByte(',')
		writeKey(buf, attributionKey)
		buf.WriteByte('{')
		for i, p := range platforms {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(buf, p)
			writeParameters(buf, d.Attribution[p])
		}
		buf.WriteByte('}')
	}

	if len(d.Parameters) > 0 {
		buf.WriteByte(',')
		writeKey(buf, eventParamsKey)
		writeTypedValues(buf, d.Parameters)
	}
	if len(d.UserAttributes) > 0 {
		buf.WriteByte(',')
		writeKey(buf, userPropertiesKey)
		writeTypedValues(buf, d.UserAttributes)
	}
	buf.WriteByte('}')
}

func writeGroup(buf *bytes.Buffer, key string, params []DynamicParameter) {
	if len(params) == 0 {
		return
	}
	buf.WriteByte(',')
	writeKey(buf, key)
	writeParameters(buf, params)
}

func writeParameters(buf *bytes.Buffer, params []DynamicParameter) {
	buf.WriteByte('{')
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, p.Name)
		writeValue(buf, p.Value)
	}
	buf.WriteByte('}')
}

// ParseEvent returns nil when raw is not an object or any required field is
// missing or of the wrong type. Malformed optional groups are dropped.
func ParseEvent(raw []byte) *Event {
	logger := log.GetLogger()
	members, err := decodeObject(raw)
	if err != nil {
		logger.Debug("Event is not a JSON object", log.Error(err))
		return nil
	}
	idx := indexMembers(members)

	var d EventData
	requiredStrings := []struct {
		key    string
		target *string
	}{
		{eventNameKey, &d.EventName},
		{eventIDKey, &d.EventID},
		{sessionIDKey, &d.SessionID},
		{clientSDKKey, &d.ClientSDK},
		{userIDKey, &d.UserID},
		{environmentKey, &d.Environment},
	}
	for _, f := range requiredStrings {
		s, ok := parseString(idx[f.key])
		if !ok {
			if _, present := idx[f.key]; !present {
				logger.Debug(utils.DescribeDecodeError(utils.MissingField(f.key), "event"))
			} else {
				logger.Debug("Dropping event with malformed field", log.String("field", f.key))
			}
			return nil
		}
		*f.target = s
	}

	var ok bool
	if d.IsFirstLaunch, ok = parseBool(idx[isFirstLaunchKey]); !ok {
		logger.Debug("Dropping event with malformed field", log.String("field", isFirstLaunchKey))
		return nil
	}
	if d.EventTimestamp, ok = parseInteger(idx[eventTimestampKey], 64); !ok {
		logger.Debug("Dropping event with malformed field", log.String("field", eventTimestampKey))
		return nil
	}
	if d.UserFirstTouchTimestamp, ok = parseInteger(idx[userFirstTouchTimestampKey], 64); !ok {
		logger.Debug("Dropping event with malformed field", log.String("field", userFirstTouchTimestampKey))
		return nil
	}

	d.Device = parseGroup(idx[deviceKey])
	d.Geolocation = parseGroup(idx[geoKey])
	d.Publisher = parseGroup(idx[publisherKey])
	d.Item = parseItem(idx[itemKey])
	if raw, ok := idx[appInfoKey]; ok {
		d.AppInfo = parseAppInfo(raw)
	}
	d.Attribution = parseAttribution(idx[attributionKey])
	if raw, ok := idx[eventParamsKey]; ok {
		d.Parameters = ParseTypedValues(raw)
	}
	if raw, ok := idx[userPropertiesKey]; ok {
		d.UserAttributes = ParseTypedValues(raw)
	}
	return NewEvent(d)
}

func parseGroup(raw []byte) []DynamicParameter {
	if raw == nil {
		return nil
	}
	members, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	var out []DynamicParameter
	for _, m := range members {
		if v, ok := parseValue(m.Raw); ok {
			out = append(out, DynamicParameter{Name: m.Key, Value: v})
		}
	}
	return out
}

func parseItem(raw []byte) []DynamicParameter {
	if raw == nil {
		return nil
	}
	members, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	var out []DynamicParameter
	for _, m := range members {
		if m.Key == ItemParamsKey {
			if values := ParseTypedValues(m.Raw); len(values) > 0 {
				out = append(out, DynamicParameter{Name: m.Key, Value: values})
			}
			continue
		}
		if v, ok := parseValue(m.Raw); ok {
			out = append(out, DynamicParameter{Name: m.Key, Value: v})
		}
	}
	return out
}

func parseAttribution(raw []byte) map[string][]DynamicParameter {
	if raw == nil {
		return nil
	}
	members, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	var out map[string][]DynamicParameter
	for _, m := range members {
		params := parseGroup(m.Raw)
		if len(params) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string][]DynamicParameter)
		}
		out[m.Key] = params
	}
	return out
}
