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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func fullEventData() EventData {
	return EventData{
		EventName:               "iap_revenue",
		EventID:                 "8b1f8f2e-0d7c-4f43-9c1b-2a3c5a9d7e11",
		SessionID:               "5f0c7f39-2a3b-4b4d-8a41-1f2e3d4c5b6a",
		ClientSDK:               "go-1.0.11",
		IsFirstLaunch:           true,
		EventTimestamp:          1735689600,
		UserID:                  "user-1",
		UserFirstTouchTimestamp: 1735600000,
		Environment:             "sandbox",
		Parameters: []TypedValue{
			NewStringValue("level_name", "castle \"keep\""),
			NewIntValue("level_number", 7),
			NewLongValue("score", 9000000000),
			NewFloatValue("duration", 12.5),
			NewBoolValue("boss", true),
		},
		UserAttributes: []TypedValue{NewStringValue("tier", "gold")},
		Device: []DynamicParameter{
			{Name: "device_model", Value: "Pixel 8"},
			{Name: "screen_width", Value: int64(1080)},
			{Name: "screen_dpi", Value: 420.5},
			{Name: "tracking_enabled", Value: false},
		},
		Geolocation: []DynamicParameter{{Name: "country", Value: "Türkiye"}},
		AppInfo:     &AppInfo{PackageName: "com.example.game", AppVersion: "1.2.3"},
		Item: []DynamicParameter{
			{Name: "revenue", Value: int64(1990000)},
			{Name: "currency", Value: "USD"},
			{Name: ItemParamsKey, Value: []TypedValue{NewStringValue("color", "red")}},
		},
		Publisher: []DynamicParameter{
			{Name: "ad_source", Value: "applovin"},
			{Name: "extra", Value: map[string]interface{}{"nested": "yes", "n": int64(2)}},
		},
		Attribution: map[string][]DynamicParameter{
			"android": {{Name: "source", Value: "google"}, {Name: "campaign", Value: "spring"}},
		},
	}
}

func TestEvent_RoundTrip(t *testing.T) {
	original := NewEvent(fullEventData())

	raw := original.ToJSON()
	assert.True(t, json.Valid([]byte(raw)), raw)

	parsed := ParseEvent([]byte(raw))
	require.NotNil(t, parsed)
	assert.Equal(t, original.Data(), parsed.Data())
	assert.Equal(t, raw, parsed.ToJSON())
}

func TestEvent_RoundTripMinimal(t *testing.T) {
	original := NewEvent(EventData{EventName: "session_beat"})
	parsed := ParseEvent([]byte(original.ToJSON()))
	require.NotNil(t, parsed)
	assert.Equal(t, original.Data(), parsed.Data())
	assert.Nil(t, parsed.Data().Device)
	assert.Nil(t, parsed.Data().Attribution)
}

func TestEvent_IsImmutable(t *testing.T) {
	data := fullEventData()
	e := NewEvent(data)

	data.EventName = "changed"
	data.Device[0].Value = "changed"
	data.Publisher[1].Value.(map[string]interface{})["nested"] = "changed"

	got := e.Data()
	assert.Equal(t, "iap_revenue", got.EventName)
	assert.Equal(t, "Pixel 8", got.Device[0].Value)
	assert.Equal(t, "yes", got.Publisher[1].Value.(map[string]interface{})["nested"])

	got.Geolocation[0].Value = "changed"
	assert.Equal(t, "Türkiye", e.Data().Geolocation[0].Value)
}

func TestParseEvent_RequiredFields(t *testing.T) {
	valid := map[string]interface{}{
		"event_name": "x", "event_id": "id", "session_id": "s", "client_sdk": "go",
		"user_id": "u", "environment": "production", "is_first_launch": false,
		"event_timestamp": 10, "user_first_touch_timestamp": 5,
	}
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
		valid  bool
	}{
		{"valid", func(map[string]interface{}) {}, true},
		{"empty strings allowed", func(m map[string]interface{}) { m["session_id"] = "" }, true},
		{"missing name", func(m map[string]interface{}) { delete(m, "event_name") }, false},
		{"numeric name", func(m map[string]interface{}) { m["event_name"] = 5 }, false},
		{"missing timestamp", func(m map[string]interface{}) { delete(m, "event_timestamp") }, false},
		{"fractional timestamp", func(m map[string]interface{}) { m["event_timestamp"] = 1.5 }, false},
		{"string bool", func(m map[string]interface{}) { m["is_first_launch"] = "yes" }, false},
		{"null environment", func(m map[string]interface{}) { m["environment"] = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make(map[string]interface{}, len(valid))
			for k, v := range valid {
				m[k] = v
			}
			tt.mutate(m)
			raw, err := json.Marshal(m)
			require.NoError(t, err)
			if tt.valid {
				assert.NotNil(t, ParseEvent(raw))
			} else {
				assert.Nil(t, ParseEvent(raw))
			}
		})
	}
	assert.Nil(t, ParseEvent([]byte(`[1,2]`)))
	assert.Nil(t, ParseEvent([]byte(`not json`)))
}

func TestParseEvent_MalformedGroupsAreOmitted(t *testing.T) {
	raw := `{"event_name":"x","event_id":"id","session_id":"s","client_sdk":"go","user_id":"u",
		"environment":"sandbox","is_first_launch":true,"event_timestamp":1,"user_first_touch_timestamp":1,
		"device":"oops","geo":{},"app_info":{"package_name":3},"attribution":{"ios":{}},
		"event_params":[{"key":"ok","value":{"int_value":3}},{"key":"bad","value":{"int_value":"x"}},{"nokey":1}],
		"user_properties":{"not":"array"},"publisher":{"ad_source":"admob"}}`

	e := ParseEvent([]byte(raw))
	require.NotNil(t, e)
	d := e.Data()
	assert.Nil(t, d.Device)
	assert.Nil(t, d.Geolocation)
	assert.Nil(t, d.AppInfo)
	assert.Nil(t, d.Attribution)
	assert.Nil(t, d.UserAttributes)
	require.Len(t, d.Parameters, 1)
	assert.Equal(t, int32(3), d.Parameters[0].Value())
	assert.Equal(t, []DynamicParameter{{Name: "ad_source", Value: "admob"}}, d.Publisher)
}

func TestTypedValue_WireForm(t *testing.T) {
	tests := []struct {
		value    TypedValue
		expected string
	}{
		{NewStringValue("s", "a\"b"), `{"key":"s","value":{"string_value":"a\"b"}}`},
		{NewIntValue("i", -4), `{"key":"i","value":{"int_value":-4}}`},
		{NewLongValue("l", 1 << 40), `{"key":"l","value":{"long_value":1099511627776}}`},
		{NewFloatValue("f", 0.1), `{"key":"f","value":{"float_value":0.1}}`},
		{NewBoolValue("b", true), `{"key":"b","value":{"bool_value":true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.value.Name(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.ToJSON())
			parsed, ok := ParseTypedValue([]byte(tt.expected))
			require.True(t, ok)
			assert.Equal(t, tt.value, parsed)
		})
	}
}

func TestParseTypedValue_Rejects(t *testing.T) {
	for _, raw := range []string{
		`{"value":{"int_value":1}}`,
		`{"key":"k"}`,
		`{"key":"k","value":{}}`,
		`{"key":"k","value":{"int_value":3000000000}}`,
		`{"key":"k","value":{"bool_value":"true"}}`,
		`[]`,
	} {
		_, ok := ParseTypedValue([]byte(raw))
		assert.False(t, ok, raw)
	}
}

func TestEventQueue_SerializeAndParse(t *testing.T) {
	q := NewEventQueue()
	require.NoError(t, q.Add(NewEvent(EventData{EventName: "a"})))
	require.NoError(t, q.Add(NewEvent(EventData{EventName: "b"})))

	raw := q.Serialize()
	withJunk := raw[:len(raw)-1] + `,{"event_name":1},"junk"]`

	parsed := ParseEventQueue(withJunk)
	require.Equal(t, 2, parsed.Len())
	assert.Equal(t, "a", parsed.Events()[0].Name())
	assert.Equal(t, "b", parsed.Events()[1].Name())

	assert.Equal(t, 0, ParseEventQueue("{corrupt").Len())
	assert.Equal(t, 0, ParseEventQueue("").Len())
	assert.Equal(t, "[]", NewEventQueue().Serialize())
}

func TestEventQueue_SealedRejectsAppend(t *testing.T) {
	q := NewEventQueue()
	q.Seal()
	assert.ErrorIs(t, q.Add(NewEvent(EventData{EventName: "late"})), ErrQueueSealed)
	assert.Equal(t, 0, q.Len())
}

func TestBatchQueue_FIFO(t *testing.T) {
	bq := NewBatchQueue()
	assert.Nil(t, bq.Peek())
	assert.Nil(t, bq.Dequeue())

	for _, name := range []string{"first", "second", "third"} {
		q := NewEventQueue()
		require.NoError(t, q.Add(NewEvent(EventData{EventName: name})))
		bq.Enqueue(q)
		assert.True(t, q.Sealed())
	}

	restored := ParseBatchQueue(bq.Serialize())
	require.Equal(t, 3, restored.Len())
	assert.Equal(t, bq.Serialize(), restored.Serialize())

	assert.Equal(t, "first", restored.Peek().Events()[0].Name())
	assert.Equal(t, "first", restored.Dequeue().Events()[0].Name())
	assert.Equal(t, "second", restored.Peek().Events()[0].Name())
	assert.Equal(t, 2, restored.Len())
	assert.True(t, restored.Peek().Sealed())
}

func TestParseBatchQueue_Corrupt(t *testing.T) {
	assert.Equal(t, 0, ParseBatchQueue("garbage").Len())
	assert.Equal(t, 0, ParseBatchQueue(`{"a":1}`).Len())
	assert.Equal(t, 0, ParseBatchQueue(`[[], "x", [{"event_name":2}]]`).Len())
}
