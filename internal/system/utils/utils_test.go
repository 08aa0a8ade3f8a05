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

package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAndParseDate(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.FixedZone("x", 3*3600))

	formatted := FormatDate(ts)
	assert.Equal(t, "2025-03-14T12:09:26.535Z", formatted)

	parsed, ok := ParseDate(formatted)
	assert.True(t, ok)
	assert.True(t, ts.Equal(parsed))
}

func TestParseDate_InvalidFallsBackToEpoch(t *testing.T) {
	parsed, ok := ParseDate("not-a-date")
	assert.False(t, ok)
	assert.Equal(t, int64(0), parsed.Unix())
}

func TestParseAndSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"leading question mark", "?utm_source=google", map[string]string{"utm_source": "google"}},
		{"escaped values", "utm_campaign=spring%20sale&utm_medium=cpc",
			map[string]string{"utm_campaign": "spring sale", "utm_medium": "cpc"}},
		{"pair without value separator dropped", "utm_source&utm_term=shoes", map[string]string{"utm_term": "shoes"}},
		{"value containing equals", "utm_content=a=b", map[string]string{"utm_content": "a=b"}},
		{"blank key dropped", "=x&utm_source= web ", map[string]string{"utm_source": "web"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAndSanitize(tt.input))
		})
	}
}

func TestDescribeDecodeError(t *testing.T) {
	var arr []int
	err := json.Unmarshal([]byte(`{"a":1}`), &arr)
	assert.Equal(t, "pending batches must be a JSON array.", DescribeDecodeError(err, "pending batches"))

	var obj map[string]any
	err = json.Unmarshal([]byte(`{"a":`), &obj)
	assert.Contains(t, DescribeDecodeError(err, "remote settings"), "remote settings")

	assert.Equal(t, "", DescribeDecodeError(nil, "x"))
	assert.Equal(t, "event: missing field event_id.", DescribeDecodeError(MissingField("event_id"), "event"))
}
