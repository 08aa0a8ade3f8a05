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

package client

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope is the collector's standard response wrapper:
// {"data": ..., "statusCode": n, "errorMessages": [...]}.
type Envelope struct {
	// Data holds the raw JSON of the data member. A JSON string member is
	// unquoted so that a stringified payload reads the same as an inline one.
	Data          string
	StatusCode    int64
	ErrorMessages []string
}

func (e *Envelope) IsSuccess() bool {
	return e != nil && len(e.ErrorMessages) == 0 && e.StatusCode >= 200 && e.StatusCode < 300
}

// ParseEnvelope returns nil when body is not an object, data is absent, or
// statusCode/errorMessages are malformed.
func ParseEnvelope(body string) *Envelope {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil || fields == nil {
		return nil
	}

	rawData, ok := fields["data"]
	if !ok || isNull(rawData) {
		return nil
	}
	env := &Envelope{Data: string(rawData)}
	var s string
	if json.Unmarshal(rawData, &s) == nil {
		env.Data = s
	}

	if rawStatus, ok := fields["statusCode"]; ok && !isNull(rawStatus) {
		code, ok := parseLong(rawStatus)
		if !ok {
			return nil
		}
		env.StatusCode = code
	}

	if rawErrors, ok := fields["errorMessages"]; ok && !isNull(rawErrors) {
		var items []json.RawMessage
		if err := json.Unmarshal(rawErrors, &items); err != nil {
			return nil
		}
		for _, item := range items {
			var msg string
			if json.Unmarshal(item, &msg) == nil {
				env.ErrorMessages = append(env.ErrorMessages, msg)
				continue
			}
			env.ErrorMessages = append(env.ErrorMessages, string(item))
		}
	}
	return env
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseLong accepts a JSON number or a numeric string.
func parseLong(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			return v, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}
