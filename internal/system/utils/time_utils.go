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

import "time"

// DateLayout is the ISO-8601 layout used for every persisted timestamp.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDate renders t in UTC with millisecond precision.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a persisted timestamp. Unparseable input yields the Unix
// epoch and false.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Unix(0, 0).UTC(), false
		}
	}
	return t.UTC(), true
}

// DateToTimestamp truncates t to Unix seconds.
func DateToTimestamp(t time.Time) int64 {
	return t.Unix()
}

// DaysBetween returns the whole-and-fractional days from start to end.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
