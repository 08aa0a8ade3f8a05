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

import "encoding/json"

// Geolocation is the coarse location resolved from the device IP.
type Geolocation struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Region      string `json:"region"`
	RegionName  string `json:"regionName"`
}

// Parse reads a geolocation object. Members that are missing or not strings
// are left empty; nil is returned only when raw is not a JSON object.
func Parse(raw string) *Geolocation {

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil
	}

	g := &Geolocation{}
	readString(fields, "country", &g.Country)
	readString(fields, "countryCode", &g.CountryCode)
	readString(fields, "city", &g.City)
	readString(fields, "region", &g.Region)
	readString(fields, "regionName", &g.RegionName)
	return g
}

func (g Geolocation) ToJSON() string {

	b, err := json.Marshal(g)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func readString(fields map[string]json.RawMessage, key string, dst *string) {
	if raw, ok := fields[key]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			*dst = s
		}
	}
}
