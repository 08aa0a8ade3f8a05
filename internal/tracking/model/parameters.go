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
	"math"

	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
)

// Parameters accumulates dynamic parameters, silently skipping unset and
// negative values so only meaningful fields reach the wire.
type Parameters []eventsModel.DynamicParameter

func (p *Parameters) add(key string, value interface{}) {
	*p = append(*p, eventsModel.NewDynamicParameter(key, value))
}

func (p *Parameters) AddString(key, value string) {
	if value == "" {
		return
	}
	p.add(key, value)
}

func (p *Parameters) AddBool(key string, value *bool) {
	if value == nil {
		return
	}
	p.add(key, *value)
}

func (p *Parameters) AddInteger(key string, value *int32) {
	if value == nil {
		return
	}
	p.add(key, *value)
}

func (p *Parameters) AddLong(key string, value *int64) {
	if value == nil || *value < 0 {
		return
	}
	p.add(key, *value)
}

// AddDouble rounds to five decimals.
func (p *Parameters) AddDouble(key string, value *float64) {
	if value == nil || *value < 0 {
		return
	}
	p.add(key, round5(*value))
}

func (p *Parameters) AddFloat(key string, value *float32) {
	if value == nil || *value < 0 {
		return
	}
	p.add(key, float32(round5(float64(*value))))
}

func (p *Parameters) AddTypedList(key string, values []eventsModel.TypedValue) {
	if len(values) == 0 {
		return
	}
	p.add(key, append([]eventsModel.TypedValue(nil), values...))
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// Micros converts a monetary amount into integer millionths, rounded to the
// nearest micro so 1.99 becomes 1990000 rather than 1989999.
func Micros(amount float64) int64 {
	return int64(math.Round(amount * constants.RevenueScale))
}

// Ptr returns a pointer to v, for populating optional fields inline.
func Ptr[T any](v T) *T {
	return &v
}
