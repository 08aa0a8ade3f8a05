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

// DynamicParameter is a named, loosely typed value collected by the SDK
// itself: device and geo snapshots, item and publisher details, attribution.
// Value holds a string, bool, integer, float, map[string]interface{},
// []map[string]interface{}, []interface{} or []TypedValue.
type DynamicParameter struct {
	Name  string
	Value interface{}
}

func NewDynamicParameter(name string, value interface{}) DynamicParameter {
	return DynamicParameter{Name: name, Value: value}
}

func cloneParameters(params []DynamicParameter) []DynamicParameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]DynamicParameter, len(params))
	for i, p := range params {
		out[i] = DynamicParameter{Name: p.Name, Value: cloneValue(p.Value)}
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(val))
		for i, item := range val {
			out[i], _ = cloneValue(item).(map[string]interface{})
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []TypedValue:
		return append([]TypedValue(nil), val...)
	default:
		return val
	}
}

func cloneTypedValues(values []TypedValue) []TypedValue {
	if len(values) == 0 {
		return nil
	}
	return append([]TypedValue(nil), values...)
}
