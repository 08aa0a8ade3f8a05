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
	"strconv"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// ValueType tags the populated variant of a TypedValue.
type ValueType int

const (
	StringType ValueType = iota
	IntType
	LongType
	FloatType
	BoolType
)

const (
	stringValueKey = "string_value"
	intValueKey    = "int_value"
	longValueKey   = "long_value"
	floatValueKey  = "float_value"
	boolValueKey   = "bool_value"
)

// TypedValue is a named value holding exactly one of string, int32, int64,
// float32 or bool. It is immutable; construct it with the New* helpers.
type TypedValue struct {
	name string
	kind ValueType
	str  string
	i32  int32
	i64  int64
	f32  float32
	b    bool
}

func NewStringValue(name, value string) TypedValue {
	return TypedValue{name: name, kind: StringType, str: value}
}

func NewIntValue(name string, value int32) TypedValue {
	return TypedValue{name: name, kind: IntType, i32: value}
}

func NewLongValue(name string, value int64) TypedValue {
	return TypedValue{name: name, kind: LongType, i64: value}
}

func NewFloatValue(name string, value float32) TypedValue {
	return TypedValue{name: name, kind: FloatType, f32: value}
}

func NewBoolValue(name string, value bool) TypedValue {
	return TypedValue{name: name, kind: BoolType, b: value}
}

func (t TypedValue) Name() string {
	return t.name
}

func (t TypedValue) Type() ValueType {
	return t.kind
}

// Value returns the populated variant as string, int32, int64, float32 or bool.
func (t TypedValue) Value() interface{} {
	switch t.kind {
	case IntType:
		return t.i32
	case LongType:
		return t.i64
	case FloatType:
		return t.f32
	case BoolType:
		return t.b
	default:
		return t.str
	}
}

// ToJSON renders {"key":name,"value":{"<type>_value":v}}.
func (t TypedValue) ToJSON() string {
	var buf bytes.Buffer
	t.writeJSON(&buf)
	return buf.String()
}

func (t TypedValue) writeJSON(buf *bytes.Buffer) {
	buf.WriteByte('{')
	writeKey(buf, "key")
	writeString(buf, t.name)
	buf.WriteByte(',')
	writeKey(buf, "value")
	buf.WriteByte('{')
	switch t.kind {
	case IntType:
		writeKey(buf, intValueKey)
		buf.WriteString(strconv.FormatInt(int64(t.i32), 10))
	case LongType:
		writeKey(buf, longValueKey)
		buf.WriteString(strconv.FormatInt(t.i64, 10))
	case FloatType:
		writeKey(buf, floatValueKey)
		writeFloat(buf, float64(t.f32), 32)
	case BoolType:
		writeKey(buf, boolValueKey)
		buf.WriteString(strconv.FormatBool(t.b))
	default:
		writeKey(buf, stringValueKey)
		writeString(buf, t.str)
	}
	buf.WriteString("}}")
}

// SerializeTypedValues renders values as a JSON array in their wire form.
func SerializeTypedValues(values []TypedValue) string {
	var buf bytes.Buffer
	writeTypedValues(&buf, values)
	return buf.String()
}

func writeTypedValues(buf *bytes.Buffer, values []TypedValue) {
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		v.writeJSON(buf)
	}
	buf.WriteByte(']')
}

// ParseTypedValue reads a single typed value. The first recognized
// "<type>_value" member of "value" wins.
func ParseTypedValue(raw []byte) (TypedValue, bool) {
	members, err := decodeObject(raw)
	if err != nil {
		return TypedValue{}, false
	}
	idx := indexMembers(members)
	name, ok := parseString(idx["key"])
	if !ok {
		return TypedValue{}, false
	}
	valueRaw, ok := idx["value"]
	if !ok {
		return TypedValue{}, false
	}
	valueMembers, err := decodeObject(valueRaw)
	if err != nil {
		return TypedValue{}, false
	}

	for _, m := range valueMembers {
		switch m.Key {
		case stringValueKey:
			if s, ok := parseString(m.Raw); ok {
				return NewStringValue(name, s), true
			}
		case intValueKey:
			if i, ok := parseInteger(m.Raw, 32); ok {
				return NewIntValue(name, int32(i)), true
			}
		case longValueKey:
			if i, ok := parseInteger(m.Raw, 64); ok {
				return NewLongValue(name, i), true
			}
		case floatValueKey:
			if f, ok := parseFloat32(m.Raw); ok {
				return NewFloatValue(name, f), true
			}
		case boolValueKey:
			if b, ok := parseBool(m.Raw); ok {
				return NewBoolValue(name, b), true
			}
		default:
			continue
		}
		log.GetLogger().Debug("Malformed typed value", log.String("key", name), log.String("type", m.Key))
		return TypedValue{}, false
	}
	return TypedValue{}, false
}

func parseFloat32(raw []byte) (float32, bool) {
	if s, ok := parseString(raw); ok {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err == nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return float32(n), true
	case float64:
		return float32(n), true
	}
	return 0, false
}

// ParseTypedValues reads an array of typed values, skipping malformed
// entries. It returns nil when raw is not an array.
func ParseTypedValues(raw []byte) []TypedValue {
	items, err := decodeArray(raw)
	if err != nil {
		return nil
	}
	var out []TypedValue
	for _, item := range items {
		if v, ok := ParseTypedValue(item); ok {
			out = append(out, v)
		}
	}
	return out
}
