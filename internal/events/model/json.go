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
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// member is one key of a JSON object, kept in document order.
type member struct {
	Key string
	Raw json.RawMessage
}

// decodeObject splits raw into its members in order. It fails when raw is
// not a JSON object.
func decodeObject(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("not a JSON object")
	}
	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "value of %s", key)
		}
		members = append(members, member{Key: key, Raw: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

func indexMembers(members []member) map[string]json.RawMessage {
	idx := make(map[string]json.RawMessage, len(members))
	for _, m := range members {
		idx[m.Key] = m.Raw
	}
	return idx
}

// decodeArray splits raw into its elements. It fails when raw is not a JSON
// array.
func decodeArray(raw []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil && !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, errors.New("not a JSON array")
	}
	return items, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteByte(':')
}

func writeFloat(buf *bytes.Buffer, f float64, bitSize int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("0")
		return
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, bitSize))
}

// writeValue renders the values a DynamicParameter may hold. Map keys are
// written in sorted order so output is stable.
func writeValue(buf *bytes.Buffer, v interface{}) {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		writeString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float32:
		writeFloat(buf, float64(val), 32)
	case float64:
		writeFloat(buf, val, 64)
	case TypedValue:
		val.writeJSON(buf)
	case []TypedValue:
		writeTypedValues(buf, val)
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeKey(buf, k)
			writeValue(buf, val[k])
		}
		buf.WriteByte('}')
	case []map[string]interface{}:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, item)
		}
		buf.WriteByte(']')
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, item)
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(val)
		if err != nil {
			writeString(buf, "")
			return
		}
		buf.Write(b)
	}
}

// parseValue converts raw into a plain Go value: string, bool, int64,
// float64, map[string]interface{} or []interface{}. Null is rejected.
func parseValue(raw []byte) (interface{}, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return nil, false
	}
	switch trimmed[0] {
	case '{':
		members, err := decodeObject(trimmed)
		if err != nil {
			return nil, false
		}
		out := make(map[string]interface{}, len(members))
		for _, m := range members {
			if v, ok := parseValue(m.Raw); ok {
				out[m.Key] = v
			}
		}
		return out, true
	case '[':
		items, err := decodeArray(trimmed)
		if err != nil {
			return nil, false
		}
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			if v, ok := parseValue(item); ok {
				out = append(out, v)
			}
		}
		return out, true
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, false
		}
		return s, true
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, false
		}
		return b, true
	default:
		return parseNumber(trimmed)
	}
}

func parseNumber(raw []byte) (interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return nil, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil {
		return nil, false
	}
	return f, true
}

func parseString(raw []byte) (string, bool) {
	var s string
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// parseInteger accepts an integral JSON number or a string holding one.
func parseInteger(raw []byte, bitSize int) (int64, bool) {
	if s, ok := parseString(raw); ok {
		v, err := strconv.ParseInt(s, 10, bitSize)
		return v, err == nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	i, ok := v.(int64)
	if !ok {
		return 0, false
	}
	if bitSize == 32 && (i > math.MaxInt32 || i < math.MinInt32) {
		return 0, false
	}
	return i, true
}

func parseBool(raw []byte) (bool, bool) {
	v, ok := parseValue(raw)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
