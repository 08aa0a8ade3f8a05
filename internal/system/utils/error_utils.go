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
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// DescribeDecodeError turns a JSON decoding error into a short log message
// naming the persisted or received resource.
func DescribeDecodeError(err error, resourceName string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Sprintf("%s is empty or truncated.", resourceName)
	}

	var se *json.SyntaxError
	if errors.As(err, &se) && se != nil {
		return fmt.Sprintf("Malformed JSON in %s at offset %d.", resourceName, se.Offset)
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute != nil {
		if ute.Field == "" && ute.Value == "object" {
			return fmt.Sprintf("%s must be a JSON array.", resourceName)
		}
		if ute.Field == "" && ute.Value == "array" {
			return fmt.Sprintf("%s must be a JSON object.", resourceName)
		}
		return fmt.Sprintf("Invalid type for field '%s' in %s.", ute.Field, resourceName)
	}

	if strings.HasPrefix(err.Error(), "missing field ") {
		return fmt.Sprintf("%s: %s.", resourceName, err.Error())
	}

	return fmt.Sprintf("Invalid JSON payload for %s.", resourceName)
}

// MissingField builds the error reported when a required key is absent.
func MissingField(name string) error {
	return errors.Errorf("missing field %s", name)
}
