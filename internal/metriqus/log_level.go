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

package metriqus

import "strings"

// LogLevel is the host-facing verbosity switch.
type LogLevel int

const (
	NoLog LogLevel = iota
	Verbose
	ErrorsOnly
)

// ParseLogLevel accepts the names used in the client settings. Anything
// unrecognized is treated as Verbose.
func ParseLogLevel(name string) LogLevel {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nolog", "no_log", "none", "off":
		return NoLog
	case "errorsonly", "errors_only", "error", "errors":
		return ErrorsOnly
	default:
		return Verbose
	}
}

func (l LogLevel) String() string {
	switch l {
	case NoLog:
		return "NoLog"
	case ErrorsOnly:
		return "ErrorsOnly"
	default:
		return "Verbose"
	}
}

// SlogLevel returns the level name understood by log.Init.
func (l LogLevel) SlogLevel() string {
	switch l {
	case NoLog:
		return "OFF"
	case ErrorsOnly:
		return "ERROR"
	default:
		return "DEBUG"
	}
}
