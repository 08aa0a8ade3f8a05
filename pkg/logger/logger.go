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

package logger

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	Log            logr.Logger
	isDebugEnabled bool
)

func init() {
	Log = stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("metriqus-agent")
}

// Init initializes the bootstrap logger used before the configuration, and
// with it the structured logger, is available.
func Init(debugEnabled bool) {
	stdr.SetVerbosity(0)
	isDebugEnabled = debugEnabled
	if debugEnabled {
		stdr.SetVerbosity(1)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	Log.Info(msg, keysAndValues...)
}

func Error(err error, msg string, keysAndValues ...interface{}) {
	Log.Error(err, msg, keysAndValues...)
}

// Debug only logs if isDebugEnabled
func Debug(msg string, keysAndValues ...interface{}) {
	if isDebugEnabled {
		Log.V(1).Info(msg, keysAndValues...)
	}
}
