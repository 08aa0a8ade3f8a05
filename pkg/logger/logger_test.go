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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_TogglesDebug(t *testing.T) {
	Init(true)
	assert.True(t, isDebugEnabled)
	assert.True(t, Log.V(1).Enabled())

	Init(false)
	assert.False(t, isDebugEnabled)
	assert.False(t, Log.V(1).Enabled())

	assert.NotPanics(t, func() {
		Info("starting", "home", "/tmp")
		Debug("hidden")
		Error(errors.New("boom"), "failed")
	})
}
