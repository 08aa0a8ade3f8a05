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

package provider

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestNewStorageProvider_Backends(t *testing.T) {
	for _, backend := range []string{"file", "sqlite", "memory"} {
		t.Run(backend, func(t *testing.T) {
			home := t.TempDir()
			p, err := NewStorageProvider(context.Background(), home, config.StorageConfig{Backend: backend, Path: "data"})
			require.NoError(t, err)
			defer p.Close()

			svc := p.GetStorageService()
			require.NoError(t, svc.SaveString("metriqus_session_id", "sid"))
			assert.Equal(t, "sid", svc.LoadString("metriqus_session_id"))
		})
	}
}

func TestNewStorageProvider_UnknownBackend(t *testing.T) {
	_, err := NewStorageProvider(context.Background(), t.TempDir(), config.StorageConfig{Backend: "redis"})
	assert.Error(t, err)
}
