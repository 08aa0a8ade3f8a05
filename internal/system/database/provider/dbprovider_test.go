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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metriqus/metriqus-sdk-go/internal/system/database/scripts"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestDBProvider_OpensAndCreatesSchema(t *testing.T) {
	ctx := context.Background()
	p := NewDBProvider(filepath.Join(t.TempDir(), "nested", "metriqus.db"))
	defer p.Close()

	dbClient, err := p.GetDBClient(ctx)
	require.NoError(t, err)

	again, err := p.GetDBClient(ctx)
	require.NoError(t, err)
	assert.Same(t, dbClient, again)

	n, err := dbClient.Execute(ctx, scripts.UpsertValue["sqlite"], "k", "v", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := dbClient.ExecuteQuery(ctx, scripts.GetValue["sqlite"], "k")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "v", rows[0]["v"])
}
