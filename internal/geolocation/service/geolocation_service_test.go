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

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metriqus/metriqus-sdk-go/internal/geolocation/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/storage/store"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const geoBody = `{"data":{"country":"Türkiye","countryCode":"TR","city":"Ankara","region":"06","regionName":"Ankara"},"statusCode":200}`

func geoServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestRefresh_FetchesAndCaches(t *testing.T) {
	server, hits := geoServer(t, http.StatusOK, geoBody)
	storage := storageService.NewStorageService(store.NewMemoryStore(), 0)
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	svc := NewGeolocationService(client.NewHTTPClientWith(server.Client()), storage, server.URL).
		WithClock(func() time.Time { return now })

	g := svc.Refresh(context.Background(), 2)
	require.NotNil(t, g)
	assert.Equal(t, "TR", g.CountryCode)
	assert.True(t, svc.Fetched())
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	cached := model.Parse(storage.LoadString(constants.GeolocationSettingsKey))
	require.NotNil(t, cached)
	assert.Equal(t, "Ankara", cached.City)
	last, ok := storage.LoadTime(constants.GeolocationLastFetchedTimeKey)
	require.True(t, ok)
	assert.True(t, last.Equal(now))

	// Two whole days is not more than the interval.
	now = now.Add(71 * time.Hour)
	again := NewGeolocationService(client.NewHTTPClientWith(server.Client()), storage, server.URL).
		WithClock(func() time.Time { return now })
	require.NotNil(t, again.Refresh(context.Background(), 2))
	assert.True(t, again.Fetched())
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	now = now.Add(25 * time.Hour)
	require.NotNil(t, again.Refresh(context.Background(), 2))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestRefresh_FailureUsesCache(t *testing.T) {
	server, _ := geoServer(t, http.StatusServiceUnavailable, "")
	storage := storageService.NewStorageService(store.NewMemoryStore(), 0)
	svc := NewGeolocationService(client.NewHTTPClientWith(server.Client()), storage, server.URL)

	assert.Nil(t, svc.Refresh(context.Background(), 2))
	assert.False(t, svc.Fetched())
	assert.Nil(t, svc.Current())

	require.NoError(t, storage.SaveString(constants.GeolocationSettingsKey,
		model.Geolocation{CountryCode: "FR"}.ToJSON()))
	g := svc.Refresh(context.Background(), 2)
	require.NotNil(t, g)
	assert.Equal(t, "FR", g.CountryCode)
	assert.False(t, svc.Fetched(), "a cached copy after a failed fetch still needs a retry")
	assert.Equal(t, "FR", svc.Current().CountryCode)
}
