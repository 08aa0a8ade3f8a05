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

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryService "github.com/metriqus/metriqus-sdk-go/internal/delivery/service"
	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	eventsService "github.com/metriqus/metriqus-sdk-go/internal/events/service"
	storageProvider "github.com/metriqus/metriqus-sdk-go/internal/storage/provider"
	"github.com/metriqus/metriqus-sdk-go/internal/storage/store"
	"github.com/metriqus/metriqus-sdk-go/internal/system/backoff"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	trackingModel "github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const (
	testClientKey    = "ck"
	testClientSecret = "secret"
)

// backend plays remote settings, geolocation, connectivity probe and
// collector.
type backend struct {
	server        *httptest.Server
	settingsFails int32
	settingsHits  int32

	mu      sync.Mutex
	batches [][]map[string]interface{}
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&b.settingsHits, 1) <= atomic.LoadInt32(&b.settingsFails) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"maxEventBatchCount":"10","eventPostUrl":"` + b.server.URL +
			`/events"},"statusCode":200,"errorMessages":[]}`))
	})
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"country":"Türkiye","countryCode":"TR","city":"Ankara"},"statusCode":200}`))
	})
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		if err := json.Unmarshal(raw, &body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		plain, err := deliveryService.Decrypt(body["encryptedData"], testClientSecret, testClientKey)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var batch []map[string]interface{}
		_ = json.Unmarshal([]byte(plain), &batch)
		b.mu.Lock()
		b.batches = append(b.batches, batch)
		b.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":"ok","statusCode":200,"errorMessages":[]}`))
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) received() [][]map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]map[string]interface{}(nil), b.batches...)
}

func (b *backend) config() config.Config {
	cfg := config.Config{
		Client: config.ClientConfig{
			ClientKey:    testClientKey,
			ClientSecret: testClientSecret,
			Environment:  "production",
		},
		App: config.AppConfig{
			PackageName:         "com.example.game",
			AppVersion:          "2.0.1",
			Platform:            "android",
			AdvertisingID:       "gaid-1",
			AttributionReferrer: "utm_source=google&utm_medium=cpc",
		},
		Storage: config.StorageConfig{Backend: "memory"},
		Endpoints: config.EndpointsConfig{
			RemoteSettingsURL: b.server.URL + "/settings",
			GeolocationURL:    b.server.URL + "/geo",
			ConnectivityURL:   b.server.URL + "/ping",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func newTestApp(t *testing.T, b *backend, provider storageProvider.StorageProviderInterface, now time.Time) *App {
	t.Helper()
	app, err := NewApp(context.Background(), b.config(), Options{
		StorageProvider: provider,
		HTTPClient:      client.NewHTTPClientWith(b.server.Client()),
		Now:             func() time.Time { return now },
		ControllerOptions: []eventsService.ControllerOption{
			eventsService.WithRetrier(backoff.New("test", backoff.Policy{MaxRetries: 1}).WithSleeper(noSleep)),
			eventsService.WithIntervalSleeper(noSleep),
		},
	})
	require.NoError(t, err)
	return app
}

func memoryProvider() *storageProvider.StorageProvider {
	return storageProvider.NewStorageProviderWithStore(store.NewMemoryStore(), 0)
}

func eventNames(batch []map[string]interface{}) []string {
	var names []string
	for _, e := range batch {
		names = append(names, e["event_name"].(string))
	}
	return names
}

func quit(t *testing.T, app *App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.OnQuit(ctx)
}

func TestApp_InitAndDeliver(t *testing.T) {
	b := newBackend(t)
	var firstLaunch int32
	app, err := NewApp(context.Background(), b.config(), Options{
		StorageProvider: memoryProvider(),
		HTTPClient:      client.NewHTTPClientWith(b.server.Client()),
		OnFirstLaunch:   func() { atomic.AddInt32(&firstLaunch, 1) },
		ControllerOptions: []eventsService.ControllerOption{
			eventsService.WithIntervalSleeper(noSleep),
		},
	})
	require.NoError(t, err)

	require.NoError(t, app.Init(context.Background()))
	require.True(t, app.IsInitialized())
	assert.True(t, app.IsFirstLaunch())
	assert.True(t, app.IsTrackingEnabled())
	assert.Equal(t, "gaid-1", app.AdID())
	assert.NotEmpty(t, app.SessionID())
	assert.NotEmpty(t, app.UniqueUserID())
	assert.Positive(t, app.UserFirstTouchTimestamp())
	assert.Equal(t, b.server.URL+"/events", app.RemoteSettings().EventPostURL)
	require.NotNil(t, app.Geolocation())
	assert.Equal(t, "TR", app.Geolocation().CountryCode)

	// Session start and attribution wait in the live queue.
	assert.Equal(t, 2, app.QueueController().CurrentCount())
	assert.Equal(t, 1, app.Update())
	assert.Equal(t, int32(1), atomic.LoadInt32(&firstLaunch))

	app.SetUserAttribute(eventsModel.NewStringValue("tier", "gold"))
	app.TrackButtonClick("buy")
	app.TrackCustomEvent(trackingModel.NewLevelStartedEvent(trackingModel.EventFields{LevelNumber: trackingModel.Ptr(int32(4))}))

	quit(t, app)

	batches := b.received()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{
		trackingModel.EventSessionStart, trackingModel.EventAttribution,
		trackingModel.EventButtonClick, trackingModel.EventLevelStart,
	}, eventNames(batches[0]))
	for _, e := range batches[0] {
		assert.Equal(t, app.SessionID(), e["session_id"])
		assert.Equal(t, "production", e["environment"])
	}
	assert.NotContains(t, batches[0][0], "user_properties")
	assert.Contains(t, batches[0][2], "user_properties")
	assert.Equal(t, 0, app.QueueController().PendingCount())
}

func TestApp_RestartResumesSession(t *testing.T) {
	b := newBackend(t)
	provider := memoryProvider()
	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

	first := newTestApp(t, b, provider, start)
	require.NoError(t, first.Init(context.Background()))
	session := first.SessionID()
	first.QueueController().Close()

	second := newTestApp(t, b, provider, start.Add(10*time.Minute))
	require.NoError(t, second.Init(context.Background()))
	assert.False(t, second.IsFirstLaunch())
	assert.Equal(t, session, second.SessionID())
	assert.Equal(t, first.UniqueUserID(), second.UniqueUserID())
	assert.Equal(t, first.UserFirstTouchTimestamp(), second.UserFirstTouchTimestamp())

	third := newTestApp(t, b, provider, start.Add(2*time.Hour))
	second.QueueController().Close()
	require.NoError(t, third.Init(context.Background()))
	assert.NotEqual(t, session, third.SessionID())
	third.QueueController().Close()
}

func TestApp_TrackingBeforeInitIsDropped(t *testing.T) {
	b := newBackend(t)
	app := newTestApp(t, b, memoryProvider(), time.Now())

	app.TrackScreenView("shop")
	app.TrackIAPEvent(trackingModel.NewInAppRevenue(1.99, "USD"))
	app.SetUserAttribute(eventsModel.NewBoolValue("vip", true))
	app.OnPause()
	app.OnResume(context.Background())
	app.Tick(context.Background())

	assert.Nil(t, app.QueueController())
	assert.Empty(t, app.UserAttributes())
	assert.Error(t, app.UpdateIOSConversionValue(context.Background(), 3))
	assert.Equal(t, int32(0), atomic.LoadInt32(&b.settingsHits))
}

func TestApp_TickSendsBeatAndRecoversSettings(t *testing.T) {
	b := newBackend(t)
	atomic.StoreInt32(&b.settingsFails, 1)
	app := newTestApp(t, b, memoryProvider(), time.Now())
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { quit(t, app) })

	assert.Empty(t, app.RemoteSettings().EventPostURL)
	before := app.QueueController().CurrentCount()

	app.Tick(context.Background())
	assert.Equal(t, b.server.URL+"/events", app.RemoteSettings().EventPostURL)
	assert.Equal(t, before, app.QueueController().CurrentCount(), "the beat waits for the host thread")

	assert.Equal(t, 1, app.Update())
	assert.Equal(t, before+1, app.QueueController().CurrentCount())
}

func TestApp_OnPauseFlushes(t *testing.T) {
	b := newBackend(t)
	app := newTestApp(t, b, memoryProvider(), time.Now())
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { quit(t, app) })

	app.TrackPerformance(60)
	app.OnPause()
	app.QueueController().Wait()

	assert.Equal(t, 0, app.QueueController().CurrentCount())
	batches := b.received()
	require.Len(t, batches, 1)
	assert.Contains(t, eventNames(batches[0]), trackingModel.EventPerformance)
}

func TestApp_Start(t *testing.T) {
	b := newBackend(t)
	cfg := b.config()
	cfg.Scheduler.TickIntervalSeconds = 1
	app, err := NewApp(context.Background(), cfg, Options{
		StorageProvider: memoryProvider(),
		HTTPClient:      client.NewHTTPClientWith(b.server.Client()),
	})
	require.NoError(t, err)
	require.NoError(t, app.Init(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.Start(ctx)

	assert.Eventually(t, func() bool { return app.Update() > 0 }, 5*time.Second, 50*time.Millisecond)
	quit(t, app)
}

func TestApp_UpdateIOSConversionValue(t *testing.T) {
	b := newBackend(t)
	cfg := b.config()
	cfg.App.Platform = "ios"
	app, err := NewApp(context.Background(), cfg, Options{
		StorageProvider: memoryProvider(),
		HTTPClient:      client.NewHTTPClientWith(b.server.Client()),
	})
	require.NoError(t, err)
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { quit(t, app) })

	assert.NoError(t, app.UpdateIOSConversionValue(context.Background(), 12))
	assert.Error(t, app.UpdateIOSConversionValue(context.Background(), 64))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  LogLevel
		slogL string
	}{
		{"NoLog", NoLog, "OFF"},
		{"errors_only", ErrorsOnly, "ERROR"},
		{"Verbose", Verbose, "DEBUG"},
		{"", Verbose, "DEBUG"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLogLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.slogL, got.SlogLevel())
		})
	}
}
