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
	"fmt"
	"sync"
	"time"

	deliveryService "github.com/metriqus/metriqus-sdk-go/internal/delivery/service"
	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	eventsProvider "github.com/metriqus/metriqus-sdk-go/internal/events/provider"
	eventsService "github.com/metriqus/metriqus-sdk-go/internal/events/service"
	geoModel "github.com/metriqus/metriqus-sdk-go/internal/geolocation/model"
	geoService "github.com/metriqus/metriqus-sdk-go/internal/geolocation/service"
	lifecycleService "github.com/metriqus/metriqus-sdk-go/internal/lifecycle/service"
	"github.com/metriqus/metriqus-sdk-go/internal/platform"
	rsmodel "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	rsService "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/service"
	storageProvider "github.com/metriqus/metriqus-sdk-go/internal/storage/provider"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/schedulers"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
	"github.com/metriqus/metriqus-sdk-go/internal/system/workers"
	trackingModel "github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
	trackingService "github.com/metriqus/metriqus-sdk-go/internal/tracking/service"
	userService "github.com/metriqus/metriqus-sdk-go/internal/user/service"
)

// Options overrides collaborators NewApp would otherwise build from the
// configuration. Home resolves a relative storage path. OnFirstLaunch runs on
// the host thread, from Update, after the first launch of an install has been
// recorded.
type Options struct {
	Home              string
	Adapter           platform.Adapter
	HTTPClient        client.HTTPClientInterface
	StorageProvider   storageProvider.StorageProviderInterface
	Now               func() time.Time
	ControllerOptions []eventsService.ControllerOption
	OnFirstLaunch     func()
}

// App is the application context. It owns every collaborator of the
// pipeline; nothing is kept in package state.
type App struct {
	cfg             config.Config
	ctx             context.Context
	cancel          context.CancelFunc
	storageProvider storageProvider.StorageProviderInterface
	storage         storageService.StorageServiceInterface
	adapter         platform.Adapter
	device          platform.DeviceInfo
	remoteSettings  *rsService.RemoteSettingsService
	geolocation     *geoService.GeolocationService
	attributes      *userService.UserAttributesService
	uniqueUserID    string
	sender          *deliveryService.EventSender
	tracker         *trackingService.TrackerService
	lifecycle       *lifecycleService.LifecycleService
	callbacks       *workers.CallbackQueue
	connectivity    *client.ConnectivityChecker
	controllerOpts  []eventsService.ControllerOption
	onFirstLaunch   func()

	initMu          sync.Mutex
	mu              sync.RWMutex
	events          eventsProvider.EventsProviderInterface
	controller      eventsService.EventQueueControllerInterface
	initialized     bool
	adID            string
	trackingEnabled bool
	logLevel        LogLevel
	wg              sync.WaitGroup
	quitOnce        sync.Once
}

// queueSink forwards tracked events to the controller once Init created it.
type queueSink struct {
	app *App
}

func (s queueSink) AddEvent(e *eventsModel.Event, forceFlush bool) {
	c := s.app.queue()
	if c == nil {
		log.GetLogger().Warn("Event queue is not ready, dropping event", log.String("event", e.Name()))
		return
	}
	c.AddEvent(e, forceFlush)
}

// NewApp wires the pipeline. Only a storage backend that cannot be opened is
// an error; incomplete credentials are logged and every later send fails
// softly.
func NewApp(ctx context.Context, cfg config.Config, opts Options) (*App, error) {

	logger := log.GetLogger()
	if err := cfg.Validate(); err != nil {
		logger.Warn("Metriqus configuration is incomplete", log.Error(err))
	}

	provider := opts.StorageProvider
	if provider == nil {
		p, err := storageProvider.NewStorageProvider(ctx, opts.Home, cfg.Storage)
		if err != nil {
			return nil, errors2.NewServerError(errors2.STORAGE_OPEN_FAILED, err)
		}
		provider = p
	}
	storage := provider.GetStorageService()

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = client.NewHTTPClient(time.Duration(cfg.Endpoints.TimeoutSeconds) * time.Second)
	}
	adapter := opts.Adapter
	if adapter == nil {
		adapter = platform.NewHostAdapter(cfg, storage).WithClock(now)
	}

	a := &App{
		cfg:             cfg,
		storageProvider: provider,
		storage:         storage,
		adapter:         adapter,
		device:          adapter.DeviceInfo(),
		callbacks:       workers.NewCallbackQueue(cfg.Scheduler.CallbackQueueSize),
		controllerOpts:  append([]eventsService.ControllerOption{eventsService.WithClock(now)}, opts.ControllerOptions...),
		onFirstLaunch:   opts.OnFirstLaunch,
		logLevel:        ParseLogLevel(cfg.Client.LogLevel),
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	a.remoteSettings = rsService.NewRemoteSettingsService(httpClient, storage, cfg.Endpoints.RemoteSettingsURL)
	a.geolocation = geoService.NewGeolocationService(httpClient, storage, cfg.Endpoints.GeolocationURL).WithClock(now)
	a.attributes = userService.NewUserAttributesService(storage)
	a.uniqueUserID = userService.UniqueUserIdentifier(storage)
	a.sender = deliveryService.NewEventSender(httpClient, deliveryService.Credentials{
		ClientKey:    cfg.Client.ClientKey,
		ClientSecret: cfg.Client.ClientSecret,
	}, a.remoteSettings).WithClock(now)

	builder := trackingService.NewPackageBuilder(a, a.device, cfg.Client.Environment).WithClock(now)
	a.tracker = trackingService.NewTrackerService(builder, queueSink{app: a})
	a.lifecycle = lifecycleService.NewLifecycleService(storage, a.remoteSettings, adapter, a.tracker,
		cfg.Client.IOSUserTrackingDisabled).WithClock(now)

	a.connectivity = client.NewConnectivityChecker(httpClient, cfg.Endpoints.ConnectivityURL)
	a.connectivity.OnConnected(a.onConnected)
	return a, nil
}

// Init runs the startup sequence: advertising id, remote settings,
// geolocation, queue, then first launch, session and attribution. Calling it
// again after a successful run is a no-op.
func (a *App) Init(ctx context.Context) (err error) {

	logger := log.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Error while initializing Metriqus", log.Any("panic", r))
			err = fmt.Errorf("metriqus initialization failed: %v", r)
		}
	}()

	a.initMu.Lock()
	defer a.initMu.Unlock()
	if a.IsInitialized() {
		return nil
	}

	adID, adErr := a.adapter.ReadAdID(ctx)
	if adErr != nil {
		logger.Warn("Failed to read advertising id", log.Error(adErr))
	}
	a.mu.Lock()
	a.adID = adID
	a.trackingEnabled = adID != ""
	a.mu.Unlock()

	a.fetchRemoteSettings(ctx)
	a.refreshGeolocation(ctx)

	events := eventsProvider.NewEventsProvider(a.ctx, a.storage, a.sender, a.remoteSettings, a.controllerOpts...)
	a.mu.Lock()
	a.events = events
	a.controller = events.GetQueueController()
	a.initialized = true
	a.mu.Unlock()

	if a.lifecycle.ProcessFirstLaunch(ctx) && a.onFirstLaunch != nil {
		a.callbacks.Enqueue(a.onFirstLaunch)
	}
	a.lifecycle.ProcessSession(ctx)
	a.lifecycle.ProcessAttribution(ctx, a.IsTrackingEnabled())
	a.controller.ProcessPending()

	logger.Info("Metriqus initialized", log.String("platform", a.adapter.Name()),
		log.String("environment", a.cfg.Client.Environment), log.Bool("trackingEnabled", a.IsTrackingEnabled()))
	return nil
}

// Start runs the periodic tick on its own goroutine until ctx is done or
// OnQuit is called.
func (a *App) Start(ctx context.Context) {

	interval := time.Duration(a.cfg.Scheduler.TickIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}
	tickCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(a.ctx, cancel)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer stop()
		defer cancel()
		schedulers.StartTickScheduler(tickCtx, "metriqus_tick", interval, a.Tick)
	}()
}

// Tick posts a session beat to the host thread and probes connectivity.
func (a *App) Tick(ctx context.Context) {

	if !a.IsInitialized() {
		return
	}
	a.callbacks.Enqueue(a.tracker.TrackSessionBeat)
	a.connectivity.Check(ctx)
}

// Update runs the callbacks queued by background work. Hosts call it once per
// frame or loop iteration.
func (a *App) Update() int {
	return a.callbacks.Drain()
}

// Dispatch queues fn for the next Update. It never blocks.
func (a *App) Dispatch(fn func()) bool {
	return a.callbacks.Enqueue(fn)
}

// OnPause seals whatever is queued so it is delivered while the host is in
// the background.
func (a *App) OnPause() {

	if !a.IsInitialized() {
		return
	}
	log.GetLogger().Debug("Application paused, flushing events")
	a.queue().Flush()
}

func (a *App) OnResume(ctx context.Context) {

	if !a.IsInitialized() {
		return
	}
	log.GetLogger().Debug("Application resumed, processing session")
	a.lifecycle.ProcessSession(ctx)
	a.queue().ProcessPending()
}

// OnQuit flushes the queue and waits for delivery until ctx is done, then
// stops background work and closes storage. Undelivered batches stay
// persisted for the next run.
func (a *App) OnQuit(ctx context.Context) {

	a.quitOnce.Do(func() {
		logger := log.GetLogger()
		if c := a.queue(); c != nil {
			c.Flush()
			done := make(chan struct{})
			go func() {
				c.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("Quitting before delivery finished, batches stay queued",
					log.Int("pending", c.PendingCount()))
			}
			c.Close()
		}
		a.cancel()
		a.wg.Wait()
		a.callbacks.Drain()
		if err := a.storageProvider.Close(); err != nil {
			logger.Warn("Failed to close local storage", log.Error(err))
		}
	})
}

func (a *App) TrackCustomEvent(e trackingModel.CustomEvent) {
	if a.ready("TrackCustomEvent") {
		a.tracker.TrackCustomEvent(e)
	}
}

func (a *App) TrackIAPEvent(r trackingModel.InAppRevenue) {
	if a.ready("TrackIAPEvent") {
		a.tracker.TrackIAPEvent(r)
	}
}

func (a *App) TrackAdRevenue(r trackingModel.AdRevenue) {
	if a.ready("TrackAdRevenue") {
		a.tracker.TrackAdRevenue(r)
	}
}

func (a *App) TrackPerformance(fps int32, params ...eventsModel.TypedValue) {
	if a.ready("TrackPerformance") {
		a.tracker.TrackPerformance(fps, params...)
	}
}

func (a *App) TrackScreenView(screenName string, params ...eventsModel.TypedValue) {
	if a.ready("TrackScreenView") {
		a.tracker.TrackScreenView(screenName, params...)
	}
}

func (a *App) TrackButtonClick(buttonName string, params ...eventsModel.TypedValue) {
	if a.ready("TrackButtonClick") {
		a.tracker.TrackButtonClick(buttonName, params...)
	}
}

// SetUserAttribute replaces any attribute with the same name.
func (a *App) SetUserAttribute(attr eventsModel.TypedValue) {
	if a.ready("SetUserAttribute") {
		a.attributes.Set(attr)
	}
}

func (a *App) RemoveUserAttribute(name string) {
	if a.ready("RemoveUserAttribute") {
		a.attributes.Remove(name)
	}
}

// UpdateIOSConversionValue forwards value to the platform adapter.
func (a *App) UpdateIOSConversionValue(ctx context.Context, value int) error {

	if !a.ready("UpdateIOSConversionValue") {
		return errors2.NewClientErrorWithoutCode(errors2.SDK_NOT_INITIALIZED)
	}
	if err := a.adapter.UpdateConversionValue(ctx, value); err != nil {
		log.GetLogger().Warn("Conversion value not updated", log.Int("value", value), log.Error(err))
		return err
	}
	return nil
}

// SetLogLevel re-initializes the process logger at the matching level.
func (a *App) SetLogLevel(level LogLevel) error {

	if err := log.Init(level.SlogLevel()); err != nil {
		return err
	}
	a.mu.Lock()
	a.logLevel = level
	a.mu.Unlock()
	return nil
}

func (a *App) LogLevel() LogLevel {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logLevel
}

func (a *App) IsInitialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

func (a *App) IsTrackingEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.trackingEnabled
}

func (a *App) AdID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.adID
}

func (a *App) SessionID() string {
	return a.lifecycle.SessionID()
}

func (a *App) UniqueUserID() string {
	return a.uniqueUserID
}

func (a *App) IsFirstLaunch() bool {
	return a.lifecycle.IsFirstLaunch()
}

// UserFirstTouchTimestamp is the first launch in Unix seconds, or zero before
// it has been recorded.
func (a *App) UserFirstTouchTimestamp() int64 {
	first, ok := a.lifecycle.FirstLaunchTime()
	if !ok {
		return 0
	}
	return utils.DateToTimestamp(first)
}

func (a *App) Geolocation() *geoModel.Geolocation {
	return a.geolocation.Current()
}

func (a *App) UserAttributes() []eventsModel.TypedValue {
	return a.attributes.List()
}

func (a *App) RemoteSettings() rsmodel.RemoteSettings {
	return a.remoteSettings.Current()
}

func (a *App) DeviceInfo() platform.DeviceInfo {
	return a.device
}

// QueueController exposes the controller for inspection; nil before Init.
func (a *App) QueueController() eventsService.EventQueueControllerInterface {
	return a.queue()
}

func (a *App) queue() eventsService.EventQueueControllerInterface {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.controller
}

func (a *App) ready(action string) bool {

	if a.IsInitialized() {
		return true
	}
	log.GetLogger().Error(errors2.SDK_NOT_INITIALIZED.Message, log.String("code", errors2.SDK_NOT_INITIALIZED.Code),
		log.String("action", action))
	return false
}

func (a *App) fetchRemoteSettings(ctx context.Context) {

	a.remoteSettings.Fetch(ctx, rsService.FetchRequest{
		Platform:    int(platform.PlatformCode(a.adapter.Name())),
		ClientKey:   a.cfg.Client.ClientKey,
		PackageName: a.device.PackageName,
	})
}

func (a *App) refreshGeolocation(ctx context.Context) {
	a.geolocation.Refresh(ctx, a.remoteSettings.Current().GeolocationFetchIntervalDays)
}

// onConnected retries the startup fetches that failed while offline and
// restarts delivery of anything left pending.
func (a *App) onConnected() {

	if !a.IsInitialized() {
		return
	}
	if !a.remoteSettings.Fetched() {
		a.fetchRemoteSettings(a.ctx)
	}
	if !a.geolocation.Fetched() {
		a.refreshGeolocation(a.ctx)
	}
	a.queue().ProcessPending()
}
