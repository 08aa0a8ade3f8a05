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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	"github.com/metriqus/metriqus-sdk-go/internal/metriqus"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/metrics"
	trackingModel "github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
	"github.com/metriqus/metriqus-sdk-go/pkg/logger"
)

const (
	configFile   = "/repository/conf/deployment.yaml"
	quitTimeout  = 10 * time.Second
	demoInterval = 2 * time.Second
)

func main() {
	metriqusHome, demoEvents, debug := parseFlags()
	logger.Init(debug)

	envFiles, err := filepath.Glob(filepath.Join(metriqusHome, "config", "*.env"))
	if err != nil || len(envFiles) == 0 {
		logger.Info("No .env files found in config directory", "home", metriqusHome)
	}
	_ = godotenv.Load(envFiles...)

	// Load the configuration file
	metriqusConfig, err := config.LoadConfig(metriqusHome, configFile)
	if err != nil {
		logger.Error(err, "Failed to load configuration")
		os.Exit(1)
	}

	// Initialize runtime configurations.
	if err := config.InitializeMetriqusRuntime(metriqusHome, metriqusConfig); err != nil {
		logger.Error(err, "Failed to initialize metriqus runtime")
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(metriqusConfig.Log.LogLevel); err != nil {
		logger.Error(err, "Invalid log level, falling back to INFO", "level", metriqusConfig.Log.LogLevel)
		_ = log.Init("INFO")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metriqusConfig.Metrics.Enabled {
		startMetricsServer(ctx, metriqusConfig.Metrics.Addr)
	}

	app, err := metriqus.NewApp(ctx, *metriqusConfig, metriqus.Options{
		Home: metriqusHome,
		OnFirstLaunch: func() {
			log.GetLogger().Info("First launch of this install")
		},
	})
	if err != nil {
		log.GetLogger().Fatal("Failed to create metriqus app", log.Error(err))
	}

	if !metriqusConfig.Client.ManualStart {
		initialize(ctx, app)
	}
	runHostLoop(ctx, app, metriqusConfig, demoEvents)

	log.GetLogger().Info("Shutting down, flushing events")
	quitCtx, cancel := context.WithTimeout(context.Background(), quitTimeout)
	defer cancel()
	app.OnQuit(quitCtx)
}

func parseFlags() (string, int, bool) {

	homeFlag := flag.String("metriqusHome", "", "Path to metriqus agent home directory")
	eventsFlag := flag.Int("events", 20, "Number of demo events to emit, 0 to only keep sessions alive")
	debugFlag := flag.Bool("debug", false, "Enable bootstrap debug logs")
	flag.Parse()

	home := *homeFlag
	if home == "" {
		// If no command line argument is provided, use the current working directory.
		dir, err := os.Getwd()
		if err != nil {
			logger.Error(err, "Failed to get current working directory")
		}
		home = dir
	} else {
		logger.Info(fmt.Sprintf("Using %s from command line argument", home))
	}
	return home, *eventsFlag, *debugFlag
}

func initialize(ctx context.Context, app *metriqus.App) {

	if err := app.Init(ctx); err != nil {
		log.GetLogger().Error("Metriqus initialization failed", log.Error(err))
		return
	}
	app.Start(ctx)
}

func startMetricsServer(ctx context.Context, addr string) {

	metrics.Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.GetLogger().Info("Metrics endpoint listening", log.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.GetLogger().Error("Metrics endpoint stopped", log.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

// runHostLoop plays the host application: it drains callbacks every loop
// interval and emits the demo stream until ctx is cancelled.
func runHostLoop(ctx context.Context, app *metriqus.App, cfg *config.Config, demoEvents int) {

	loop := time.NewTicker(time.Duration(cfg.Scheduler.HostLoopIntervalMilli) * time.Millisecond)
	defer loop.Stop()
	demo := time.NewTicker(demoInterval)
	defer demo.Stop()

	emitted := 0
	for {
		select {
		case <-ctx.Done():
			app.Update()
			return
		case <-loop.C:
			app.Update()
		case <-demo.C:
			if emitted >= demoEvents {
				continue
			}
			if !app.IsInitialized() {
				initialize(ctx, app)
			}
			emitDemoEvent(app, emitted)
			emitted++
			if emitted == demoEvents {
				log.GetLogger().Info("Demo stream finished, waiting for interrupt", log.Int("events", emitted))
			}
		}
	}
}

func emitDemoEvent(app *metriqus.App, n int) {

	level := int32(n/4 + 1)
	switch n % 6 {
	case 0:
		app.TrackCustomEvent(trackingModel.NewLevelStartedEvent(trackingModel.EventFields{
			LevelNumber: trackingModel.Ptr(level),
			LevelName:   fmt.Sprintf("level-%d", level),
		}))
	case 1:
		app.TrackScreenView("shop", eventsModel.NewIntValue("visit", int32(n)))
	case 2:
		app.TrackButtonClick("buy_gems")
		app.TrackIAPEvent(trackingModel.NewInAppRevenue(1.99, "USD"))
	case 3:
		app.TrackAdRevenue(trackingModel.NewAppLovinAdRevenue(0.0021, "USD"))
	case 4:
		app.TrackPerformance(58)
	default:
		app.SetUserAttribute(eventsModel.NewIntValue("max_level", level))
		app.TrackCustomEvent(trackingModel.NewLevelCompletedEvent(trackingModel.EventFields{
			LevelNumber:   trackingModel.Ptr(level),
			LevelProgress: trackingModel.Ptr(float32(100)),
		}))
	}
}
