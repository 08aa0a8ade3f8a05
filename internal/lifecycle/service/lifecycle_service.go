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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/metriqus/metriqus-sdk-go/internal/platform"
	rsmodel "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/tracking/model"
)

type SettingsSource interface {
	Current() rsmodel.RemoteSettings
}

// Tracker emits the events the lifecycle decides to send.
type Tracker interface {
	TrackSessionStart()
	TrackAttribution(a model.Attribution)
}

type LifecycleServiceInterface interface {
	ProcessFirstLaunch(ctx context.Context) bool
	ProcessSession(ctx context.Context) string
	ProcessAttribution(ctx context.Context, trackingEnabled bool) bool
	IsFirstLaunch() bool
	SessionID() string
	FirstLaunchTime() (time.Time, bool)
}

// LifecycleService decides when an install counts as new, when a session
// starts and when attribution is (re)sent. Decisions survive restarts through
// storage.
type LifecycleService struct {
	storage                 storageService.StorageServiceInterface
	settings                SettingsSource
	adapter                 platform.Adapter
	tracker                 Tracker
	iosUserTrackingDisabled bool
	now                     func() time.Time

	mu            sync.RWMutex
	isFirstLaunch bool
	sessionID     string
}

func NewLifecycleService(storage storageService.StorageServiceInterface, settings SettingsSource,
	adapter platform.Adapter, tracker Tracker, iosUserTrackingDisabled bool) *LifecycleService {

	return &LifecycleService{
		storage:                 storage,
		settings:                settings,
		adapter:                 adapter,
		tracker:                 tracker,
		iosUserTrackingDisabled: iosUserTrackingDisabled,
		now:                     time.Now,
	}
}

// WithClock replaces time.Now, mostly for tests.
func (s *LifecycleService) WithClock(now func() time.Time) *LifecycleService {
	s.now = now
	return s
}

// ProcessFirstLaunch records the first launch time once per install and
// reports whether this run is that first launch.
func (s *LifecycleService) ProcessFirstLaunch(ctx context.Context) bool {

	if s.storage.Exists(constants.FirstLaunchTimeKey) {
		return false
	}
	now := s.now()
	if err := s.storage.SaveTime(constants.FirstLaunchTimeKey, now); err != nil {
		log.GetLogger().Warn("Failed to persist first launch time", log.Error(err))
	}
	s.mu.Lock()
	s.isFirstLaunch = true
	s.mu.Unlock()

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:   log.ActionFirstLaunch,
		TargetType: log.TargetTypeInstall,
	})
	s.adapter.OnFirstLaunch(ctx)
	return true
}

// ProcessSession starts a new session when none exists or the last one began
// at least SessionIntervalMinutes ago; otherwise the stored session resumes.
// The session start time is refreshed either way.
func (s *LifecycleService) ProcessSession(ctx context.Context) string {

	logger := log.GetLogger()
	now := s.now()
	start := true

	if s.storage.Exists(constants.LastSessionStartTimeKey) {
		// An unreadable timestamp loads as the epoch and starts a new session.
		last, _ := s.storage.LoadTime(constants.LastSessionStartTimeKey)
		passed := now.Sub(last).Minutes()
		logger.Debug("Minutes since last session", log.Any("minutes", passed))
		start = passed >= float64(s.settings.Current().SessionIntervalMinutes)
	}

	var id string
	if start {
		id = uuid.NewString()
		if err := s.storage.SaveString(constants.SessionIDKey, id); err != nil {
			logger.Warn("Failed to persist session id", log.Error(err))
		}
	} else if stored := strings.TrimSpace(s.storage.LoadString(constants.SessionIDKey)); stored != "" {
		id = stored
	} else {
		id = uuid.NewString()
	}

	s.mu.Lock()
	s.sessionID = id
	s.mu.Unlock()

	if start {
		logger.Audit(log.AuditEvent{
			ActionID:   log.ActionSessionStarted,
			TargetType: log.TargetTypeSession,
			TargetID:   id,
		})
		s.tracker.TrackSessionStart()
	}
	if err := s.storage.SaveTime(constants.LastSessionStartTimeKey, now); err != nil {
		logger.Warn("Failed to persist session start time", log.Error(err))
	}
	return id
}

// ProcessAttribution sends attribution throughout the check window after
// install, once for installs older than the window that never sent it, and
// one last time when the window closes after an in-window send. Day counts are
// whole days.
func (s *LifecycleService) ProcessAttribution(ctx context.Context, trackingEnabled bool) bool {

	logger := log.GetLogger()
	if !trackingEnabled {
		logger.Debug("Attribution skipped: user does not allow tracking")
		return false
	}
	if s.adapter.Name() == constants.PlatformIOS && s.iosUserTrackingDisabled {
		logger.Debug("Attribution skipped: iOS user tracking disabled")
		return false
	}

	installed, err := s.adapter.InstallTime(ctx)
	if err != nil {
		logger.Warn("Attribution skipped: install time unavailable", log.Error(err))
		return false
	}
	now := s.now()
	window := s.settings.Current().AttributionCheckWindow
	sinceInstall := wholeDays(installed, now)

	send := false
	switch {
	case sinceInstall < window:
		send = true
	case !s.storage.Exists(constants.LastSendAttributionDateKey):
		send = true
	default:
		if last, ok := s.storage.LoadTime(constants.LastSendAttributionDateKey); ok {
			send = wholeDays(installed, last) < window && sinceInstall > window
		}
	}
	if !send {
		return false
	}

	attribution, err := s.adapter.ReadAttribution(ctx)
	if err != nil {
		logger.Warn("Attribution read error", log.Error(err))
		return false
	}
	s.tracker.TrackAttribution(*attribution)
	if err := s.storage.SaveTime(constants.LastSendAttributionDateKey, now); err != nil {
		logger.Warn("Failed to persist attribution send date", log.Error(err))
	}
	logger.Audit(log.AuditEvent{
		ActionID:   log.ActionAttributionSent,
		TargetType: log.TargetTypeInstall,
		Data:       map[string]interface{}{"daysSinceInstall": sinceInstall, "platform": attribution.Platform},
	})
	return true
}

func (s *LifecycleService) IsFirstLaunch() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFirstLaunch
}

func (s *LifecycleService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// FirstLaunchTime returns the recorded first launch, if any.
func (s *LifecycleService) FirstLaunchTime() (time.Time, bool) {

	return s.storage.LoadTime(constants.FirstLaunchTimeKey)
}

// wholeDays truncates toward zero.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
