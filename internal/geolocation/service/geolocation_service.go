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
	"sync"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/geolocation/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

type GeolocationServiceInterface interface {
	Refresh(ctx context.Context, intervalDays int) *model.Geolocation
	Current() *model.Geolocation
	Fetched() bool
}

// GeolocationService resolves the device location at most once per refresh
// interval and serves the cached copy in between.
type GeolocationService struct {
	client  client.HTTPClientInterface
	storage storageService.StorageServiceInterface
	url     string
	now     func() time.Time

	mu      sync.RWMutex
	current *model.Geolocation
	fetched bool
}

func NewGeolocationService(c client.HTTPClientInterface, storage storageService.StorageServiceInterface,
	url string) *GeolocationService {

	return &GeolocationService{client: c, storage: storage, url: url, now: time.Now}
}

// WithClock replaces time.Now, mostly for tests.
func (s *GeolocationService) WithClock(now func() time.Time) *GeolocationService {
	s.now = now
	return s
}

// Refresh fetches a new location when more than intervalDays whole days have
// passed since the last successful fetch, and otherwise loads the cached one.
func (s *GeolocationService) Refresh(ctx context.Context, intervalDays int) *model.Geolocation {

	logger := log.GetLogger()
	now := s.now()

	due := true
	if last, ok := s.storage.LoadTime(constants.GeolocationLastFetchedTimeKey); ok {
		due = int(now.Sub(last).Hours()/24) > intervalDays
	}

	reached := true
	if due {
		logger.Debug("Fetching geolocation")
		if g := s.fetch(ctx); g != nil {
			_ = s.storage.SaveString(constants.GeolocationSettingsKey, g.ToJSON())
			_ = s.storage.SaveTime(constants.GeolocationLastFetchedTimeKey, now)
			s.set(g, true)
			return g
		}
		reached = false
	}

	if s.storage.Exists(constants.GeolocationSettingsKey) {
		if cached := model.Parse(s.storage.LoadString(constants.GeolocationSettingsKey)); cached != nil {
			logger.Debug("Geolocation loaded from storage")
			s.mu.Lock()
			s.current = cached
			if reached {
				s.fetched = true
			}
			s.mu.Unlock()
			return cached
		}
	}

	s.mu.Lock()
	s.fetched = false
	current := s.current
	s.mu.Unlock()
	return current
}

func (s *GeolocationService) fetch(ctx context.Context) *model.Geolocation {

	headers := map[string]string{
		constants.ContentTypeHeader: constants.ContentTypeJSON,
		constants.AcceptHeader:      constants.ContentTypeJSON,
	}
	resp := s.client.Get(ctx, s.url, headers)
	if !resp.IsSuccess() {
		log.GetLogger().Debug("Geolocation could not be fetched",
			log.String("code", errors2.GEOLOCATION_FETCH_FAILED.Code))
		return nil
	}
	env := client.ParseEnvelope(resp.Data)
	if env == nil {
		return nil
	}
	return model.Parse(env.Data)
}

func (s *GeolocationService) set(g *model.Geolocation, fetched bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = g
	s.fetched = fetched
}

func (s *GeolocationService) Current() *model.Geolocation {

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	g := *s.current
	return &g
}

// Fetched reports whether a location is available for this run without
// another network round trip.
func (s *GeolocationService) Fetched() bool {

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}
