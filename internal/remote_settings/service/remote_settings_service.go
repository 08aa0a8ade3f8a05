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
	"encoding/json"
	"sync"

	"github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// FetchRequest is the body posted to the remote settings endpoint.
type FetchRequest struct {
	Platform    int    `json:"Platform"`
	ClientKey   string `json:"ClientKey"`
	PackageName string `json:"PackageName"`
}

type RemoteSettingsServiceInterface interface {
	Fetch(ctx context.Context, req FetchRequest) bool
	Current() model.RemoteSettings
	Fetched() bool
}

// RemoteSettingsService keeps the active settings. Before any fetch or cache
// load Current reports the defaults.
type RemoteSettingsService struct {
	client  client.HTTPClientInterface
	storage storageService.StorageServiceInterface
	url     string

	mu       sync.RWMutex
	settings *model.RemoteSettings
	fetched  bool
}

func NewRemoteSettingsService(c client.HTTPClientInterface, storage storageService.StorageServiceInterface,
	url string) *RemoteSettingsService {

	return &RemoteSettingsService{client: c, storage: storage, url: url}
}

// Fetch asks the collector for fresh settings and caches them. On failure the
// previously active settings stay; if there are none, the cached copy is used
// and then the defaults.
func (s *RemoteSettingsService) Fetch(ctx context.Context, req FetchRequest) bool {

	logger := log.GetLogger()
	body, err := json.Marshal(req)
	if err != nil {
		logger.Error("Failed to encode remote settings request", log.Error(err))
		return false
	}

	headers := map[string]string{
		constants.ContentTypeHeader: constants.ContentTypeJSON,
		constants.AcceptHeader:      constants.ContentTypeJSON,
	}
	resp := s.client.Post(ctx, s.url, body, headers)

	var env *client.Envelope
	if resp != nil {
		env = client.ParseEnvelope(resp.Data)
	}
	if resp.IsSuccess() && env.IsSuccess() {
		if parsed := model.Parse(env.Data); parsed != nil {
			if err := s.storage.SaveString(constants.RemoteSettingsKey, env.Data); err != nil {
				logger.Warn("Failed to cache remote settings", log.Error(err))
			}
			s.mu.Lock()
			s.settings = parsed
			s.fetched = true
			s.mu.Unlock()
			logger.Debug("Remote settings fetched", log.Int("maxEventBatchCount", parsed.MaxEventBatchCount))
			return true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = false
	if s.settings != nil {
		return false
	}
	if s.storage.Exists(constants.RemoteSettingsKey) {
		if cached := model.Parse(s.storage.LoadString(constants.RemoteSettingsKey)); cached != nil {
			logger.Debug("Remote settings loaded from storage")
			s.settings = cached
			return false
		}
	}
	d := model.Defaults()
	s.settings = &d
	logger.Warn("Remote settings could not be fetched or loaded from storage, using defaults")
	return false
}

func (s *RemoteSettingsService) Current() model.RemoteSettings {

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return model.Defaults()
	}
	return *s.settings
}

// Fetched reports whether the last fetch reached the collector.
func (s *RemoteSettingsService) Fetched() bool {

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}
