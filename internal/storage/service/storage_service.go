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
	"strconv"
	"strings"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/storage/store"
	"github.com/metriqus/metriqus-sdk-go/internal/system/cache"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
)

// StorageServiceInterface is the typed view over the local store that the
// rest of the pipeline uses. Loaders never fail: a missing or unreadable value
// yields the zero value or the supplied default.
type StorageServiceInterface interface {
	LoadString(key string) string
	LoadInt(key string, def int) int
	LoadInt64(key string, def int64) int64
	LoadFloat(key string, def float64) float64
	LoadBool(key string, def bool) bool
	LoadTime(key string) (time.Time, bool)
	SaveString(key, value string) error
	SaveTime(key string, t time.Time) error
	Exists(key string) bool
	Delete(key string) error
}

// StorageService fronts a store with a short-lived read cache.
type StorageService struct {
	store     store.StoreInterface
	readCache *cache.Cache[string]
}

// NewStorageService wraps st. A non-positive ttl disables the read cache.
func NewStorageService(st store.StoreInterface, ttl time.Duration) *StorageService {
	s := &StorageService{store: st}
	if ttl > 0 {
		s.readCache = cache.NewCache[string](ttl)
	}
	return s
}

func (s *StorageService) LoadString(key string) string {
	if s.readCache != nil {
		if v, ok := s.readCache.Get(key); ok {
			return v
		}
	}
	v, err := s.store.Get(key)
	if err != nil {
		log.GetLogger().Warn("Falling back to empty value", log.String("key", key), log.Error(err))
		return ""
	}
	if s.readCache != nil && v != "" {
		s.readCache.Set(key, v)
	}
	return v
}

func (s *StorageService) LoadInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s.LoadString(key)))
	if err != nil {
		return def
	}
	return v
}

func (s *StorageService) LoadInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s.LoadString(key)), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func (s *StorageService) LoadFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s.LoadString(key)), 64)
	if err != nil {
		return def
	}
	return v
}

func (s *StorageService) LoadBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s.LoadString(key)))
	if err != nil {
		return def
	}
	return v
}

// LoadTime reads a timestamp written by SaveTime. ok is false when the key is
// missing or unparsable.
func (s *StorageService) LoadTime(key string) (time.Time, bool) {
	raw := s.LoadString(key)
	if raw == "" {
		return time.Time{}, false
	}
	return utils.ParseDate(raw)
}

func (s *StorageService) SaveString(key, value string) error {
	if err := s.store.Set(key, value); err != nil {
		if s.readCache != nil {
			s.readCache.Delete(key)
		}
		return err
	}
	if s.readCache != nil {
		s.readCache.Set(key, value)
	}
	return nil
}

func (s *StorageService) SaveTime(key string, t time.Time) error {
	return s.SaveString(key, utils.FormatDate(t))
}

func (s *StorageService) Exists(key string) bool {
	return s.store.Exists(key)
}

func (s *StorageService) Delete(key string) error {
	if s.readCache != nil {
		s.readCache.Delete(key)
	}
	return s.store.Delete(key)
}
