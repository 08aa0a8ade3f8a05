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
	"path/filepath"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/storage/store"
	"github.com/metriqus/metriqus-sdk-go/internal/system/config"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

const sqliteFileName = "metriqus.db"

// StorageProviderInterface defines the interface for the storage provider.
type StorageProviderInterface interface {
	GetStorageService() service.StorageServiceInterface
	Close() error
}

// StorageProvider owns the configured backend for the lifetime of the app.
type StorageProvider struct {
	store   store.StoreInterface
	service *service.StorageService
}

// NewStorageProvider opens the backend named in cfg. Relative paths are
// resolved against home.
func NewStorageProvider(ctx context.Context, home string, cfg config.StorageConfig) (StorageProviderInterface, error) {
	path := cfg.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(home, path)
	}

	var st store.StoreInterface
	var err error
	switch cfg.Backend {
	case constants.StorageBackendMemory:
		st = store.NewMemoryStore()
	case constants.StorageBackendSQLite:
		st, err = store.NewSQLiteStore(ctx, filepath.Join(path, sqliteFileName))
	case constants.StorageBackendFile, "":
		st, err = store.NewFileStore(path)
	default:
		return nil, errors2.NewClientErrorWithoutCode(errors2.WithDescription(errors2.INVALID_CONFIG,
			"Unknown storage backend: "+cfg.Backend))
	}
	if err != nil {
		return nil, err
	}
	log.GetLogger().Debug("Local storage opened", log.String("backend", cfg.Backend), log.String("path", path))
	return NewStorageProviderWithStore(st, time.Duration(cfg.CacheTTLSeconds)*time.Second), nil
}

// NewStorageProviderWithStore wraps an already opened store.
func NewStorageProviderWithStore(st store.StoreInterface, cacheTTL time.Duration) *StorageProvider {
	return &StorageProvider{store: st, service: service.NewStorageService(st, cacheTTL)}
}

func (p *StorageProvider) GetStorageService() service.StorageServiceInterface {
	return p.service
}

func (p *StorageProvider) Close() error {
	return p.store.Close()
}
