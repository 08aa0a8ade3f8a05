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
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/metriqus/metriqus-sdk-go/internal/events/model"
	storageService "github.com/metriqus/metriqus-sdk-go/internal/storage/service"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// UniqueUserIdentifier returns the per-install user id, creating and storing a
// new one on first use.
func UniqueUserIdentifier(storage storageService.StorageServiceInterface) string {

	if storage.Exists(constants.UniqueUserIdentifierKey) {
		if id := strings.TrimSpace(storage.LoadString(constants.UniqueUserIdentifierKey)); id != "" {
			return id
		}
	}
	id := uuid.NewString()
	if err := storage.SaveString(constants.UniqueUserIdentifierKey, id); err != nil {
		log.GetLogger().Warn("Failed to persist user identifier", log.Error(err))
	}
	return id
}

type UserAttributesServiceInterface interface {
	Set(attr model.TypedValue)
	Remove(name string)
	List() []model.TypedValue
}

// UserAttributesService keeps the attribute snapshot attached to every event.
// Setting an attribute replaces any earlier one with the same name.
type UserAttributesService struct {
	storage storageService.StorageServiceInterface
	mu      sync.RWMutex
	attrs   []model.TypedValue
}

// NewUserAttributesService loads the stored attributes; unreadable data
// yields an empty list.
func NewUserAttributesService(storage storageService.StorageServiceInterface) *UserAttributesService {

	s := &UserAttributesService{storage: storage}
	if storage.Exists(constants.UserAttributesKey) {
		s.attrs = model.ParseTypedValues([]byte(storage.LoadString(constants.UserAttributesKey)))
	}
	return s
}

func (s *UserAttributesService) Set(attr model.TypedValue) {

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(attr.Name())
	s.attrs = append(s.attrs, attr)
	s.saveLocked()
}

func (s *UserAttributesService) Remove(name string) {

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeLocked(name) {
		s.saveLocked()
	}
}

// List returns a copy of the current attributes in insertion order.
func (s *UserAttributesService) List() []model.TypedValue {

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.attrs) == 0 {
		return nil
	}
	out := make([]model.TypedValue, len(s.attrs))
	copy(out, s.attrs)
	return out
}

func (s *UserAttributesService) removeLocked(name string) bool {
	for i, a := range s.attrs {
		if a.Name() == name {
			s.attrs = append(s.attrs[:i], s.attrs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *UserAttributesService) saveLocked() {
	if err := s.storage.SaveString(constants.UserAttributesKey, model.SerializeTypedValues(s.attrs)); err != nil {
		log.GetLogger().Warn("Failed to persist user attributes", log.Error(err))
	}
}
