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

package store

import "sync"

// MemoryStore is a process-local store for tests and hosts without a writable
// data directory.
type MemoryStore struct {
	asyncOps
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{values: make(map[string]string)}
	ms.asyncOps = asyncOps{s: ms}
	return ms
}

func (ms *MemoryStore) Get(key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.values[key], nil
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Exists(key string) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, ok := ms.values[key]
	return ok
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
