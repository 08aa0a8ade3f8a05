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

package cache

import (
	"sync"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

type CacheItem[V any] struct {
	Value      V
	Expiration time.Time
}

// Cache is a TTL map safe for concurrent use.
type Cache[V any] struct {
	items map[string]CacheItem[V]
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

// NewCache creates a new cache with a TTL (time-to-live)
func NewCache[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]CacheItem[V]),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Set adds an item to the cache
func (c *Cache[V]) Set(key string, value V) {

	log.GetLogger().Debug("Setting cache", log.String("key", key))
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = CacheItem[V]{
		Value:      value,
		Expiration: c.now().Add(c.ttl),
	}
}

// Get retrieves an item from the cache
func (c *Cache[V]) Get(key string) (V, bool) {

	var zero V
	c.mutex.RLock()
	item, found := c.items[key]
	c.mutex.RUnlock()
	if !found {
		return zero, false
	}
	if c.now().After(item.Expiration) {
		log.GetLogger().Debug("Cache expired", log.String("key", key))
		c.Delete(key)
		return zero, false
	}

	return item.Value, true
}

// Delete removes an item from the cache
func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Len reports the number of entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
