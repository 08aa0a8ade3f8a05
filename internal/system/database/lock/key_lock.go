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

package lock

import (
	"hash/fnv"
	"sync"
)

const stripeCount = 64

// KeyLock serializes access per key. Keys are hashed onto a fixed set of
// stripes, so two keys may share a mutex but one key always maps to the same
// one.
type KeyLock struct {
	stripes [stripeCount]sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{}
}

func (l *KeyLock) stripe(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &l.stripes[h.Sum32()%stripeCount]
}

func (l *KeyLock) Acquire(key string) {
	l.stripe(key).Lock()
}

func (l *KeyLock) Release(key string) {
	l.stripe(key).Unlock()
}

// With runs fn while holding the lock for key.
func (l *KeyLock) With(key string, fn func() error) error {
	m := l.stripe(key)
	m.Lock()
	defer m.Unlock()
	return fn()
}
