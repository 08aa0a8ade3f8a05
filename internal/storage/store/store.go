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

// Package store persists obfuscated string values by key.
package store

// GetResult carries the outcome of an asynchronous read.
type GetResult struct {
	Value string
	Err   error
}

// StoreInterface is the local key/value contract. Get returns an empty string
// and no error for a key that was never written. Async variants behave exactly
// like their synchronous counterparts and deliver one result on the returned
// channel.
type StoreInterface interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Exists(key string) bool
	Delete(key string) error
	GetAsync(key string) <-chan GetResult
	SetAsync(key, value string) <-chan error
	Close() error
}

type syncStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// asyncOps derives the async methods from a backend's sync ones.
type asyncOps struct {
	s syncStore
}

func (a asyncOps) GetAsync(key string) <-chan GetResult {
	ch := make(chan GetResult, 1)
	go func() {
		v, err := a.s.Get(key)
		ch <- GetResult{Value: v, Err: err}
	}()
	return ch
}

func (a asyncOps) SetAsync(key, value string) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- a.s.Set(key, value)
	}()
	return ch
}
