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

package client

import (
	"context"
	"sync"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// ConnectivityChecker probes a well-known URL. Only a connection failure counts
// as offline; any answer from the server, even an error status, means the
// network is up.
type ConnectivityChecker struct {
	client      HTTPClientInterface
	probeURL    string
	mu          sync.RWMutex
	connected   bool
	onConnected func()
}

func NewConnectivityChecker(client HTTPClientInterface, probeURL string) *ConnectivityChecker {
	return &ConnectivityChecker{client: client, probeURL: probeURL}
}

// OnConnected registers the hook fired after every successful probe.
func (c *ConnectivityChecker) OnConnected(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnected = fn
}

func (c *ConnectivityChecker) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *ConnectivityChecker) Check(ctx context.Context) bool {
	resp := c.client.Get(ctx, c.probeURL, nil)
	reachable := resp != nil && resp.ErrorType != ConnectionError

	c.mu.Lock()
	c.connected = reachable
	hook := c.onConnected
	c.mu.Unlock()

	if !reachable {
		log.GetLogger().Debug("No internet connection", log.String("probe", c.probeURL))
		return false
	}
	if hook != nil {
		hook()
	}
	return true
}
