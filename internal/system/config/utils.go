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

package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v2"

	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
)

const (
	defaultRemoteSettingsURL = "https://rmt.metriqus.com/event/remote-settings"
	defaultGeolocationURL    = "https://sdk.metriqus.com/event/geo"
	defaultConnectivityURL   = "https://www.google.com"
)

// LoadConfig reads the YAML file under metriqusHome, expands environment
// variables and fills defaults for anything left empty.
func LoadConfig(metriqusHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(metriqusHome, filePath))
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig parses raw YAML bytes into a Config.
func ParseConfig(raw []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with the shipped defaults. Intervals, sizes
// and timeouts that are negative are replaced as well.
func (c *Config) ApplyDefaults() {
	if c.Log.LogLevel == "" {
		c.Log.LogLevel = "INFO"
	}
	if c.Client.Environment == "" {
		c.Client.Environment = "sandbox"
	}
	if c.Client.LogLevel == "" {
		c.Client.LogLevel = "verbose"
	}
	if c.App.Platform == "" {
		c.App.Platform = "android"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data"
	}
	if c.Storage.CacheTTLSeconds == 0 {
		c.Storage.CacheTTLSeconds = 60
	}
	if c.Endpoints.RemoteSettingsURL == "" {
		c.Endpoints.RemoteSettingsURL = defaultRemoteSettingsURL
	}
	if c.Endpoints.GeolocationURL == "" {
		c.Endpoints.GeolocationURL = defaultGeolocationURL
	}
	if c.Endpoints.ConnectivityURL == "" {
		c.Endpoints.ConnectivityURL = defaultConnectivityURL
	}
	if c.Endpoints.TimeoutSeconds <= 0 {
		c.Endpoints.TimeoutSeconds = 30
	}
	if c.Scheduler.TickIntervalSeconds <= 0 {
		c.Scheduler.TickIntervalSeconds = 60
	}
	if c.Scheduler.CallbackQueueSize <= 0 {
		c.Scheduler.CallbackQueueSize = 256
	}
	if c.Scheduler.HostLoopIntervalMilli <= 0 {
		c.Scheduler.HostLoopIntervalMilli = 100
	}
}

// Validate reports configuration the pipeline cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Client.ClientKey) == "" || strings.TrimSpace(c.Client.ClientSecret) == "" {
		return errors2.NewClientErrorWithoutCode(errors2.MISSING_CREDENTIALS)
	}
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return errors2.NewClientErrorWithoutCode(errors2.WithDescription(errors2.INVALID_CONFIG,
			fmt.Sprintf("unknown storage backend: %s", c.Storage.Backend)))
	}
	return nil
}

// OverrideMetriqusRuntime holds the runtime configuration for the application
func OverrideMetriqusRuntime(conf Config) {
	runtimeConfig = &MetriqusRuntime{
		Config: conf,
	}
}
