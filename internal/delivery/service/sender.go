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
	"fmt"
	"strconv"
	"strings"
	"time"

	rsmodel "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	sysContext "github.com/metriqus/metriqus-sdk-go/internal/system/context"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// Credentials identify the application to the collector.
type Credentials struct {
	ClientKey    string
	ClientSecret string
}

// SettingsSource supplies the event post url.
type SettingsSource interface {
	Current() rsmodel.RemoteSettings
}

type encryptedBody struct {
	EncryptedData string `json:"encryptedData"`
}

// EventSender posts encrypted, signed batches to the collector.
type EventSender struct {
	client      client.HTTPClientInterface
	credentials Credentials
	settings    SettingsSource
	now         func() time.Time
}

func NewEventSender(c client.HTTPClientInterface, credentials Credentials, settings SettingsSource) *EventSender {

	return &EventSender{client: c, credentials: credentials, settings: settings, now: time.Now}
}

// WithClock replaces the source of the request timestamp.
func (s *EventSender) WithClock(now func() time.Time) *EventSender {
	s.now = now
	return s
}

// PostEventBatch reports whether the collector accepted batchJSON. Every
// failure, including a panic below this call, reduces to false.
func (s *EventSender) PostEventBatch(ctx context.Context, batchJSON string) (accepted bool) {

	logger := log.GetLogger().With(log.String("traceId", sysContext.TraceID(ctx)))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Sending events failed", log.String("panic", fmt.Sprint(r)))
			accepted = false
		}
	}()

	url := s.settings.Current().EventPostURL
	if strings.TrimSpace(url) == "" {
		logger.Warn("Can't find event post url", log.String("code", errors2.MISSING_POST_URL.Code))
		return false
	}
	if s.credentials.ClientKey == "" || s.credentials.ClientSecret == "" {
		logger.Warn("Can't send events without credentials", log.String("code", errors2.MISSING_CREDENTIALS.Code))
		return false
	}

	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	encrypted, err := Encrypt(batchJSON, s.credentials.ClientSecret, s.credentials.ClientKey)
	if err != nil {
		logger.Error("Failed to encrypt event batch", log.Error(err))
		return false
	}
	body, err := json.Marshal(encryptedBody{EncryptedData: encrypted})
	if err != nil {
		logger.Error("Failed to encode event batch body", log.Error(err))
		return false
	}

	headers := map[string]string{
		constants.ContentTypeHeader: constants.ContentTypeJSON,
		constants.AcceptHeader:      constants.ContentTypeJSON,
		constants.ClientKeyHeader:   s.credentials.ClientKey,
		constants.SignatureHeader:   Sign(s.credentials.ClientKey, s.credentials.ClientSecret, encrypted, timestamp),
		constants.TimestampHeader:   timestamp,
	}

	resp := s.client.Post(ctx, url, body, headers)
	if !resp.IsSuccess() {
		if resp != nil {
			for _, e := range resp.Errors {
				logger.Error("Sending events failed", log.String("error", e),
					log.String("type", resp.ErrorType.String()), log.String("message", resp.Data))
			}
		}
		return false
	}

	env := client.ParseEnvelope(resp.Data)
	if env == nil {
		logger.Error("Sending events failed, unreadable collector response",
			log.String("code", errors2.DELIVERY_FAILED.Code))
		return false
	}
	if !env.IsSuccess() {
		logger.Warn("Collector rejected event batch", log.String("code", errors2.COLLECTOR_REJECTED.Code),
			log.Int64("status", env.StatusCode), log.Any("errors", env.ErrorMessages))
		return false
	}
	return true
}
