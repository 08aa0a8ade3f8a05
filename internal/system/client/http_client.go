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
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// ErrorType classifies how a request failed.
type ErrorType int

const (
	NoError ErrorType = iota
	// ConnectionError means the server could not be reached.
	ConnectionError
	// ProtocolError means the server answered with a non-2xx status.
	ProtocolError
	// DataProcessingError means the response body could not be read.
	DataProcessingError
)

func (e ErrorType) String() string {
	switch e {
	case ConnectionError:
		return "ConnectionError"
	case ProtocolError:
		return "ProtocolError"
	case DataProcessingError:
		return "DataProcessingError"
	default:
		return "NoError"
	}
}

// Response is the outcome of an outbound request. Data is the raw body and is
// kept even for error statuses.
type Response struct {
	StatusCode int
	Data       string
	Errors     []string
	ErrorType  ErrorType
}

func (r *Response) IsSuccess() bool {
	return r != nil && len(r.Errors) == 0 &&
		r.StatusCode >= 200 && r.StatusCode < 300 &&
		r.ErrorType == NoError
}

type HTTPClientInterface interface {
	Get(ctx context.Context, url string, headers map[string]string) *Response
	Post(ctx context.Context, url string, body []byte, headers map[string]string) *Response
}

type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient creates a client with a tuned transport and the given overall
// request timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     60 * time.Second,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
	}
	return &HTTPClient{
		httpClient: &http.Client{
			Transport: tr,
			Timeout:   timeout,
		},
	}
}

// NewHTTPClientWith wraps an existing http.Client, e.g. one returned by
// httptest.Server.Client().
func NewHTTPClientWith(c *http.Client) *HTTPClient {
	return &HTTPClient{httpClient: c}
}

func (c *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) *Response {
	return c.do(ctx, http.MethodGet, url, nil, headers)
}

func (c *HTTPClient) Post(ctx context.Context, url string, body []byte, headers map[string]string) *Response {
	return c.do(ctx, http.MethodPost, url, body, headers)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body []byte, headers map[string]string) *Response {
	logger := log.GetLogger()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		logger.Debug("Failed to build request", log.String("url", url), log.Error(err))
		return &Response{Errors: []string{err.Error()}, ErrorType: ConnectionError}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("Connection error, cannot reach the server", log.String("url", url), log.Error(err))
		return &Response{Errors: []string{err.Error()}, ErrorType: ConnectionError}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("Data processing error, response could not be read", log.String("url", url), log.Error(err))
		return &Response{
			StatusCode: resp.StatusCode,
			Errors:     []string{err.Error()},
			ErrorType:  DataProcessingError,
		}
	}

	out := &Response{StatusCode: resp.StatusCode, Data: string(data), ErrorType: NoError}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.ErrorType = ProtocolError
		out.Errors = []string{fmt.Sprintf("HTTP %d %s", resp.StatusCode,
			strings.TrimSpace(http.StatusText(resp.StatusCode)))}
		logger.Debug("Protocol error returned by the server", log.String("url", url),
			log.Int("status", resp.StatusCode))
	}
	return out
}
