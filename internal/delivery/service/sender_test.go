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
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rsmodel "github.com/metriqus/metriqus-sdk-go/internal/remote_settings/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type staticSettings struct {
	url string
}

func (s staticSettings) Current() rsmodel.RemoteSettings {
	d := rsmodel.Defaults()
	d.EventPostURL = s.url
	return d
}

func TestSign(t *testing.T) {
	base := Sign("ck", "secret", "Zm9v", "1700000000")
	assert.Equal(t, "1QAxcVnBDbxtp+RFPUvIUNZjPrOFMTO+tKzQhF4LHgw=", base)
	assert.Equal(t, base, Sign("ck", "secret", "Zm9v", "1700000000"))

	variants := map[string]string{
		"client key": Sign("ck2", "secret", "Zm9v", "1700000000"),
		"secret":     Sign("ck", "secret2", "Zm9v", "1700000000"),
		"body":       Sign("ck", "secret", "Zm9w", "1700000000"),
		"timestamp":  Sign("ck", "secret", "Zm9v", "1700000001"),
	}
	for name, sig := range variants {
		assert.NotEqual(t, base, sig, "changing the %s must change the signature", name)
	}
}

func TestEncrypt(t *testing.T) {
	tests := []struct {
		name   string
		plain  string
		blocks int
	}{
		{"empty", "", 1},
		{"short", "hello", 1},
		{"exact block", strings.Repeat("a", 16), 2},
		{"unicode", `[{"event_name":"çağrı ✓"}]`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encrypt(tt.plain, "secret", "ck")
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(enc)
			require.NoError(t, err)
			assert.Len(t, raw, tt.blocks*16)

			again, err := Encrypt(tt.plain, "secret", "ck")
			require.NoError(t, err)
			assert.Equal(t, enc, again)

			plain, err := Decrypt(enc, "secret", "ck")
			require.NoError(t, err)
			assert.Equal(t, tt.plain, plain)
		})
	}

	other, err := Encrypt("hello", "secret", "other-key")
	require.NoError(t, err)
	first, _ := Encrypt("hello", "secret", "ck")
	assert.NotEqual(t, first, other, "the IV depends on the client key")

	_, err = Decrypt("not base64!", "secret", "ck")
	assert.Error(t, err)
}

func newCollector(t *testing.T, status int, body string, seen func(r *http.Request, payload string)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if seen != nil {
			seen(r, string(b))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPostEventBatch_SendsEncryptedSignedBody(t *testing.T) {
	const batch = `[{"event_name":"level_start"}]`
	fixed := time.Unix(1700000000, 0)

	var headers http.Header
	var payload string
	server := newCollector(t, http.StatusOK, `{"data":"ok","statusCode":200,"errorMessages":[]}`,
		func(r *http.Request, p string) {
			headers = r.Header.Clone()
			payload = p
		})

	sender := NewEventSender(client.NewHTTPClientWith(server.Client()),
		Credentials{ClientKey: "ck", ClientSecret: "secret"}, staticSettings{url: server.URL}).
		WithClock(func() time.Time { return fixed })

	require.True(t, sender.PostEventBatch(context.Background(), batch))

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &body))
	encrypted := body["encryptedData"]
	plain, err := Decrypt(encrypted, "secret", "ck")
	require.NoError(t, err)
	assert.Equal(t, batch, plain)

	assert.Equal(t, constants.ContentTypeJSON, headers.Get(constants.ContentTypeHeader))
	assert.Equal(t, constants.ContentTypeJSON, headers.Get(constants.AcceptHeader))
	assert.Equal(t, "ck", headers.Get(constants.ClientKeyHeader))
	assert.Equal(t, "1700000000", headers.Get(constants.TimestampHeader))
	assert.Equal(t, Sign("ck", "secret", encrypted, "1700000000"), headers.Get(constants.SignatureHeader))
}

func TestPostEventBatch_Failures(t *testing.T) {
	creds := Credentials{ClientKey: "ck", ClientSecret: "secret"}

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"data":"x","statusCode":500}`},
		{"envelope errors", http.StatusOK, `{"data":"x","statusCode":200,"errorMessages":["bad signature"]}`},
		{"envelope status", http.StatusOK, `{"data":"x","statusCode":401}`},
		{"no envelope", http.StatusOK, `ok`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newCollector(t, tt.status, tt.body, nil)
			sender := NewEventSender(client.NewHTTPClientWith(server.Client()), creds, staticSettings{url: server.URL})
			assert.False(t, sender.PostEventBatch(context.Background(), "[]"))
		})
	}

	t.Run("missing post url", func(t *testing.T) {
		called := false
		server := newCollector(t, http.StatusOK, `{"data":"ok","statusCode":200}`,
			func(*http.Request, string) { called = true })
		sender := NewEventSender(client.NewHTTPClientWith(server.Client()), creds, staticSettings{})
		assert.False(t, sender.PostEventBatch(context.Background(), "[]"))
		assert.False(t, called)
	})

	t.Run("missing credentials", func(t *testing.T) {
		server := newCollector(t, http.StatusOK, `{"data":"ok","statusCode":200}`, nil)
		sender := NewEventSender(client.NewHTTPClientWith(server.Client()), Credentials{}, staticSettings{url: server.URL})
		assert.False(t, sender.PostEventBatch(context.Background(), "[]"))
	})

	t.Run("unreachable", func(t *testing.T) {
		sender := NewEventSender(client.NewHTTPClient(time.Second), creds, staticSettings{url: "http://127.0.0.1:1"})
		assert.False(t, sender.PostEventBatch(context.Background(), "[]"))
	})
}
