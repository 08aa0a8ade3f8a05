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

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pkg/errors"

	dbClient "github.com/metriqus/metriqus-sdk-go/internal/system/database/client"
	dbProvider "github.com/metriqus/metriqus-sdk-go/internal/system/database/provider"
	"github.com/metriqus/metriqus-sdk-go/internal/system/database/scripts"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

const dialect = "sqlite"

// SQLiteStore keeps every key in a single kv table. Keys are stored in their
// obfuscated form and values as base64 of the obfuscated bytes.
type SQLiteStore struct {
	asyncOps
	provider *dbProvider.DBProvider
	client   dbClient.DBClientInterface
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	p := dbProvider.NewDBProvider(path)
	c, err := p.GetDBClient(ctx)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to open sqlite store at %s", path)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_OPEN_FAILED, errorMsg), err)
	}
	s := &SQLiteStore{provider: p, client: c}
	s.asyncOps = asyncOps{s: s}
	return s, nil
}

func (s *SQLiteStore) Get(key string) (string, error) {
	rows, err := s.client.ExecuteQuery(context.Background(), scripts.GetValue[dialect], ObfuscateKey(key))
	if err != nil {
		return "", s.readError(key, err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	encoded, ok := rows[0]["v"].(string)
	if !ok {
		if b, isBytes := rows[0]["v"].([]byte); isBytes {
			encoded = string(b)
		}
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", s.readError(key, errors.Wrap(err, "decode stored value"))
	}
	return string(Obfuscate(raw)), nil
}

func (s *SQLiteStore) Set(key, value string) error {
	encoded := base64.StdEncoding.EncodeToString(Obfuscate([]byte(value)))
	_, err := s.client.Execute(context.Background(), scripts.UpsertValue[dialect],
		ObfuscateKey(key), encoded, time.Now().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to write key %s", key)
		log.GetLogger().Error(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_WRITE_FAILED, errorMsg),
			errors.Wrapf(err, "upsert %s", key))
	}
	return nil
}

func (s *SQLiteStore) Exists(key string) bool {
	rows, err := s.client.ExecuteQuery(context.Background(), scripts.CountKey[dialect], ObfuscateKey(key))
	if err != nil || len(rows) == 0 {
		return false
	}
	n, _ := rows[0]["n"].(int64)
	return n > 0
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.client.Execute(context.Background(), scripts.DeleteValue[dialect], ObfuscateKey(key)); err != nil {
		return errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_WRITE_FAILED,
			"Failed to delete key "+key), errors.Wrapf(err, "delete %s", key))
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.provider.Close()
}

func (s *SQLiteStore) readError(key string, err error) error {
	errorMsg := fmt.Sprintf("Failed to read key %s", key)
	log.GetLogger().Error(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_READ_FAILED, errorMsg),
		errors.Wrapf(err, "select %s", key))
}
