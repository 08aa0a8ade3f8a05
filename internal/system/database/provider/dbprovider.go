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

package provider

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/metriqus/metriqus-sdk-go/internal/system/database/client"
	"github.com/metriqus/metriqus-sdk-go/internal/system/database/scripts"
)

const driverName = "sqlite"

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(ctx context.Context) (client.DBClientInterface, error)
	Close() error
}

// DBProvider opens one SQLite database file and hands out a shared client.
// SQLite serializes writers, so a single pooled handle is kept per file.
type DBProvider struct {
	path   string
	once   sync.Once
	client client.DBClientInterface
	err    error
}

func NewDBProvider(path string) *DBProvider {
	return &DBProvider{path: path}
}

// GetDBClient opens the database on first use and ensures the schema.
func (d *DBProvider) GetDBClient(ctx context.Context) (client.DBClientInterface, error) {
	d.once.Do(func() {
		d.client, d.err = d.open(ctx)
	})
	return d.client, d.err
}

func (d *DBProvider) open(ctx context.Context) (client.DBClientInterface, error) {
	if dir := filepath.Dir(d.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, d.path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbClient := client.NewDBClient(db)
	if err := dbClient.InitDatabase(ctx, scripts.Schema[driverName]...); err != nil {
		_ = dbClient.Close()
		return nil, err
	}
	return dbClient, nil
}

func (d *DBProvider) Close() error {
	if d.client == nil {
		return nil
	}
	return d.client.Close()
}
