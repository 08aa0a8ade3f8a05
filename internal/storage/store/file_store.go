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
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/metriqus/metriqus-sdk-go/internal/system/database/lock"
	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// FileStore keeps one file per key under a directory. Access to a key's file
// is serialized so a read always observes the last completed write.
type FileStore struct {
	asyncOps
	dir   string
	locks *lock.KeyLock
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_OPEN_FAILED,
			"Failed to create storage directory "+dir), errors.Wrap(err, "mkdir"))
	}
	fs := &FileStore{dir: dir, locks: lock.NewKeyLock()}
	fs.asyncOps = asyncOps{s: fs}
	return fs, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, ObfuscateKey(key))
}

func (fs *FileStore) Get(key string) (string, error) {
	var value string
	err := fs.locks.With(key, func() error {
		raw, err := os.ReadFile(fs.path(key))
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		value = string(Obfuscate(raw))
		return nil
	})
	if err != nil {
		log.GetLogger().Error("Failed to read stored value", log.String("key", key), log.Error(err))
		return "", errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_READ_FAILED,
			"Failed to read key "+key), errors.Wrapf(err, "read %s", key))
	}
	return value, nil
}

// Set writes through a temporary file and a rename so a crash never leaves a
// half-written value behind.
func (fs *FileStore) Set(key, value string) error {
	err := fs.locks.With(key, func() error {
		target := fs.path(key)
		tmp, err := os.CreateTemp(fs.dir, ".tmp-*")
		if err != nil {
			return err
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(Obfuscate([]byte(value))); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return err
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmpName)
			return err
		}
		return os.Rename(tmpName, target)
	})
	if err != nil {
		log.GetLogger().Error("Failed to write stored value", log.String("key", key), log.Error(err))
		return errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_WRITE_FAILED,
			"Failed to write key "+key), errors.Wrapf(err, "write %s", key))
	}
	return nil
}

func (fs *FileStore) Exists(key string) bool {
	exists := false
	_ = fs.locks.With(key, func() error {
		_, err := os.Stat(fs.path(key))
		exists = err == nil
		return nil
	})
	return exists
}

func (fs *FileStore) Delete(key string) error {
	return fs.locks.With(key, func() error {
		err := os.Remove(fs.path(key))
		if err != nil && !os.IsNotExist(err) {
			return errors2.NewServerError(errors2.WithDescription(errors2.STORAGE_WRITE_FAILED,
				"Failed to delete key "+key), errors.Wrapf(err, "delete %s", key))
		}
		return nil
	})
}

func (fs *FileStore) Close() error {
	return nil
}
