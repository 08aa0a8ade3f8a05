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

package scripts

var Schema = map[string][]string{
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	},
}

var GetValue = map[string]string{
	"sqlite": `SELECT v FROM kv WHERE k = ?`,
}

var UpsertValue = map[string]string{
	"sqlite": `INSERT INTO kv (k, v, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
}

var DeleteValue = map[string]string{
	"sqlite": `DELETE FROM kv WHERE k = ?`,
}

var CountKey = map[string]string{
	"sqlite": `SELECT COUNT(1) AS n FROM kv WHERE k = ?`,
}
