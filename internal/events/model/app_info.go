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

package model

import "bytes"

const (
	packageNameKey = "package_name"
	appVersionKey  = "app_version"
)

type AppInfo struct {
	PackageName string
	AppVersion  string
}

func (a AppInfo) writeJSON(buf *bytes.Buffer) {
	buf.WriteByte('{')
	writeKey(buf, packageNameKey)
	writeString(buf, a.PackageName)
	buf.WriteByte(',')
	writeKey(buf, appVersionKey)
	writeString(buf, a.AppVersion)
	buf.WriteByte('}')
}

// parseAppInfo requires both members to be strings.
func parseAppInfo(raw []byte) *AppInfo {
	members, err := decodeObject(raw)
	if err != nil {
		return nil
	}
	idx := indexMembers(members)
	pkg, ok := parseString(idx[packageNameKey])
	if !ok {
		return nil
	}
	version, ok := parseString(idx[appVersionKey])
	if !ok {
		return nil
	}
	return &AppInfo{PackageName: pkg, AppVersion: version}
}
