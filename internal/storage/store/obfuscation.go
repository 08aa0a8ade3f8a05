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

import "encoding/base64"

// obfuscationKey is XOR'd over keys and values before they reach the backend.
// This hides casual plaintext on disk; it is not encryption and offers no
// protection against anyone who has this source.
const obfuscationKey = ";V2)9.;&SqZB]{p4"

// Obfuscate applies the repeating-key XOR. It is its own inverse.
func Obfuscate(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ obfuscationKey[i%len(obfuscationKey)]
	}
	return out
}

// ObfuscateKey turns a logical key into a filesystem-safe name: XOR, then
// unpadded base64url.
func ObfuscateKey(key string) string {
	return base64.RawURLEncoding.EncodeToString(Obfuscate([]byte(key)))
}
