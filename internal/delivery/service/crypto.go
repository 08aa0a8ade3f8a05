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
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"

	errors2 "github.com/metriqus/metriqus-sdk-go/internal/system/errors"
)

// Encrypt seals plaintext with AES-256-CBC and PKCS7 padding and returns the
// base64 ciphertext. The key is SHA-256(clientSecret) and the IV is
// MD5(clientKey), so equal inputs always produce equal output.
func Encrypt(plaintext, clientSecret, clientKey string) (string, error) {

	key := sha256.Sum256([]byte(clientSecret))
	iv := md5.Sum([]byte(clientKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", errors2.NewServerError(errors2.ENCRYPTION_FAILED, err)
	}
	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func Decrypt(encoded, clientSecret, clientKey string) (string, error) {

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors2.NewServerError(errors2.ENCRYPTION_FAILED, err)
	}
	key := sha256.Sum256([]byte(clientSecret))
	iv := md5.Sum([]byte(clientKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", errors2.NewServerError(errors2.ENCRYPTION_FAILED, err)
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return "", errors2.NewServerError(errors2.ENCRYPTION_FAILED,
			errors.New("ciphertext is not a whole number of blocks"))
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(out, data)
	plain, ok := pkcs7Unpad(out, block.BlockSize())
	if !ok {
		return "", errors2.NewServerError(errors2.ENCRYPTION_FAILED, errors.New("invalid padding"))
	}
	return string(plain), nil
}

// Sign returns base64(HMAC-SHA256(clientSecret, clientKey + timestamp + body)).
func Sign(clientKey, clientSecret, body, timestamp string) string {

	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(clientKey + timestamp + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
