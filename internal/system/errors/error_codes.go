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

package errors

const errorPrefix = "MTQ-"

var (
	// Server error codes

	STORAGE_OPEN_FAILED = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while opening local storage.",
	}

	STORAGE_READ_FAILED = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while reading from local storage.",
	}

	STORAGE_WRITE_FAILED = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while writing to local storage.",
	}

	ENCRYPTION_FAILED = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while encrypting event batch.",
	}

	DELIVERY_FAILED = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while delivering event batch.",
	}

	REMOTE_SETTINGS_FETCH_FAILED = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching remote settings.",
	}

	GEOLOCATION_FETCH_FAILED = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching geolocation.",
	}

	RETRIES_EXHAUSTED = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Retries exhausted.",
	}

	OPERATION_ABORTED = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Operation aborted.",
	}

	REQUEST_BUILD_FAILED = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while building outbound request.",
	}

	// Client error codes

	INVALID_CONFIG = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Invalid configuration.",
	}

	MISSING_CREDENTIALS = ErrorMessage{
		Code:    errorPrefix + "10002",
		Message: "Client key or client secret is missing.",
	}

	MISSING_POST_URL = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Event post url is not available.",
	}

	QUEUE_SEALED = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Event queue is sealed.",
	}

	SDK_NOT_INITIALIZED = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Metriqus is not initialized.",
	}

	INVALID_PARAMETER = ErrorMessage{
		Code:    errorPrefix + "10006",
		Message: "Invalid parameter.",
	}

	COLLECTOR_REJECTED = ErrorMessage{
		Code:    errorPrefix + "10007",
		Message: "Collector rejected the request.",
	}
)
