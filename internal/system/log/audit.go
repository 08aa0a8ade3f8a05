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

package log

import (
	"encoding/json"
	"log/slog"
	"time"
)

// AuditEvent is a structured record of a pipeline state transition.
type AuditEvent struct {
	RecordedAt string      `json:"recordedAt"`
	ActionID   string      `json:"actionId"`
	TargetType string      `json:"targetType"`
	TargetID   string      `json:"targetId,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Audit logs an audit event at debug level.
func (l *Logger) Audit(event AuditEvent) {
	if event.RecordedAt == "" {
		event.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		l.Error("Failed to marshal audit event", Error(err))
		return
	}

	l.internal.Debug("AUDIT", slog.String("audit_event", string(jsonData)))
}

// Action IDs for audit logging
const (
	// Queue operations
	ActionBatchSealed       = "batch-sealed"
	ActionBatchDelivered    = "batch-delivered"
	ActionDeliveryExhausted = "delivery-exhausted"

	// Lifecycle operations
	ActionFirstLaunch     = "first-launch"
	ActionSessionStarted  = "session-started"
	ActionAttributionSent = "attribution-sent"
)

// Target types for audit logging
const (
	TargetTypeBatch   = "batch"
	TargetTypeSession = "session"
	TargetTypeInstall = "install"
)
