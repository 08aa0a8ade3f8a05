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

package schedulers

import (
	"context"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

// StartTickScheduler calls job every interval until ctx is done. It blocks, so
// callers usually run it on its own goroutine.
func StartTickScheduler(ctx context.Context, name string, interval time.Duration, job func(ctx context.Context)) {
	logger := log.GetLogger()
	if interval <= 0 {
		logger.Warn("Tick scheduler not started, interval must be positive", log.String("scheduler", name))
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("Tick scheduler started", log.String("scheduler", name), log.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Tick scheduler stopped", log.String("scheduler", name))
			return
		case <-ticker.C:
			runJob(ctx, name, job)
		}
	}
}

func runJob(ctx context.Context, name string, job func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			log.GetLogger().Error("Scheduled job panicked", log.String("scheduler", name), log.Any("panic", rec))
		}
	}()
	job(ctx)
}
