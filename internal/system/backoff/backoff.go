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

// Package backoff drives an action until a validator accepts its result or a
// bounded number of attempts, separated by exponentially growing delays, has
// been spent.
package backoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metriqus/metriqus-sdk-go/internal/system/log"
)

var (
	// ErrAborted is returned when the context is cancelled before the action
	// succeeds, including while waiting between attempts.
	ErrAborted = errors.New("backoff: operation aborted")
	// ErrRetriesExhausted is returned when every attempt failed.
	ErrRetriesExhausted = errors.New("backoff: retries exhausted")
)

// Policy bounds the retry loop.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultDeliveryPolicy is used to push event batches to the collector.
var DefaultDeliveryPolicy = Policy{
	MaxRetries: 4,
	BaseDelay:  1000 * time.Millisecond,
	MaxDelay:   4000 * time.Millisecond,
}

// Delay returns the wait that follows the n-th failed attempt (1-based):
// min(base * (2^n - 1) / 2, max).
func (p Policy) Delay(n int) time.Duration {
	if n < 1 {
		return 0
	}
	if n > 30 {
		n = 30
	}
	pow := int64(1) << n
	d := time.Duration(int64(p.BaseDelay) * (pow - 1) / 2)
	if d < 0 || d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// TotalDelay is the sum of every delay an exhausted run waits through.
func (p Policy) TotalDelay() time.Duration {
	var total time.Duration
	for n := 1; n <= p.MaxRetries; n++ {
		total += p.Delay(n)
	}
	return total
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the default Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retrier carries a policy and the sleeper used between attempts.
type Retrier struct {
	id     string
	policy Policy
	sleep  Sleeper
}

// New creates a Retrier identified by id in logs.
func New(id string, policy Policy) *Retrier {
	return &Retrier{id: id, policy: policy, sleep: ContextSleep}
}

// WithSleeper replaces the sleeper, mostly for tests.
func (r *Retrier) WithSleeper(s Sleeper) *Retrier {
	r.sleep = s
	return r
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// Options configures a single Do run.
type Options[T any] struct {
	// Validate reports whether a result counts as success. A nil validator
	// accepts every result returned without error.
	Validate func(T) bool
	// OnComplete is invoked exactly once unless the run is aborted.
	OnComplete func(result T, success bool)
	// Default is handed to OnComplete and returned when retries run out.
	Default T
}

// Do runs action on the calling goroutine until it succeeds, the policy is
// exhausted, or ctx is cancelled. Actions and OnComplete never run
// concurrently with each other.
func Do[T any](ctx context.Context, r *Retrier, action func(context.Context) (T, error), opts Options[T]) (T, error) {
	logger := log.GetLogger()
	var failures []error

	for attempt := 1; attempt <= r.policy.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return opts.Default, fmt.Errorf("%w: %s: %v", ErrAborted, r.id, err)
		}

		result, err := invoke(ctx, action)
		if err == nil && (opts.Validate == nil || opts.Validate(result)) {
			if opts.OnComplete != nil {
				opts.OnComplete(result, true)
			}
			return result, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return opts.Default, fmt.Errorf("%w: %s: %v", ErrAborted, r.id, ctx.Err())
			}
			failures = append(failures, err)
			logger.Error("Back off attempt failed", log.String("operation", r.id),
				log.Int("attempt", attempt), log.Error(err))
		}

		delay := r.policy.Delay(attempt)
		logger.Debug("Back off waiting", log.String("operation", r.id), log.Duration("delay", delay))
		if err := r.sleep(ctx, delay); err != nil {
			return opts.Default, fmt.Errorf("%w: %s: cancelled during delay: %v", ErrAborted, r.id, err)
		}
	}

	if opts.OnComplete != nil {
		opts.OnComplete(opts.Default, false)
	}
	return opts.Default, errors.Join(append([]error{ErrRetriesExhausted}, failures...)...)
}

// invoke shields the loop from a panicking action.
func invoke[T any](ctx context.Context, action func(context.Context) (T, error)) (result T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("action panicked: %v", rec)
		}
	}()
	return action(ctx)
}
