// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package task

import (
	"context"
	"time"

	"github.com/intel/gits-sub006/core/fault"
)

// ErrPollExhausted is returned by Poll when the condition never became true.
const ErrPollExhausted = fault.Const("poll attempts exhausted")

// Retry calls f until it reports done, maxAttempts calls were made or ctx is
// stopped, sleeping delay between calls. It returns the error of the last
// call, or the stop reason.
// If maxAttempts <= 0 the number of calls is unbounded.
func Retry(ctx context.Context, maxAttempts int, delay time.Duration, f func(context.Context) (done bool, err error)) error {
	for attempt := 1; ; attempt++ {
		done, err := f(ctx)
		if done || (maxAttempts > 0 && attempt >= maxAttempts) {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ShouldStop(ctx):
			t.Stop()
			return StopReason(ctx)
		case <-t.C:
		}
	}
}

// Poll calls cond up to maxAttempts times, sleeping interval between calls,
// until it returns true. It returns nil once cond is true, ErrPollExhausted if
// every attempt failed, or the stop reason if ctx is stopped first.
// If maxAttempts <= 0 cond is polled until it succeeds or ctx is stopped.
func Poll(ctx context.Context, maxAttempts int, interval time.Duration, cond func() bool) error {
	return Retry(ctx, maxAttempts, interval, func(context.Context) (bool, error) {
		if cond() {
			return true, nil
		}
		return false, ErrPollExhausted
	})
}
