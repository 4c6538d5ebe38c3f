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

// Package task runs work on background goroutines and lets callers wait for
// its completion.
package task

import (
	"context"

	"github.com/intel/gits-sub006/core/app/crash"
)

// Task is a unit of work run on behalf of a context.
type Task func(context.Context) error

// Handle is a reference to a task started by Go.
// It is fired when the task returns.
type Handle struct {
	Signal
	err *error
}

// Result blocks until the task has returned or ctx is stopped, and returns
// the task error or the stop reason.
func (h Handle) Result(ctx context.Context) error {
	if !h.Wait(ctx) {
		return StopReason(ctx)
	}
	return *h.err
}

// Go runs task on a new goroutine. A panic in the task is reported to the
// registered crash handlers.
// If ctx is already stopped when the goroutine starts, task is not run and
// the handle holds the stop reason.
func Go(ctx context.Context, task Task) Handle {
	var err error
	done, fire := NewSignal()
	crash.Go(func() {
		defer fire()
		if Stopped(ctx) {
			err = StopReason(ctx)
			return
		}
		err = task(ctx)
	})
	return Handle{done, &err}
}
