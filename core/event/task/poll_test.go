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

package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/intel/gits-sub006/core/assert"
	"github.com/intel/gits-sub006/core/event/task"
	"github.com/intel/gits-sub006/core/log"
)

func TestPoll(t *testing.T) {
	ctx := log.Testing(t)
	calls := 0
	err := task.Poll(ctx, 5, time.Microsecond, func() bool {
		calls++
		return calls == 3
	})
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "calls").That(calls).Equals(3)
}

func TestPollExhausted(t *testing.T) {
	ctx := log.Testing(t)
	calls := 0
	err := task.Poll(ctx, 4, time.Microsecond, func() bool {
		calls++
		return false
	})
	assert.For(ctx, "err").ThatError(err).Equals(task.ErrPollExhausted)
	assert.For(ctx, "calls").That(calls).Equals(4)
}

func TestPollStopped(t *testing.T) {
	ctx := log.Testing(t)
	child, cancel := task.WithCancel(ctx)
	cancel()
	err := task.Poll(child, 0, time.Hour, func() bool { return false })
	assert.For(ctx, "err").ThatError(err).Equals(context.Canceled)
}
