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

import "context"

// CancelFunc stops a context.
type CancelFunc context.CancelFunc

// WithCancel returns a copy of ctx that is stopped when cancel is called.
func WithCancel(ctx context.Context) (context.Context, CancelFunc) {
	c, cancel := context.WithCancel(ctx)
	return c, CancelFunc(cancel)
}

// ShouldStop returns a channel that is closed when work done on behalf of
// ctx should stop.
func ShouldStop(ctx context.Context) <-chan struct{} { return ctx.Done() }

// StopReason returns the reason ctx was stopped, or nil.
func StopReason(ctx context.Context) error { return ctx.Err() }

// Stopped returns true once ctx has been stopped.
func Stopped(ctx context.Context) bool { return ctx.Err() != nil }
