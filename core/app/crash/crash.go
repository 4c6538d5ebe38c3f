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

// Package crash reports uncaught panics and invariant violations before the
// process goes down. It offers no recovery.
package crash

import (
	"sync"

	"github.com/intel/gits-sub006/core/fault/stacktrace"
)

// Reporter is called with the value and callstack of a crash.
type Reporter func(e interface{}, s stacktrace.Callstack)

var (
	mutex     sync.RWMutex
	reporters = map[int]Reporter{}
	nextID    int
)

// Register adds r to the reporters called on every crash. The returned
// function unregisters r.
func Register(r Reporter) (unregister func()) {
	mutex.Lock()
	defer mutex.Unlock()
	id := nextID
	nextID++
	reporters[id] = r
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		delete(reporters, id)
	}
}

// Go runs f on a new goroutine. A panic in f is passed to Crash.
func Go(f func()) {
	go func() {
		defer func() {
			if e := recover(); e != nil {
				Crash(e)
			}
		}()
		f()
	}()
}

// Crash calls every registered reporter with e, then panics with e.
func Crash(e interface{}) {
	stack := stacktrace.Capture()
	mutex.RLock()
	for _, r := range reporters {
		r(e, stack)
	}
	mutex.RUnlock()
	panic(e)
}
