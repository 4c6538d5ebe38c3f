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
	"sync"
)

// Event is anything that can be waited on.
type Event interface {
	Fired() bool
	Wait(ctx context.Context) bool
}

// Events is a thread safe set of events that can be waited on together.
// Fired events are dropped from the set as it is used.
type Events struct {
	mutex   sync.Mutex
	pending []Event
}

// Add adds events to the set.
func (e *Events) Add(events ...Event) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.pending = append(e.pending, events...)
}

// purge drops the fired events. Must be called with the mutex held.
func (e *Events) purge() {
	n := 0
	for _, ev := range e.pending {
		if !ev.Fired() {
			e.pending[n] = ev
			n++
		}
	}
	for i := n; i < len(e.pending); i++ {
		e.pending[i] = nil
	}
	e.pending = e.pending[:n]
}

// Pending returns the number of events that have not fired yet.
func (e *Events) Pending() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.purge()
	return len(e.pending)
}

// Join returns a signal that fires once every event currently in the set
// has fired, or ctx is stopped. Events added later are not waited for.
func (e *Events) Join(ctx context.Context) Signal {
	e.mutex.Lock()
	e.purge()
	joined := append([]Event(nil), e.pending...)
	e.mutex.Unlock()

	done, fire := NewSignal()
	go func() {
		defer fire()
		for _, ev := range joined {
			if !ev.Wait(ctx) {
				return
			}
		}
	}()
	return done
}

// Wait blocks until every event currently in the set has fired. It returns
// false if ctx was stopped first.
func (e *Events) Wait(ctx context.Context) bool {
	return e.Join(ctx).Wait(ctx) && !Stopped(ctx)
}
