// Copyright (C) 2019 Google Inc.
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

package execution

import (
	"context"
	"sync"

	"github.com/intel/gits-sub006/gapis/api"
)

// ReadyHandler is called for each payload that becomes ready.
type ReadyHandler[P any] func(ctx context.Context, payload P)

// Dispatcher couples a Tracker with a ReadyHandler. After every mutating
// call, all payloads that became ready are handed to the handler in order
// before the call returns.
//
// The tracker call and the handling of its ready payloads are atomic with
// respect to other callers of the same Dispatcher.
type Dispatcher[P any] struct {
	mutex   sync.Mutex
	tracker *Tracker[P]
	ready   ReadyHandler[P]
}

// NewDispatcher returns a Dispatcher with a new Tracker, calling ready for
// each ready payload.
func NewDispatcher[P any](ready ReadyHandler[P]) *Dispatcher[P] {
	return &Dispatcher[P]{tracker: NewTracker[P](), ready: ready}
}

// CommandQueueWait forwards to Tracker.CommandQueueWait.
func (d *Dispatcher[P]) CommandQueueWait(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.tracker.CommandQueueWait(id, queue, fence, value)
	d.dispatch(ctx)
}

// CommandQueueSignal forwards to Tracker.CommandQueueSignal and dispatches
// everything it unblocked.
func (d *Dispatcher[P]) CommandQueueSignal(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.tracker.CommandQueueSignal(id, queue, fence, value)
	d.dispatch(ctx)
}

// FenceSignal forwards to Tracker.FenceSignal and dispatches everything it
// unblocked.
func (d *Dispatcher[P]) FenceSignal(ctx context.Context, id api.CmdID, fence api.FenceKey, value uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.tracker.FenceSignal(id, fence, value)
	d.dispatch(ctx)
}

// Execute forwards to Tracker.Execute, dispatching payload straight away if
// queue is not waiting.
func (d *Dispatcher[P]) Execute(ctx context.Context, id api.CmdID, queue api.QueueKey, payload P) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.tracker.Execute(id, queue, payload)
	d.dispatch(ctx)
}

// IsQueueWaiting forwards to Tracker.IsQueueWaiting.
func (d *Dispatcher[P]) IsQueueWaiting(queue api.QueueKey) bool {
	return d.tracker.IsQueueWaiting(queue)
}

// Stats forwards to Tracker.Stats.
func (d *Dispatcher[P]) Stats() Stats {
	return d.tracker.Stats()
}

func (d *Dispatcher[P]) dispatch(ctx context.Context) {
	for _, p := range d.tracker.DrainReady() {
		d.ready(ctx, p)
	}
}
