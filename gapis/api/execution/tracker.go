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

// Package execution resolves which recorded units of GPU work have become
// unblocked, using only the recorded queue and fence calls.
//
// Each queue owns a FIFO of pending events. A Wait at the head of a queue
// blocks every event behind it until the matching fence value is signaled.
// Signals retired from one queue may in turn unblock waits on other queues;
// the Tracker follows these cascades to completion within a single call.
package execution

import (
	"fmt"
	"sync"

	"github.com/intel/gits-sub006/core/app/crash"
	"github.com/intel/gits-sub006/core/fault"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/pkg/errors"
)

// ErrInvariantViolation is the cause of the panic raised when the Tracker
// finds its queues in an impossible state. This indicates a corrupt command
// stream or a Tracker bug; replaying on top of it is unsafe.
const ErrInvariantViolation = fault.Const("Execution tracker invariant violated")

type eventKind uint8

const (
	waitEvent eventKind = iota
	signalEvent
	executeEvent
)

func (k eventKind) String() string {
	switch k {
	case waitEvent:
		return "Wait"
	case signalEvent:
		return "Signal"
	case executeEvent:
		return "Execute"
	default:
		return fmt.Sprintf("eventKind(%d)", uint8(k))
	}
}

// event is a pending Wait, Signal or Execute on a queue.
// fence is only used by waits and signals, payload only by executes.
type event[P any] struct {
	kind    eventKind
	id      api.CmdID
	fence   api.Fence
	payload P
}

type queue[P any] struct {
	key    api.QueueKey
	events []event[P]
}

func (q *queue[P]) empty() bool { return len(q.events) == 0 }

func (q *queue[P]) push(e event[P]) { q.events = append(q.events, e) }

func (q *queue[P]) pop() event[P] {
	e := q.events[0]
	q.events[0] = event[P]{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return e
}

// Stats is a snapshot of the Tracker's bookkeeping.
type Stats struct {
	// Queues is the number of queues referenced so far.
	Queues int
	// Pending is the number of events still blocked on all queues.
	Pending int
	// EarlySignals is the number of fence values signaled before any
	// queue waited on them.
	EarlySignals int
	// Ready is the number of payloads waiting to be drained.
	Ready int
}

// Tracker resolves the readiness of Execute payloads of type P.
//
// All methods are safe to call from multiple goroutines. Each call is
// applied atomically; cascades run on the calling goroutine.
type Tracker[P any] struct {
	mutex    sync.Mutex
	queues   map[api.QueueKey]*queue[P]
	order    []*queue[P] // creation order, used for cascade visitation.
	signaled map[api.Fence]api.CmdID
	ready    []P
}

// NewTracker returns a new Tracker with no queues.
func NewTracker[P any]() *Tracker[P] {
	return &Tracker[P]{
		queues:   map[api.QueueKey]*queue[P]{},
		signaled: map[api.Fence]api.CmdID{},
	}
}

func (t *Tracker[P]) queue(key api.QueueKey) *queue[P] {
	q, ok := t.queues[key]
	if !ok {
		q = &queue[P]{key: key}
		t.queues[key] = q
		t.order = append(t.order, q)
	}
	return q
}

// CommandQueueWait records that queue waits for fence to reach value.
// A matching early signal is consumed instead of blocking the queue.
func (t *Tracker[P]) CommandQueueWait(id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	q := t.queue(queue)
	f := api.Fence{Key: fence, Value: value}
	if _, ok := t.signaled[f]; ok {
		delete(t.signaled, f)
		return
	}
	q.push(event[P]{kind: waitEvent, id: id, fence: f})
	t.check(q)
}

// CommandQueueSignal records that queue signals fence with value once its
// previously submitted work has retired.
func (t *Tracker[P]) CommandQueueSignal(id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	q := t.queue(queue)
	f := api.Fence{Key: fence, Value: value}
	if q.empty() {
		t.fenceSignal(id, f)
		return
	}
	q.push(event[P]{kind: signalEvent, id: id, fence: f})
	t.check(q)
}

// FenceSignal records a CPU side signal of fence with value.
func (t *Tracker[P]) FenceSignal(id api.CmdID, fence api.FenceKey, value uint64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.fenceSignal(id, api.Fence{Key: fence, Value: value})
}

// Execute records the submission of payload to queue. The payload becomes
// ready immediately if nothing is pending on the queue.
func (t *Tracker[P]) Execute(id api.CmdID, queue api.QueueKey, payload P) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	q := t.queue(queue)
	if q.empty() {
		t.ready = append(t.ready, payload)
		return
	}
	q.push(event[P]{kind: executeEvent, id: id, payload: payload})
	t.check(q)
}

// IsQueueWaiting returns true if queue has any pending events.
// When it returns false, Execute on queue is guaranteed to make the payload
// ready immediately.
func (t *Tracker[P]) IsQueueWaiting(queue api.QueueKey) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	q, ok := t.queues[queue]
	return ok && !q.empty()
}

// DrainReady returns the payloads that have become ready, in readiness order,
// and clears the ready list.
func (t *Tracker[P]) DrainReady() []P {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	out := t.ready
	t.ready = nil
	return out
}

// Stats returns a snapshot of the Tracker's bookkeeping.
func (t *Tracker[P]) Stats() Stats {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	s := Stats{
		Queues:       len(t.order),
		EarlySignals: len(t.signaled),
		Ready:        len(t.ready),
	}
	for _, q := range t.order {
		s.Pending += len(q.events)
	}
	return s
}

// fenceSignal retires every queue head waiting on f, then cascades into the
// signals those queues retired along the way.
func (t *Tracker[P]) fenceSignal(id api.CmdID, f api.Fence) {
	found := false
	var signals []event[P]
	for _, q := range t.order {
		if q.empty() {
			continue
		}
		if head := q.events[0]; head.kind != waitEvent || head.fence != f {
			continue
		}
		q.pop()
		found = true
		for !q.empty() && q.events[0].kind != waitEvent {
			e := q.pop()
			switch e.kind {
			case executeEvent:
				t.ready = append(t.ready, e.payload)
			case signalEvent:
				signals = append(signals, e)
			default:
				t.violation("%v retired unknown event %v from %v", id, e.kind, q.key)
			}
		}
		t.check(q)
	}
	if !found {
		t.signaled[f] = id
	}
	for _, s := range signals {
		t.fenceSignal(s.id, s.fence)
	}
}

// check verifies that a non-empty queue is blocked on a wait at its head.
// Any other event at the head should already have retired.
func (t *Tracker[P]) check(q *queue[P]) {
	if q.empty() {
		return
	}
	if head := q.events[0]; head.kind != waitEvent {
		t.violation("%v %v (%v) found at the head of %v behind no wait", head.kind, head.id, head.fence, q.key)
	}
}

func (t *Tracker[P]) violation(msg string, args ...interface{}) {
	crash.Crash(errors.Wrapf(ErrInvariantViolation, msg, args...))
}
