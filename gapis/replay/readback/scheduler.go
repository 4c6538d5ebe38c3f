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

// Package readback defers CPU readback of GPU resources until the GPU work
// that writes them is known to be complete.
//
// A Request is scheduled on a queue like any other executed work. Once the
// recorded queue and fence operations show that the request is no longer
// blocked, a worker goroutine waits for the physical fence to reach the
// request's value and then runs the request's Decode function.
package readback

import (
	"context"
	"sync"
	"time"

	"github.com/intel/gits-sub006/core/event/task"
	"github.com/intel/gits-sub006/core/fault"
	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/execution"
	"github.com/intel/gits-sub006/gapis/config"
	"github.com/pkg/errors"
)

// ErrFenceTimeout is the cause of the error reported when a physical fence
// did not reach the requested value within the configured poll attempts.
const ErrFenceTimeout = fault.Const("Timed out waiting for fence")

// PhysicalFence is a fence object of the replaying device.
type PhysicalFence interface {
	// CompletedValue returns the value the fence has reached on the device.
	CompletedValue() uint64
}

// Request is a readback that must not start before Fence reaches Value.
type Request struct {
	// ID is the command that requested the readback.
	ID api.CmdID
	// Fence is the fence signaled by the queue after the work writing the
	// resource.
	Fence PhysicalFence
	// Value is the fence value the readback waits for.
	Value uint64
	// Decode performs the CPU side work once the fence is reached.
	Decode func(ctx context.Context) error
}

// Scheduler launches readback workers as their requests become unblocked.
// Every launched worker runs to completion, even if the context of the call
// that launched it is cancelled.
type Scheduler struct {
	dispatcher *execution.Dispatcher[*Request]
	settings   config.Readback
	workers    task.Events

	mutex    sync.Mutex
	failures fault.One
}

// NewScheduler returns a Scheduler whose workers poll their fence using the
// given settings.
func NewScheduler(settings config.Readback) *Scheduler {
	s := &Scheduler{settings: settings}
	s.dispatcher = execution.NewDispatcher[*Request](s.launch)
	return s
}

// CommandQueueWait records that queue waits for fence to reach value.
func (s *Scheduler) CommandQueueWait(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	s.dispatcher.CommandQueueWait(ctx, id, queue, fence, value)
}

// CommandQueueSignal records that queue signals fence with value, launching
// every request this unblocks.
func (s *Scheduler) CommandQueueSignal(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	s.dispatcher.CommandQueueSignal(ctx, id, queue, fence, value)
}

// FenceSignal records a CPU side signal of fence with value, launching every
// request this unblocks.
func (s *Scheduler) FenceSignal(ctx context.Context, id api.CmdID, fence api.FenceKey, value uint64) {
	s.dispatcher.FenceSignal(ctx, id, fence, value)
}

// Schedule submits r to queue. The worker for r is launched immediately if
// nothing is pending on queue.
func (s *Scheduler) Schedule(ctx context.Context, queue api.QueueKey, r *Request) {
	readbacksTotal.WithLabelValues(outcomeScheduled).Inc()
	s.dispatcher.Execute(ctx, r.ID, queue, r)
}

// Blocked returns the number of requests still waiting on queue or fence
// operations.
func (s *Scheduler) Blocked() int {
	return s.dispatcher.Stats().Pending
}

// Running returns the number of launched workers that have not finished.
func (s *Scheduler) Running() int {
	return s.workers.Pending()
}

// Failures returns the number of workers that have failed so far.
func (s *Scheduler) Failures() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.failures.Count()
}

// Wait blocks until every worker launched so far has finished, or ctx is
// stopped. It returns false if ctx was stopped.
func (s *Scheduler) Wait(ctx context.Context) bool {
	return s.workers.Wait(ctx)
}

// Close waits for every launched worker and returns the first worker
// failure. Requests that are still blocked are never launched.
func (s *Scheduler) Close(ctx context.Context) error {
	if !s.Wait(ctx) {
		return task.StopReason(ctx)
	}
	if blocked := s.dispatcher.Stats(); blocked.Pending > 0 {
		log.W(ctx, "Closing readback scheduler with %d pending queue events on %d queues", blocked.Pending, blocked.Queues)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.failures.First()
}

func (s *Scheduler) launch(ctx context.Context, r *Request) {
	ctx = log.V{"cmd": r.ID}.Bind(context.WithoutCancel(ctx))
	readbacksInflight.Inc()
	h := task.Go(ctx, func(ctx context.Context) error {
		defer readbacksInflight.Dec()
		if config.LogReadbackWorkers {
			log.D(ctx, "Readback worker waiting for fence value %d", r.Value)
		}
		err := s.run(ctx, r)
		if err != nil {
			s.fail(ctx, err)
		} else {
			readbacksTotal.WithLabelValues(outcomeCompleted).Inc()
		}
		if config.LogReadbackWorkers {
			log.D(ctx, "Readback worker done")
		}
		return err
	})
	s.workers.Add(h)
}

func (s *Scheduler) run(ctx context.Context, r *Request) error {
	start := time.Now()
	completed := func() bool { return r.Fence.CompletedValue() >= r.Value }
	err := task.Poll(ctx, s.settings.PollAttempts, time.Duration(s.settings.PollInterval), completed)
	readbackWait.Observe(time.Since(start).Seconds())
	if err != nil {
		if err == task.ErrPollExhausted {
			readbacksTotal.WithLabelValues(outcomeTimeout).Inc()
			return errors.Wrapf(ErrFenceTimeout, "%v waiting for value %d, completed %d after %d attempts",
				r.ID, r.Value, r.Fence.CompletedValue(), s.settings.PollAttempts)
		}
		readbacksTotal.WithLabelValues(outcomeFailed).Inc()
		return err
	}
	if r.Decode == nil {
		return nil
	}
	if err := r.Decode(ctx); err != nil {
		readbacksTotal.WithLabelValues(outcomeFailed).Inc()
		return log.Errf(ctx, err, "Readback of %v failed", r.ID)
	}
	return nil
}

func (s *Scheduler) fail(ctx context.Context, err error) {
	log.E(ctx, "%v", err)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failures.Collect(err)
}
