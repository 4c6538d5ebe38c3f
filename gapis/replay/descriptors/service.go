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

package descriptors

import (
	"context"

	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/execution"
)

// Service releases the slots of a Pool once the command lists that own them
// have executed, as resolved from the recorded queue and fence operations.
type Service struct {
	pool       *Pool
	dispatcher *execution.Dispatcher[[]Slot]
}

// NewService returns a Service releasing slots of pool.
func NewService(pool *Pool) *Service {
	return &Service{
		pool:       pool,
		dispatcher: execution.NewDispatcher[[]Slot](pool.Release),
	}
}

// Pool returns the pool of the service.
func (s *Service) Pool() *Pool { return s.pool }

// Preserve forwards to Pool.Preserve.
func (s *Service) Preserve(ctx context.Context, id api.CmdID, list api.CommandListKey, kind Kind, content []byte) (Slot, bool) {
	return s.pool.Preserve(ctx, id, list, kind, content)
}

// CommandQueueWait records that queue waits for fence to reach value.
func (s *Service) CommandQueueWait(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	s.dispatcher.CommandQueueWait(ctx, id, queue, fence, value)
}

// CommandQueueSignal records that queue signals fence with value, releasing
// the slots of every execution this unblocks.
func (s *Service) CommandQueueSignal(ctx context.Context, id api.CmdID, queue api.QueueKey, fence api.FenceKey, value uint64) {
	s.dispatcher.CommandQueueSignal(ctx, id, queue, fence, value)
}

// FenceSignal records a CPU side signal of fence with value, releasing the
// slots of every execution this unblocks.
func (s *Service) FenceSignal(ctx context.Context, id api.CmdID, fence api.FenceKey, value uint64) {
	s.dispatcher.FenceSignal(ctx, id, fence, value)
}

// Execute moves the slots owned by lists into an execution on queue. They
// are released once that execution is unblocked.
func (s *Service) Execute(ctx context.Context, id api.CmdID, queue api.QueueKey, lists []api.CommandListKey) {
	var slots []Slot
	for _, l := range lists {
		slots = append(slots, s.pool.Take(l)...)
	}
	s.dispatcher.Execute(ctx, id, queue, slots)
}

// Reset releases the slots of a command list that was reset without being
// executed.
func (s *Service) Reset(ctx context.Context, list api.CommandListKey) {
	s.pool.Release(ctx, s.pool.Take(list))
}

// Observe routes the queue, fence and command list operations in cmd to the
// service. Other commands are ignored.
func (s *Service) Observe(ctx context.Context, id api.CmdID, cmd api.Cmd) {
	switch cmd := cmd.(type) {
	case *api.CommandQueueWait:
		s.CommandQueueWait(ctx, id, cmd.Queue, cmd.Fence, cmd.Value)
	case *api.CommandQueueSignal:
		s.CommandQueueSignal(ctx, id, cmd.Queue, cmd.Fence, cmd.Value)
	case *api.FenceSignal:
		s.FenceSignal(ctx, id, cmd.Fence, cmd.Value)
	case *api.ExecuteCommandLists:
		s.Execute(ctx, id, cmd.Queue, cmd.Lists)
	case *api.CommandListReset:
		s.Reset(ctx, cmd.List)
	}
}
