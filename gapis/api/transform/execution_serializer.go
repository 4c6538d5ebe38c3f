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

package transform

import (
	"context"
	"sync"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/execution"
	"github.com/intel/gits-sub006/gapis/config"
)

// SyntheticFenceBase is the key of the first fence created by an
// ExecutionSerializer. Keys at or above it are reserved for synthetic fences.
const SyntheticFenceBase = api.FenceKey(1 << 63)

// executable is either a recorded ExecuteCommandLists call together with the
// commands of the lists it executes, or a recorded queue signal that is
// written once the work submitted before it on its queue has been written.
type executable struct {
	id     api.CmdID
	queue  api.QueueKey
	cmds   api.CmdAndIDList
	signal *api.CommandQueueSignal
}

type syntheticFence struct {
	key   api.FenceKey
	value uint64
}

var _ Transformer = (*ExecutionSerializer)(nil)

// ExecutionSerializer is a Transformer that rewrites a multi-queue command
// stream into one that can be replayed in order on a single thread.
//
// Commands recorded into command lists are held back until the list is
// executed, and each execution is held back until the queue and fence
// operations it depends on have been seen. Queue waits are consumed. Queue
// signals are written at the point their queue retires them, so CPU reads of
// the fence later in the stream still observe the value. Each execution that
// is written out is followed by a signal of, and a wait for, a synthetic
// fence owned by its queue, so the ordering of the output does not depend on
// any fence created before the stream began.
//
// State restore commands are written as they arrive. Restored fence values
// are still fed to the tracker, as a later wait may depend on them.
type ExecutionSerializer struct {
	mutex     sync.Mutex
	tracker   *execution.Tracker[*executable]
	lists     map[api.CommandListKey]api.CmdAndIDList
	fences    map[api.QueueKey]*syntheticFence
	nextFence api.FenceKey
	nextID    uint32
	submitted int
	emitted   int
}

// NewExecutionSerializer returns a new ExecutionSerializer.
func NewExecutionSerializer() *ExecutionSerializer {
	return &ExecutionSerializer{
		tracker:   execution.NewTracker[*executable](),
		lists:     map[api.CommandListKey]api.CmdAndIDList{},
		fences:    map[api.QueueKey]*syntheticFence{},
		nextFence: SyntheticFenceBase,
	}
}

func (t *ExecutionSerializer) newID() api.CmdID {
	id := api.NewCmdID(t.nextID).Synthetic()
	t.nextID++
	return id
}

// Transform implements the Transformer interface.
func (t *ExecutionSerializer) Transform(ctx context.Context, id api.CmdID, cmd api.Cmd, out Writer) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if id.IsStateRestore() {
		if err := out.Write(ctx, id, cmd); err != nil {
			return err
		}
		switch cmd := cmd.(type) {
		case *api.CreateFence:
			t.initialValue(id, cmd)
		case *api.CommandQueueSignal:
			t.tracker.FenceSignal(id, cmd.Fence, cmd.Value)
		case *api.FenceSignal:
			t.tracker.FenceSignal(id, cmd.Fence, cmd.Value)
		default:
			return nil
		}
		return t.drain(ctx, out)
	}

	switch cmd := cmd.(type) {
	case *api.CommandListReset:
		t.lists[cmd.List] = api.CmdAndIDList{{Cmd: cmd, ID: id}}
		return nil

	case api.CommandListCmd:
		l := t.lists[cmd.CommandList()]
		l.Add(id, cmd)
		t.lists[cmd.CommandList()] = l
		return nil

	case *api.ExecuteCommandLists:
		e := &executable{id: t.newID(), queue: cmd.Queue}
		for _, l := range cmd.Lists {
			e.cmds = append(e.cmds, t.lists[l]...)
		}
		e.cmds.Add(id, cmd)
		t.submitted++
		if !t.tracker.IsQueueWaiting(cmd.Queue) {
			return t.emit(ctx, e, out)
		}
		t.tracker.Execute(e.id, cmd.Queue, e)

	case *api.CommandQueueWait:
		t.tracker.CommandQueueWait(id, cmd.Queue, cmd.Fence, cmd.Value)

	case *api.CommandQueueSignal:
		// Queued ahead of the signal so it is drained before anything the
		// signal unblocks.
		t.tracker.Execute(id, cmd.Queue, &executable{id: id, queue: cmd.Queue, signal: cmd})
		t.tracker.CommandQueueSignal(id, cmd.Queue, cmd.Fence, cmd.Value)

	case *api.FenceSignal:
		if err := out.Write(ctx, id, cmd); err != nil {
			return err
		}
		t.tracker.FenceSignal(id, cmd.Fence, cmd.Value)

	case *api.CreateFence:
		if err := out.Write(ctx, id, cmd); err != nil {
			return err
		}
		t.initialValue(id, cmd)

	default:
		return out.Write(ctx, id, cmd)
	}

	return t.drain(ctx, out)
}

// initialValue records a non-zero initial value of a created fence as a
// signal of that value.
func (t *ExecutionSerializer) initialValue(id api.CmdID, cmd *api.CreateFence) {
	if cmd.InitialValue != 0 {
		t.tracker.FenceSignal(id, cmd.Fence, cmd.InitialValue)
	}
}

func (t *ExecutionSerializer) drain(ctx context.Context, out Writer) error {
	for _, e := range t.tracker.DrainReady() {
		if err := t.emit(ctx, e, out); err != nil {
			return err
		}
	}
	return nil
}

// emit writes out the commands of e followed by the synthetic signal and
// wait of its queue's fence.
func (t *ExecutionSerializer) emit(ctx context.Context, e *executable, out Writer) error {
	ctx = log.V{"executable": e.id, "queue": e.queue}.Bind(ctx)

	if e.signal != nil {
		replayedSignals.Inc()
		return t.write(ctx, e.id, e.signal, out)
	}

	fence, ok := t.fences[e.queue]
	if !ok {
		fence = &syntheticFence{key: t.nextFence}
		t.nextFence++
		t.fences[e.queue] = fence
		syntheticFences.Inc()
		if err := t.write(ctx, t.newID(), &api.CreateFence{Fence: fence.key}, out); err != nil {
			return err
		}
	}

	for _, c := range e.cmds {
		if err := t.write(ctx, c.ID, c.Cmd, out); err != nil {
			return err
		}
	}

	fence.value++
	signal := &api.CommandQueueSignal{Queue: e.queue, Fence: fence.key, Value: fence.value}
	if err := t.write(ctx, t.newID(), signal, out); err != nil {
		return err
	}
	wait := &api.FenceGetCompletedValue{Fence: fence.key, Value: fence.value}
	if err := t.write(ctx, t.newID(), wait, out); err != nil {
		return err
	}

	t.emitted++
	serializedExecutables.Inc()
	return nil
}

func (t *ExecutionSerializer) write(ctx context.Context, id api.CmdID, cmd api.Cmd, out Writer) error {
	if config.LogSerializedCommands {
		log.D(ctx, "Serialized %v: %v", id, cmd)
	}
	return out.Write(ctx, id, cmd)
}

// Blocked returns the number of executions that are still waiting on queue
// or fence operations that have not been seen.
func (t *ExecutionSerializer) Blocked() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.submitted - t.emitted
}

// Flush implements the Transformer interface. Executions that are still
// blocked are never written.
func (t *ExecutionSerializer) Flush(ctx context.Context, out Writer) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	blocked := t.submitted - t.emitted
	blockedExecutables.Set(float64(blocked))
	if blocked > 0 {
		stats := t.tracker.Stats()
		log.W(ctx, "%d command list executions are still blocked at the end of the stream (%d pending queue events on %d queues)",
			blocked, stats.Pending, stats.Queues)
	}
	return nil
}

// BuffersCommands implements the Transformer interface.
func (t *ExecutionSerializer) BuffersCommands() bool { return true }
