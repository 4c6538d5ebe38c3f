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

package transform_test

import (
	"testing"

	"github.com/intel/gits-sub006/core/assert"
	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/transform"
)

const base = transform.SyntheticFenceBase

func at(id uint32, cmd api.Cmd) api.CmdAndID { return api.CmdAndID{Cmd: cmd, ID: api.NewCmdID(id)} }

func synth(id uint32, cmd api.Cmd) api.CmdAndID {
	return api.CmdAndID{Cmd: cmd, ID: api.NewCmdID(id).Synthetic()}
}

func reset(l api.CommandListKey) api.Cmd { return &api.CommandListReset{List: l} }

func draw(l api.CommandListKey) api.Cmd {
	return &api.CommandListCommand{List: l, Name: "DrawInstanced"}
}

func execute(q api.QueueKey, lists ...api.CommandListKey) api.Cmd {
	return &api.ExecuteCommandLists{Queue: q, Lists: lists}
}

func TestSerializeUnblockedQueue(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, &api.Call{Name: "CreateCommittedResource"}),
		at(1, reset(1)),
		at(2, draw(1)),
		at(3, execute(1, 1)),
		at(4, &api.Call{Name: "Present"}),
	)
	expected := list(
		at(0, &api.Call{Name: "CreateCommittedResource"}),
		synth(1, &api.CreateFence{Fence: base}),
		at(1, reset(1)),
		at(2, draw(1)),
		at(3, execute(1, 1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
		at(4, &api.Call{Name: "Present"}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializeCrossQueueWait(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, reset(1)),
		at(1, draw(1)),
		at(2, reset(2)),
		at(3, draw(2)),
		at(4, &api.CommandQueueWait{Queue: 2, Fence: 5, Value: 1}),
		at(5, execute(2, 2)),
		at(6, execute(1, 1)),
		at(7, &api.CommandQueueSignal{Queue: 1, Fence: 5, Value: 1}),
		at(8, &api.Call{Name: "Present"}),
	)
	expected := list(
		// Queue 1 is not waiting, its execution is written straight away.
		synth(2, &api.CreateFence{Fence: base}),
		at(0, reset(1)),
		at(1, draw(1)),
		at(6, execute(1, 1)),
		synth(3, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(4, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
		// The signal on queue 1 is written, then the work it unblocks on queue 2.
		at(7, &api.CommandQueueSignal{Queue: 1, Fence: 5, Value: 1}),
		synth(5, &api.CreateFence{Fence: base + 1}),
		at(2, reset(2)),
		at(3, draw(2)),
		at(5, execute(2, 2)),
		synth(6, &api.CommandQueueSignal{Queue: 2, Fence: base + 1, Value: 1}),
		synth(7, &api.FenceGetCompletedValue{Fence: base + 1, Value: 1}),
		at(8, &api.Call{Name: "Present"}),
	)
	s := transform.NewExecutionSerializer()
	CheckTransform(ctx, t, s, inputs, expected)
	assert.For(ctx, "blocked").ThatInteger(s.Blocked()).Equals(0)
}

func TestSerializeReusesQueueFence(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, reset(1)),
		at(1, draw(1)),
		at(2, execute(1, 1)),
		// Executed again without a reset.
		at(3, execute(1, 1)),
		at(4, reset(1)),
		at(5, execute(1, 1)),
	)
	expected := list(
		synth(1, &api.CreateFence{Fence: base}),
		at(0, reset(1)),
		at(1, draw(1)),
		at(2, execute(1, 1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
		at(0, reset(1)),
		at(1, draw(1)),
		at(3, execute(1, 1)),
		synth(5, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 2}),
		synth(6, &api.FenceGetCompletedValue{Fence: base, Value: 2}),
		at(4, reset(1)),
		at(5, execute(1, 1)),
		synth(8, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 3}),
		synth(9, &api.FenceGetCompletedValue{Fence: base, Value: 3}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializeResetDiscardsUnexecutedCommands(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, reset(1)),
		at(1, draw(1)),
		at(2, reset(1)),
		at(3, draw(1)),
		at(4, execute(1, 1)),
	)
	expected := list(
		synth(1, &api.CreateFence{Fence: base}),
		at(2, reset(1)),
		at(3, draw(1)),
		at(4, execute(1, 1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializeMultipleLists(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, draw(2)),
		at(1, draw(1)),
		at(2, execute(3, 1, 2)),
	)
	expected := list(
		synth(1, &api.CreateFence{Fence: base}),
		at(1, draw(1)),
		at(0, draw(2)),
		at(2, execute(3, 1, 2)),
		synth(2, &api.CommandQueueSignal{Queue: 3, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializePassesStateRestore(t *testing.T) {
	ctx := log.Testing(t)
	restore := func(id uint32, cmd api.Cmd) api.CmdAndID {
		return api.CmdAndID{Cmd: cmd, ID: api.NewCmdID(id).StateRestore()}
	}
	inputs := list(
		restore(0, &api.CreateFence{Fence: 5, InitialValue: 1}),
		restore(1, reset(1)),
		restore(2, &api.FenceSignal{Fence: 5, Value: 2}),
		at(0, &api.CommandQueueWait{Queue: 1, Fence: 5, Value: 2}),
		at(1, reset(1)),
		at(2, execute(1, 1)),
	)
	expected := list(
		restore(0, &api.CreateFence{Fence: 5, InitialValue: 1}),
		restore(1, reset(1)),
		restore(2, &api.FenceSignal{Fence: 5, Value: 2}),
		// The restored fence value satisfies the wait.
		synth(1, &api.CreateFence{Fence: base}),
		at(1, reset(1)),
		at(2, execute(1, 1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)

	s := transform.NewExecutionSerializer()
	CheckTransform(ctx, t, s, inputs, expected)
	assert.For(ctx, "blocked").ThatInteger(s.Blocked()).Equals(0)
}

func TestSerializeFenceInitialValue(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, &api.CreateFence{Fence: 5, InitialValue: 3}),
		at(1, &api.CommandQueueWait{Queue: 1, Fence: 5, Value: 3}),
		at(2, execute(1)),
	)
	expected := list(
		at(0, &api.CreateFence{Fence: 5, InitialValue: 3}),
		synth(1, &api.CreateFence{Fence: base}),
		at(2, execute(1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)
	s := transform.NewExecutionSerializer()
	CheckTransform(ctx, t, s, inputs, expected)
	assert.For(ctx, "blocked").ThatInteger(s.Blocked()).Equals(0)
}

func TestSerializeKeepsSignalsForCPUWaits(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, &api.CreateFence{Fence: 5}),
		at(1, execute(1)),
		at(2, &api.CommandQueueSignal{Queue: 1, Fence: 5, Value: 1}),
		at(3, &api.FenceGetCompletedValue{Fence: 5, Value: 1}),
	)
	expected := list(
		at(0, &api.CreateFence{Fence: 5}),
		synth(1, &api.CreateFence{Fence: base}),
		at(1, execute(1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
		at(2, &api.CommandQueueSignal{Queue: 1, Fence: 5, Value: 1}),
		at(3, &api.FenceGetCompletedValue{Fence: 5, Value: 1}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializeSignalFollowsBlockedWork(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, &api.CommandQueueWait{Queue: 2, Fence: 5, Value: 1}),
		at(1, execute(2)),
		at(2, &api.CommandQueueSignal{Queue: 2, Fence: 6, Value: 1}),
		at(3, &api.FenceSignal{Fence: 5, Value: 1}),
		at(4, &api.FenceGetCompletedValue{Fence: 6, Value: 1}),
	)
	expected := list(
		// The CPU signal is written as it is seen, and releases queue 2.
		at(3, &api.FenceSignal{Fence: 5, Value: 1}),
		synth(1, &api.CreateFence{Fence: base}),
		at(1, execute(2)),
		synth(2, &api.CommandQueueSignal{Queue: 2, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
		at(2, &api.CommandQueueSignal{Queue: 2, Fence: 6, Value: 1}),
		at(4, &api.FenceGetCompletedValue{Fence: 6, Value: 1}),
	)
	s := transform.NewExecutionSerializer()
	CheckTransform(ctx, t, s, inputs, expected)
	assert.For(ctx, "blocked").ThatInteger(s.Blocked()).Equals(0)
}

func TestSerializeEarlySignal(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(
		at(0, &api.FenceSignal{Fence: 5, Value: 2}),
		at(1, &api.CommandQueueWait{Queue: 1, Fence: 5, Value: 2}),
		at(2, execute(1, 1)),
	)
	expected := list(
		at(0, &api.FenceSignal{Fence: 5, Value: 2}),
		synth(1, &api.CreateFence{Fence: base}),
		at(2, execute(1, 1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}

func TestSerializersAreIndependent(t *testing.T) {
	ctx := log.Testing(t)
	inputs := list(at(0, execute(1)))
	expected := list(
		synth(1, &api.CreateFence{Fence: base}),
		at(0, execute(1)),
		synth(2, &api.CommandQueueSignal{Queue: 1, Fence: base, Value: 1}),
		synth(3, &api.FenceGetCompletedValue{Fence: base, Value: 1}),
	)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
	CheckTransform(ctx, t, transform.NewExecutionSerializer(), inputs, expected)
}
