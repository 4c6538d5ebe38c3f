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

package execution_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/intel/gits-sub006/core/assert"
	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/execution"
)

func id(i uint32) api.CmdID { return api.NewCmdID(i) }

func TestExecuteOnIdleQueue(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()

	assert.For("waiting before").ThatBoolean(tr.IsQueueWaiting(1)).IsFalse()
	tr.Execute(id(0), 1, "X")
	assert.For("waiting after").ThatBoolean(tr.IsQueueWaiting(1)).IsFalse()
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals([]string{"X"})
}

func TestWaitGatesExecute(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()

	tr.CommandQueueWait(id(0), 1, 7, 3)
	tr.Execute(id(1), 1, "X")
	assert.For("ready before signal").ThatSlice(tr.DrainReady()).IsEmpty()
	assert.For("waiting").ThatBoolean(tr.IsQueueWaiting(1)).IsTrue()

	tr.FenceSignal(id(2), 7, 2)
	assert.For("ready after wrong value").ThatSlice(tr.DrainReady()).IsEmpty()
	tr.FenceSignal(id(3), 8, 3)
	assert.For("ready after wrong fence").ThatSlice(tr.DrainReady()).IsEmpty()

	tr.FenceSignal(id(4), 7, 3)
	assert.For("ready after signal").ThatSlice(tr.DrainReady()).Equals([]string{"X"})
	assert.For("waiting after signal").ThatBoolean(tr.IsQueueWaiting(1)).IsFalse()
}

func TestQueueSignalOnIdleQueueActsAsFenceSignal(t *testing.T) {
	assert := assert.To(t)
	for _, direct := range []bool{false, true} {
		tr := execution.NewTracker[string]()
		tr.CommandQueueWait(id(0), 2, 7, 5)
		tr.Execute(id(1), 2, "Y")
		if direct {
			tr.FenceSignal(id(2), 7, 5)
		} else {
			tr.CommandQueueSignal(id(2), 1, 7, 5)
		}
		assert.For("direct: %v", direct).ThatSlice(tr.DrainReady()).Equals([]string{"Y"})
		assert.For("direct: %v pending", direct).That(tr.Stats().Pending).Equals(0)
		assert.For("direct: %v early signals", direct).That(tr.Stats().EarlySignals).Equals(0)
	}
}

func TestFanOut(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.CommandQueueWait(id(0), 1, 9, 1)
	tr.Execute(id(1), 1, "A")
	tr.CommandQueueWait(id(2), 2, 9, 1)
	tr.Execute(id(3), 2, "B")

	tr.FenceSignal(id(4), 9, 1)
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals([]string{"A", "B"})
	assert.For("early signals").That(tr.Stats().EarlySignals).Equals(0)
}

func TestPerQueueFIFO(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.CommandQueueWait(id(0), 1, 1, 1)
	tr.Execute(id(1), 1, "A")
	tr.Execute(id(2), 1, "B")
	tr.CommandQueueWait(id(3), 1, 1, 2)
	tr.Execute(id(4), 1, "C")
	tr.Execute(id(5), 1, "D")

	tr.FenceSignal(id(6), 1, 1)
	assert.For("first wait").ThatSlice(tr.DrainReady()).Equals([]string{"A", "B"})
	tr.Execute(id(7), 1, "E")
	assert.For("still blocked").ThatSlice(tr.DrainReady()).IsEmpty()
	tr.FenceSignal(id(8), 1, 2)
	assert.For("second wait").ThatSlice(tr.DrainReady()).Equals([]string{"C", "D", "E"})
}

func TestSignalBeforeWait(t *testing.T) {
	assert := assert.To(t)

	signalFirst := execution.NewTracker[string]()
	signalFirst.FenceSignal(id(0), 7, 3)
	assert.For("early signal").That(signalFirst.Stats().EarlySignals).Equals(1)
	signalFirst.CommandQueueWait(id(1), 1, 7, 3)
	signalFirst.Execute(id(2), 1, "X")

	waitFirst := execution.NewTracker[string]()
	waitFirst.CommandQueueWait(id(0), 1, 7, 3)
	waitFirst.FenceSignal(id(1), 7, 3)
	waitFirst.Execute(id(2), 1, "X")

	assert.For("signal first stats").That(signalFirst.Stats()).Equals(execution.Stats{Queues: 1, Ready: 1})
	assert.For("wait first stats").That(waitFirst.Stats()).Equals(execution.Stats{Queues: 1, Ready: 1})
	assert.For("signal first waiting").ThatBoolean(signalFirst.IsQueueWaiting(1)).IsFalse()
	assert.For("wait first waiting").ThatBoolean(waitFirst.IsQueueWaiting(1)).IsFalse()
	assert.For("signal first ready").ThatSlice(signalFirst.DrainReady()).Equals([]string{"X"})
	assert.For("wait first ready").ThatSlice(waitFirst.DrainReady()).Equals([]string{"X"})
}

func TestEarlySignalConsumedOnce(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.FenceSignal(id(0), 7, 3)
	tr.CommandQueueWait(id(1), 1, 7, 3)
	tr.CommandQueueWait(id(2), 2, 7, 3)
	tr.Execute(id(3), 1, "A")
	tr.Execute(id(4), 2, "B")
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals([]string{"A"})
	assert.For("queue 2 waiting").ThatBoolean(tr.IsQueueWaiting(2)).IsTrue()
}

func TestQueuedSignalWaitsForPriorWork(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.CommandQueueWait(id(0), 1, 1, 1)
	tr.Execute(id(1), 1, "A")
	tr.CommandQueueSignal(id(2), 1, 2, 1)
	tr.CommandQueueWait(id(3), 2, 2, 1)
	tr.Execute(id(4), 2, "B")
	assert.For("blocked").ThatSlice(tr.DrainReady()).IsEmpty()
	assert.For("pending").That(tr.Stats().Pending).Equals(5)

	tr.FenceSignal(id(5), 1, 1)
	assert.For("cascade").ThatSlice(tr.DrainReady()).Equals([]string{"A", "B"})
	assert.For("stats").That(tr.Stats()).Equals(execution.Stats{Queues: 2})
}

func TestQueuedSignalWithoutWaiterBecomesEarly(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.CommandQueueWait(id(0), 1, 1, 1)
	tr.CommandQueueSignal(id(1), 1, 2, 1)
	tr.FenceSignal(id(2), 1, 1)
	assert.For("early").That(tr.Stats().EarlySignals).Equals(1)

	tr.CommandQueueWait(id(3), 2, 2, 1)
	tr.Execute(id(4), 2, "B")
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals([]string{"B"})
}

func TestCascadeChain(t *testing.T) {
	const n = 64
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	expect := make([]string, n)
	next := uint32(0)
	// Queue i waits on fence i, executes, then signals fence i+1.
	// Queues are created in reverse so the cascade cannot rely on visiting
	// them in chain order.
	for i := n; i >= 1; i-- {
		q := api.QueueKey(i)
		tr.CommandQueueWait(id(next), q, api.FenceKey(i), 1)
		tr.Execute(id(next+1), q, fmt.Sprint(i))
		tr.CommandQueueSignal(id(next+2), q, api.FenceKey(i+1), 1)
		next += 3
		expect[i-1] = fmt.Sprint(i)
	}
	assert.For("ready before").ThatSlice(tr.DrainReady()).IsEmpty()

	tr.FenceSignal(id(next), 1, 1)
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals(expect)
	assert.For("stats").That(tr.Stats()).Equals(execution.Stats{Queues: n, EarlySignals: 1})
}

func TestDrainIdempotence(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	tr.Execute(id(0), 1, "A")
	tr.Execute(id(1), 2, "B")
	assert.For("first").ThatSlice(tr.DrainReady()).Equals([]string{"A", "B"})
	assert.For("second").ThatSlice(tr.DrainReady()).IsEmpty()
}

func TestCascadeVisitsQueuesInCreationOrder(t *testing.T) {
	assert := assert.To(t)
	tr := execution.NewTracker[string]()
	for _, q := range []api.QueueKey{5, 3, 9, 1} {
		tr.CommandQueueWait(id(uint32(q)), q, 4, 4)
		tr.Execute(id(uint32(q)+10), q, fmt.Sprint(q))
	}
	tr.FenceSignal(id(20), 4, 4)
	assert.For("ready").ThatSlice(tr.DrainReady()).Equals([]string{"5", "3", "9", "1"})
}

func TestDispatcher(t *testing.T) {
	ctx := log.Testing(t)
	var got []string
	d := execution.NewDispatcher[string](func(ctx context.Context, p string) {
		log.I(ctx, "ready %v", p)
		got = append(got, p)
	})
	d.CommandQueueWait(ctx, id(0), 1, 7, 3)
	d.Execute(ctx, id(1), 1, "X")
	d.Execute(ctx, id(2), 2, "Y")
	assert.For(ctx, "before signal").ThatSlice(got).Equals([]string{"Y"})
	assert.For(ctx, "waiting").ThatBoolean(d.IsQueueWaiting(1)).IsTrue()
	d.CommandQueueSignal(ctx, id(3), 2, 7, 3)
	assert.For(ctx, "after signal").ThatSlice(got).Equals([]string{"Y", "X"})
	d.FenceSignal(ctx, id(4), 8, 1)
	assert.For(ctx, "stats").That(d.Stats()).Equals(execution.Stats{Queues: 2, EarlySignals: 1})
}
