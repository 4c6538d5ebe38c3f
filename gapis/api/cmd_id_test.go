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

package api_test

import (
	"testing"

	"github.com/intel/gits-sub006/core/assert"
	"github.com/intel/gits-sub006/gapis/api"
)

func TestCmdIDFlags(t *testing.T) {
	assert := assert.To(t)
	id := api.NewCmdID(1234)
	assert.For("real").ThatBoolean(id.IsReal()).IsTrue()
	assert.For("real string").ThatString(id.String()).Equals("1234")

	restore := id.StateRestore()
	assert.For("restore bits").That(uint32(restore)).Equals(uint32(1<<31 | 1234))
	assert.For("restore flag").ThatBoolean(restore.IsStateRestore()).IsTrue()
	assert.For("restore is not synthetic").ThatBoolean(restore.IsSynthetic()).IsFalse()
	assert.For("restore is not real").ThatBoolean(restore.IsReal()).IsFalse()
	assert.For("restore index").That(restore.Index()).Equals(uint32(1234))
	assert.For("restore string").ThatString(restore.String()).Equals("r1234")

	synthetic := id.Synthetic()
	assert.For("synthetic bits").That(uint32(synthetic)).Equals(uint32(1<<30 | 1234))
	assert.For("synthetic flag").ThatBoolean(synthetic.IsSynthetic()).IsTrue()
	assert.For("synthetic index").That(synthetic.Index()).Equals(uint32(1234))
	assert.For("synthetic string").ThatString(synthetic.String()).Equals("1234*")

	both := id.StateRestore().Synthetic()
	assert.For("both index").That(both.Index()).Equals(uint32(1234))
	assert.For("both string").ThatString(both.String()).Equals("r1234*")
}

func TestCmdNoID(t *testing.T) {
	assert := assert.To(t)
	assert.For("no id").ThatBoolean(api.CmdNoID.IsReal()).IsFalse()
	assert.For("no id string").ThatString(api.CmdNoID.String()).Equals("(NoID)")
	assert.For("no id flags").ThatBoolean(api.CmdNoID.IsSynthetic() || api.CmdNoID.IsStateRestore()).IsFalse()
}

func TestNewCmdIDOverflow(t *testing.T) {
	defer func() {
		assert.For(t, "panic").That(recover()).IsNotNil()
	}()
	api.NewCmdID(1 << 30)
}

func TestCmdStrings(t *testing.T) {
	assert := assert.To(t)
	for _, test := range []struct {
		cmd    api.Cmd
		expect string
	}{
		{&api.CommandQueueWait{Queue: 1, Fence: 7, Value: 3}, "ID3D12CommandQueue::Wait(Q1, F7=3)"},
		{&api.CommandQueueSignal{Queue: 2, Fence: 7, Value: 5}, "ID3D12CommandQueue::Signal(Q2, F7=5)"},
		{&api.FenceSignal{Fence: 9, Value: 1}, "ID3D12Fence::Signal(F9=1)"},
		{&api.ExecuteCommandLists{Queue: 1, Lists: []api.CommandListKey{4, 5}}, "ID3D12CommandQueue::ExecuteCommandLists(Q1, [L4 L5])"},
		{&api.CommandListCommand{List: 4, Name: "DrawInstanced"}, "DrawInstanced(L4)"},
	} {
		assert.For(test.expect).ThatString(test.cmd).Equals(test.expect)
	}
}
