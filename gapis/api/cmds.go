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

package api

import (
	"fmt"
	"strings"
)

// CommandQueueWait makes the GPU wait on queue until fence reaches value.
type CommandQueueWait struct {
	Queue QueueKey
	Fence FenceKey
	Value uint64
}

// CommandQueueSignal signals fence with value once all prior work submitted
// to queue has completed.
type CommandQueueSignal struct {
	Queue QueueKey
	Fence FenceKey
	Value uint64
}

// FenceSignal sets fence to value from the CPU.
type FenceSignal struct {
	Fence FenceKey
	Value uint64
}

// FenceGetCompletedValue reads the completed value of fence. Value is the
// result returned at capture time; a replayer waits until the fence reaches
// it.
type FenceGetCompletedValue struct {
	Fence FenceKey
	Value uint64
}

// CreateFence creates fence with an initial value.
type CreateFence struct {
	Fence        FenceKey
	InitialValue uint64
}

// ExecuteCommandLists submits lists, in order, to queue.
type ExecuteCommandLists struct {
	Queue QueueKey
	Lists []CommandListKey
}

// CommandListReset resets list so that it can be recorded again.
type CommandListReset struct {
	List CommandListKey
}

// CommandListCommand is any other command recorded into List.
type CommandListCommand struct {
	List CommandListKey
	Name string
}

// Call is any command not executed through a command list, such as resource
// creation or a map of a buffer.
type Call struct {
	Name string
}

func (*CommandQueueWait) CmdName() string       { return "ID3D12CommandQueue::Wait" }
func (*CommandQueueSignal) CmdName() string     { return "ID3D12CommandQueue::Signal" }
func (*FenceSignal) CmdName() string            { return "ID3D12Fence::Signal" }
func (*FenceGetCompletedValue) CmdName() string { return "ID3D12Fence::GetCompletedValue" }
func (*CreateFence) CmdName() string            { return "ID3D12Device::CreateFence" }
func (*ExecuteCommandLists) CmdName() string    { return "ID3D12CommandQueue::ExecuteCommandLists" }
func (*CommandListReset) CmdName() string       { return "ID3D12GraphicsCommandList::Reset" }
func (c *CommandListCommand) CmdName() string   { return c.Name }
func (c *Call) CmdName() string                 { return c.Name }

func (c *CommandListReset) CommandList() CommandListKey   { return c.List }
func (c *CommandListCommand) CommandList() CommandListKey { return c.List }

func (c *CommandQueueWait) String() string {
	return fmt.Sprintf("%s(%v, %v)", c.CmdName(), c.Queue, Fence{c.Fence, c.Value})
}

func (c *CommandQueueSignal) String() string {
	return fmt.Sprintf("%s(%v, %v)", c.CmdName(), c.Queue, Fence{c.Fence, c.Value})
}

func (c *FenceSignal) String() string {
	return fmt.Sprintf("%s(%v)", c.CmdName(), Fence{c.Fence, c.Value})
}

func (c *FenceGetCompletedValue) String() string {
	return fmt.Sprintf("%s(%v) -> %d", c.CmdName(), c.Fence, c.Value)
}

func (c *CreateFence) String() string {
	return fmt.Sprintf("%s(%v, %d)", c.CmdName(), c.Fence, c.InitialValue)
}

func (c *ExecuteCommandLists) String() string {
	lists := make([]string, len(c.Lists))
	for i, l := range c.Lists {
		lists[i] = l.String()
	}
	return fmt.Sprintf("%s(%v, [%s])", c.CmdName(), c.Queue, strings.Join(lists, " "))
}

func (c *CommandListReset) String() string { return fmt.Sprintf("%s(%v)", c.CmdName(), c.List) }

func (c *CommandListCommand) String() string { return fmt.Sprintf("%s(%v)", c.Name, c.List) }

func (c *Call) String() string { return c.Name + "()" }
