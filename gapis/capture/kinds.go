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

package capture

import (
	"github.com/intel/gits-sub006/gapis/api"
)

type recordKind uint64

const (
	kindCall recordKind = iota + 1
	kindCommandQueueWait
	kindCommandQueueSignal
	kindFenceSignal
	kindFenceGetCompletedValue
	kindCreateFence
	kindExecuteCommandLists
	kindCommandListReset
	kindCommandListCommand
)

func (k recordKind) String() string {
	switch k {
	case kindCall:
		return "Call"
	case kindCommandQueueWait:
		return "CommandQueueWait"
	case kindCommandQueueSignal:
		return "CommandQueueSignal"
	case kindFenceSignal:
		return "FenceSignal"
	case kindFenceGetCompletedValue:
		return "FenceGetCompletedValue"
	case kindCreateFence:
		return "CreateFence"
	case kindExecuteCommandLists:
		return "ExecuteCommandLists"
	case kindCommandListReset:
		return "CommandListReset"
	case kindCommandListCommand:
		return "CommandListCommand"
	default:
		return "<unknown>"
	}
}

func kindOf(cmd api.Cmd) (recordKind, bool) {
	switch cmd.(type) {
	case *api.Call:
		return kindCall, true
	case *api.CommandQueueWait:
		return kindCommandQueueWait, true
	case *api.CommandQueueSignal:
		return kindCommandQueueSignal, true
	case *api.FenceSignal:
		return kindFenceSignal, true
	case *api.FenceGetCompletedValue:
		return kindFenceGetCompletedValue, true
	case *api.CreateFence:
		return kindCreateFence, true
	case *api.ExecuteCommandLists:
		return kindExecuteCommandLists, true
	case *api.CommandListReset:
		return kindCommandListReset, true
	case *api.CommandListCommand:
		return kindCommandListCommand, true
	default:
		return 0, false
	}
}
