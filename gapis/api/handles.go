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

import "fmt"

// QueueKey identifies a command queue.
type QueueKey uint64

// FenceKey identifies a fence object.
type FenceKey uint64

// CommandListKey identifies a command list.
type CommandListKey uint64

func (k QueueKey) String() string       { return fmt.Sprintf("Q%d", uint64(k)) }
func (k FenceKey) String() string       { return fmt.Sprintf("F%d", uint64(k)) }
func (k CommandListKey) String() string { return fmt.Sprintf("L%d", uint64(k)) }

// Fence is a fence and the counter value that is signaled or waited on.
// Two Fences match only if both the key and the value are identical.
type Fence struct {
	Key   FenceKey
	Value uint64
}

func (f Fence) String() string { return fmt.Sprintf("%v=%d", f.Key, f.Value) }
