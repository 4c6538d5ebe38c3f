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

	"github.com/intel/gits-sub006/gapis/api"
)

// Recorder is a Writer that record all commands that pass through it.
type Recorder struct {
	Cmds       []api.Cmd
	CmdsAndIDs api.CmdAndIDList
}

// Write records the command and id into the Cmds and CmdsAndIDs lists.
func (r *Recorder) Write(ctx context.Context, id api.CmdID, cmd api.Cmd) error {
	r.Cmds = append(r.Cmds, cmd)
	r.CmdsAndIDs.Add(id, cmd)
	return nil
}

// Reset clears the recorded commands.
func (r *Recorder) Reset() {
	r.Cmds, r.CmdsAndIDs = nil, nil
}
