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

// Package api holds the recorded form of the captured multi-queue API calls:
// command identities, object keys and the closed set of command types the
// queue synchronization core understands.
package api

// Cmd is the interface implemented by all recorded API commands.
type Cmd interface {
	// CmdName returns the name of the API call.
	CmdName() string
}

// CommandListCmd is the interface implemented by commands that are recorded
// into a command list, rather than executed when they are called.
type CommandListCmd interface {
	Cmd

	// CommandList returns the command list the command is recorded into.
	CommandList() CommandListKey
}

// CmdAndID is a pair of Cmd and CmdID.
type CmdAndID struct {
	Cmd Cmd
	ID  CmdID
}

// CmdAndIDList is a list of CmdAndIDs.
type CmdAndIDList []CmdAndID

// Add appends the cmd with the given id to the list.
func (l *CmdAndIDList) Add(id CmdID, cmd Cmd) {
	*l = append(*l, CmdAndID{cmd, id})
}
