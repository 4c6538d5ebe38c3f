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

// Terminator is a Transformer that stops forwarding commands once the
// commands it was told about have all been seen.
type Terminator interface {
	Transformer
	// Add notifies the terminator that the command with the given id must be
	// written before terminating.
	Add(ctx context.Context, id api.CmdID) error
}

type earlyTerminator struct {
	lastID api.CmdID
	set    bool
	done   bool
}

// NewEarlyTerminator returns a Terminator that will consume all commands
// that come after the last command passed to Add. Commands issued while
// restoring state are always forwarded.
func NewEarlyTerminator() Terminator {
	return &earlyTerminator{}
}

func (t *earlyTerminator) Add(ctx context.Context, id api.CmdID) error {
	if !t.set || id > t.lastID {
		t.lastID = id
		t.set = true
	}
	return nil
}

func (t *earlyTerminator) Transform(ctx context.Context, id api.CmdID, cmd api.Cmd, out Writer) error {
	if t.done && !id.IsStateRestore() {
		return nil
	}
	if err := out.Write(ctx, id, cmd); err != nil {
		return err
	}
	if t.set && t.lastID == id {
		t.done = true
	}
	return nil
}

func (t *earlyTerminator) Flush(ctx context.Context, out Writer) error { return nil }
func (t *earlyTerminator) BuffersCommands() bool                       { return false }
