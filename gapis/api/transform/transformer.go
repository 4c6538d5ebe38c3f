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

// Package transform contains the Transformer and Writer interfaces used to
// rewrite a stream of recorded commands, and the transforms built on them.
package transform

import (
	"context"

	"github.com/intel/gits-sub006/gapis/api"
)

// Transformer is the interface that wraps the basic Transform method.
type Transformer interface {
	// Transform takes a given command and identifier and Writes out a possibly
	// transformed set of commands to the output.
	// Transform must not modify cmd in any way.
	Transform(ctx context.Context, id api.CmdID, cmd api.Cmd, output Writer) error
	// Flush is called at the end of a command stream to cause Transformers
	// that cache commands to send any they have stored into the output.
	Flush(ctx context.Context, output Writer) error
	// BuffersCommands returns true if the transformer is going to buffer
	// commands, return false otherwise.
	BuffersCommands() bool
}

// Writer is the interface which consumes the output of an Transformer.
type Writer interface {
	// Write passes the command to further consumers.
	Write(ctx context.Context, id api.CmdID, cmd api.Cmd) error
}
