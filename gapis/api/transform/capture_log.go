// Copyright (C) 2018 Google Inc.
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
	"os"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/capture"
)

type captureLog struct {
	path   string
	header capture.Header
	cmds   api.CmdAndIDList
}

var _ Transformer = (*captureLog)(nil)

// NewCaptureLog returns a Transformer that records all commands passed through
// it, and writes them to the capture file at path when flushed.
func NewCaptureLog(ctx context.Context, header capture.Header, path string) Transformer {
	return &captureLog{path: path, header: header}
}

func (t *captureLog) Transform(ctx context.Context, id api.CmdID, cmd api.Cmd, out Writer) error {
	// Synthetic commands belong to the rewritten stream, not the input.
	if !id.IsSynthetic() {
		t.cmds.Add(id, cmd)
	}
	return out.Write(ctx, id, cmd)
}

func (t *captureLog) Flush(ctx context.Context, out Writer) error {
	f, err := os.Create(t.path)
	if err != nil {
		return log.Errf(ctx, err, "Failed to create capture log file %v", t.path)
	}
	defer f.Close()
	c := &capture.Capture{Header: t.header, Commands: t.cmds}
	if err := c.Export(ctx, f); err != nil {
		return log.Errf(ctx, err, "Failed to write capture log %v", t.path)
	}
	log.D(ctx, "Logged %d commands to %v", len(t.cmds), t.path)
	return nil
}

func (t *captureLog) BuffersCommands() bool { return false }
