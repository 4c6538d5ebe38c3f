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

package capture_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/intel/gits-sub006/core/assert"
	"github.com/intel/gits-sub006/core/event/task"
	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/capture"
)

var captured = time.Date(2019, 1, 2, 3, 4, 5, 6000, time.UTC)

func testCapture() *capture.Capture {
	c := &capture.Capture{Header: capture.Header{Name: "two-queue", Time: captured}}
	c.Commands.Add(api.NewCmdID(0).StateRestore(), &api.CreateFence{Fence: 7, InitialValue: 2})
	c.Commands.Add(api.NewCmdID(1), &api.CommandListReset{List: 1})
	c.Commands.Add(api.NewCmdID(2), &api.CommandListCommand{List: 1, Name: "DrawInstanced"})
	c.Commands.Add(api.NewCmdID(3), &api.CommandQueueWait{Queue: 2, Fence: 7, Value: 3})
	c.Commands.Add(api.NewCmdID(4), &api.ExecuteCommandLists{Queue: 2, Lists: []api.CommandListKey{1, 1 << 40}})
	c.Commands.Add(api.NewCmdID(5), &api.CommandQueueSignal{Queue: 1, Fence: 7, Value: 3})
	c.Commands.Add(api.NewCmdID(6), &api.FenceSignal{Fence: 8, Value: 1})
	c.Commands.Add(api.NewCmdID(7).Synthetic(), &api.FenceGetCompletedValue{Fence: 1 << 63, Value: 1})
	c.Commands.Add(api.NewCmdID(8), &api.ExecuteCommandLists{Queue: 3})
	c.Commands.Add(api.NewCmdID(9), &api.Call{Name: "Present"})
	return c
}

func TestExportRead(t *testing.T) {
	ctx := log.Testing(t)
	c := testCapture()
	buf := &bytes.Buffer{}
	err := c.Export(ctx, buf)
	if !assert.For(ctx, "Export").ThatError(err).Succeeded() {
		return
	}
	assert.For(ctx, "magic").ThatString(buf.Bytes()[:8]).Equals("GITSQSYN")

	got, err := capture.ReadAll(ctx, bytes.NewReader(buf.Bytes()))
	if !assert.For(ctx, "ReadAll").ThatError(err).Succeeded() {
		return
	}
	assert.For(ctx, "name").ThatString(got.Header.Name).Equals("two-queue")
	assert.For(ctx, "time").ThatBoolean(got.Header.Time.Equal(captured)).IsTrue()
	assert.For(ctx, "commands").ThatSlice(got.Commands).DeepEquals(c.Commands)
}

func TestWriterCount(t *testing.T) {
	ctx := log.Testing(t)
	w, err := capture.NewWriter(&bytes.Buffer{}, capture.Header{})
	assert.For(ctx, "NewWriter").ThatError(err).Succeeded()
	for i := 0; i < 3; i++ {
		w.Write(ctx, api.NewCmdID(uint32(i)), &api.Call{Name: "Map"})
	}
	assert.For(ctx, "count").ThatInteger(w.Count()).Equals(3)
}

type unknownCmd struct{}

func (unknownCmd) CmdName() string { return "Unknown" }

func TestWriteUnknownCommand(t *testing.T) {
	ctx := log.Testing(t)
	w, _ := capture.NewWriter(&bytes.Buffer{}, capture.Header{})
	err := w.Write(ctx, 0, unknownCmd{})
	assert.For(ctx, "err").ThatError(err).HasMessage("Cannot encode command Unknown of type capture_test.unknownCmd")
}

func TestReadErrors(t *testing.T) {
	ctx := log.Testing(t)
	buf := &bytes.Buffer{}
	testCapture().Export(ctx, buf)
	data := buf.Bytes()

	_, err := capture.ReadAll(ctx, bytes.NewReader([]byte("NOTACAPTURE")))
	assert.For(ctx, "bad magic").ThatError(err).Equals(capture.ErrIncorrectMagic)

	_, err = capture.ReadAll(ctx, bytes.NewReader(nil))
	assert.For(ctx, "empty").ThatError(err).Equals(capture.ErrIncorrectMagic)

	_, err = capture.ReadAll(ctx, bytes.NewReader(data[:len(data)-2]))
	assert.For(ctx, "truncated").ThatError(err).HasMessage("Reading record 9: unexpected EOF")

	version := append([]byte{}, data...)
	version[9] = 2 // First byte of the header chunk body.
	_, err = capture.ReadAll(ctx, bytes.NewReader(version))
	assert.For(ctx, "version").ThatError(err).Equals(capture.ErrUnsupportedVersion{Version: 2})

	header := &bytes.Buffer{}
	(&capture.Capture{Header: capture.Header{Name: "wide-id", Time: captured}}).Export(ctx, header)
	// A Call record whose id is 1<<32.
	wide := append(header.Bytes(), 7, 1, 0x80, 0x80, 0x80, 0x80, 0x10, 0)
	_, err = capture.ReadAll(ctx, bytes.NewReader(wide))
	assert.For(ctx, "wide id").ThatError(err).HasMessage("Decoding record 0: Command id 4294967296 does not fit in 32 bits")
}

func TestReadStops(t *testing.T) {
	ctx := log.Testing(t)
	buf := &bytes.Buffer{}
	testCapture().Export(ctx, buf)

	ctx, cancel := task.WithCancel(ctx)
	count := 0
	_, err := capture.Read(ctx, buf, func(ctx context.Context, id api.CmdID, cmd api.Cmd) error {
		count++
		if count == 2 {
			cancel()
		}
		return nil
	})
	assert.For(ctx, "err").ThatError(err).Equals(context.Canceled)
	assert.For(ctx, "count").ThatInteger(count).Equals(2)
}

const twoQueue = `
name: two-queue
time: 2019-01-02T03:04:05.000006Z
commands:
  - {id: 0, restore: true, cmd: CreateFence, fence: 7, value: 2}
  - {cmd: CommandListReset, list: 1}
  - {cmd: DrawInstanced, list: 1}
  - {cmd: CommandQueueWait, queue: 2, fence: 7, value: 3}
  - {cmd: ExecuteCommandLists, queue: 2, lists: [1, 1099511627776]}
  - {cmd: CommandQueueSignal, queue: 1, fence: 7, value: 3}
  - {cmd: FenceSignal, fence: 8, value: 1}
  - {synthetic: true, cmd: FenceGetCompletedValue, fence: 9223372036854775808, value: 1}
  - {cmd: ExecuteCommandLists, queue: 3}
  - {cmd: Present}
`

func TestLoadYAML(t *testing.T) {
	ctx := log.Testing(t)
	got, err := capture.LoadYAML(ctx, strings.NewReader(twoQueue))
	if !assert.For(ctx, "LoadYAML").ThatError(err).Succeeded() {
		return
	}
	expect := testCapture()
	assert.For(ctx, "name").ThatString(got.Header.Name).Equals(expect.Header.Name)
	assert.For(ctx, "time").ThatBoolean(got.Header.Time.Equal(captured)).IsTrue()
	assert.For(ctx, "commands").ThatSlice(got.Commands).DeepEquals(expect.Commands)
}

func TestLoadYAMLErrors(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name  string
		input string
		err   string
	}{
		{"missing cmd", "commands: [{queue: 1}]", "Command 0 (0): Missing cmd"},
		{"reset without list", "commands: [{cmd: CommandListReset}]", "Command 0 (0): CommandListReset requires a list"},
		{"call without name", "commands: [{cmd: Present}, {cmd: Call}]", "Command 1 (1): Call requires a name"},
		{"overflowing id", "commands: [{id: 1073741824, cmd: Present}]", "Command 0: id 1073741824 overflows the command index"},
	} {
		_, err := capture.LoadYAML(ctx, strings.NewReader(test.input))
		assert.For(ctx, test.name).ThatError(err).HasMessage(test.err)
	}

	_, err := capture.LoadYAML(ctx, strings.NewReader("commands: [{cmd: Present, bogus: 1}]"))
	assert.For(ctx, "unknown field").ThatError(err).Failed()
}

func TestLoad(t *testing.T) {
	ctx := log.Testing(t)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "trace.yaml")
	assert.For(ctx, "write yaml").ThatError(os.WriteFile(yamlPath, []byte(twoQueue), 0644)).Succeeded()

	buf := &bytes.Buffer{}
	testCapture().Export(ctx, buf)
	binPath := filepath.Join(dir, "trace.gqs")
	assert.For(ctx, "write binary").ThatError(os.WriteFile(binPath, buf.Bytes(), 0644)).Succeeded()

	fromYAML, err := capture.Load(ctx, yamlPath)
	assert.For(ctx, "load yaml").ThatError(err).Succeeded()
	fromBinary, err := capture.Load(ctx, binPath)
	assert.For(ctx, "load binary").ThatError(err).Succeeded()
	assert.For(ctx, "same commands").ThatSlice(fromBinary.Commands).DeepEquals(fromYAML.Commands)

	_, err = capture.Load(ctx, filepath.Join(dir, "missing.gqs"))
	assert.For(ctx, "missing").ThatError(err).Failed()
}
