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
	"context"
	"io"
	"time"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlCapture is the hand-written form of a capture.
//
//	name: two-queue
//	time: 2019-01-02T03:04:05Z
//	commands:
//	  - {cmd: CommandListReset, list: 1}
//	  - {cmd: DrawInstanced, list: 1}
//	  - {cmd: CommandQueueWait, queue: 2, fence: 7, value: 1}
//	  - {cmd: ExecuteCommandLists, queue: 2, lists: [1]}
//	  - {cmd: CommandQueueSignal, queue: 1, fence: 7, value: 1}
//	  - {cmd: Present}
type yamlCapture struct {
	Name     string        `yaml:"name"`
	Time     time.Time     `yaml:"time"`
	Commands []yamlCommand `yaml:"commands"`
}

type yamlCommand struct {
	ID        *uint32  `yaml:"id"`
	Restore   bool     `yaml:"restore"`
	Synthetic bool     `yaml:"synthetic"`
	Cmd       string   `yaml:"cmd"`
	Queue     uint64   `yaml:"queue"`
	Fence     uint64   `yaml:"fence"`
	Value     uint64   `yaml:"value"`
	List      *uint64  `yaml:"list"`
	Lists     []uint64 `yaml:"lists"`
	Name      string   `yaml:"name"`
}

// LoadYAML reads a hand-written capture. Commands without an id are given
// the index of their position in the list. A cmd that is not one of the
// queue, fence or command list commands is a Call, or a CommandListCommand
// if a list is given.
func LoadYAML(ctx context.Context, from io.Reader) (*Capture, error) {
	in := yamlCapture{}
	dec := yaml.NewDecoder(from)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Parsing YAML capture")
	}
	c := &Capture{Header: Header{Name: in.Name, Time: in.Time}}
	for i, y := range in.Commands {
		id := api.NewCmdID(uint32(i))
		if y.ID != nil {
			if *y.ID&^uint32(api.CmdNoID) != 0 {
				return nil, errors.Errorf("Command %d: id %d overflows the command index", i, *y.ID)
			}
			id = api.NewCmdID(*y.ID)
		}
		if y.Restore {
			id = id.StateRestore()
		}
		if y.Synthetic {
			id = id.Synthetic()
		}
		cmd, err := y.build()
		if err != nil {
			return nil, errors.Wrapf(err, "Command %d (%v)", i, id)
		}
		c.Commands.Add(id, cmd)
	}
	log.D(ctx, "Loaded %d commands from YAML capture %q", len(c.Commands), c.Header.Name)
	return c, nil
}

func (y yamlCommand) build() (api.Cmd, error) {
	fence := api.FenceKey(y.Fence)
	switch y.Cmd {
	case "":
		return nil, errors.New("Missing cmd")
	case "Call":
		if y.Name == "" {
			return nil, errors.New("Call requires a name")
		}
		return &api.Call{Name: y.Name}, nil
	case "CommandQueueWait":
		return &api.CommandQueueWait{Queue: api.QueueKey(y.Queue), Fence: fence, Value: y.Value}, nil
	case "CommandQueueSignal":
		return &api.CommandQueueSignal{Queue: api.QueueKey(y.Queue), Fence: fence, Value: y.Value}, nil
	case "FenceSignal":
		return &api.FenceSignal{Fence: fence, Value: y.Value}, nil
	case "FenceGetCompletedValue":
		return &api.FenceGetCompletedValue{Fence: fence, Value: y.Value}, nil
	case "CreateFence":
		return &api.CreateFence{Fence: fence, InitialValue: y.Value}, nil
	case "ExecuteCommandLists":
		c := &api.ExecuteCommandLists{Queue: api.QueueKey(y.Queue)}
		for _, l := range y.Lists {
			c.Lists = append(c.Lists, api.CommandListKey(l))
		}
		return c, nil
	case "CommandListReset":
		if y.List == nil {
			return nil, errors.New("CommandListReset requires a list")
		}
		return &api.CommandListReset{List: api.CommandListKey(*y.List)}, nil
	default:
		if y.List != nil {
			return &api.CommandListCommand{List: api.CommandListKey(*y.List), Name: y.Cmd}, nil
		}
		return &api.Call{Name: y.Cmd}, nil
	}
}
