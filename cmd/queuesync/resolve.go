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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/execution"
	"github.com/intel/gits-sub006/gapis/capture"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <trace>",
		Short:   "Print each command list execution once its queue dependencies are met",
		Example: "  queuesync resolve frame.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := capture.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return resolve(cmd.Context(), cmd.OutOrStdout(), c)
		},
	}
}

// resolve replays the queue commands of c through a tracker, printing every
// execute that becomes ready along with the command that released it.
func resolve(ctx context.Context, out io.Writer, c *capture.Capture) error {
	t := execution.NewTracker[api.CmdID]()
	for _, cmd := range c.Commands {
		switch q := cmd.Cmd.(type) {
		case *api.CommandQueueWait:
			t.CommandQueueWait(cmd.ID, q.Queue, q.Fence, q.Value)
		case *api.CommandQueueSignal:
			t.CommandQueueSignal(cmd.ID, q.Queue, q.Fence, q.Value)
		case *api.FenceSignal:
			t.FenceSignal(cmd.ID, q.Fence, q.Value)
		case *api.ExecuteCommandLists:
			t.Execute(cmd.ID, q.Queue, cmd.ID)
		default:
			continue
		}
		for _, id := range t.DrainReady() {
			if id == cmd.ID {
				fmt.Fprintf(out, "%v ready\n", id)
			} else {
				fmt.Fprintf(out, "%v ready after %v\n", id, cmd.ID)
			}
		}
	}

	s := t.Stats()
	if s.Pending > 0 {
		log.W(ctx, "%d events still blocked across %d queues", s.Pending, s.Queues)
	}
	fmt.Fprintf(out, "queues: %d, blocked: %d, unconsumed signals: %d\n", s.Queues, s.Pending, s.EarlySignals)
	return nil
}
