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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/capture"
	"github.com/intel/gits-sub006/gapis/config"
	"github.com/intel/gits-sub006/gapis/replay/descriptors"
	"github.com/spf13/cobra"
)

func newSimulateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <trace>",
		Short: "Report descriptor preservation pool usage while replaying a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := capture.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return simulate(cmd.Context(), cmd.OutOrStdout(), opts.settings.Descriptors, c)
		},
	}
}

type usage struct {
	peak   int
	failed int
}

// simulate preserves a descriptor for every command list method that
// consumes one, releasing them as the submitting executions complete.
func simulate(ctx context.Context, out io.Writer, sizes config.Descriptors, c *capture.Capture) error {
	s := descriptors.NewService(descriptors.NewPool(sizes))
	pool := s.Pool()
	stats := map[descriptors.Kind]*usage{}
	for _, k := range descriptors.Kinds {
		stats[k] = &usage{}
	}

	for _, cmd := range c.Commands {
		if l, ok := cmd.Cmd.(*api.CommandListCommand); ok {
			if kind, ok := descriptors.KindOf(l.Name); ok {
				var handle [4]byte
				binary.LittleEndian.PutUint32(handle[:], uint32(cmd.ID))
				u := stats[kind]
				if _, ok := s.Preserve(ctx, cmd.ID, l.List, kind, handle[:]); !ok {
					u.failed++
				}
				if used := pool.Capacity(kind) - pool.Free(kind); used > u.peak {
					u.peak = used
				}
			}
		}
		s.Observe(ctx, cmd.ID, cmd.Cmd)
	}

	for _, k := range descriptors.Kinds {
		u := stats[k]
		if u.failed > 0 {
			log.W(ctx, "%d %v descriptors were not preserved", u.failed, k)
		}
		fmt.Fprintf(out, "%v: peak %d of %d, in use %d, not preserved %d\n",
			k, u.peak, pool.Capacity(k), pool.Capacity(k)-pool.Free(k), u.failed)
	}
	return nil
}
