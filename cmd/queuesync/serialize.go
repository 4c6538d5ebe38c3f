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
	"os"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/api/transform"
	"github.com/intel/gits-sub006/gapis/capture"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type serializeFlags struct {
	output   string
	until    int64
	logInput string
}

func newSerializeCmd(opts *options) *cobra.Command {
	f := &serializeFlags{until: -1}
	cmd := &cobra.Command{
		Use:     "serialize <trace>",
		Short:   "Rewrite a trace so its command list executions need no queue synchronization",
		Example: "  queuesync serialize frame.qsc -o serial.qsc\n  queuesync serialize frame.yaml -o serial.qsc --until 120",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return serialize(cmd.Context(), args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output capture file")
	cmd.Flags().Int64Var(&f.until, "until", -1, "Drop all commands after the command with this id")
	cmd.Flags().StringVar(&f.logInput, "log-input", "", "Also write the commands entering serialization to this capture file")
	cmd.MarkFlagRequired("output")
	return cmd
}

func serialize(ctx context.Context, path string, f *serializeFlags) error {
	c, err := capture.Load(ctx, path)
	if err != nil {
		return err
	}

	var transforms transform.Transforms
	if f.until >= 0 {
		if f.until > int64(api.CmdNoID) {
			return errors.Errorf("Command id %d out of range", f.until)
		}
		terminator := transform.NewEarlyTerminator()
		terminator.Add(ctx, api.NewCmdID(uint32(f.until)))
		transforms.Add(terminator)
	}
	if f.logInput != "" {
		transforms.Add(transform.NewCaptureLog(ctx, c.Header, f.logInput))
	}
	serializer := transform.NewExecutionSerializer()
	transforms.Add(serializer)

	out, err := os.Create(f.output)
	if err != nil {
		return err
	}
	defer out.Close()
	w, err := capture.NewWriter(out, c.Header)
	if err != nil {
		return log.Errf(ctx, err, "Writing header of %v", f.output)
	}
	if err := transforms.TransformAll(ctx, c.Commands, w); err != nil {
		return err
	}
	log.I(ctx, "Wrote %d commands to %v", w.Count(), f.output)
	return out.Close()
}
