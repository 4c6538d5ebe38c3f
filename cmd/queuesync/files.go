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
	"fmt"
	"os"

	"github.com/intel/gits-sub006/gapis/capture"
	"github.com/spf13/cobra"
)

func newConvertCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "convert <trace>",
		Short:   "Write a trace in the binary capture format",
		Example: "  queuesync convert frame.yaml -o frame.qsc",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := capture.Load(ctx, args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := c.Export(ctx, f); err != nil {
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output capture file")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <trace>",
		Short: "Print one line per command of a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := capture.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d commands)\n", c.Header.Name, len(c.Commands))
			for _, cmd := range c.Commands {
				fmt.Fprintf(out, "%v %v\n", cmd.ID, cmd.Cmd)
			}
			return nil
		},
	}
}
