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
	"strings"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/config"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type options struct {
	config   string
	logStyle string
	logJSON  bool
	metrics  bool

	settings config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{settings: config.Default()}
	root := &cobra.Command{
		Use:           "queuesync",
		Short:         "Resolve and serialize cross-queue execution dependencies of recorded traces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.config, "config", "", "Settings file (.yaml, .yml or .toml)")
	flags.StringVar(&opts.logStyle, "log-style", "", "Log style: "+strings.Join(log.StyleNames(), "|"))
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write log messages to stderr as JSON lines")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print the collected metrics when the command completes")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := opts.setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if !opts.metrics {
			return nil
		}
		return writeMetrics(cmd)
	}

	root.AddCommand(
		newResolveCmd(opts),
		newSerializeCmd(opts),
		newConvertCmd(opts),
		newDumpCmd(opts),
		newSimulateCmd(opts),
	)
	return root
}

// setup loads the settings and binds the log handler to ctx.
func (o *options) setup(ctx context.Context, cmd *cobra.Command) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.config != "" {
		s, err := config.Load(o.config)
		if err != nil {
			return nil, err
		}
		o.settings = s
	}
	if o.logStyle != "" {
		o.settings.LogStyle = o.logStyle
	}

	var handler log.Handler
	if o.logJSON {
		handler = log.JSON(cmd.ErrOrStderr())
	} else {
		style, ok := log.StyleByName(o.settings.LogStyle)
		if !ok {
			return nil, errors.Errorf("Unknown log style %q", o.settings.LogStyle)
		}
		handler = style.Handler(log.To(cmd.ErrOrStderr()))
	}
	ctx = log.PutHandler(ctx, handler)
	return log.Enter(ctx, cmd.Name()), nil
}

func writeMetrics(cmd *cobra.Command) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "Gathering metrics")
	}
	enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "queuesync_") {
			continue
		}
		if err := enc.Encode(f); err != nil {
			return errors.Wrapf(err, "Encoding metric %v", f.GetName())
		}
	}
	return nil
}
