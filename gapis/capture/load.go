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
	"os"
	"path/filepath"
	"strings"

	"github.com/intel/gits-sub006/core/log"
	"github.com/pkg/errors"
)

// Load reads the capture at path. Files with a .yaml or .yml extension are
// read with LoadYAML, everything else as a binary stream.
func Load(ctx context.Context, path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx = log.V{"capture": path}.Bind(ctx)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(ctx, f)
	default:
		c, err := ReadAll(ctx, f)
		if err != nil {
			return nil, errors.Wrapf(err, "Reading %v", path)
		}
		return c, nil
	}
}

// Export writes the capture as a binary stream to w.
func (c *Capture) Export(ctx context.Context, w io.Writer) error {
	out, err := NewWriter(w, c.Header)
	if err != nil {
		return err
	}
	for _, cmd := range c.Commands {
		if err := out.Write(ctx, cmd.ID, cmd.Cmd); err != nil {
			return err
		}
	}
	return nil
}
