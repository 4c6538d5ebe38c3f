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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/intel/gits-sub006/core/fault"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is the cause of all errors returned by Validate.
const ErrInvalidSettings = fault.Const("Invalid settings")

// Settings holds the runtime parameters of the queue synchronization tools.
type Settings struct {
	// LogStyle is the name of the log style used for console output.
	LogStyle    string      `yaml:"log_style" toml:"log_style"`
	Descriptors Descriptors `yaml:"descriptors" toml:"descriptors"`
	Readback    Readback    `yaml:"readback" toml:"readback"`
}

// Descriptors holds the number of slots of each descriptor preservation pool.
// The pools are never resized.
type Descriptors struct {
	RenderTargetViews    int `yaml:"render_target_views" toml:"render_target_views"`
	DepthStencilViews    int `yaml:"depth_stencil_views" toml:"depth_stencil_views"`
	UnorderedAccessViews int `yaml:"unordered_access_views" toml:"unordered_access_views"`
}

// Readback holds the parameters of the blocking readback workers.
type Readback struct {
	// PollAttempts is the maximum number of times a worker checks the fence
	// before giving up.
	PollAttempts int `yaml:"poll_attempts" toml:"poll_attempts"`
	// PollInterval is the delay between two fence checks.
	PollInterval Duration `yaml:"poll_interval" toml:"poll_interval"`
}

// Duration is a time.Duration written as a string such as "10ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// Default returns the settings used when no configuration file is given.
func Default() Settings {
	return Settings{
		LogStyle: "normal",
		Descriptors: Descriptors{
			RenderTargetViews:    1024,
			DepthStencilViews:    256,
			UnorderedAccessViews: 1024,
		},
		Readback: Readback{
			PollAttempts: 5000,
			PollInterval: Duration(time.Millisecond),
		},
	}
}

// Load reads the settings file at path, based on its extension.
// Supports: .yaml/.yml, .toml
// Values missing from the file keep their Default value.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, errors.New("Empty settings path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &s)
	case ".toml":
		err = toml.Unmarshal(b, &s)
	default:
		return s, errors.Errorf("Unsupported settings extension: %s", ext)
	}
	if err != nil {
		return s, errors.Wrapf(err, "Parsing %v", path)
	}
	return s, s.Validate()
}

// Validate returns an error if any setting is out of range.
func (s Settings) Validate() error {
	switch {
	case s.Descriptors.RenderTargetViews <= 0:
		return errors.Wrap(ErrInvalidSettings, "descriptors.render_target_views must be positive")
	case s.Descriptors.DepthStencilViews <= 0:
		return errors.Wrap(ErrInvalidSettings, "descriptors.depth_stencil_views must be positive")
	case s.Descriptors.UnorderedAccessViews <= 0:
		return errors.Wrap(ErrInvalidSettings, "descriptors.unordered_access_views must be positive")
	case s.Readback.PollAttempts <= 0:
		return errors.Wrap(ErrInvalidSettings, "readback.poll_attempts must be positive")
	case s.Readback.PollInterval <= 0:
		return errors.Wrap(ErrInvalidSettings, "readback.poll_interval must be positive")
	}
	return nil
}
