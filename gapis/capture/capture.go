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

// Package capture reads and writes recorded command streams.
//
// The binary format consists of a magic marker, followed by a header chunk.
// After that is a repeated sequence of uvarint length and record body pairs.
// Each record body starts with the uvarint record kind and command id,
// followed by the fields of that kind of command.
package capture

import (
	"fmt"
	"time"

	"github.com/intel/gits-sub006/core/fault"
	"github.com/intel/gits-sub006/gapis/api"
)

const (
	// ErrIncorrectMagic is the error returned when the stream header is not
	// matched.
	ErrIncorrectMagic = fault.Const("Incorrect capture magic header")

	// Version is the version of the binary format written by this package.
	Version = 1

	initialBufferSize = 4096
	maxVarintSize     = 10
	maxChunkSize      = 1 << 24
)

var magic = []byte("GITSQSYN")

// ErrUnsupportedVersion is the error returned when the header version is one
// this package cannot handle.
type ErrUnsupportedVersion struct{ Version uint64 }

func (e ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("Unsupported capture version: %v", e.Version)
}

// Header describes a recorded command stream.
type Header struct {
	// Name of the captured application or scenario.
	Name string
	// Time the capture was started.
	Time time.Time
}

// Capture is a header and the list of recorded commands.
type Capture struct {
	Header   Header
	Commands api.CmdAndIDList
}
