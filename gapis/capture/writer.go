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
	"fmt"
	"io"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/pkg/errors"
)

// Writer is the type for a capture stream writer.
// They should only be constructed by NewWriter.
// Writer implements the transform.Writer interface.
type Writer struct {
	buf     *proto.Buffer
	sizebuf *proto.Buffer
	to      io.Writer
	count   int
}

// NewWriter constructs and returns a new Writer that writes to the supplied
// output stream.
// This method will write the capture magic and header to the underlying
// stream.
func NewWriter(to io.Writer, h Header) (*Writer, error) {
	w := &Writer{
		buf:     proto.NewBuffer(make([]byte, 0, initialBufferSize)),
		sizebuf: proto.NewBuffer(make([]byte, 0, maxVarintSize)),
		to:      to,
	}
	if _, err := to.Write(magic); err != nil {
		return nil, err
	}
	if err := w.writeHeader(h); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(h Header) error {
	ts, err := ptypes.TimestampProto(h.Time)
	if err != nil {
		return errors.Wrap(err, "Encoding capture time")
	}
	if err := w.buf.EncodeVarint(Version); err != nil {
		return err
	}
	if err := w.buf.EncodeStringBytes(h.Name); err != nil {
		return err
	}
	if err := w.buf.EncodeMessage(ts); err != nil {
		return err
	}
	return w.flushChunk()
}

// Write encodes cmd with the identifier id to the stream.
func (w *Writer) Write(ctx context.Context, id api.CmdID, cmd api.Cmd) error {
	kind, ok := kindOf(cmd)
	if !ok {
		return fmt.Errorf("Cannot encode command %v of type %T", cmd.CmdName(), cmd)
	}
	b := w.buf
	b.EncodeVarint(uint64(kind))
	b.EncodeVarint(uint64(id))
	switch cmd := cmd.(type) {
	case *api.Call:
		b.EncodeStringBytes(cmd.Name)
	case *api.CommandQueueWait:
		b.EncodeVarint(uint64(cmd.Queue))
		b.EncodeVarint(uint64(cmd.Fence))
		b.EncodeVarint(cmd.Value)
	case *api.CommandQueueSignal:
		b.EncodeVarint(uint64(cmd.Queue))
		b.EncodeVarint(uint64(cmd.Fence))
		b.EncodeVarint(cmd.Value)
	case *api.FenceSignal:
		b.EncodeVarint(uint64(cmd.Fence))
		b.EncodeVarint(cmd.Value)
	case *api.FenceGetCompletedValue:
		b.EncodeVarint(uint64(cmd.Fence))
		b.EncodeVarint(cmd.Value)
	case *api.CreateFence:
		b.EncodeVarint(uint64(cmd.Fence))
		b.EncodeVarint(cmd.InitialValue)
	case *api.ExecuteCommandLists:
		b.EncodeVarint(uint64(cmd.Queue))
		b.EncodeVarint(uint64(len(cmd.Lists)))
		for _, l := range cmd.Lists {
			b.EncodeVarint(uint64(l))
		}
	case *api.CommandListReset:
		b.EncodeVarint(uint64(cmd.List))
	case *api.CommandListCommand:
		b.EncodeVarint(uint64(cmd.List))
		b.EncodeStringBytes(cmd.Name)
	}
	if err := w.flushChunk(); err != nil {
		return errors.Wrapf(err, "Writing %v %v", id, cmd.CmdName())
	}
	w.count++
	return nil
}

// Count returns the number of commands written so far.
func (w *Writer) Count() int { return w.count }

func (w *Writer) flushChunk() error {
	size := len(w.buf.Bytes())
	if err := w.sizebuf.EncodeVarint(uint64(size)); err != nil {
		return err
	}
	_, err := w.to.Write(w.sizebuf.Bytes())
	w.sizebuf.Reset()
	if err != nil {
		w.buf.Reset()
		return err
	}
	_, err = w.to.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
