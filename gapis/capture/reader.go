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
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/intel/gits-sub006/core/event/task"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/pkg/errors"
)

// ErrRecordTooLarge is returned when a chunk length exceeds the largest
// record this package will read.
type ErrRecordTooLarge struct{ Size uint64 }

func (e ErrRecordTooLarge) Error() string {
	return fmt.Sprintf("Capture record too large: %d bytes", e.Size)
}

// Read reads the capture stream from the supplied reader, calling cb for
// each recorded command in stream order.
// Reading stops at the end of the stream, when cb returns an error, or when
// ctx is stopped.
func Read(ctx context.Context, from io.Reader, cb func(ctx context.Context, id api.CmdID, cmd api.Cmd) error) (Header, error) {
	r := bufio.NewReaderSize(from, initialBufferSize)
	h, err := readHeader(r)
	if err != nil {
		return Header{}, err
	}
	for i := 0; !task.Stopped(ctx); i++ {
		body, err := readChunk(r)
		if err != nil {
			if err == io.EOF {
				return h, nil
			}
			return h, errors.Wrapf(err, "Reading record %d", i)
		}
		id, cmd, err := decodeRecord(proto.NewBuffer(body))
		if err != nil {
			return h, errors.Wrapf(err, "Decoding record %d", i)
		}
		if err := cb(ctx, id, cmd); err != nil {
			return h, err
		}
	}
	return h, task.StopReason(ctx)
}

// ReadAll reads the whole capture stream into a Capture.
func ReadAll(ctx context.Context, from io.Reader) (*Capture, error) {
	c := &Capture{}
	h, err := Read(ctx, from, func(ctx context.Context, id api.CmdID, cmd api.Cmd) error {
		c.Commands.Add(id, cmd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.Header = h
	return c, nil
}

func readHeader(r *bufio.Reader) (Header, error) {
	got := make([]byte, len(magic))
	if _, err := io.ReadFull(r, got); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrIncorrectMagic
		}
		return Header{}, err
	}
	if !bytes.Equal(got, magic) {
		return Header{}, ErrIncorrectMagic
	}
	body, err := readChunk(r)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, errors.Wrap(err, "Reading capture header")
	}
	b := proto.NewBuffer(body)
	version, err := b.DecodeVarint()
	if err != nil {
		return Header{}, errors.Wrap(err, "Decoding capture version")
	}
	if version != Version {
		return Header{}, ErrUnsupportedVersion{Version: version}
	}
	h := Header{}
	if h.Name, err = b.DecodeStringBytes(); err != nil {
		return Header{}, errors.Wrap(err, "Decoding capture name")
	}
	ts := &timestamp.Timestamp{}
	if err := b.DecodeMessage(ts); err != nil {
		return Header{}, errors.Wrap(err, "Decoding capture time")
	}
	if h.Time, err = ptypes.Timestamp(ts); err != nil {
		return Header{}, errors.Wrap(err, "Decoding capture time")
	}
	return h, nil
}

// readChunk returns the next length prefixed chunk. io.EOF is only returned
// if the stream ends cleanly between chunks.
func readChunk(r *bufio.Reader) ([]byte, error) {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if size > maxChunkSize {
		return nil, ErrRecordTooLarge{Size: size}
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return body, nil
}

type decoder struct {
	b   *proto.Buffer
	err error
}

func (d *decoder) uint() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := d.b.DecodeVarint()
	d.err = err
	return v
}

func (d *decoder) str() string {
	if d.err != nil {
		return ""
	}
	s, err := d.b.DecodeStringBytes()
	d.err = err
	return s
}

func decodeRecord(b *proto.Buffer) (api.CmdID, api.Cmd, error) {
	d := &decoder{b: b}
	kind := recordKind(d.uint())
	raw := d.uint()
	if d.err != nil {
		return 0, nil, d.err
	}
	if raw > math.MaxUint32 {
		return 0, nil, errors.Errorf("Command id %d does not fit in 32 bits", raw)
	}
	id := api.CmdID(raw)
	var cmd api.Cmd
	switch kind {
	case kindCall:
		cmd = &api.Call{Name: d.str()}
	case kindCommandQueueWait:
		cmd = &api.CommandQueueWait{Queue: api.QueueKey(d.uint()), Fence: api.FenceKey(d.uint()), Value: d.uint()}
	case kindCommandQueueSignal:
		cmd = &api.CommandQueueSignal{Queue: api.QueueKey(d.uint()), Fence: api.FenceKey(d.uint()), Value: d.uint()}
	case kindFenceSignal:
		cmd = &api.FenceSignal{Fence: api.FenceKey(d.uint()), Value: d.uint()}
	case kindFenceGetCompletedValue:
		cmd = &api.FenceGetCompletedValue{Fence: api.FenceKey(d.uint()), Value: d.uint()}
	case kindCreateFence:
		cmd = &api.CreateFence{Fence: api.FenceKey(d.uint()), InitialValue: d.uint()}
	case kindExecuteCommandLists:
		c := &api.ExecuteCommandLists{Queue: api.QueueKey(d.uint())}
		n := d.uint()
		if n > uint64(len(b.Bytes())) {
			return 0, nil, errors.Errorf("%v lists an impossible %d command lists", id, n)
		}
		for i := uint64(0); i < n && d.err == nil; i++ {
			c.Lists = append(c.Lists, api.CommandListKey(d.uint()))
		}
		cmd = c
	case kindCommandListReset:
		cmd = &api.CommandListReset{List: api.CommandListKey(d.uint())}
	case kindCommandListCommand:
		cmd = &api.CommandListCommand{List: api.CommandListKey(d.uint()), Name: d.str()}
	default:
		return 0, nil, errors.Errorf("Unknown record kind %d for %v", uint64(kind), id)
	}
	if d.err != nil {
		return 0, nil, errors.Wrapf(d.err, "Decoding %v %v", kind, id)
	}
	return id, cmd, nil
}
