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

package api

import "fmt"

// CmdID is the 32-bit identity of a captured API call.
//
// The two most significant bits are reserved to flag the provenance of the
// call. Masking them off with Index recovers the sequential index of the
// call in the capture.
type CmdID uint32

const (
	// stateRestoreBit flags calls issued while restoring state at the start
	// of a captured sub-range.
	stateRestoreBit = CmdID(1 << 31)
	// syntheticBit flags calls generated by execution serialization.
	syntheticBit = CmdID(1 << 30)

	flagBits = stateRestoreBit | syntheticBit
)

// CmdNoID is used when you have to pass an ID, but don't have one to use.
const CmdNoID = ^flagBits

// NewCmdID returns the real CmdID for the sequential index idx.
// idx must fit in the 30 non-reserved bits.
func NewCmdID(idx uint32) CmdID {
	if CmdID(idx)&flagBits != 0 {
		panic(fmt.Errorf("Command index %d overflows the command key", idx))
	}
	return CmdID(idx)
}

// StateRestore returns id with the state-restore flag set.
func (id CmdID) StateRestore() CmdID { return id | stateRestoreBit }

// Synthetic returns id with the execution-serialization flag set.
func (id CmdID) Synthetic() CmdID { return id | syntheticBit }

// IsStateRestore returns true if id was issued while restoring state.
func (id CmdID) IsStateRestore() bool { return id&stateRestoreBit != 0 }

// IsSynthetic returns true if id was generated by execution serialization.
func (id CmdID) IsSynthetic() bool { return id&syntheticBit != 0 }

// Index returns the sequential index of id with the reserved bits masked off.
func (id CmdID) Index() uint32 { return uint32(id &^ flagBits) }

// IsReal returns true if id is neither flagged nor CmdNoID.
func (id CmdID) IsReal() bool { return id != CmdNoID && id&flagBits == 0 }

func (id CmdID) String() string {
	if id.Index() == uint32(CmdNoID) {
		return "(NoID)"
	}
	s := fmt.Sprint(id.Index())
	if id.IsStateRestore() {
		s = "r" + s
	}
	if id.IsSynthetic() {
		s += "*"
	}
	return s
}
