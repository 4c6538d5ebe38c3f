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

// Package stacktrace captures goroutine callstacks for crash reports.
package stacktrace

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

const stackLimit = 64

// Callstack is a list of return program counters, innermost call first.
type Callstack []uintptr

// Entry is the resolved form of a single Callstack frame.
type Entry struct {
	Package  string // Full import path of the package.
	Function string // Function name, including any receiver.
	File     string // Base name of the source file.
	Line     int
}

func (e Entry) String() string { return fmt.Sprintf("%s.%s (%s:%d)", path.Base(e.Package), e.Function, e.File, e.Line) }

// Capture returns the callstack of the calling goroutine, starting with the
// caller of Capture.
func Capture() Callstack {
	pcs := make([]uintptr, stackLimit)
	n := runtime.Callers(2, pcs)
	return Callstack(pcs[:n])
}

// Entries resolves every frame of the callstack.
func (c Callstack) Entries() []Entry {
	if len(c) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(c))
	frames := runtime.CallersFrames(c)
	for {
		f, more := frames.Next()
		out = append(out, newEntry(f))
		if !more {
			return out
		}
	}
}

func (c Callstack) String() string {
	lines := []string{}
	for _, e := range c.Entries() {
		lines = append(lines, "  "+e.String())
	}
	return strings.Join(lines, "\n")
}

// newEntry splits the qualified name of f, which has the form
// github.com/org/repo/pkg.(*Type).Method, into package and function.
func newEntry(f runtime.Frame) Entry {
	name := f.Function
	slash := strings.LastIndex(name, "/")
	dot := slash + 1 + strings.IndexRune(name[slash+1:], '.')
	e := Entry{Function: name, File: path.Base(f.File), Line: f.Line}
	if dot > slash {
		e.Package, e.Function = name[:dot], name[dot+1:]
	}
	return e
}
