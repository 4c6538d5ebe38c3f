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

// The queuesync command inspects and rewrites recorded command queue
// traces.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/intel/gits-sub006/core/app/crash"
	"github.com/intel/gits-sub006/core/fault/stacktrace"
)

func main() {
	crash.Register(func(e interface{}, s stacktrace.Callstack) {
		fmt.Fprintf(os.Stderr, "queuesync crashed: %v\n%v\n", e, s)
	})
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
