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

package assert

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	testify "github.com/stretchr/testify/assert"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// deepEqual reports whether got and expect are deeply equal. Byte slices are
// compared by content.
func deepEqual(got, expect interface{}) bool {
	return testify.ObjectsAreEqual(expect, got)
}

// diffLines returns a unified diff of the dumped forms of expect and got, or
// nil if they are deeply equal. At most limit lines are returned.
func diffLines(got, expect interface{}, limit int) []string {
	if deepEqual(got, expect) {
		return nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(dumper.Sdump(expect)),
		B:        difflib.SplitLines(dumper.Sdump(got)),
		FromFile: "Expect",
		ToFile:   "Got",
		Context:  2,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		// The dumps are identical but the values are not, eg. different types.
		return []string{"Got " + dumper.Sprintf("%#v", got), "Expect " + dumper.Sprintf("%#v", expect)}
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > limit {
		lines = append(lines[:limit], "...")
	}
	return lines
}
