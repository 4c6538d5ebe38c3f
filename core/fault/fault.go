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

// Package fault holds error helpers shared by the other packages.
package fault

// Const is an error whose message is a constant string, so that it can be
// declared as a const and compared against directly.
type Const string

func (e Const) Error() string { return string(e) }

// One keeps the first of a series of errors, and counts them all.
// The zero value is ready to use. One is not safe for concurrent use.
type One struct {
	first error
	count int
}

// Collect records err. nil errors are ignored.
func (o *One) Collect(err error) {
	if err == nil {
		return
	}
	if o.first == nil {
		o.first = err
	}
	o.count++
}

// First returns the first error collected, or nil.
func (o *One) First() error { return o.first }

// Count returns the number of errors collected.
func (o *One) Count() int { return o.count }
