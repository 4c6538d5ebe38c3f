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

package log

import "context"

// Testing returns a context that logs to t. Error messages fail the test and
// fatal messages stop it.
func Testing(t delegate) context.Context {
	return SubTest(context.Background(), t)
}

// SubTest returns ctx with its handler replaced by one logging to t, for use
// in sub-tests:
//
//	t.Run(test.name, func(t *testing.T) {
//	  test.run(log.SubTest(ctx, t))
//	})
func SubTest(ctx context.Context, t delegate) context.Context {
	return PutHandler(ctx, TestHandler(t, Normal))
}

// TestHandler returns a Handler that prints messages to t using the style s.
func TestHandler(t delegate, s Style) Handler {
	if t == nil {
		panic("delegate cannot be nil")
	}
	return NewHandler(func(m *Message) {
		switch text := s.Print(m); {
		case m.Severity >= Fatal:
			t.Fatal(text)
		case m.Severity >= Error:
			t.Error(text)
		default:
			t.Log(text)
		}
	}, nil)
}

// delegate matches the logging methods of testing.T and testing.B.
type delegate interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}
