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

// Package assert is a fluent assertion library for tests.
//
//	assert.For(ctx, "blocked").ThatInteger(s.Blocked()).Equals(1)
//
// A failed assertion reports its title followed by what was got and what was
// expected, and returns false so that dependent checks can be skipped.
package assert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/intel/gits-sub006/core/log"
)

// Output matches the logging methods of testing.T.
type Output interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Manager builds assertions that report to an Output.
type Manager struct {
	out Output
}

// To returns a Manager reporting to t, which may be a context.Context
// carrying a log handler, an Output such as *testing.T, or nil for stdout.
func To(t interface{}) Manager {
	switch t := t.(type) {
	case nil:
		return Manager{stdOutput{}}
	case context.Context:
		return Manager{ctxOutput{t}}
	case Output:
		return Manager{t}
	default:
		panic(fmt.Errorf("Unsupported assertion target type %T", t))
	}
}

// For is shorthand for To(t).For(msg, args...).
func For(t interface{}, msg string, args ...interface{}) *Assertion {
	return To(t).For(msg, args...)
}

// For starts a new assertion titled with the formatted message.
func (m Manager) For(msg string, args ...interface{}) *Assertion {
	return &Assertion{to: m.out, title: fmt.Sprintf(msg, args...)}
}

// Assertion collects the report of a single check.
type Assertion struct {
	to    Output
	title string
	fatal bool
	rows  []string
}

// Critical makes a failure of this assertion stop the test.
func (a *Assertion) Critical() *Assertion {
	a.fatal = true
	return a
}

// Add appends a named row to the failure report.
func (a *Assertion) Add(key string, values ...interface{}) *Assertion {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = pretty(v)
	}
	a.rows = append(a.rows, key+"\t\t"+strings.Join(cells, "\t"))
	return a
}

func (a *Assertion) compare(got interface{}, op string, expect interface{}) *Assertion {
	a.rows = append(a.rows,
		"Got\t\t"+pretty(got),
		"Expect\t"+op+"\t"+pretty(expect))
	return a
}

// test reports the assertion if ok is false, and returns ok.
func (a *Assertion) test(ok bool) bool {
	if ok {
		return true
	}
	buf := &bytes.Buffer{}
	tabs := tabwriter.NewWriter(buf, 1, 4, 1, ' ', 0)
	fmt.Fprint(tabs, "Error:", a.title)
	for _, r := range a.rows {
		fmt.Fprint(tabs, "\n    ", r)
	}
	tabs.Flush()
	message := strings.TrimRight(buf.String(), " \n")
	if a.fatal {
		a.to.Fatal(message)
	} else {
		a.to.Error(message)
	}
	return false
}

func pretty(v interface{}) string {
	switch v := v.(type) {
	case string:
		return "`" + v + "`"
	case error:
		return "`" + v.Error() + "`"
	default:
		return fmt.Sprint(v)
	}
}

type ctxOutput struct{ ctx context.Context }

func (o ctxOutput) Fatal(args ...interface{}) { log.F(o.ctx, true, "%s", fmt.Sprint(args...)) }
func (o ctxOutput) Error(args ...interface{}) { log.E(o.ctx, "%s", fmt.Sprint(args...)) }
func (o ctxOutput) Log(args ...interface{})   { log.I(o.ctx, "%s", fmt.Sprint(args...)) }

type stdOutput struct{}

func (stdOutput) Fatal(args ...interface{}) {
	fmt.Fprintln(os.Stdout, args...)
	panic("Fatal error without test context")
}
func (stdOutput) Error(args ...interface{}) { fmt.Fprintln(os.Stdout, args...) }
func (stdOutput) Log(args ...interface{})   { fmt.Fprintln(os.Stdout, args...) }
