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

import (
	"fmt"
	"strings"
	"time"
)

// Style controls which parts of a message are printed by a text handler.
type Style struct {
	Name      string
	Timestamp bool
	Tag       bool
	Trace     bool
	Process   bool
	Severity  SeverityStyle
	Values    ValueStyle
}

// SeverityStyle selects how the severity of a message is printed.
type SeverityStyle int

const (
	NoSeverity SeverityStyle = iota
	SeverityShort
	SeverityLong
)

func (ss SeverityStyle) print(s Severity) string {
	if ss == SeverityShort {
		return s.Short()
	}
	return s.String()
}

// ValueStyle selects how the bound values of a message are printed.
type ValueStyle int

const (
	NoValues ValueStyle = iota
	ValuesSingleLine
	ValuesMultiLine
)

func (vs ValueStyle) print(v Values) string {
	parts := make([]string, len(v))
	for i, v := range v {
		parts[i] = fmt.Sprintf("%v: %v", v.Name, v.Value)
	}
	switch vs {
	case ValuesSingleLine:
		return "(" + strings.Join(parts, ", ") + ")"
	case ValuesMultiLine:
		return "\n  " + strings.Join(parts, "\n  ")
	}
	return ""
}

func (s Style) String() string { return s.Name }

// StyleByName returns the style in Styles with the given name, ignoring case.
func StyleByName(name string) (Style, bool) {
	for _, s := range Styles {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Style{}, false
}

// StyleNames returns the names of all the Styles.
func StyleNames() []string {
	out := make([]string, len(Styles))
	for i, s := range Styles {
		out[i] = s.Name
	}
	return out
}

// Handler returns a Handler that prints each message with the style s to w.
func (s Style) Handler(w Writer) Handler {
	return NewHandler(func(m *Message) { w(s.format(m), m.Severity) }, nil)
}

// Print returns the message m printed with the style s.
func (s Style) Print(m *Message) string { return s.format(m) }

func (s Style) format(m *Message) string {
	parts := make([]string, 0, 8)
	if s.Timestamp && !m.Time.IsZero() {
		parts = append(parts, HHMMSSsss(m.Time))
	}
	if s.Severity != NoSeverity {
		parts = append(parts, s.Severity.print(m.Severity)+":")
	}
	if s.Trace && len(m.Trace) > 0 {
		parts = append(parts, fmt.Sprintf("[%s]", m.Trace))
	}
	if s.Tag && m.Tag != "" {
		parts = append(parts, "["+m.Tag+"]")
	}
	if s.Process && m.Process != "" {
		parts = append(parts, "<"+m.Process+">")
	}
	parts = append(parts, m.Text)
	if s.Values != NoValues && len(m.Values) > 0 {
		parts = append(parts, s.Values.print(m.Values))
	}
	return strings.Join(parts, " ")
}

// HHMMSSsss prints the time as HH:MM:SS.sss.
func HHMMSSsss(t time.Time) string {
	return fmt.Sprintf("%.2d:%.2d:%.2d.%.3d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
}
