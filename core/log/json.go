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
	"io"

	"github.com/rs/zerolog"
)

// JSON returns a Handler that writes each message to w as a single line JSON
// object. Bound values are emitted as top-level fields.
func JSON(w io.Writer) Handler {
	z := zerolog.New(w)
	return handler{
		handle: func(m *Message) {
			e := z.WithLevel(zerologLevel(m.Severity))
			if !m.Time.IsZero() {
				e = e.Time(zerolog.TimestampFieldName, m.Time)
			}
			if m.Tag != "" {
				e = e.Str("tag", m.Tag)
			}
			if m.Process != "" {
				e = e.Str("process", m.Process)
			}
			if len(m.Trace) > 0 {
				e = e.Strs("trace", m.Trace)
			}
			if m.StopProcess {
				e = e.Bool("stop", true)
			}
			for _, v := range m.Values {
				e = e.Interface(v.Name, v.Value)
			}
			e.Msg(m.Text)
		},
		close: func() {},
	}
}

func zerologLevel(s Severity) zerolog.Level {
	switch s {
	case Verbose:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		// zerolog's FatalLevel calls os.Exit from Msg.
		return zerolog.ErrorLevel
	}
}
