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

// Package log provides a context-carried, structured logger.
//
// The logging target, filter, clock, tag, process name and bound values are
// all stored on the context.Context, so a logger is always built from the
// context at the point of use:
//
//	log.I(ctx, "Replaying %d commands", len(cmds))
//	log.From(ctx).W("Queue %v never drained", q)
package log

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Logger writes messages to the handler of the context it was built from.
type Logger struct {
	handler Handler
	filter  Filter
	clock   Clock
	tag     string
	process string
	trace   []string
	values  *values
}

// From returns a new Logger from the context ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler: GetHandler(ctx),
		filter:  GetFilter(ctx),
		clock:   GetClock(ctx),
		tag:     GetTag(ctx),
		process: GetProcess(ctx),
		trace:   GetTrace(ctx),
		values:  getValues(ctx),
	}
}

// Bind returns a new Logger from ctx with the additional values in v.
func Bind(ctx context.Context, v V) *Logger { return From(v.Bind(ctx)) }

// D logs a debug message.
func D(ctx context.Context, fmt string, args ...interface{}) { From(ctx).D(fmt, args...) }

// I logs an info message.
func I(ctx context.Context, fmt string, args ...interface{}) { From(ctx).I(fmt, args...) }

// W logs a warning message.
func W(ctx context.Context, fmt string, args ...interface{}) { From(ctx).W(fmt, args...) }

// E logs an error message.
func E(ctx context.Context, fmt string, args ...interface{}) { From(ctx).E(fmt, args...) }

// F logs a fatal message. stopProcess marks the message as one after which
// the process should stop.
func F(ctx context.Context, stopProcess bool, fmt string, args ...interface{}) {
	From(ctx).Logf(Fatal, stopProcess, fmt, args...)
}

func (l *Logger) D(fmt string, args ...interface{}) { l.Logf(Debug, false, fmt, args...) }
func (l *Logger) I(fmt string, args ...interface{}) { l.Logf(Info, false, fmt, args...) }
func (l *Logger) W(fmt string, args ...interface{}) { l.Logf(Warning, false, fmt, args...) }
func (l *Logger) E(fmt string, args ...interface{}) { l.Logf(Error, false, fmt, args...) }

// Logf logs a printf-style message at severity s.
func (l *Logger) Logf(s Severity, stopProcess bool, format string, args ...interface{}) {
	if l.handler == nil || (l.filter != nil && !l.filter.ShowSeverity(s)) {
		return
	}
	l.handler.Handle(l.Message(s, stopProcess, fmt.Sprintf(format, args...)))
}

// Message returns a new Message with the given severity and text, stamped
// with the logger's context.
func (l *Logger) Message(s Severity, stopProcess bool, text string) *Message {
	m := &Message{
		Text:        text,
		Time:        time.Now(),
		Severity:    s,
		StopProcess: stopProcess,
		Tag:         l.tag,
		Process:     l.process,
		Trace:       l.trace,
	}
	if l.clock != nil {
		m.Time = l.clock.Time()
	}
	seen := map[string]bool{}
	for n := l.values; n != nil; n = n.parent {
		for name, value := range n.v {
			if !seen[name] {
				seen[name] = true
				m.Values = append(m.Values, &Value{Name: name, Value: value})
			}
		}
	}
	sort.Sort(m.Values)
	return m
}
