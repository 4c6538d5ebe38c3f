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
	"context"
	"time"
)

type contextKey int

const (
	handlerKey contextKey = iota
	filterKey
	clockKey
	tagKey
	processKey
	traceKey
	valuesKey
)

func get[T any](ctx context.Context, key contextKey) T {
	out, _ := ctx.Value(key).(T)
	return out
}

// PutHandler returns a new context with the Handler assigned to h.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// GetHandler returns the Handler assigned to ctx.
func GetHandler(ctx context.Context) Handler { return get[Handler](ctx, handlerKey) }

// Filter decides which messages are passed to the handler.
type Filter interface {
	ShowSeverity(s Severity) bool
}

// SeverityFilter shows messages of its severity or higher.
type SeverityFilter Severity

func (f SeverityFilter) ShowSeverity(s Severity) bool { return Severity(f) <= s }

// PutFilter returns a new context with the Filter assigned to f.
func PutFilter(ctx context.Context, f Filter) context.Context {
	return context.WithValue(ctx, filterKey, f)
}

// GetFilter returns the Filter assigned to ctx.
func GetFilter(ctx context.Context) Filter { return get[Filter](ctx, filterKey) }

// Clock tells the time messages are stamped with.
type Clock interface {
	Time() time.Time
}

// FixedClock is a Clock that always returns the same time.
type FixedClock time.Time

func (c FixedClock) Time() time.Time { return time.Time(c) }

// PutClock returns a new context with the Clock assigned to c.
func PutClock(ctx context.Context, c Clock) context.Context {
	return context.WithValue(ctx, clockKey, c)
}

// GetClock returns the Clock assigned to ctx.
func GetClock(ctx context.Context) Clock { return get[Clock](ctx, clockKey) }

// PutTag returns a new context with the tag assigned to tag.
func PutTag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, tagKey, tag)
}

// GetTag returns the tag assigned to ctx.
func GetTag(ctx context.Context) string { return get[string](ctx, tagKey) }

// PutProcess returns a new context with the process name assigned to name.
func PutProcess(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, processKey, name)
}

// GetProcess returns the process name assigned to ctx.
func GetProcess(ctx context.Context) string { return get[string](ctx, processKey) }

type trace struct {
	name   string
	parent *trace
}

// Enter returns a new context with name pushed on the trace stack.
func Enter(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, traceKey, &trace{name, get[*trace](ctx, traceKey)})
}

// GetTrace returns the trace stack of ctx, most recent entry first.
func GetTrace(ctx context.Context) []string {
	var out []string
	for t := get[*trace](ctx, traceKey); t != nil; t = t.parent {
		out = append(out, t.name)
	}
	return out
}

// V is a set of named values attached to every message logged with a
// context it is bound to.
type V map[string]interface{}

type values struct {
	v      V
	parent *values
}

// Bind returns a new context with v attached. Values of v shadow any values
// of the same name bound earlier.
func (v V) Bind(ctx context.Context) context.Context {
	return context.WithValue(ctx, valuesKey, &values{v, getValues(ctx)})
}

func getValues(ctx context.Context) *values { return get[*values](ctx, valuesKey) }
