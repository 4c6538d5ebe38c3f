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
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// OnValue holds assertions that work for any type.
type OnValue struct {
	a     *Assertion
	value interface{}
}

// That starts an assertion on an untyped value.
func (a *Assertion) That(value interface{}) OnValue { return OnValue{a, value} }

// Equals asserts that the value is == expect.
func (o OnValue) Equals(expect interface{}) bool {
	return o.a.compare(o.value, "==", expect).test(o.value == expect)
}

// NotEquals asserts that the value is != test.
func (o OnValue) NotEquals(test interface{}) bool {
	return o.a.compare(o.value, "!=", test).test(o.value != test)
}

// DeepEquals asserts that the value deeply equals expect, reporting a diff of
// the two on failure.
func (o OnValue) DeepEquals(expect interface{}) bool {
	diff := diffLines(o.value, expect, 40)
	o.a.rows = append(o.a.rows, diff...)
	return o.a.test(len(diff) == 0)
}

// IsNil asserts that the value is nil or a typed nil.
func (o OnValue) IsNil() bool {
	return o.a.compare(o.value, "==", "nil").test(isNil(o.value))
}

// IsNotNil asserts that the value is neither nil nor a typed nil.
func (o OnValue) IsNotNil() bool {
	return o.a.compare(o.value, "!=", "nil").test(!isNil(o.value))
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// OnBoolean holds assertions on a bool.
type OnBoolean struct {
	a     *Assertion
	value bool
}

// ThatBoolean starts an assertion on a bool.
func (a *Assertion) ThatBoolean(value bool) OnBoolean { return OnBoolean{a, value} }

func (o OnBoolean) Equals(expect bool) bool {
	return o.a.compare(o.value, "==", expect).test(o.value == expect)
}
func (o OnBoolean) IsTrue() bool  { return o.Equals(true) }
func (o OnBoolean) IsFalse() bool { return o.Equals(false) }

// OnInteger holds assertions on an int.
type OnInteger struct {
	a     *Assertion
	value int
}

// ThatInteger starts an assertion on an int.
func (a *Assertion) ThatInteger(value int) OnInteger { return OnInteger{a, value} }

func (o OnInteger) Equals(expect int) bool {
	return o.a.compare(o.value, "==", expect).test(o.value == expect)
}
func (o OnInteger) NotEquals(test int) bool {
	return o.a.compare(o.value, "!=", test).test(o.value != test)
}
func (o OnInteger) IsAtLeast(min int) bool {
	return o.a.compare(o.value, ">=", min).test(o.value >= min)
}
func (o OnInteger) IsAtMost(max int) bool {
	return o.a.compare(o.value, "<=", max).test(o.value <= max)
}

// OnString holds assertions on a string.
type OnString struct {
	a     *Assertion
	value string
}

// ThatString starts an assertion on the string form of value. Byte slices
// are converted directly, everything else with fmt.Sprint.
func (a *Assertion) ThatString(value interface{}) OnString {
	switch v := value.(type) {
	case string:
		return OnString{a, v}
	case []byte:
		return OnString{a, string(v)}
	default:
		return OnString{a, fmt.Sprint(v)}
	}
}

func (o OnString) Equals(expect string) bool {
	return o.a.compare(o.value, "==", expect).test(o.value == expect)
}
func (o OnString) NotEquals(test string) bool {
	return o.a.compare(o.value, "!=", test).test(o.value != test)
}
func (o OnString) Contains(substr string) bool {
	return o.a.compare(o.value, "contains", substr).test(strings.Contains(o.value, substr))
}
func (o OnString) HasPrefix(prefix string) bool {
	return o.a.compare(o.value, "starts with", prefix).test(strings.HasPrefix(o.value, prefix))
}
func (o OnString) HasSuffix(suffix string) bool {
	return o.a.compare(o.value, "ends with", suffix).test(strings.HasSuffix(o.value, suffix))
}

// OnError holds assertions on an error.
type OnError struct {
	a   *Assertion
	err error
}

// ThatError starts an assertion on an error.
func (a *Assertion) ThatError(err error) OnError { return OnError{a, err} }

// Succeeded asserts that the error is nil.
func (o OnError) Succeeded() bool {
	return o.a.compare(o.err, "==", "success").test(o.err == nil)
}

// Failed asserts that the error is not nil.
func (o OnError) Failed() bool {
	return o.a.compare(o.err, "!=", "success").test(o.err != nil)
}

// Equals asserts that the error is == expect.
func (o OnError) Equals(expect error) bool {
	return o.a.compare(o.err, "==", expect).test(o.err == expect)
}

// HasMessage asserts that the error is not nil and prints as expect.
func (o OnError) HasMessage(expect string) bool {
	got := ""
	if o.err != nil {
		got = o.err.Error()
	}
	return o.a.compare(got, "has message", expect).test(o.err != nil && got == expect)
}

// HasCause asserts that the root cause of the error, as returned by
// errors.Cause, is expect.
func (o OnError) HasCause(expect error) bool {
	cause := errors.Cause(o.err)
	return o.a.Add("Cause", cause).compare(o.err, "caused by", expect).test(cause == expect)
}

// OnSlice holds assertions on a slice or array.
type OnSlice struct {
	a     *Assertion
	slice reflect.Value
}

// ThatSlice starts an assertion on a slice or array. It panics for any other
// type.
func (a *Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{a, reflect.ValueOf(slice)}
}

func (o OnSlice) IsEmpty() bool {
	return o.a.compare(o.slice.Len(), "length ==", 0).test(o.slice.Len() == 0)
}
func (o OnSlice) IsNotEmpty() bool {
	return o.a.compare(o.slice.Len(), "length >", 0).test(o.slice.Len() > 0)
}
func (o OnSlice) IsLength(length int) bool {
	return o.a.compare(o.slice.Len(), "length ==", length).test(o.slice.Len() == length)
}

// Equals asserts that the slice has the same length as expected and that
// every element is == its counterpart.
func (o OnSlice) Equals(expected interface{}) bool {
	e := reflect.ValueOf(expected)
	ok := o.slice.Len() == e.Len()
	if !ok {
		o.a.compare(o.slice.Len(), "length ==", e.Len())
	}
	for i := 0; ok && i < e.Len(); i++ {
		if got, expect := o.slice.Index(i).Interface(), e.Index(i).Interface(); got != expect {
			o.a.Add("Index", i)
			o.a.compare(got, "==", expect)
			ok = false
		}
	}
	if !ok {
		o.a.compare(o.slice.Interface(), "==", expected)
	}
	return o.a.test(ok)
}

// DeepEquals asserts that the slice deeply equals expected, reporting a diff
// on failure.
func (o OnSlice) DeepEquals(expected interface{}) bool {
	return OnValue{o.a, o.slice.Interface()}.DeepEquals(expected)
}
