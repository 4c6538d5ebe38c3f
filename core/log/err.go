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
	"fmt"
)

// Err returns an error wrapping cause with msg and the logging context of
// ctx. The error unwraps to cause.
func Err(ctx context.Context, cause error, msg string) error {
	return &err{cause, From(ctx).Message(Error, false, msg)}
}

// Errf is the printf-style form of Err.
func Errf(ctx context.Context, cause error, format string, args ...interface{}) error {
	return Err(ctx, cause, fmt.Sprintf(format, args...))
}

type err struct {
	cause error
	msg   *Message
}

// Cause is used by github.com/pkg/errors.Cause.
func (e *err) Cause() error  { return e.cause }
func (e *err) Unwrap() error { return e.cause }

func (e *err) Error() string {
	if e.cause == nil {
		return e.msg.Text
	}
	return fmt.Sprintf("%v\n   Cause: %v", e.msg.Text, e.cause)
}
