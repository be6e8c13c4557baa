// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package logic

import "fmt"

// UsageError signals that a precondition of an operation was violated by its
// caller, for example folding an empty sequence of operands.  Such errors are
// programming mistakes rather than user errors, and are raised by panicking.
type UsageError struct {
	// Operation which was misused.
	Op string
	// Description of the violated precondition.
	Msg string
	// Underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Msg, e.Err)
	}
}

// Unwrap returns the underlying cause of this error, so that it can be
// identified with errors.Is.
func (e *UsageError) Unwrap() error {
	return e.Err
}
