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
package assert

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal errors if actual is not equal to expected, reporting a structural
// diff of the two values.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("%s(-expected +actual):\n%s", describe(msg), diff)
	}
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if !condition {
		t.Fatalf("%scondition is false", describe(msg))
	}
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if condition {
		t.Fatalf("%scondition is true", describe(msg))
	}
}

// Panics errors unless fn panics with a value satisfying the given predicate.
// A nil predicate accepts any panic.
func Panics(t *testing.T, fn func(), accept func(any) bool, msg ...any) {
	t.Helper()
	//
	defer func() {
		t.Helper()
		//
		r := recover()
		if r == nil {
			t.Fatalf("%sexpected panic", describe(msg))
		} else if accept != nil && !accept(r) {
			t.Fatalf("%sunexpected panic: %v", describe(msg), r)
		}
	}()
	//
	fn()
}

func describe(msg []any) string {
	if len(msg) == 0 {
		return ""
	} else if format, ok := msg[0].(string); ok {
		return fmt.Sprintf(format, msg[1:]...) + ": "
	}
	//
	return fmt.Sprint(msg...) + ": "
}
