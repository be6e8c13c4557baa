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
package proof

import (
	"errors"
	"fmt"

	"github.com/consensys/go-natded/pkg/logic"
)

var (
	// ErrFramePart is returned when attempting to delete the assumption or
	// conclusion of a subproof, which exist for as long as the subproof does.
	ErrFramePart = errors.New("cannot delete the assumption or conclusion of a subproof")
	// ErrDeleted signals an operation on a part which has been deleted.
	ErrDeleted = errors.New("part has been deleted")
	// ErrForeignPart signals an operation involving a part of another proof.
	ErrForeignPart = errors.New("part belongs to a different proof")
	// ErrFixedRule signals an attempt to change the rule of an assumption.
	ErrFixedRule = errors.New("rule of an assumption is fixed")
	// ErrReentrantMutation signals an attempt to modify a proof from within a
	// listener, whilst notifications are being delivered.
	ErrReentrantMutation = errors.New("proof modified during notification")
)

// Raise a usage error for a given operation.
func misuse(op string, err error, format string, args ...any) {
	panic(&logic.UsageError{Op: op, Msg: fmt.Sprintf(format, args...), Err: err})
}
