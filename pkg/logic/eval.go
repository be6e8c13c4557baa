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

import (
	"fmt"
	"slices"
)

// Assignment maps variable names to truth values.
type Assignment map[string]bool

// FreeVariables returns the sorted set of distinct variable names occurring in
// an expression.  Meta-variables and constants contribute nothing.
func FreeVariables(e Expr) []string {
	return collectNames(e, func(e Expr) (string, bool) {
		v, ok := e.(Var)
		return v.Name, ok
	})
}

// Evaluate an expression under a given assignment using the standard truth
// tables.  The assignment must cover every free variable of the expression,
// and the expression must be ground; otherwise, this is a usage error.
func Evaluate(e Expr, assignment Assignment) bool {
	switch e := e.(type) {
	case Var:
		value, ok := assignment[e.Name]
		if !ok {
			panic(&UsageError{Op: "evaluate", Msg: fmt.Sprintf("variable %s is unassigned", e.Name)})
		}
		//
		return value
	case Const:
		return e.Value
	case Negation:
		return !Evaluate(e.Inner, assignment)
	case Binary:
		return e.Op.Apply(Evaluate(e.Left, assignment), Evaluate(e.Right, assignment))
	case MetaVar:
		panic(&UsageError{Op: "evaluate", Msg: fmt.Sprintf("cannot evaluate meta-variable %s", e)})
	}
	//
	panic(unknownVariant(e))
}

// Interpretations enumerates all 2^n total assignments over n variable names,
// in binary counting order with the first name as the most significant bit
// and starting from the assignment where every variable is true.  For example,
// [a,b] gives (T,T), (T,F), (F,T), (F,F).
func Interpretations(names []string) []Assignment {
	var (
		n      = len(names)
		count  = 1 << n
		result = make([]Assignment, count)
	)
	//
	for i := range count {
		assignment := make(Assignment, n)
		//
		for j, name := range names {
			// bit set means false, since counting starts at all-true
			assignment[name] = (i>>(n-1-j))&1 == 0
		}
		//
		result[i] = assignment
	}
	//
	return result
}

// Valid determines, by exhaustive enumeration, whether an expression holds
// under every interpretation of its free variables.
func Valid(e Expr) bool {
	for _, assignment := range Interpretations(FreeVariables(e)) {
		if !Evaluate(e, assignment) {
			return false
		}
	}
	//
	return true
}

// Gather the sorted, distinct names of all leaves selected by a given
// function.
func collectNames(e Expr, selector func(Expr) (string, bool)) []string {
	var names []string
	//
	var visit func(Expr)
	//
	visit = func(e Expr) {
		if name, ok := selector(e); ok {
			names = append(names, name)
			return
		}
		//
		switch e := e.(type) {
		case Negation:
			visit(e.Inner)
		case Binary:
			visit(e.Left)
			visit(e.Right)
		}
	}
	//
	visit(e)
	slices.Sort(names)
	//
	return slices.Compact(names)
}
