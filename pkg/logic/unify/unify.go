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
package unify

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/consensys/go-natded/pkg/logic"
)

// Constraint requires that two expressions be made equal by a substitution of
// meta-variables.
type Constraint struct {
	Left  logic.Expr
	Right logic.Expr
}

// String returns a human-readable representation of this constraint.
func (c Constraint) String() string {
	return fmt.Sprintf("%s = %s", c.Left, c.Right)
}

// Solution maps meta-variable names to the expressions they are bound to.
type Solution map[string]logic.Expr

// String returns the bindings of this solution, ordered by name.
func (s Solution) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, name := range slices.Sorted(maps.Keys(s)) {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("?%s := %s", name, s[name]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// GetConstraints matches a pattern against an instance, producing the
// constraints which a substitution must satisfy to make them equal.  When
// either side is a meta-variable, matching stops immediately with a single
// constraint pairing that meta-variable with the other side (no occurs-check
// is performed here).  Matching fails if the two expressions disagree
// structurally anywhere outside of a meta-variable.
func GetConstraints(pattern logic.Expr, instance logic.Expr) ([]Constraint, bool) {
	return appendConstraints(nil, pattern, instance)
}

func appendConstraints(constraints []Constraint, left logic.Expr, right logic.Expr) ([]Constraint, bool) {
	if _, ok := left.(logic.MetaVar); ok {
		return append(constraints, Constraint{left, right}), true
	} else if _, ok := right.(logic.MetaVar); ok {
		return append(constraints, Constraint{right, left}), true
	}
	//
	switch l := left.(type) {
	case logic.Var:
		r, ok := right.(logic.Var)
		return constraints, ok && l.Name == r.Name
	case logic.Const:
		r, ok := right.(logic.Const)
		return constraints, ok && l.Value == r.Value
	case logic.Negation:
		if r, ok := right.(logic.Negation); ok {
			return appendConstraints(constraints, l.Inner, r.Inner)
		}
	case logic.Binary:
		if r, ok := right.(logic.Binary); ok && l.Op == r.Op {
			if constraints, ok = appendConstraints(constraints, l.Left, r.Left); ok {
				return appendConstraints(constraints, l.Right, r.Right)
			}
		}
	}
	//
	return nil, false
}

// SolveConstraints finds the most general substitution satisfying a set of
// constraints, or fails.  Constraints are processed one at a time: trivially
// equal pairs are discarded; a meta-variable on the left is bound to the
// right-hand side (subject to the occurs-check) and that binding is
// substituted into every pending constraint and every earlier binding; a
// meta-variable on the right alone is swapped over; otherwise, the pair is
// decomposed structurally.
func SolveConstraints(constraints []Constraint) (Solution, bool) {
	var (
		solution = make(Solution)
		pending  = slices.Clone(constraints)
	)
	//
	for len(pending) > 0 {
		// Pop last constraint
		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		//
		if logic.Equal(c.Left, c.Right) {
			continue
		} else if m, ok := c.Left.(logic.MetaVar); ok {
			if logic.Occurs(m.Name, c.Right) {
				return nil, false
			}
			//
			binding := Solution{m.Name: c.Right}
			//
			for i, p := range pending {
				pending[i] = Constraint{Substitute(p.Left, binding), Substitute(p.Right, binding)}
			}
			//
			for name, e := range solution {
				solution[name] = Substitute(e, binding)
			}
			//
			solution[m.Name] = c.Right
		} else if _, ok := c.Right.(logic.MetaVar); ok {
			pending = append(pending, Constraint{c.Right, c.Left})
		} else if extra, ok := GetConstraints(c.Left, c.Right); ok {
			pending = append(pending, extra...)
		} else {
			return nil, false
		}
	}
	//
	return solution, true
}

// Unify finds the most general substitution making two expressions equal, or
// fails.
func Unify(left logic.Expr, right logic.Expr) (Solution, bool) {
	constraints, ok := GetConstraints(left, right)
	if !ok {
		return nil, false
	}
	//
	return SolveConstraints(constraints)
}

// Substitute replaces every meta-variable bound in a given solution.  Unbound
// meta-variables, and all other variants, are left untouched.
func Substitute(e logic.Expr, solution Solution) logic.Expr {
	switch e := e.(type) {
	case logic.MetaVar:
		if bound, ok := solution[e.Name]; ok {
			return bound
		}
		//
		return e
	case logic.Var, logic.Const:
		return e
	case logic.Negation:
		return logic.Not(Substitute(e.Inner, solution))
	case logic.Binary:
		return logic.Binary{Op: e.Op, Left: Substitute(e.Left, solution), Right: Substitute(e.Right, solution)}
	}
	//
	panic(fmt.Sprintf("unknown expression variant (%T)", e))
}
