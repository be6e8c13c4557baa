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
package sat

import (
	"fmt"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/go-air/gini"
	circuit "github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
)

// Satisfiable determines whether some assignment to the free variables of a
// ground expression makes it true.
func Satisfiable(e logic.Expr) bool {
	_, ok := Model(e)
	return ok
}

// Model finds an assignment to the free variables of a ground expression
// under which it evaluates to true, or reports that none exists.  Every free
// variable is assigned in the result.
func Model(e logic.Expr) (logic.Assignment, bool) {
	models := Models(e, 1)
	//
	if len(models) == 0 {
		return nil, false
	}
	//
	return models[0], true
}

// Models enumerates distinct satisfying assignments of a ground expression,
// stopping after limit models have been found.  A limit of zero means no
// limit.
func Models(e logic.Expr, limit uint) []logic.Assignment {
	var (
		p      = encode(e)
		solver = gini.New()
		models []logic.Assignment
	)
	//
	p.circuit.ToCnf(solver)
	// Root must hold
	solver.Add(p.root)
	solver.Add(z.LitNull)
	// Ensure every input is known to the solver, even when simplification has
	// removed it from the circuit.
	for _, input := range p.inputs {
		solver.Add(input)
		solver.Add(input.Not())
		solver.Add(z.LitNull)
	}
	//
	for limit == 0 || uint(len(models)) < limit {
		if solver.Solve() != 1 {
			break
		}
		//
		model := make(logic.Assignment, len(p.names))
		// Record this model, whilst blocking it from being found again.
		for i, name := range p.names {
			value := solver.Value(p.inputs[i])
			model[name] = value
			//
			if value {
				solver.Add(p.inputs[i].Not())
			} else {
				solver.Add(p.inputs[i])
			}
		}
		//
		solver.Add(z.LitNull)
		//
		models = append(models, model)
		// Without inputs there is exactly one (empty) model.
		if len(p.names) == 0 {
			break
		}
	}
	//
	log.Debugf("found %d model(s) over %d variable(s)", len(models), len(p.names))
	//
	return models
}

// CounterExample finds an assignment under which a ground expression
// evaluates to false, or reports that none exists (i.e. the expression is
// valid).
func CounterExample(e logic.Expr) (logic.Assignment, bool) {
	return Model(logic.Not(e))
}

// Valid determines whether a ground expression holds under every assignment
// to its free variables.
func Valid(e logic.Expr) bool {
	_, ok := CounterExample(e)
	return !ok
}

// problem is an expression encoded as an and-inverter circuit.  Inputs are
// held in the same (sorted) order as the names they represent.
type problem struct {
	circuit *circuit.C
	root    z.Lit
	names   []string
	inputs  []z.Lit
}

func encode(e logic.Expr) *problem {
	var (
		names = logic.FreeVariables(e)
		p     = &problem{circuit.NewC(), z.LitNull, names, make([]z.Lit, len(names))}
		env   = make(map[string]z.Lit, len(names))
	)
	//
	for i, name := range names {
		p.inputs[i] = p.circuit.Lit()
		env[name] = p.inputs[i]
	}
	//
	p.root = p.translate(e, env)
	//
	return p
}

func (p *problem) translate(e logic.Expr, env map[string]z.Lit) z.Lit {
	c := p.circuit
	//
	switch e := e.(type) {
	case logic.Var:
		return env[e.Name]
	case logic.Const:
		if e.Value {
			return c.T
		}
		//
		return c.F
	case logic.Negation:
		return p.translate(e.Inner, env).Not()
	case logic.Binary:
		var (
			l = p.translate(e.Left, env)
			r = p.translate(e.Right, env)
		)
		//
		switch e.Op {
		case logic.AND:
			return c.And(l, r)
		case logic.NAND:
			return c.And(l, r).Not()
		case logic.OR:
			return c.Or(l, r)
		case logic.NOR:
			return c.Or(l, r).Not()
		case logic.XOR:
			return c.Xor(l, r)
		case logic.IMPLIES:
			return c.Implies(l, r)
		case logic.IFF:
			return c.Xor(l, r).Not()
		}
		//
		panic(fmt.Sprintf("unknown connective (%d)", e.Op))
	case logic.MetaVar:
		panic(&logic.UsageError{Op: "sat", Msg: fmt.Sprintf("cannot search models of meta-variable %s", e)})
	}
	//
	panic(fmt.Sprintf("unknown expression variant (%T)", e))
}
