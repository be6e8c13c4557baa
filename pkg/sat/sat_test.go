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
	"errors"
	"testing"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/syntax"
	"github.com/consensys/go-natded/pkg/util/assert"
)

var expressions = []string{
	"p",
	"not p",
	"true",
	"false",
	"p and q",
	"p nand q",
	"p or q",
	"p nor q",
	"p xor q",
	"p implies q",
	"p iff q",
	"p or not p",
	"p and not p",
	"(p implies q) and (q implies r) implies (p implies r)",
	"(p or q) and (not p or r) and (not q or r) and not r",
	"a xor b xor c iff d",
	"not (p and q) iff (not p or not q)",
	"((p implies q) implies p) implies p",
}

func Test_Model_01(t *testing.T) {
	model, ok := Model(parse(t, "p and q"))
	assert.True(t, ok)
	assert.Equal(t, logic.Assignment{"p": true, "q": true}, model)
}

func Test_Model_02(t *testing.T) {
	model, ok := Model(parse(t, "not p and not q"))
	assert.True(t, ok)
	assert.Equal(t, logic.Assignment{"p": false, "q": false}, model)
}

func Test_Model_03(t *testing.T) {
	_, ok := Model(parse(t, "p and not p"))
	assert.False(t, ok)
}

func Test_Model_04(t *testing.T) {
	model, ok := Model(parse(t, "true"))
	assert.True(t, ok)
	assert.Equal(t, logic.Assignment{}, model)
	//
	_, ok = Model(parse(t, "false"))
	assert.False(t, ok)
}

func Test_Model_05(t *testing.T) {
	// Simplification removes q from the circuit, yet it must still be assigned.
	model, ok := Model(parse(t, "p and (q or not q)"))
	assert.True(t, ok)
	assert.True(t, model["p"])
	_, assigned := model["q"]
	assert.True(t, assigned)
}

func Test_Model_06(t *testing.T) {
	for _, text := range expressions {
		e := parse(t, text)
		model, ok := Model(e)
		//
		if ok {
			assert.True(t, logic.Evaluate(e, model), "model of %s", text)
		}
		//
		assert.Equal(t, count(e) > 0, ok, "satisfiability of %s", text)
	}
}

func Test_Models_01(t *testing.T) {
	for _, text := range expressions {
		var (
			e      = parse(t, text)
			models = Models(e, 0)
		)
		//
		assert.Equal(t, count(e), len(models), "models of %s", text)
		//
		for i, model := range models {
			assert.True(t, logic.Evaluate(e, model), "model of %s", text)
			//
			for _, other := range models[:i] {
				assert.False(t, equal(model, other), "duplicate model of %s", text)
			}
		}
	}
}

func Test_Models_02(t *testing.T) {
	e := parse(t, "p or q or r")
	//
	assert.Equal(t, 2, len(Models(e, 2)))
	assert.Equal(t, 7, len(Models(e, 10)))
	assert.Equal(t, 7, len(Models(e, 0)))
}

func Test_Models_03(t *testing.T) {
	assert.Equal(t, 2, len(Models(parse(t, "p or not p"), 0)))
	assert.Equal(t, 0, len(Models(parse(t, "p and not p"), 0)))
	assert.Equal(t, 1, len(Models(parse(t, "true"), 0)))
}

func Test_CounterExample_01(t *testing.T) {
	model, ok := CounterExample(parse(t, "p implies q"))
	assert.True(t, ok)
	assert.Equal(t, logic.Assignment{"p": true, "q": false}, model)
}

func Test_CounterExample_02(t *testing.T) {
	_, ok := CounterExample(parse(t, "((p implies q) implies p) implies p"))
	assert.False(t, ok)
}

func Test_CounterExample_03(t *testing.T) {
	for _, text := range expressions {
		e := parse(t, text)
		//
		if model, ok := CounterExample(e); ok {
			assert.False(t, logic.Evaluate(e, model), "counterexample of %s", text)
		}
	}
}

func Test_Valid_01(t *testing.T) {
	for _, text := range expressions {
		e := parse(t, text)
		assert.Equal(t, logic.Valid(e), Valid(e), "validity of %s", text)
	}
}

func Test_Satisfiable_01(t *testing.T) {
	assert.True(t, Satisfiable(parse(t, "p xor q")))
	assert.False(t, Satisfiable(parse(t, "(p or q) and (not p or r) and (not q or r) and not r")))
}

func Test_MetaVar_01(t *testing.T) {
	pattern, errs := syntax.ParsePattern("?1 and p")
	assert.Equal(t, 0, len(errs))
	//
	assert.Panics(t, func() { Model(pattern) }, func(r any) bool {
		err, ok := r.(error)
		//
		var usage *logic.UsageError
		//
		return ok && errors.As(err, &usage)
	})
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, text string) logic.Expr {
	t.Helper()
	//
	e, err := syntax.ParseExpr(text)
	if err != nil {
		t.Fatalf("parsing %s: %s", text, err)
	}
	//
	return e
}

// Count satisfying interpretations by exhaustive enumeration.
func count(e logic.Expr) int {
	n := 0
	//
	for _, assignment := range logic.Interpretations(logic.FreeVariables(e)) {
		if logic.Evaluate(e, assignment) {
			n++
		}
	}
	//
	return n
}

func equal(l, r logic.Assignment) bool {
	for name, value := range l {
		if r[name] != value {
			return false
		}
	}
	//
	return len(l) == len(r)
}
