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
	"errors"
	"testing"

	"github.com/consensys/go-natded/pkg/util/assert"
	"github.com/consensys/go-natded/pkg/util/source"
	"github.com/consensys/go-natded/pkg/util/source/sexp"
)

var (
	p = Variable("p")
	q = Variable("q")
	r = Variable("r")
)

// ============================================================================
// Construction & Equality
// ============================================================================

func Test_Fold_01(t *testing.T) {
	assert.True(t, Equal(p, Ands(p)))
}

func Test_Fold_02(t *testing.T) {
	assert.True(t, Equal(And(p, And(q, r)), Ands(p, q, r)))
}

func Test_Fold_03(t *testing.T) {
	assert.True(t, Equal(Implies(p, Implies(q, r)), Impliess(p, q, r)))
	assert.True(t, Equal(Iff(p, q), Iffs(p, q)))
	assert.True(t, Equal(Or(p, q), Ors(p, q)))
	assert.True(t, Equal(Nor(p, q), Nors(p, q)))
	assert.True(t, Equal(Xor(p, q), Xors(p, q)))
	assert.True(t, Equal(Nand(p, q), Nands(p, q)))
}

func Test_Fold_04(t *testing.T) {
	assert.Panics(t, func() { Ands() }, isUsageError)
	assert.Panics(t, func() { Iffs() }, isUsageError)
}

func Test_Equal_01(t *testing.T) {
	assert.True(t, Equal(Meta("1"), Meta("1")))
	assert.False(t, Equal(Meta("1"), Meta("2")))
	assert.False(t, Equal(Meta("p"), p))
}

func Test_Equal_02(t *testing.T) {
	assert.True(t, Equal(True(), Constant(true)))
	assert.False(t, Equal(True(), False()))
}

func Test_Equal_03(t *testing.T) {
	assert.False(t, Equal(And(p, q), Or(p, q)))
	assert.False(t, Equal(And(p, q), And(q, p)))
	assert.True(t, Equal(Not(And(p, q)), Not(And(p, q))))
	assert.False(t, Equal(Not(p), p))
}

func Test_Ground_01(t *testing.T) {
	assert.True(t, IsGround(Implies(p, Not(q))))
	assert.False(t, IsGround(Implies(p, Not(Meta("x")))))
	assert.Equal(t, []string{"1", "2"}, MetaVariables(Or(Meta("2"), And(Meta("1"), Meta("2")))))
}

func Test_Size_01(t *testing.T) {
	assert.Equal(t, uint(1), Size(p))
	assert.Equal(t, uint(4), Size(Not(And(p, q))))
}

// ============================================================================
// Evaluation
// ============================================================================

func Test_FreeVariables_01(t *testing.T) {
	assert.Equal(t, []string{"p", "q", "r"}, FreeVariables(Iff(r, And(q, Or(p, Not(r))))))
}

func Test_FreeVariables_02(t *testing.T) {
	assert.Equal(t, 0, len(FreeVariables(And(True(), Meta("x")))))
}

func Test_Evaluate_01(t *testing.T) {
	checkTruthTable(t, AND, true, false, false, false)
	checkTruthTable(t, NAND, false, true, true, true)
	checkTruthTable(t, OR, true, true, true, false)
	checkTruthTable(t, NOR, false, false, false, true)
	checkTruthTable(t, XOR, false, true, true, false)
	checkTruthTable(t, IMPLIES, true, false, true, true)
	checkTruthTable(t, IFF, true, false, false, true)
}

func Test_Evaluate_02(t *testing.T) {
	assignment := Assignment{"p": true, "q": false}
	//
	assert.False(t, Evaluate(Not(p), assignment))
	assert.True(t, Evaluate(Not(q), assignment))
	assert.True(t, Evaluate(Implies(And(p, q), False()), assignment))
}

func Test_Evaluate_03(t *testing.T) {
	assert.Panics(t, func() { Evaluate(And(p, q), Assignment{"p": true}) }, isUsageError)
	assert.Panics(t, func() { Evaluate(Meta("1"), Assignment{}) }, isUsageError)
}

func Test_Interpretations_01(t *testing.T) {
	expected := []Assignment{
		{"a": true, "b": true},
		{"a": true, "b": false},
		{"a": false, "b": true},
		{"a": false, "b": false},
	}
	//
	assert.Equal(t, expected, Interpretations([]string{"a", "b"}))
}

func Test_Interpretations_02(t *testing.T) {
	assert.Equal(t, []Assignment{{}}, Interpretations(nil))
	assert.Equal(t, 8, len(Interpretations([]string{"a", "b", "c"})))
}

func Test_Valid_01(t *testing.T) {
	assert.True(t, Valid(Or(p, Not(p))))
	assert.True(t, Valid(Implies(And(p, Implies(p, q)), q)))
	assert.False(t, Valid(Implies(Or(p, q), p)))
}

// ============================================================================
// Printing
// ============================================================================

func Test_String_01(t *testing.T) {
	assert.Equal(t, "p and q and r", Ands(p, q, r).String())
	assert.Equal(t, "(p and q) and r", And(And(p, q), r).String())
}

func Test_String_02(t *testing.T) {
	assert.Equal(t, "p and q or r", Or(And(p, q), r).String())
	assert.Equal(t, "p and (q or r)", And(p, Or(q, r)).String())
}

func Test_String_03(t *testing.T) {
	assert.Equal(t, "not not p", Not(Not(p)).String())
	assert.Equal(t, "not (p implies q)", Not(Implies(p, q)).String())
	assert.Equal(t, "not p implies q", Implies(Not(p), q).String())
}

func Test_String_04(t *testing.T) {
	assert.Equal(t, "?1 or not ?1", Or(Meta("1"), Not(Meta("1"))).String())
	assert.Equal(t, "true implies false", Implies(True(), False()).String())
}

func Test_String_05(t *testing.T) {
	assert.Equal(t, "(p iff q) iff r", Iff(Iff(p, q), r).String())
	assert.Equal(t, "p nand q xor r nor p", Nor(Xor(Nand(p, q), r), p).String())
}

// ============================================================================
// Lisp
// ============================================================================

func Test_Lisp_01(t *testing.T) {
	assert.Equal(t, "(implies ?1 (not (and p true)))",
		ToLisp(Implies(Meta("1"), Not(And(p, True())))).String(true))
}

func Test_Lisp_02(t *testing.T) {
	checkLisp(t, "(and p q r)", Ands(p, q, r))
	checkLisp(t, "(or ?1 (not ?1))", Or(Meta("1"), Not(Meta("1"))))
	checkLisp(t, "false", False())
}

func Test_Lisp_03(t *testing.T) {
	checkLispError(t, "(and p)")
	checkLispError(t, "(not p q)")
	checkLispError(t, "(unless p q)")
	checkLispError(t, "((and p q) r)")
	checkLispError(t, "?")
}

// ============================================================================
// Framework
// ============================================================================

func isUsageError(r any) bool {
	err, ok := r.(error)
	//
	var usage *UsageError
	//
	return ok && errors.As(err, &usage)
}

func checkTruthTable(t *testing.T, op Connective, tt, tf, ft, ff bool) {
	t.Helper()
	//
	expected := []bool{tt, tf, ft, ff}
	e := Binary{op, Variable("a"), Variable("b")}
	//
	for i, assignment := range Interpretations([]string{"a", "b"}) {
		assert.Equal(t, expected[i], Evaluate(e, assignment), "%s row %d", op.Keyword(), i)
	}
}

func checkLisp(t *testing.T, input string, expected Expr) {
	t.Helper()
	//
	term, _, err := sexp.Parse(source.NewSourceFile("test", []byte(input)))
	if err != nil {
		t.Fatal(err.Message())
	}
	//
	actual, lerr := FromLisp(term)
	if lerr != nil {
		t.Fatal(lerr.Error())
	}
	//
	assert.True(t, Equal(expected, actual), "expected %s, got %s", expected, actual)
}

func checkLispError(t *testing.T, input string) {
	t.Helper()
	//
	term, _, err := sexp.Parse(source.NewSourceFile("test", []byte(input)))
	if err != nil {
		t.Fatal(err.Message())
	}
	//
	if _, lerr := FromLisp(term); lerr == nil {
		t.Fatalf("expected error for %s", input)
	}
}
