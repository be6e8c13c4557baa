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
package syntax

import (
	"strings"
	"testing"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/rule"
	"github.com/consensys/go-natded/pkg/util/assert"
	"github.com/consensys/go-natded/pkg/util/source"
)

var (
	p = logic.Variable("p")
	q = logic.Variable("q")
	r = logic.Variable("r")
)

// ============================================================================
// Lexing
// ============================================================================

func Test_Lex_01(t *testing.T) {
	checkKinds(t, "", END_OF)
	checkKinds(t, "  \t\n", END_OF)
	checkKinds(t, "p and q", IDENTIFIER, AND, IDENTIFIER, END_OF)
	checkKinds(t, "(?1 -> nota)", LBRACE, METAVAR, IMPLIES, IDENTIFIER, RBRACE, END_OF)
}

func Test_Lex_02(t *testing.T) {
	checkKinds(t, "⊤ ⊥ ¬ ! ∧ & ∨ | ⊕", TRUE, FALSE, NOT, NOT, AND, AND, OR, OR, XOR, END_OF)
	checkKinds(t, "→ -> => ↔ <-> <=>", IMPLIES, IMPLIES, IMPLIES, IFF, IFF, IFF, END_OF)
	checkKinds(t, "true false not nand nor xor implies iff", TRUE, FALSE, NOT, NAND, NOR, XOR, IMPLIES, IFF, END_OF)
}

// ============================================================================
// Parsing
// ============================================================================

func Test_Parse_01(t *testing.T) {
	checkParse(t, "p", p)
	checkParse(t, "true", logic.True())
	checkParse(t, "⊥", logic.False())
	checkParse(t, "x_1'", logic.Variable("x_1'"))
	checkParse(t, "((p))", p)
}

func Test_Parse_02(t *testing.T) {
	checkParse(t, "p and q", logic.And(p, q))
	checkParse(t, "p and q and r", logic.And(p, logic.And(q, r)))
	checkParse(t, "(p and q) and r", logic.And(logic.And(p, q), r))
	checkParse(t, "p implies q implies r", logic.Implies(p, logic.Implies(q, r)))
}

func Test_Parse_03(t *testing.T) {
	checkParse(t, "p and q or r", logic.Or(logic.And(p, q), r))
	checkParse(t, "p or q and r", logic.Or(p, logic.And(q, r)))
	checkParse(t, "p iff q implies r", logic.Iff(p, logic.Implies(q, r)))
	checkParse(t, "p nand q and r", logic.And(logic.Nand(p, q), r))
	checkParse(t, "p xor q nor r", logic.Nor(logic.Xor(p, q), r))
}

func Test_Parse_04(t *testing.T) {
	checkParse(t, "not p and q", logic.And(logic.Not(p), q))
	checkParse(t, "not (p and q)", logic.Not(logic.And(p, q)))
	checkParse(t, "¬¬p", logic.Not(logic.Not(p)))
	checkParse(t, "!p → q", logic.Implies(logic.Not(p), q))
}

func Test_Parse_05(t *testing.T) {
	checkParse(t, "p ∧ q ∨ r ↔ ⊤", logic.Iff(logic.Or(logic.And(p, q), r), logic.True()))
	checkParse(t, "p & q | r <=> p => q", logic.Iff(logic.Or(logic.And(p, q), r), logic.Implies(p, q)))
}

func Test_Parse_06(t *testing.T) {
	e, errs := ParsePattern("?1 or not ?1")
	//
	assert.Equal(t, 0, len(errs))
	assert.True(t, logic.Equal(logic.Or(logic.Meta("1"), logic.Not(logic.Meta("1"))), e))
}

func Test_Parse_07(t *testing.T) {
	checkParseError(t, "", "unexpected end of input")
	checkParseError(t, "p and", "unexpected end of input")
	checkParseError(t, "(p and q", "expected )")
	checkParseError(t, "p q", "unexpected remainder")
	checkParseError(t, "p and and q", "unexpected and")
	checkParseError(t, "p $ q", "unknown text encountered")
	checkParseError(t, "?1 or p", "meta-variables not permitted")
	checkParseError(t, "p or ?", "unknown text encountered")
}

func Test_Parse_08(t *testing.T) {
	_, err := ParseExpr("p and")
	assert.True(t, err != nil)
	//
	e, err := ParseExpr("p and q")
	assert.True(t, err == nil)
	assert.True(t, logic.Equal(logic.And(p, q), e))
}

func Test_Parse_09(t *testing.T) {
	_, errs := Parse("p or (q and")
	//
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, 10, errs[0].Span().Start())
	assert.Equal(t, 11, errs[0].Span().End())
}

// ============================================================================
// Printing
// ============================================================================

func Test_RoundTrip_01(t *testing.T) {
	exprs := []logic.Expr{
		logic.Ands(p, q, r),
		logic.And(logic.And(p, q), r),
		logic.Not(logic.Iff(p, logic.Not(q))),
		logic.Impliess(logic.Or(p, q), logic.Xor(q, r), logic.Nor(r, logic.Nand(p, logic.True()))),
		logic.Iff(logic.Iff(p, q), logic.Iff(q, p)),
		logic.Nand(logic.Nand(p, q), logic.Nand(q, r)),
		logic.Not(logic.Not(logic.Not(logic.False()))),
		logic.Xor(logic.Implies(p, q), logic.Or(q, r)),
	}
	//
	for _, e := range exprs {
		checkRoundTrip(t, e)
	}
}

func Test_RoundTrip_02(t *testing.T) {
	// Every pattern of every rule
	for _, rl := range rule.All() {
		checkRoundTrip(t, rl.Conclusion())
		//
		for _, f := range rl.Facts() {
			checkRoundTrip(t, f)
		}
		//
		for _, s := range rl.Subproofs() {
			checkRoundTrip(t, s.Assumption)
			checkRoundTrip(t, s.Conclusion)
		}
	}
}

func Test_RoundTrip_03(t *testing.T) {
	// Exhaustively combine connectives two levels deep
	var (
		leaves = []logic.Expr{p, logic.Not(q)}
		level1 []logic.Expr
	)
	//
	for _, op := range logic.Connectives {
		for _, l := range leaves {
			for _, r := range leaves {
				level1 = append(level1, logic.Binary{Op: op, Left: l, Right: r})
			}
		}
	}
	//
	for _, op := range logic.Connectives {
		for i, l := range level1 {
			r := level1[(i*7+3)%len(level1)]
			checkRoundTrip(t, logic.Binary{Op: op, Left: l, Right: r})
			checkRoundTrip(t, logic.Not(logic.Binary{Op: op, Left: r, Right: l}))
		}
	}
}

// ============================================================================
// Framework
// ============================================================================

func sourceFile(text string) *source.File {
	return source.NewSourceFile("test", []byte(text))
}

func checkKinds(t *testing.T, input string, kinds ...uint) {
	t.Helper()
	//
	tokens, errs := Lex(sourceFile(input))
	assert.Equal(t, 0, len(errs))
	//
	actual := make([]uint, len(tokens))
	for i, token := range tokens {
		actual[i] = token.Kind
	}
	//
	assert.Equal(t, kinds, actual, "lexing %q", input)
}

func checkParse(t *testing.T, input string, expected logic.Expr) {
	t.Helper()
	//
	e, errs := Parse(input)
	assert.Equal(t, 0, len(errs), "parsing %q", input)
	assert.True(t, logic.Equal(expected, e), "parsing %q gave %s, expected %s", input, e, expected)
}

func checkParseError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	_, errs := Parse(input)
	assert.Equal(t, 1, len(errs), "parsing %q", input)
	assert.True(t, strings.Contains(errs[0].Message(), msg), "unexpected error %q for %q", errs[0].Message(), input)
}

// Printing an expression yields text which parses back to the same
// expression.
func checkRoundTrip(t *testing.T, e logic.Expr) {
	t.Helper()
	//
	text := e.String()
	parsed, errs := ParsePattern(text)
	assert.Equal(t, 0, len(errs), "parsing %q", text)
	assert.True(t, logic.Equal(e, parsed), "%q parsed as %s", text, parsed)
}
