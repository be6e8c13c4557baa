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
package sexp

import (
	"testing"

	"github.com/consensys/go-natded/pkg/util/assert"
	"github.com/consensys/go-natded/pkg/util/source"
)

func Test_SExp_01(t *testing.T) {
	checkParse(t, "x", "x")
}

func Test_SExp_02(t *testing.T) {
	checkParse(t, "()", "()")
}

func Test_SExp_03(t *testing.T) {
	checkParse(t, "(and ?1 (not ?2))", "(and ?1 (not ?2))")
}

func Test_SExp_04(t *testing.T) {
	checkParse(t, "  ( rule  andI\n ; comment (ignored)\n (and ?1 ?2) )  ", "(rule andI (and ?1 ?2))")
}

func Test_SExp_05(t *testing.T) {
	checkParse(t, `(description "and introduction")`, `(description "and introduction")`)
}

func Test_SExp_06(t *testing.T) {
	checkParseError(t, "(and ?1", "unexpected end-of-file")
}

func Test_SExp_07(t *testing.T) {
	checkParseError(t, ")", "unexpected end-of-list")
}

func Test_SExp_08(t *testing.T) {
	checkParseError(t, "(a) (b)", "unexpected remainder")
}

func Test_SExp_09(t *testing.T) {
	checkParseError(t, `("abc`, "unterminated quote")
}

func Test_SExp_10(t *testing.T) {
	checkParseError(t, "   ", "unexpected end-of-file")
}

func Test_SExp_11(t *testing.T) {
	terms, _, err := ParseAll(source.NewSourceFile("test", []byte("(a) b ; trailing\n(c d)")))
	//
	assert.True(t, err == nil, "unexpected error")
	assert.Equal(t, 3, len(terms))
	assert.Equal(t, "(c d)", terms[2].String(true))
}

func Test_SExp_12(t *testing.T) {
	term, spans, err := Parse(source.NewSourceFile("test", []byte(" (a (b c))")))
	//
	assert.True(t, err == nil, "unexpected error")
	//
	inner := term.AsList().Get(1)
	span := spans[inner]
	assert.Equal(t, 4, span.Start())
	assert.Equal(t, 9, span.End())
	assert.Equal(t, "a", term.AsList().Head())
}

func checkParse(t *testing.T, input string, expected string) {
	t.Helper()
	//
	term, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Message())
	}
	//
	assert.Equal(t, expected, term.String(true))
}

func checkParseError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	//
	assert.Equal(t, msg, err.Message())
}
