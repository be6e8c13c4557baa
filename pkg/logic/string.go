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

import "strings"

// Binding strength of negation, above every binary connective.
const notPrecedence = 7

// Precedence returns the binding strength of this connective, where larger
// numbers bind more tightly.
func (c Connective) Precedence() int {
	switch c {
	case IFF:
		return 0
	case IMPLIES:
		return 1
	case OR:
		return 2
	case NOR:
		return 3
	case XOR:
		return 4
	case AND:
		return 5
	case NAND:
		return 6
	}
	//
	panic("unknown connective")
}

func (e MetaVar) String() string { return "?" + e.Name }

func (e Var) String() string { return e.Name }

func (e Const) String() string {
	if e.Value {
		return "true"
	}
	//
	return "false"
}

func (e Negation) String() string { return format(e) }

func (e Binary) String() string { return format(e) }

// format produces the canonical text of an expression, using as few
// parentheses as the precedence and (right) associativity of the connectives
// permit.  The result is accepted by the expression parser, which
// reconstructs an identical expression.
func format(e Expr) string {
	var builder strings.Builder
	//
	write(&builder, e, 0)
	//
	return builder.String()
}

// write an expression which appears in a position requiring a binding strength
// of at least level.
func write(builder *strings.Builder, e Expr, level int) {
	switch e := e.(type) {
	case Binary:
		prec := e.Op.Precedence()
		//
		if prec < level {
			builder.WriteString("(")
			write(builder, e, 0)
			builder.WriteString(")")
		} else {
			// Chains associate to the right, so only the left operand needs
			// to bind more tightly.
			write(builder, e.Left, prec+1)
			builder.WriteString(" ")
			builder.WriteString(e.Op.Keyword())
			builder.WriteString(" ")
			write(builder, e.Right, prec)
		}
	case Negation:
		builder.WriteString("not ")
		write(builder, e.Inner, notPrecedence)
	default:
		builder.WriteString(e.String())
	}
}
