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
	"strings"

	"github.com/consensys/go-natded/pkg/util/source/sexp"
)

// ToLisp converts an expression into an S-Expression, for example "(implies
// ?1 (not p))".  This form is used to declare rule patterns and is handy for
// debugging since it shows the structure of an expression unambiguously.
func ToLisp(e Expr) sexp.SExp {
	switch e := e.(type) {
	case MetaVar, Var, Const:
		return sexp.NewSymbol(e.String())
	case Negation:
		return sexp.NewList(sexp.NewSymbol("not"), ToLisp(e.Inner))
	case Binary:
		return sexp.NewList(sexp.NewSymbol(e.Op.Keyword()), ToLisp(e.Left), ToLisp(e.Right))
	}
	//
	panic(unknownVariant(e))
}

// FromLisp translates an S-Expression back into an expression.  Connective
// lists may have two or more operands, in which case they are folded to the
// right (see Fold).  The returned error identifies the offending
// S-Expression so that callers can locate it in the original text.
func FromLisp(term sexp.SExp) (Expr, *LispError) {
	if symbol := term.AsSymbol(); symbol != nil {
		return fromLispSymbol(symbol)
	}
	//
	var (
		list = term.AsList()
		head = list.Head()
	)
	//
	if head == "" {
		return nil, &LispError{term, "expected connective"}
	}
	//
	args := make([]Expr, list.Len()-1)
	//
	for i := range args {
		arg, err := FromLisp(list.Get(i + 1))
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	if head == "not" {
		if len(args) != 1 {
			return nil, &LispError{term, "not expects exactly one operand"}
		}
		//
		return Not(args[0]), nil
	}
	//
	for _, op := range Connectives {
		if op.Keyword() == head {
			if len(args) < 2 {
				return nil, &LispError{term, fmt.Sprintf("%s expects at least two operands", head)}
			}
			//
			return Fold(op, args...), nil
		}
	}
	//
	return nil, &LispError{term, fmt.Sprintf("unknown connective %s", head)}
}

func fromLispSymbol(symbol *sexp.Symbol) (Expr, *LispError) {
	switch name := symbol.Value; {
	case name == "true":
		return True(), nil
	case name == "false":
		return False(), nil
	case strings.HasPrefix(name, "?") && len(name) > 1:
		return Meta(name[1:]), nil
	case name == "" || strings.HasPrefix(name, "?"):
		return nil, &LispError{symbol, "invalid symbol"}
	default:
		return Variable(name), nil
	}
}

// LispError reports an S-Expression which does not describe an expression.
type LispError struct {
	Term sexp.SExp
	Msg  string
}

// Error implements the error interface.
func (e *LispError) Error() string {
	return fmt.Sprintf("%s: %s", e.Term.String(true), e.Msg)
}
