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
	"errors"
	"fmt"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/util/source"
	"github.com/consensys/go-natded/pkg/util/source/lex"
)

// Binary connectives from loosest to tightest binding, paired with the token
// kind which denotes them.  All are right associative.
var binaryLevels = []struct {
	kind uint
	op   logic.Connective
}{
	{IFF, logic.IFF},
	{IMPLIES, logic.IMPLIES},
	{OR, logic.OR},
	{NOR, logic.NOR},
	{XOR, logic.XOR},
	{AND, logic.AND},
	{NAND, logic.NAND},
}

// Parse a propositional formula, such as "p and q implies not r".
// Meta-variables are not permitted.
func Parse(text string) (logic.Expr, []source.SyntaxError) {
	return ParseFile(source.NewSourceFile("expression", []byte(text)), false)
}

// ParsePattern parses a formula which may additionally contain meta-variables,
// such as "?1 implies ?2".
func ParsePattern(text string) (logic.Expr, []source.SyntaxError) {
	return ParseFile(source.NewSourceFile("pattern", []byte(text)), true)
}

// ParseExpr parses a propositional formula, combining any syntax errors into
// a single error value.  This is a convenient form for use as a parsing
// callback.
func ParseExpr(text string) (logic.Expr, error) {
	e, errs := Parse(text)
	if len(errs) == 0 {
		return e, nil
	}
	//
	joined := make([]error, len(errs))
	//
	for i := range errs {
		joined[i] = &errs[i]
	}
	//
	return nil, errors.Join(joined...)
}

// ParseFile parses the contents of a given source file as a single formula.
func ParseFile(srcfile *source.File, patterns bool) (logic.Expr, []source.SyntaxError) {
	tokens, errs := Lex(srcfile)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	p := &Parser{srcfile, tokens, 0, patterns}
	//
	e, err := p.parseBinary(0)
	if err == nil && p.lookahead().Kind != END_OF {
		err = p.syntaxError(p.lookahead(), "unexpected remainder")
	}
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	return e, nil
}

// Parser is a recursive descent parser over a sequence of tokens.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Whether meta-variables are permitted
	patterns bool
}

func (p *Parser) parseBinary(level int) (logic.Expr, *source.SyntaxError) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	//
	lhs, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	} else if p.lookahead().Kind != binaryLevels[level].kind {
		return lhs, nil
	}
	// Consume operator
	p.index++
	// Right associative
	rhs, err := p.parseBinary(level)
	if err != nil {
		return nil, err
	}
	//
	return logic.Binary{Op: binaryLevels[level].op, Left: lhs, Right: rhs}, nil
}

func (p *Parser) parseUnary() (logic.Expr, *source.SyntaxError) {
	if p.lookahead().Kind != NOT {
		return p.parseAtom()
	}
	// Consume "not"
	p.index++
	//
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	return logic.Not(inner), nil
}

func (p *Parser) parseAtom() (logic.Expr, *source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case TRUE:
		p.index++
		return logic.True(), nil
	case FALSE:
		p.index++
		return logic.False(), nil
	case IDENTIFIER:
		p.index++
		return logic.Variable(p.srcfile.Text(token.Span)), nil
	case METAVAR:
		if !p.patterns {
			return nil, p.syntaxError(token, "meta-variables not permitted")
		}
		//
		p.index++
		// Strip leading '?'
		return logic.Meta(p.srcfile.Text(token.Span)[1:]), nil
	case LBRACE:
		p.index++
		//
		e, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		} else if p.lookahead().Kind != RBRACE {
			return nil, p.syntaxError(p.lookahead(), "expected )")
		}
		//
		p.index++
		//
		return e, nil
	case END_OF:
		return nil, p.syntaxError(token, "unexpected end of input")
	default:
		return nil, p.syntaxError(token, fmt.Sprintf("unexpected %s", p.srcfile.Text(token.Span)))
	}
}

// Get the next token without consuming it.  The token stream always ends with
// END_OF, which is never consumed.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[min(p.index, len(p.tokens)-1)]
}

func (p *Parser) syntaxError(token lex.Token, msg string) *source.SyntaxError {
	span := token.Span
	// Highlight something, even at the end of input
	if span.Length() == 0 && span.Start() > 0 {
		span = source.NewSpan(span.Start()-1, span.Start())
	}
	//
	return p.srcfile.SyntaxError(span, msg)
}
