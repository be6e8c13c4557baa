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
	"github.com/consensys/go-natded/pkg/util/source"
	"github.com/consensys/go-natded/pkg/util/source/lex"
)

// Token kinds
const (
	END_OF uint = iota
	WHITESPACE
	LBRACE
	RBRACE
	IDENTIFIER
	METAVAR
	// Keywords (classified from identifiers)
	TRUE
	FALSE
	NOT
	AND
	NAND
	OR
	NOR
	XOR
	IMPLIES
	IFF
)

var keywords = map[string]uint{
	"true":    TRUE,
	"false":   FALSE,
	"not":     NOT,
	"and":     AND,
	"nand":    NAND,
	"or":      OR,
	"nor":     NOR,
	"xor":     XOR,
	"implies": IMPLIES,
	"iff":     IFF,
}

// Rules for the lexer
var (
	whitespace = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))
	letter     = lex.Or(lex.Within('a', 'z'), lex.Within('A', 'Z'), lex.Unit('_'))
	digit      = lex.Within('0', '9')
	identifier = lex.And(letter, lex.Many(lex.Or(letter, digit, lex.Unit('\''))))
	metavar    = lex.Sequence(lex.Unit('?'), lex.Many(lex.Or(letter, digit, lex.Unit('\''))))
	//
	rules = []lex.LexRule[rune]{
		lex.Rule(lex.Unit('('), LBRACE),
		lex.Rule(lex.Unit(')'), RBRACE),
		lex.Rule(identifier, IDENTIFIER),
		lex.Rule(metavar, METAVAR),
		lex.Rule(lex.Unit('⊤'), TRUE),
		lex.Rule(lex.Unit('⊥'), FALSE),
		lex.Rule(lex.Or(lex.Unit('¬'), lex.Unit('!')), NOT),
		lex.Rule(lex.Or(lex.Unit('∧'), lex.Unit('&')), AND),
		lex.Rule(lex.Or(lex.Unit('∨'), lex.Unit('|')), OR),
		lex.Rule(lex.Unit('⊕'), XOR),
		lex.Rule(lex.Or(lex.Unit('→'), lex.String("->"), lex.String("=>")), IMPLIES),
		lex.Rule(lex.Or(lex.Unit('↔'), lex.String("<->"), lex.String("<=>")), IFF),
		lex.Rule(whitespace, WHITESPACE),
		lex.Rule(lex.Eof[rune](), END_OF),
	}
)

// Lex a given source file into a sequence of tokens, discarding whitespace and
// classifying keywords.  The final token is always END_OF.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer  = lex.NewLexer(srcfile.Contents(), rules...)
		tokens []lex.Token
	)
	//
	for _, token := range lexer.Collect() {
		switch token.Kind {
		case WHITESPACE:
			continue
		case IDENTIFIER:
			if kind, ok := keywords[srcfile.Text(token.Span)]; ok {
				token.Kind = kind
			}
		}
		//
		tokens = append(tokens, token)
	}
	// Check everything was consumed
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		err := srcfile.SyntaxError(source.NewSpan(start, start+1), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	//
	return tokens, nil
}
