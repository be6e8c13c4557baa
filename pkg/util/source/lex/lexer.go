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
package lex

import "github.com/consensys/go-natded/pkg/util/source"

// Token associates a tag with a given range of characters in the text being
// scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates the characters accepted by a scanner with a given tag.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer tokenises a given input sequence.  At each position every rule is
// tried and the longest match wins; ties are broken in favour of the rule
// given first.  An end-of-input rule (see Eof) matches exactly once, after
// which the lexer is exhausted.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	// Set once the end of input has been tokenised.
	done bool
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, false}
}

// Index returns the current index within the items array.
func (p *Lexer[T]) Index() uint {
	return uint(p.index)
}

// Remaining determines how many items of the original sequence are yet to be
// tokenised.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// Next scans the next token.  The boolean result is false when no rule
// matches at the current position, or when the input is exhausted.
func (p *Lexer[T]) Next() (Token, bool) {
	var (
		best    Token
		longest uint
	)
	//
	if p.done {
		return best, false
	}
	//
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > longest {
			end := min(len(p.items), p.index+int(n))
			best, longest = Token{r.tag, source.NewSpan(p.index, end)}, n
		}
	}
	//
	switch {
	case longest == 0:
		return best, false
	case p.index == len(p.items):
		// only an end-of-input rule can match here
		p.done = true
	default:
		p.index = best.Span.End()
	}
	//
	return best, true
}

// Collect tokenises as much of the input as possible.  Callers should check
// Remaining() afterwards to determine whether everything was consumed.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for token, ok := p.Next(); ok; token, ok = p.Next() {
		tokens = append(tokens, token)
	}
	//
	return tokens
}
