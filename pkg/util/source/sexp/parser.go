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
	"unicode"

	"github.com/consensys/go-natded/pkg/util/source"
)

// Parse a given source file into exactly one S-expression, or return an error
// if the text is malformed.  The returned map records the span of every
// S-expression constructed.
func Parse(srcfile *source.File) (SExp, map[SExp]source.Span, *source.SyntaxError) {
	p := NewParser(srcfile)
	// Parse the input
	term, err := p.Parse()
	// Sanity check everything was parsed
	if err == nil {
		if p.SkipWhiteSpace(); p.index != len(p.text) {
			return nil, nil, p.error("unexpected remainder")
		} else if term == nil {
			return nil, nil, p.error("unexpected end-of-file")
		}
	}
	//
	return term, p.spans, err
}

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if the text is malformed.
func ParseAll(srcfile *source.File) ([]SExp, map[SExp]source.Span, *source.SyntaxError) {
	var (
		p     = NewParser(srcfile)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		if err != nil {
			return terms, p.spans, err
		} else if term == nil {
			// EOF reached
			return terms, p.spans, nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given string into one
// or more S-expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
	// Span of every S-Expression constructed so far.
	spans map[SExp]source.Span
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		spans:   make(map[SExp]source.Span),
	}
}

// Parse the next S-Expression, returning nil at the end of the input.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip whitespace so the recorded span starts on the term itself.
	p.SkipWhiteSpace()
	//
	start := p.index
	//
	switch {
	case p.index == len(p.text):
		return nil, nil
	case p.text[p.index] == ')':
		return nil, p.error("unexpected end-of-list")
	case p.text[p.index] == '(':
		p.index++
		//
		elements, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	case p.text[p.index] == '"':
		symbol, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		//
		term = symbol
	default:
		term = &Symbol{p.parseSymbol()}
	}
	//
	p.spans[term] = source.NewSpan(start, p.index)
	//
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments which run from
// ';' to the end of the line.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

func (p *Parser) parseSymbol() string {
	start := p.index
	//
	for p.index < len(p.text) && isSymbolLetter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

func (p *Parser) parseQuoted() (*Symbol, *source.SyntaxError) {
	start := p.index
	// skip opening quote
	p.index++
	//
	for p.index < len(p.text) && p.text[p.index] != '"' {
		p.index++
	}
	//
	if p.index == len(p.text) {
		p.index = start
		return nil, p.error("unterminated quote")
	}
	// skip closing quote
	p.index++
	//
	return &Symbol{string(p.text[start+1 : p.index-1])}, nil
}

func (p *Parser) parseSequence() ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := min(p.index+1, len(p.text))
	return p.srcfile.SyntaxError(source.NewSpan(min(p.index, end), end), msg)
}
