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
package rule

import (
	_ "embed"
	"fmt"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/util/source"
	"github.com/consensys/go-natded/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

//go:embed catalog.lisp
var catalogText []byte

var (
	catalog []*Rule
	byName  map[string]*Rule
	// Assumption is the rule forced upon the assumption line of every
	// subproof.
	Assumption *Rule
	// Hypothesis is the rule for top-level premises.
	Hypothesis *Rule
)

func init() {
	var err error
	//
	if catalog, err = ParseCatalog(source.NewSourceFile("catalog.lisp", catalogText)); err != nil {
		// Embedded catalog is broken
		panic(err)
	}
	//
	byName = make(map[string]*Rule, len(catalog))
	//
	for _, r := range catalog {
		byName[r.Name()] = r
	}
	//
	Assumption = byName["assumption"]
	Hypothesis = byName["hypothesis"]
	//
	log.Debugf("loaded %d inference rules", len(catalog))
}

// All returns every rule in the catalog, in declaration order.
func All() []*Rule {
	return catalog
}

// Lookup a rule by name.
func Lookup(name string) (*Rule, bool) {
	r, ok := byName[name]
	return r, ok
}

// ParseCatalog parses a sequence of rule declarations of the form:
//
//	(rule NAME DESCRIPTION CONCLUSION (facts PATTERN...) (subproofs (A C)...))
//
// where the facts and subproofs clauses are optional.  Duplicate names are
// rejected.
func ParseCatalog(srcfile *source.File) ([]*Rule, error) {
	terms, spans, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, err
	}
	//
	var (
		rules []*Rule
		seen  = make(map[string]bool)
	)
	//
	for _, term := range terms {
		r, err := parseRule(term)
		if err == nil && seen[r.Name()] {
			err = &catalogError{term, fmt.Sprintf("duplicate rule %s", r.Name())}
		}
		//
		if err != nil {
			return nil, srcfile.SyntaxError(spans[err.term], err.msg)
		}
		//
		seen[r.Name()] = true
		rules = append(rules, r)
	}
	//
	return rules, nil
}

type catalogError struct {
	term sexp.SExp
	msg  string
}

func parseRule(term sexp.SExp) (*Rule, *catalogError) {
	list := term.AsList()
	//
	if list == nil || list.Head() != "rule" || list.Len() < 4 {
		return nil, &catalogError{term, "expected (rule name description conclusion ...)"}
	}
	//
	name := list.Get(1).AsSymbol()
	description := list.Get(2).AsSymbol()
	//
	if name == nil || description == nil {
		return nil, &catalogError{term, "expected rule name and description"}
	}
	//
	conclusion, err := parsePattern(list.Get(3))
	if err != nil {
		return nil, err
	}
	//
	var (
		facts     []logic.Expr
		subproofs []Signature
	)
	//
	for i := 4; i < list.Len(); i++ {
		clause := list.Get(i).AsList()
		//
		switch {
		case clause != nil && clause.Head() == "facts" && facts == nil:
			if facts, err = parseFacts(clause); err != nil {
				return nil, err
			}
		case clause != nil && clause.Head() == "subproofs" && subproofs == nil:
			if subproofs, err = parseSubproofs(clause); err != nil {
				return nil, err
			}
		default:
			return nil, &catalogError{list.Get(i), "unexpected clause"}
		}
	}
	//
	return NewRule(name.Value, description.Value, conclusion, facts, subproofs), nil
}

func parseFacts(clause *sexp.List) ([]logic.Expr, *catalogError) {
	facts := make([]logic.Expr, clause.Len()-1)
	//
	for i := range facts {
		fact, err := parsePattern(clause.Get(i + 1))
		if err != nil {
			return nil, err
		}
		//
		facts[i] = fact
	}
	//
	return facts, nil
}

func parseSubproofs(clause *sexp.List) ([]Signature, *catalogError) {
	subproofs := make([]Signature, clause.Len()-1)
	//
	for i := range subproofs {
		pair := clause.Get(i + 1).AsList()
		if pair == nil || pair.Len() != 2 {
			return nil, &catalogError{clause.Get(i + 1), "expected (assumption conclusion)"}
		}
		//
		assumption, err := parsePattern(pair.Get(0))
		if err != nil {
			return nil, err
		}
		//
		conclusion, err := parsePattern(pair.Get(1))
		if err != nil {
			return nil, err
		}
		//
		subproofs[i] = Signature{assumption, conclusion}
	}
	//
	return subproofs, nil
}

func parsePattern(term sexp.SExp) (logic.Expr, *catalogError) {
	e, err := logic.FromLisp(term)
	if err != nil {
		return nil, &catalogError{err.Term, err.Msg}
	}
	//
	return e, nil
}
