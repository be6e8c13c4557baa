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
	"fmt"
	"strings"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/logic/unify"
	"github.com/consensys/go-natded/pkg/util"
)

// Signature describes a subproof by the expressions it assumes and concludes.
type Signature struct {
	Assumption logic.Expr
	Conclusion logic.Expr
}

// String returns a human-readable representation of this signature.
func (s Signature) String() string {
	return fmt.Sprintf("[%s ... %s]", s.Assumption, s.Conclusion)
}

// Rule is a named inference rule.  A rule is applicable to a line whose
// expression matches the conclusion pattern, and is justified by one line per
// fact pattern and one subproof per subproof pattern.  Patterns use
// meta-variables as placeholders, and the same meta-variable must be bound
// consistently across all patterns of an application.
type Rule struct {
	name        string
	description string
	conclusion  logic.Expr
	facts       []logic.Expr
	subproofs   []Signature
}

// NewRule constructs a new rule.  Rules are normally obtained from the catalog
// rather than constructed directly.
func NewRule(name, description string, conclusion logic.Expr, facts []logic.Expr, subproofs []Signature) *Rule {
	return &Rule{name, description, conclusion, facts, subproofs}
}

// Name returns the name by which this rule is known in the interchange format.
func (r *Rule) Name() string {
	return r.name
}

// Description returns a short human-readable description of this rule.
func (r *Rule) Description() string {
	return r.description
}

// Conclusion returns the pattern which a line justified by this rule must
// match.
func (r *Rule) Conclusion() logic.Expr {
	return r.conclusion
}

// Facts returns the patterns for the lines this rule requires.
func (r *Rule) Facts() []logic.Expr {
	return r.facts
}

// Subproofs returns the patterns for the subproofs this rule requires.
func (r *Rule) Subproofs() []Signature {
	return r.subproofs
}

// NumFacts returns the number of lines this rule requires.
func (r *Rule) NumFacts() uint {
	return uint(len(r.facts))
}

// NumSubproofs returns the number of subproofs this rule requires.
func (r *Rule) NumSubproofs() uint {
	return uint(len(r.subproofs))
}

// Arity returns the number of reference slots of a line using this rule.  Fact
// slots come first, followed by subproof slots.
func (r *Rule) Arity() uint {
	return r.NumFacts() + r.NumSubproofs()
}

// IsSubproofSlot determines whether the given reference slot expects a
// subproof (rather than a line).
func (r *Rule) IsSubproofSlot(slot uint) bool {
	return slot >= r.NumFacts()
}

// String returns the rule in the form "name: facts; subproofs ⊢ conclusion".
func (r *Rule) String() string {
	var premises []string
	//
	for _, f := range r.facts {
		premises = append(premises, f.String())
	}
	//
	for _, s := range r.subproofs {
		premises = append(premises, s.String())
	}
	//
	return fmt.Sprintf("%s: %s |- %s", r.name, strings.Join(premises, ", "), r.conclusion)
}

// Instance holds the shapes expected of each reference slot, once the
// conclusion pattern of a rule has been matched against a concrete
// expression.  These may still contain meta-variables which the conclusion
// does not determine (e.g. ?1 in implication elimination).
type Instance struct {
	Facts     []logic.Expr
	Subproofs []Signature
}

// Instantiate matches the conclusion pattern of this rule against a concrete
// expression, and substitutes the resulting bindings into the fact and
// subproof patterns.  This fails if the rule is not applicable.
func (r *Rule) Instantiate(conclusion logic.Expr) (Instance, bool) {
	solution, ok := unify.Unify(r.conclusion, conclusion)
	if !ok {
		return Instance{}, false
	}
	//
	instance := Instance{
		Facts:     make([]logic.Expr, len(r.facts)),
		Subproofs: make([]Signature, len(r.subproofs)),
	}
	//
	for i, f := range r.facts {
		instance.Facts[i] = unify.Substitute(f, solution)
	}
	//
	for i, s := range r.subproofs {
		instance.Subproofs[i] = Signature{
			unify.Substitute(s.Assumption, solution),
			unify.Substitute(s.Conclusion, solution),
		}
	}
	//
	return instance, true
}

// Applicable determines whether the conclusion pattern of this rule matches a
// given expression.
func (r *Rule) Applicable(conclusion logic.Expr) bool {
	_, ok := unify.Unify(r.conclusion, conclusion)
	return ok
}

// Check determines whether this rule justifies a given conclusion from the
// given facts and subproofs.  The order in which facts (resp. subproofs) are
// supplied is irrelevant: every permutation is tried against the rule's
// patterns, and the check succeeds if some combination yields a consistent
// binding of meta-variables.
func (r *Rule) Check(conclusion logic.Expr, facts []logic.Expr, subproofs []Signature) bool {
	if len(facts) != len(r.facts) || len(subproofs) != len(r.subproofs) {
		return false
	}
	//
	base, ok := unify.GetConstraints(r.conclusion, conclusion)
	if !ok {
		return false
	}
	//
	var (
		factConstraints     = r.factConstraints(facts)
		subproofConstraints = r.subproofConstraints(subproofs)
	)
	//
	for _, fcs := range factConstraints {
		for _, scs := range subproofConstraints {
			constraints := make([]unify.Constraint, 0, len(base)+len(fcs)+len(scs))
			constraints = append(constraints, base...)
			constraints = append(constraints, fcs...)
			constraints = append(constraints, scs...)
			//
			if _, ok := unify.SolveConstraints(constraints); ok {
				return true
			}
		}
	}
	//
	return false
}

// Determine the constraints arising from each permutation of the given facts
// which matches the fact patterns.
func (r *Rule) factConstraints(facts []logic.Expr) [][]unify.Constraint {
	var result [][]unify.Constraint
	//
	for perm := range util.Permutations(facts) {
		if constraints, ok := matchAll(r.facts, perm); ok {
			result = append(result, constraints)
		}
	}
	//
	return result
}

// Determine the constraints arising from each permutation of the given
// subproofs which matches the subproof patterns.  The assumption and
// conclusion of a subproof contribute jointly.
func (r *Rule) subproofConstraints(subproofs []Signature) [][]unify.Constraint {
	var (
		result   [][]unify.Constraint
		patterns = flatten(r.subproofs)
	)
	//
	for perm := range util.Permutations(subproofs) {
		if constraints, ok := matchAll(patterns, flatten(perm)); ok {
			result = append(result, constraints)
		}
	}
	//
	return result
}

func matchAll(patterns []logic.Expr, actuals []logic.Expr) ([]unify.Constraint, bool) {
	constraints := make([]unify.Constraint, 0, len(patterns))
	//
	for i, pattern := range patterns {
		cs, ok := unify.GetConstraints(pattern, actuals[i])
		if !ok {
			return nil, false
		}
		//
		constraints = append(constraints, cs...)
	}
	//
	return constraints, true
}

func flatten(signatures []Signature) []logic.Expr {
	exprs := make([]logic.Expr, 0, 2*len(signatures))
	//
	for _, s := range signatures {
		exprs = append(exprs, s.Assumption, s.Conclusion)
	}
	//
	return exprs
}
