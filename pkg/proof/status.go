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
package proof

import (
	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/logic/unify"
	"github.com/consensys/go-natded/pkg/rule"
)

// Fault identifies something wrong with (or missing from) a line.
type Fault string

// Faults reported for the expression, rule and reference slots of a line.
const (
	Missing           Fault = "missing"
	Malformed         Fault = "malformed"
	Inapplicable      Fault = "inapplicable"
	Unreachable       Fault = "unreachable"
	WrongType         Fault = "wrong_type"
	MissingExpr       Fault = "missing_expr"
	WrongExpr         Fault = "wrong_expr"
	MissingAssumption Fault = "missing_assumption"
	WrongAssumption   Fault = "wrong_assumption"
	MissingConclusion Fault = "missing_conclusion"
	WrongConclusion   Fault = "wrong_conclusion"
)

// Status summarises the correctness of a part.  For lines, the faults of the
// expression, the rule and each reference slot are given individually.  For
// subproofs (and the proof itself) only the summary flags are set.
type Status struct {
	Expr []Fault
	Rule []Fault
	Refs [][]Fault
	// Ok holds when nothing is wrong with the part itself.
	Ok bool
	// OnlyMissing holds when every fault is Missing, meaning the part is
	// incomplete rather than wrong.
	OnlyMissing bool
	// TransitivelyOk holds when the part and everything it relies upon, directly
	// or indirectly, is ok.
	TransitivelyOk bool
}

// Faults returns every fault of a line, in order of expression, rule and
// reference slots.
func (s Status) Faults() []Fault {
	faults := append(append([]Fault(nil), s.Expr...), s.Rule...)
	//
	for _, fs := range s.Refs {
		faults = append(faults, fs...)
	}
	//
	return faults
}

func (l *Line) computeStatus() Status {
	status := Status{
		Expr: l.exprFaults(),
		Rule: l.ruleFaults(),
		Refs: make([][]Fault, len(l.refs)),
	}
	//
	var (
		instance rule.Instance
		ok       bool
	)
	//
	if l.rule != nil && l.expr != nil {
		instance, ok = l.rule.Instantiate(l.expr)
	}
	//
	for i := range l.refs {
		status.Refs[i] = l.refFaults(uint(i), instance, ok)
	}
	//
	status.Ok = len(status.Expr) == 0 && len(status.Rule) == 0
	status.OnlyMissing = onlyMissing(status.Expr) && onlyMissing(status.Rule)
	//
	for _, faults := range status.Refs {
		status.Ok = status.Ok && len(faults) == 0
		status.OnlyMissing = status.OnlyMissing && onlyMissing(faults)
	}
	//
	if !status.Ok {
		return status
	}
	//
	status.TransitivelyOk = true
	//
	var (
		facts     []logic.Expr
		subproofs []rule.Signature
	)
	//
	for _, ref := range l.refs {
		status.TransitivelyOk = status.TransitivelyOk && ref.Status().TransitivelyOk
		//
		switch ref := ref.(type) {
		case *Line:
			facts = append(facts, ref.expr)
		case *Subproof:
			subproofs = append(subproofs, ref.Signature())
		}
	}
	// Individually plausible references must also agree with each other
	if !l.rule.Check(l.expr, facts, subproofs) {
		status.Ok = false
		status.TransitivelyOk = false
	}
	//
	return status
}

func (l *Line) exprFaults() []Fault {
	switch {
	case l.malformed:
		return []Fault{Malformed}
	case l.expr == nil:
		return []Fault{Missing}
	default:
		return nil
	}
}

func (l *Line) ruleFaults() []Fault {
	switch {
	case l.rule == nil:
		return []Fault{Missing}
	case l.expr != nil && !l.rule.Applicable(l.expr):
		return []Fault{Inapplicable}
	default:
		return nil
	}
}

// Determine the faults of a given reference slot, where (if known) instance
// gives the shapes expected of each slot.
func (l *Line) refFaults(slot uint, instance rule.Instance, known bool) []Fault {
	ref := l.refs[slot]
	//
	switch {
	case ref == nil:
		return []Fault{Missing}
	case !Reachable(ref, l):
		return []Fault{Unreachable}
	case !known:
		return nil
	case l.rule.IsSubproofSlot(slot):
		sub, ok := ref.(*Subproof)
		if !ok {
			return []Fault{WrongType}
		}
		//
		expected := instance.Subproofs[slot-l.rule.NumFacts()]
		//
		return append(
			matchFaults(expected.Assumption, sub.assumption.expr, MissingAssumption, WrongAssumption),
			matchFaults(expected.Conclusion, sub.conclusion.expr, MissingConclusion, WrongConclusion)...)
	default:
		line, ok := ref.(*Line)
		if !ok {
			return []Fault{WrongType}
		}
		//
		return matchFaults(instance.Facts[slot], line.expr, MissingExpr, WrongExpr)
	}
}

func matchFaults(expected logic.Expr, actual logic.Expr, missing Fault, wrong Fault) []Fault {
	if actual == nil {
		return []Fault{missing}
	} else if _, ok := unify.Unify(expected, actual); !ok {
		return []Fault{wrong}
	}
	//
	return nil
}

func onlyMissing(faults []Fault) bool {
	return len(faults) == 0 || (len(faults) == 1 && faults[0] == Missing)
}

func (s *Subproof) computeStatus() Status {
	return summarise(append([]Part{s.assumption}, append(s.Parts(), s.conclusion)...))
}

// Conjoin the statuses of a sequence of parts.
func summarise(parts []Part) Status {
	status := Status{Ok: true, OnlyMissing: true, TransitivelyOk: true}
	//
	for _, p := range parts {
		s := p.Status()
		status.Ok = status.Ok && s.Ok
		status.OnlyMissing = status.OnlyMissing && s.OnlyMissing
		status.TransitivelyOk = status.TransitivelyOk && s.TransitivelyOk
	}
	//
	return status
}
