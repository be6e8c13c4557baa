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
	"strconv"
	"strings"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/rule"
)

// ParseFunc converts the text of an expression into an expression, or reports
// why it cannot.
type ParseFunc func(text string) (logic.Expr, error)

// Line is a single step of a proof, consisting of an expression, the rule
// which justifies it and references to the parts of the proof the rule
// requires.
type Line struct {
	part
	expr logic.Expr
	// Set when the most recent text given failed to parse, in which case text
	// holds that text.
	malformed bool
	text      string
	rule      *rule.Rule
	refs      []Part
}

func newLine(proof *Proof, parent *Subproof) *Line {
	return &Line{part: newPart(proof, parent)}
}

// Expr returns the expression of this line, or nil if there is none.
func (l *Line) Expr() logic.Expr {
	return l.expr
}

// Malformed indicates whether the text most recently given for this line
// failed to parse.
func (l *Line) Malformed() bool {
	return l.malformed
}

// Text returns the text of this line's expression.  For a malformed line this
// is the text which failed to parse, and for a line without an expression it
// is empty.
func (l *Line) Text() string {
	switch {
	case l.malformed:
		return l.text
	case l.expr == nil:
		return ""
	default:
		return l.expr.String()
	}
}

// Rule returns the rule of this line, or nil if there is none.
func (l *Line) Rule() *rule.Rule {
	return l.rule
}

// NumRefs returns the number of reference slots of this line, as determined
// by its rule.
func (l *Line) NumRefs() uint {
	return uint(len(l.refs))
}

// Ref returns the part held in a given reference slot, or nil if the slot is
// empty.
func (l *Line) Ref(slot uint) Part {
	return l.refs[slot]
}

// Refs returns the contents of every reference slot.
func (l *Line) Refs() []Part {
	refs := make([]Part, len(l.refs))
	copy(refs, l.refs)
	//
	return refs
}

// IsAssumption determines whether this line is the assumption of a subproof.
func (l *Line) IsAssumption() bool {
	return l.parent != nil && l.parent.assumption == l
}

// IsConclusion determines whether this line is the conclusion of a subproof.
func (l *Line) IsConclusion() bool {
	return l.parent != nil && l.parent.conclusion == l
}

// Size of a line is always 1.
func (l *Line) Size() uint {
	return 1
}

// LastNumber of a line is its number.
func (l *Line) LastNumber() uint {
	return l.number
}

// Address of a line is its number.
func (l *Line) Address() string {
	return strconv.FormatUint(uint64(l.number), 10)
}

// Status returns the status of this line, computing it if necessary.  The
// result must not be modified.
func (l *Line) Status() Status {
	if l.status == nil {
		status := l.computeStatus()
		l.status = &status
	}
	//
	return *l.status
}

// SetExpr sets the expression of this line.  The expression must not contain
// meta-variables.  A nil expression clears it.
func (l *Line) SetExpr(e logic.Expr) {
	l.checkMutable("SetExpr")
	//
	if e != nil && !logic.IsGround(e) {
		misuse("SetExpr", nil, "expression %s contains meta-variables", e)
	}
	//
	l.expr, l.malformed, l.text = e, false, ""
	l.proof.changed(l, Event{Kind: ExprChanged, Part: l})
}

// ClearExpr removes the expression of this line.
func (l *Line) ClearExpr() {
	l.SetExpr(nil)
}

// SetMalformed records that the given text could not be parsed as the
// expression of this line.
func (l *Line) SetMalformed(text string) {
	l.checkMutable("SetMalformed")
	//
	l.expr, l.malformed, l.text = nil, true, text
	l.proof.changed(l, Event{Kind: ExprChanged, Part: l})
}

// SetText parses some text and sets the expression of this line accordingly.
// Blank text clears the expression, whilst text which fails to parse marks
// the line as malformed.  The parse error (if any) is returned for reporting
// but requires no further action.
func (l *Line) SetText(text string, parse ParseFunc) error {
	if strings.TrimSpace(text) == "" {
		l.ClearExpr()
		return nil
	}
	//
	e, err := parse(text)
	if err != nil {
		l.SetMalformed(text)
		return err
	}
	//
	l.SetExpr(e)
	//
	return nil
}

// SetRule sets the rule of this line, resizing its reference slots to the
// rule's arity.  Any existing references are dropped.  The rule of a
// subproof's assumption cannot be changed.
func (l *Line) SetRule(r *rule.Rule) {
	l.checkMutable("SetRule")
	//
	if l.IsAssumption() {
		if r == l.rule {
			return
		}
		//
		misuse("SetRule", ErrFixedRule, "cannot change rule of line %s", l.Address())
	}
	//
	l.releaseRefs()
	l.rule = r
	l.refs = nil
	//
	if r != nil {
		l.refs = make([]Part, r.Arity())
	}
	//
	l.proof.changed(l, Event{Kind: RuleChanged, Part: l})
}

// SetRef sets a given reference slot of this line to a given part, or clears
// it when the part is nil.  Any part of the same proof may be referenced,
// though the line is only correct if that part is reachable.
func (l *Line) SetRef(slot uint, target Part) {
	l.checkMutable("SetRef")
	//
	if slot >= uint(len(l.refs)) {
		misuse("SetRef", nil, "slot %d out of range for line %s with %d slots", slot, l.Address(), len(l.refs))
	} else if target != nil && target.base().proof != l.proof {
		misuse("SetRef", ErrForeignPart, "cannot reference from line %s", l.Address())
	} else if target != nil && target.Deleted() {
		misuse("SetRef", ErrDeleted, "cannot reference from line %s", l.Address())
	}
	//
	if old := l.refs[slot]; old != nil {
		old.base().removeDependent(l)
	}
	//
	l.refs[slot] = target
	//
	if target != nil {
		target.base().addDependent(l)
	}
	//
	l.proof.changed(l, Event{Kind: RefChanged, Part: l, Index: slot})
}

func (l *Line) checkMutable(op string) {
	if l.deleted {
		misuse(op, ErrDeleted, "line %d", l.id)
	}
	//
	l.proof.checkMutable(op)
}

// Drop every reference held by this line, without notification.
func (l *Line) releaseRefs() {
	for i, ref := range l.refs {
		if ref != nil {
			ref.base().removeDependent(l)
			l.refs[i] = nil
		}
	}
}

// Clear every slot referencing a given part, returning the slots cleared.
func (l *Line) clearRefsTo(target Part) []uint {
	var slots []uint
	//
	for i, ref := range l.refs {
		if ref == target {
			target.base().removeDependent(l)
			l.refs[i] = nil
			slots = append(slots, uint(i))
		}
	}
	//
	return slots
}
