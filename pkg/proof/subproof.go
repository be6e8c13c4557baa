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
	"fmt"

	"github.com/consensys/go-natded/pkg/rule"
)

// Subproof is a local derivation, which begins with an assumption and ends
// with a conclusion.  Parts nested inside a subproof are only visible from
// within it.
type Subproof struct {
	part
	assumption *Line
	parts      []Part
	conclusion *Line
}

func newSubproof(proof *Proof, parent *Subproof) *Subproof {
	s := &Subproof{part: newPart(proof, parent)}
	s.assumption = newLine(proof, s)
	s.assumption.rule = rule.Assumption
	s.assumption.refs = make([]Part, rule.Assumption.Arity())
	s.conclusion = newLine(proof, s)
	//
	return s
}

// Assumption returns the first line of this subproof.
func (s *Subproof) Assumption() *Line {
	return s.assumption
}

// Conclusion returns the last line of this subproof.
func (s *Subproof) Conclusion() *Line {
	return s.conclusion
}

// Parts returns the parts nested between the assumption and the conclusion.
func (s *Subproof) Parts() []Part {
	parts := make([]Part, len(s.parts))
	copy(parts, s.parts)
	//
	return parts
}

// Size returns the number of lines occupied by this subproof, including its
// assumption and conclusion.
func (s *Subproof) Size() uint {
	size := uint(2)
	//
	for _, p := range s.parts {
		size += p.Size()
	}
	//
	return size
}

// LastNumber returns the number of the conclusion.
func (s *Subproof) LastNumber() uint {
	return s.conclusion.number
}

// Address returns the range of this subproof, such as "3-7".
func (s *Subproof) Address() string {
	return fmt.Sprintf("%d-%d", s.number, s.conclusion.number)
}

// Status returns the status of this subproof, computing it if necessary.
func (s *Subproof) Status() Status {
	if s.status == nil {
		status := s.computeStatus()
		s.status = &status
	}
	//
	return *s.status
}

// InsertLine inserts a new line at a given index amongst the nested parts of
// this subproof.
func (s *Subproof) InsertLine(index uint) *Line {
	s.checkMutable("InsertLine")
	//
	line := newLine(s.proof, s)
	s.proof.insert("InsertLine", s, index, line)
	//
	return line
}

// InsertSubproof inserts a new subproof at a given index amongst the nested
// parts of this subproof.
func (s *Subproof) InsertSubproof(index uint) *Subproof {
	s.checkMutable("InsertSubproof")
	//
	sub := newSubproof(s.proof, s)
	s.proof.insert("InsertSubproof", s, index, sub)
	//
	return sub
}

// AddLine appends a new line immediately before the conclusion.
func (s *Subproof) AddLine() *Line {
	return s.InsertLine(uint(len(s.parts)))
}

// AddSubproof appends a new subproof immediately before the conclusion.
func (s *Subproof) AddSubproof() *Subproof {
	return s.InsertSubproof(uint(len(s.parts)))
}

// Signature returns the expressions assumed and concluded by this subproof,
// either of which may be nil.
func (s *Subproof) Signature() rule.Signature {
	return rule.Signature{Assumption: s.assumption.expr, Conclusion: s.conclusion.expr}
}

func (s *Subproof) checkMutable(op string) {
	if s.deleted {
		misuse(op, ErrDeleted, "subproof %d", s.id)
	}
	//
	s.proof.checkMutable(op)
}
