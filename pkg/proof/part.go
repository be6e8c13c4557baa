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
	"maps"
	"slices"
)

// Part is either a Line or a Subproof.
type Part interface {
	// ID returns the identity of this part, which is unique within its proof
	// and never changes.
	ID() uint
	// Number returns the first line number occupied by this part.
	Number() uint
	// LastNumber returns the last line number occupied by this part.
	LastNumber() uint
	// Size returns the number of lines occupied by this part.
	Size() uint
	// Address returns the number of a line, or the range "a-b" of a subproof.
	Address() string
	// Position returns the index of this part within its container.  Within a
	// subproof the assumption has position 0, nested parts follow from 1 and
	// the conclusion comes last.
	Position() uint
	// Parent returns the enclosing subproof, or nil for a top-level part.
	Parent() *Subproof
	// Context returns the positions of the subproofs enclosing this part,
	// outermost first.
	Context() []uint
	// Deleted indicates whether this part has been deleted.
	Deleted() bool
	// Status returns the (cached) status of this part.
	Status() Status
	// Dependents returns the lines referencing this part, ordered by identity.
	Dependents() []*Line
	// AddListener registers a listener with this part.
	AddListener(Listener) ListenerID
	// RemoveListener removes a previously registered listener.
	RemoveListener(ListenerID)
	//
	base() *part
}

// State common to lines and subproofs.
type part struct {
	proof  *Proof
	parent *Subproof
	id     uint
	// Derived by renumbering
	number   uint
	position uint
	// Lines referencing this part, by identity, with the number of slots each
	// uses to do so.
	dependents map[uint]*dependency
	// Nil when stale
	status    *Status
	listeners listeners
	deleted   bool
}

type dependency struct {
	line  *Line
	count uint
}

func newPart(proof *Proof, parent *Subproof) part {
	return part{
		proof:      proof,
		parent:     parent,
		id:         proof.nextID(),
		dependents: make(map[uint]*dependency),
	}
}

func (p *part) base() *part { return p }

func (p *part) ID() uint { return p.id }

func (p *part) Number() uint { return p.number }

func (p *part) Position() uint { return p.position }

func (p *part) Parent() *Subproof { return p.parent }

func (p *part) Deleted() bool { return p.deleted }

func (p *part) Context() []uint {
	var context []uint
	//
	for s := p.parent; s != nil; s = s.parent {
		context = append(context, s.position)
	}
	//
	slices.Reverse(context)
	//
	return context
}

func (p *part) Dependents() []*Line {
	lines := make([]*Line, 0, len(p.dependents))
	//
	for _, id := range slices.Sorted(maps.Keys(p.dependents)) {
		lines = append(lines, p.dependents[id].line)
	}
	//
	return lines
}

func (p *part) AddListener(listener Listener) ListenerID {
	return p.listeners.add(listener)
}

func (p *part) RemoveListener(id ListenerID) {
	p.listeners.remove(id)
}

func (p *part) addDependent(line *Line) {
	if d, ok := p.dependents[line.id]; ok {
		d.count++
	} else {
		p.dependents[line.id] = &dependency{line, 1}
	}
}

func (p *part) removeDependent(line *Line) {
	d, ok := p.dependents[line.id]
	//
	switch {
	case !ok:
		panic("missing dependent")
	case d.count == 1:
		delete(p.dependents, line.id)
	default:
		d.count--
	}
}

// Reachable determines whether a given target may be referenced by a given
// line.  The target must end before the line starts, and must not be hidden
// inside a subproof which does not also enclose the line.
func Reachable(target Part, referencer Part) bool {
	if target.LastNumber() >= referencer.Number() {
		return false
	}
	//
	var (
		tc = target.Context()
		rc = referencer.Context()
	)
	//
	return len(tc) <= len(rc) && slices.Equal(tc, rc[:len(tc)])
}
