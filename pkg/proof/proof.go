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
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-natded/pkg/rule"
	log "github.com/sirupsen/logrus"
)

// Proof is the root of a proof document, holding a sequence of top-level
// parts.  Parts are numbered consecutively in document order, starting from a
// configurable first line number.  Every modification invalidates the cached
// status of each part which may be affected, and notifies the listeners
// concerned.  A proof is not safe for concurrent use.
type Proof struct {
	parts []Part
	// Indices rebuilt by every renumbering
	lines     map[uint]*Line
	subproofs map[string]*Subproof
	// Last identity handed out
	lastID    uint
	firstLine uint
	listeners listeners
	// Notifications awaiting delivery
	queue []notification
	// Non-zero whilst notifications are being delivered
	notifying uint
}

// Option configures a proof on construction.
type Option func(*Proof)

// WithFirstLine sets the number given to the first line of a proof (the
// default is 1).
func WithFirstLine(n uint) Option {
	return func(p *Proof) {
		p.firstLine = n
	}
}

// NewProof constructs an empty proof.
func NewProof(options ...Option) *Proof {
	p := &Proof{
		lines:     make(map[uint]*Line),
		subproofs: make(map[string]*Subproof),
		firstLine: 1,
	}
	//
	for _, option := range options {
		option(p)
	}
	//
	return p
}

// FirstLine returns the number of the first line of this proof.
func (p *Proof) FirstLine() uint {
	return p.firstLine
}

// Parts returns the top-level parts of this proof.
func (p *Proof) Parts() []Part {
	return slices.Clone(p.parts)
}

// Size returns the number of lines in this proof.
func (p *Proof) Size() uint {
	var size uint
	//
	for _, part := range p.parts {
		size += part.Size()
	}
	//
	return size
}

// Status summarises the status of every top-level part.
func (p *Proof) Status() Status {
	return summarise(p.parts)
}

// AddListener registers a listener for the insertion and deletion of
// top-level parts.
func (p *Proof) AddListener(listener Listener) ListenerID {
	return p.listeners.add(listener)
}

// RemoveListener removes a previously registered listener.
func (p *Proof) RemoveListener(id ListenerID) {
	p.listeners.remove(id)
}

// InsertLine inserts a new top-level line at a given index.
func (p *Proof) InsertLine(index uint) *Line {
	p.checkMutable("InsertLine")
	//
	line := newLine(p, nil)
	p.insert("InsertLine", nil, index, line)
	//
	return line
}

// InsertSubproof inserts a new top-level subproof at a given index.
func (p *Proof) InsertSubproof(index uint) *Subproof {
	p.checkMutable("InsertSubproof")
	//
	sub := newSubproof(p, nil)
	p.insert("InsertSubproof", nil, index, sub)
	//
	return sub
}

// AddLine appends a new top-level line.
func (p *Proof) AddLine() *Line {
	return p.InsertLine(uint(len(p.parts)))
}

// AddSubproof appends a new top-level subproof.
func (p *Proof) AddSubproof() *Subproof {
	return p.InsertSubproof(uint(len(p.parts)))
}

// Line returns the line with a given number.
func (p *Proof) Line(number uint) (*Line, bool) {
	line, ok := p.lines[number]
	return line, ok
}

// Subproof returns the subproof with a given range, such as "3-7".
func (p *Proof) Subproof(address string) (*Subproof, bool) {
	sub, ok := p.subproofs[address]
	return sub, ok
}

// Lookup returns the part with a given address, which is either a line number
// or a subproof range.
func (p *Proof) Lookup(address string) (Part, bool) {
	if strings.Contains(address, "-") {
		if sub, ok := p.subproofs[address]; ok {
			return sub, true
		}
	} else if n, err := strconv.ParseUint(address, 10, 0); err == nil {
		if line, ok := p.lines[uint(n)]; ok {
			return line, true
		}
	}
	//
	return nil, false
}

// Walk returns every part of this proof in document order, where a subproof
// precedes its assumption, nested parts and conclusion.
func (p *Proof) Walk() iter.Seq[Part] {
	return func(yield func(Part) bool) {
		walk(p.parts, yield)
	}
}

func walk(parts []Part, yield func(Part) bool) bool {
	for _, part := range parts {
		if !yield(part) {
			return false
		}
		//
		if sub, ok := part.(*Subproof); ok {
			if !yield(sub.assumption) || !walk(sub.parts, yield) || !yield(sub.conclusion) {
				return false
			}
		}
	}
	//
	return true
}

// Conclusion returns the final top-level line, or nil if the proof is empty or
// ends with a subproof.
func (p *Proof) Conclusion() *Line {
	if n := len(p.parts); n > 0 {
		if line, ok := p.parts[n-1].(*Line); ok {
			return line
		}
	}
	//
	return nil
}

// Hypotheses returns the top-level lines justified as hypotheses.
func (p *Proof) Hypotheses() []*Line {
	var lines []*Line
	//
	for _, part := range p.parts {
		if line, ok := part.(*Line); ok && line.rule == rule.Hypothesis {
			lines = append(lines, line)
		}
	}
	//
	return lines
}

// Delete removes a part from this proof.  Nested parts are deleted along with
// a subproof, and every reference to a deleted part is cleared.  The
// assumption and conclusion of a subproof cannot be deleted on their own.
func (p *Proof) Delete(target Part) error {
	switch {
	case target.base().proof != p:
		return ErrForeignPart
	case target.Deleted():
		return ErrDeleted
	}
	//
	if line, ok := target.(*Line); ok && (line.IsAssumption() || line.IsConclusion()) {
		return ErrFramePart
	}
	//
	p.checkMutable("Delete")
	//
	doomed := teardownOrder(target)
	// Everything which may be affected, determined before any links are
	// broken.
	affected := p.closure(doomed...)
	//
	for _, part := range affected {
		part.base().status = nil
	}
	//
	for _, part := range doomed {
		part.base().deleted = true
	}
	//
	for _, part := range doomed {
		if line, ok := part.(*Line); ok {
			line.releaseRefs()
		}
		//
		for _, dependent := range part.Dependents() {
			if dependent.deleted {
				continue
			}
			//
			for _, slot := range dependent.clearRefsTo(part) {
				p.post(&dependent.listeners, Event{Kind: RefChanged, Part: dependent, Index: slot})
			}
		}
		//
		p.post(&part.base().listeners, Event{Kind: Deleted, Part: part})
	}
	// Unlink
	container := &p.listeners
	//
	if parent := target.Parent(); parent != nil {
		parent.parts = slices.DeleteFunc(parent.parts, func(q Part) bool { return q == target })
		container = &parent.listeners
	} else {
		p.parts = slices.DeleteFunc(p.parts, func(q Part) bool { return q == target })
	}
	//
	p.post(container, Event{Kind: Deleted, Part: target})
	p.renumber()
	//
	for _, part := range affected {
		if !part.Deleted() {
			p.post(&part.base().listeners, Event{Kind: Dirty, Part: part})
		}
	}
	//
	log.Debugf("deleted %d parts, %d affected", len(doomed), len(affected)-len(doomed))
	//
	p.flush()
	//
	return nil
}

// Determine the order in which parts are torn down: a subproof's assumption,
// nested parts and conclusion come before the subproof itself.
func teardownOrder(part Part) []Part {
	sub, ok := part.(*Subproof)
	if !ok {
		return []Part{part}
	}
	//
	order := []Part{sub.assumption}
	//
	for _, child := range sub.parts {
		order = append(order, teardownOrder(child)...)
	}
	//
	return append(order, sub.conclusion, sub)
}

func (p *Proof) nextID() uint {
	p.lastID++
	return p.lastID
}

func (p *Proof) checkMutable(op string) {
	if p.notifying > 0 {
		misuse(op, ErrReentrantMutation, "listeners cannot modify a proof")
	}
}

// Splice a new part into its container.
func (p *Proof) insert(op string, parent *Subproof, index uint, part Part) {
	var (
		siblings  = &p.parts
		container = &p.listeners
		kind      = LineAdded
	)
	//
	if parent != nil {
		siblings, container = &parent.parts, &parent.listeners
	}
	//
	if index > uint(len(*siblings)) {
		misuse(op, nil, "index %d out of range [0,%d]", index, len(*siblings))
	} else if _, ok := part.(*Subproof); ok {
		kind = SubproofAdded
	}
	//
	*siblings = slices.Insert(*siblings, int(index), part)
	//
	affected := p.closure(part)
	//
	for _, q := range affected {
		q.base().status = nil
	}
	//
	p.post(container, Event{Kind: kind, Part: part})
	p.renumber()
	//
	for _, q := range affected {
		p.post(&q.base().listeners, Event{Kind: Dirty, Part: q})
	}
	//
	p.flush()
}

// Record that the content of a part has changed.  The status of everything
// which may be affected is invalidated before any listener is notified.
func (p *Proof) changed(part Part, event Event) {
	affected := p.closure(part)
	//
	for _, q := range affected {
		q.base().status = nil
	}
	//
	p.post(&part.base().listeners, event)
	//
	for _, q := range affected {
		p.post(&q.base().listeners, Event{Kind: Dirty, Part: q})
	}
	//
	p.flush()
}

// Determine every part whose status depends on any of the given parts,
// including those parts themselves.  This follows references backwards (from
// a part to the lines referencing it) and containment outwards (from a part
// to its enclosing subproof).  The proof itself is not included.
func (p *Proof) closure(parts ...Part) []Part {
	var (
		visited = make(map[uint]bool)
		order   []Part
	)
	//
	add := func(q Part) {
		if !visited[q.ID()] {
			visited[q.ID()] = true
			order = append(order, q)
		}
	}
	//
	for _, q := range parts {
		add(q)
	}
	// Breadth-first
	for i := 0; i < len(order); i++ {
		q := order[i]
		//
		for _, dependent := range q.Dependents() {
			add(dependent)
		}
		//
		if parent := q.Parent(); parent != nil {
			add(parent)
		}
	}
	//
	return order
}

// Renumber every part, rebuilding the indices and notifying those parts whose
// address has changed, along with the lines which reference them.
func (p *Proof) renumber() {
	previous := make(map[uint]string, len(p.lines)+len(p.subproofs))
	//
	for n, line := range p.lines {
		previous[line.id] = strconv.FormatUint(uint64(n), 10)
	}
	//
	for address, sub := range p.subproofs {
		previous[sub.id] = address
	}
	//
	p.lines = make(map[uint]*Line, len(p.lines))
	p.subproofs = make(map[string]*Subproof, len(p.subproofs))
	//
	n := p.firstLine
	//
	for i, part := range p.parts {
		n = p.assign(part, n, uint(i))
	}
	//
	var (
		moved      []Part
		dependents = make(map[uint]*Line)
	)
	//
	for part := range p.Walk() {
		if address, ok := previous[part.ID()]; ok && address != part.Address() {
			moved = append(moved, part)
			//
			for _, line := range part.Dependents() {
				dependents[line.id] = line
			}
		}
	}
	//
	for _, part := range moved {
		p.post(&part.base().listeners, Event{Kind: Renumbered, Part: part})
	}
	//
	for _, id := range slices.Sorted(maps.Keys(dependents)) {
		line := dependents[id]
		p.post(&line.listeners, Event{Kind: RefRenumbered, Part: line})
	}
	//
	log.Debugf("renumbered %d lines, %d parts moved", n-p.firstLine, len(moved))
}

// Assign numbers to a part (and anything nested within it), starting from n.
// This returns the next unused number.
func (p *Proof) assign(part Part, n uint, position uint) uint {
	b := part.base()
	b.number, b.position = n, position
	//
	switch part := part.(type) {
	case *Line:
		p.lines[n] = part
		return n + 1
	case *Subproof:
		m := p.assign(part.assumption, n, 0)
		//
		for i, child := range part.parts {
			m = p.assign(child, m, uint(i+1))
		}
		//
		m = p.assign(part.conclusion, m, uint(len(part.parts)+1))
		p.subproofs[part.Address()] = part
		//
		return m
	}
	//
	panic("unreachable")
}

// Queue a notification for delivery by the next flush.
func (p *Proof) post(target *listeners, event Event) {
	p.queue = append(p.queue, notification{target, event})
}

// Deliver all queued notifications, in order.  The proof cannot be modified
// until delivery is complete.  Should a listener panic, the remaining
// notifications are discarded.
func (p *Proof) flush() {
	queue := p.queue
	p.queue = nil
	//
	p.notifying++
	defer func() { p.notifying-- }()
	//
	for _, n := range queue {
		n.target.fire(n.event)
	}
}
