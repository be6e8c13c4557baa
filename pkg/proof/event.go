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

import "slices"

// EventKind identifies the kind of change being reported to a listener.
type EventKind uint8

const (
	// ExprChanged is sent to a line whose expression was set, cleared or
	// marked malformed.
	ExprChanged EventKind = iota
	// RuleChanged is sent to a line whose rule was set or cleared.
	RuleChanged
	// RefChanged is sent to a line when one of its reference slots is set or
	// cleared (including when the referenced part is deleted).
	RefChanged
	// LineAdded is sent to a subproof (or the proof itself) when a line is
	// inserted into it.
	LineAdded
	// SubproofAdded is sent to a subproof (or the proof itself) when a
	// subproof is inserted into it.
	SubproofAdded
	// Deleted is sent to each part torn down by a deletion, and to the
	// container of the part being deleted.
	Deleted
	// Dirty is sent to every part whose status may have changed.
	Dirty
	// Renumbered is sent to every part whose address changed.
	Renumbered
	// RefRenumbered is sent to every line which references a part whose
	// address changed.
	RefRenumbered
)

func (k EventKind) String() string {
	switch k {
	case ExprChanged:
		return "expr_changed"
	case RuleChanged:
		return "rule_changed"
	case RefChanged:
		return "ref_changed"
	case LineAdded:
		return "line_added"
	case SubproofAdded:
		return "subproof_added"
	case Deleted:
		return "deleted"
	case Dirty:
		return "dirty"
	case Renumbered:
		return "renumbered"
	case RefRenumbered:
		return "ref_renumbered"
	}
	//
	panic("unknown event kind")
}

// Event describes a change to a proof.
type Event struct {
	Kind EventKind
	// Part which the event concerns.  For LineAdded, SubproofAdded and
	// Deleted sent to a container, this is the child concerned.
	Part Part
	// Reference slot which changed (RefChanged only).
	Index uint
}

// Listener receives events.  Listeners are called synchronously and must not
// modify the proof.
type Listener func(Event)

// ListenerID identifies a registered listener, so that it can be removed.
type ListenerID uint

type registration struct {
	id       ListenerID
	listener Listener
}

// Listeners holds the listeners registered with a part, in registration order.
type listeners struct {
	next    ListenerID
	entries []registration
}

func (p *listeners) add(listener Listener) ListenerID {
	p.next++
	p.entries = append(p.entries, registration{p.next, listener})
	//
	return p.next
}

func (p *listeners) remove(id ListenerID) {
	p.entries = slices.DeleteFunc(p.entries, func(r registration) bool { return r.id == id })
}

// Deliver an event to every listener registered at the point of delivery.
func (p *listeners) fire(event Event) {
	for _, r := range slices.Clone(p.entries) {
		r.listener(event)
	}
}

// A notification waiting to be delivered.
type notification struct {
	target *listeners
	event  Event
}
