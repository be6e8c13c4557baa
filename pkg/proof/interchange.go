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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/consensys/go-natded/pkg/rule"
	"gopkg.in/yaml.v3"
)

// Node types
const (
	LineNode     = "line"
	SubproofNode = "subproof"
)

var (
	// ErrInvalidNode signals a node which describes neither a line nor a
	// subproof.
	ErrInvalidNode = errors.New("invalid node")
	// ErrUnknownRule signals a rule name which is not in the catalog.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrTooManyRefs signals a line with more references than its rule has
	// slots.
	ErrTooManyRefs = errors.New("too many references")
	// ErrUnresolvedRef signals a reference to an address not in the proof.
	ErrUnresolvedRef = errors.New("unresolved reference")
)

// Node is the interchange form of a part.  A line node has an expression, a
// rule and references (each of which may be null), whilst a subproof node
// has an assumption, nested parts and a conclusion.  References are addresses:
// line numbers or subproof ranges.
type Node struct {
	Type       string    `json:"type" yaml:"type"`
	Expr       *string   `json:"expr,omitempty" yaml:"expr,omitempty"`
	Rule       *string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Refs       []*string `json:"refs,omitempty" yaml:"refs,omitempty"`
	Assumption *Node     `json:"assumption,omitempty" yaml:"assumption,omitempty"`
	Parts      []Node    `json:"parts,omitempty" yaml:"parts,omitempty"`
	Conclusion *Node     `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
}

// Wire forms, which make the fields of each node type explicit (including
// nulls).
type lineNode struct {
	Type string    `json:"type" yaml:"type"`
	Expr *string   `json:"expr" yaml:"expr"`
	Rule *string   `json:"rule" yaml:"rule"`
	Refs []*string `json:"refs" yaml:"refs"`
}

type subproofNode struct {
	Type       string `json:"type" yaml:"type"`
	Assumption *Node  `json:"assumption" yaml:"assumption"`
	Parts      []Node `json:"parts" yaml:"parts"`
	Conclusion *Node  `json:"conclusion" yaml:"conclusion"`
}

func (n Node) wire() any {
	if n.Type == SubproofNode {
		parts := n.Parts
		if parts == nil {
			parts = []Node{}
		}
		//
		return subproofNode{n.Type, n.Assumption, parts, n.Conclusion}
	}
	//
	refs := n.Refs
	if refs == nil {
		refs = []*string{}
	}
	//
	return lineNode{n.Type, n.Expr, n.Rule, refs}
}

// MarshalJSON writes a node in its wire form.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.wire())
}

// MarshalYAML writes a node in its wire form.
func (n Node) MarshalYAML() (any, error) {
	return n.wire(), nil
}

// Nodes returns the interchange form of this proof.
func (p *Proof) Nodes() []Node {
	nodes := make([]Node, len(p.parts))
	//
	for i, part := range p.parts {
		nodes[i] = toNode(part)
	}
	//
	return nodes
}

func toNode(part Part) Node {
	switch part := part.(type) {
	case *Line:
		node := Node{Type: LineNode, Refs: make([]*string, len(part.refs))}
		//
		if part.malformed || part.expr != nil {
			text := part.Text()
			node.Expr = &text
		}
		//
		if part.rule != nil {
			name := part.rule.Name()
			node.Rule = &name
		}
		//
		for i, ref := range part.refs {
			if ref != nil {
				address := ref.Address()
				node.Refs[i] = &address
			}
		}
		//
		return node
	case *Subproof:
		var (
			assumption = toNode(part.assumption)
			conclusion = toNode(part.conclusion)
			parts      = make([]Node, len(part.parts))
		)
		//
		for i, child := range part.parts {
			parts[i] = toNode(child)
		}
		//
		return Node{Type: SubproofNode, Assumption: &assumption, Parts: parts, Conclusion: &conclusion}
	}
	//
	panic("unreachable")
}

// Reference awaiting resolution
type pendingRef struct {
	line    *Line
	slot    uint
	address string
}

type builder struct {
	proof   *Proof
	parse   ParseFunc
	pending []pendingRef
}

// FromNodes constructs a proof from its interchange form.  Parts are created
// in document order, after which references are resolved against the
// completed proof.  Expression text which fails to parse leaves the line
// malformed, whilst unknown rules and unresolvable references are errors.
func FromNodes(nodes []Node, parse ParseFunc, options ...Option) (*Proof, error) {
	b := &builder{proof: NewProof(options...), parse: parse}
	//
	for i := range nodes {
		if err := b.buildPart(nil, &nodes[i]); err != nil {
			return nil, fmt.Errorf("part %d: %w", i+1, err)
		}
	}
	//
	for _, ref := range b.pending {
		target, ok := b.proof.Lookup(ref.address)
		if !ok {
			return nil, fmt.Errorf("line %s: %w %q", ref.line.Address(), ErrUnresolvedRef, ref.address)
		}
		//
		ref.line.SetRef(ref.slot, target)
	}
	//
	return b.proof, nil
}

func (b *builder) buildPart(parent *Subproof, node *Node) error {
	switch node.Type {
	case LineNode:
		var line *Line
		//
		if parent == nil {
			line = b.proof.AddLine()
		} else {
			line = parent.AddLine()
		}
		//
		return b.buildLine(line, node)
	case SubproofNode:
		var sub *Subproof
		//
		if parent == nil {
			sub = b.proof.AddSubproof()
		} else {
			sub = parent.AddSubproof()
		}
		//
		return b.buildSubproof(sub, node)
	default:
		return fmt.Errorf("%w type %q", ErrInvalidNode, node.Type)
	}
}

func (b *builder) buildSubproof(sub *Subproof, node *Node) error {
	if node.Assumption == nil || node.Conclusion == nil {
		return fmt.Errorf("%w: subproof requires assumption and conclusion", ErrInvalidNode)
	} else if node.Assumption.Type != LineNode || node.Conclusion.Type != LineNode {
		return fmt.Errorf("%w: subproof assumption and conclusion must be lines", ErrInvalidNode)
	}
	//
	if err := b.buildLine(sub.assumption, node.Assumption); err != nil {
		return err
	}
	//
	for i := range node.Parts {
		if err := b.buildPart(sub, &node.Parts[i]); err != nil {
			return err
		}
	}
	//
	return b.buildLine(sub.conclusion, node.Conclusion)
}

func (b *builder) buildLine(line *Line, node *Node) error {
	if node.Expr != nil {
		// Parse failures are recorded in the line itself
		_ = line.SetText(*node.Expr, b.parse)
	}
	//
	if node.Rule != nil {
		r, ok := rule.Lookup(*node.Rule)
		if !ok {
			return fmt.Errorf("line %s: %w %q", line.Address(), ErrUnknownRule, *node.Rule)
		} else if line.IsAssumption() && r != rule.Assumption {
			return fmt.Errorf("line %s: %w", line.Address(), ErrFixedRule)
		}
		//
		line.SetRule(r)
	}
	//
	if uint(len(node.Refs)) > line.NumRefs() {
		return fmt.Errorf("line %s: %w (%d given, %d expected)", line.Address(), ErrTooManyRefs, len(node.Refs),
			line.NumRefs())
	}
	//
	for i, ref := range node.Refs {
		if ref != nil {
			b.pending = append(b.pending, pendingRef{line, uint(i), *ref})
		}
	}
	//
	return nil
}

// ============================================================================
// Files
// ============================================================================

// Format identifies an interchange file format.
type Format uint8

const (
	// JSON format
	JSON Format = iota
	// YAML format
	YAML
)

// FormatOf determines the format of a file from its extension.
func FormatOf(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return JSON, fmt.Errorf("unknown proof format %q", ext)
	}
}

// Encode writes the interchange form of a proof in a given format.
func Encode(w io.Writer, p *Proof, format Format) error {
	nodes := p.Nodes()
	//
	if format == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		//
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		//
		return enc.Close()
	}
	//
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	//
	return enc.Encode(nodes)
}

// Decode reads a proof written in a given format.
func Decode(r io.Reader, format Format, parse ParseFunc, options ...Option) (*Proof, error) {
	var nodes []Node
	//
	if format == YAML {
		if err := yaml.NewDecoder(r).Decode(&nodes); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	} else if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, err
	}
	//
	return FromNodes(nodes, parse, options...)
}
