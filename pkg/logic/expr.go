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
package logic

import "fmt"

// Expr is a propositional formula.  Expressions are immutable values: every
// variant is a plain struct, so sharing sub-expressions between formulas is
// always safe.  The set of variants is closed, being precisely MetaVar, Var,
// Const, Negation and Binary.
type Expr interface {
	fmt.Stringer
	// Sealed marker, preventing variants from outside this package.
	expr()
}

// MetaVar is a placeholder used in rule patterns, which unifies with any
// expression.
type MetaVar struct {
	Name string
}

// Var is a propositional variable.
type Var struct {
	Name string
}

// Const is one of the logical constants true or false.
type Const struct {
	Value bool
}

// Negation is the logical negation of an inner expression.
type Negation struct {
	Inner Expr
}

// Binary is the application of a binary connective.
type Binary struct {
	Op    Connective
	Left  Expr
	Right Expr
}

func (MetaVar) expr()  {}
func (Var) expr()      {}
func (Const) expr()    {}
func (Negation) expr() {}
func (Binary) expr()   {}

// Connective identifies a binary logical connective.
type Connective uint8

const (
	// AND is logical conjunction.
	AND Connective = iota
	// NAND is negated conjunction.
	NAND
	// OR is logical disjunction.
	OR
	// NOR is negated disjunction.
	NOR
	// XOR is exclusive disjunction.
	XOR
	// IMPLIES is material implication.
	IMPLIES
	// IFF is logical equivalence.
	IFF
)

// Connectives lists every binary connective, ordered from the tightest binding
// to the loosest.
var Connectives = []Connective{NAND, AND, XOR, NOR, OR, IMPLIES, IFF}

// Keyword returns the word used for this connective in the textual syntax.
func (c Connective) Keyword() string {
	switch c {
	case AND:
		return "and"
	case NAND:
		return "nand"
	case OR:
		return "or"
	case NOR:
		return "nor"
	case XOR:
		return "xor"
	case IMPLIES:
		return "implies"
	case IFF:
		return "iff"
	}
	//
	panic(fmt.Sprintf("unknown connective (%d)", c))
}

// Apply evaluates this connective over two truth values.
func (c Connective) Apply(l, r bool) bool {
	switch c {
	case AND:
		return l && r
	case NAND:
		return !(l && r)
	case OR:
		return l || r
	case NOR:
		return !(l || r)
	case XOR:
		return l != r
	case IMPLIES:
		return !l || r
	case IFF:
		return l == r
	}
	//
	panic(fmt.Sprintf("unknown connective (%d)", c))
}

// ============================================================================
// Constructors
// ============================================================================

// Meta constructs a meta-variable.
func Meta(name string) Expr { return MetaVar{name} }

// Variable constructs a propositional variable.
func Variable(name string) Expr { return Var{name} }

// Constant constructs a logical constant.
func Constant(value bool) Expr { return Const{value} }

// True constructs logical truth.
func True() Expr { return Const{true} }

// False constructs logical falsehood.
func False() Expr { return Const{false} }

// Not constructs the negation of an expression.
func Not(inner Expr) Expr { return Negation{inner} }

// And constructs the conjunction of two expressions.
func And(l, r Expr) Expr { return Binary{AND, l, r} }

// Nand constructs the negated conjunction of two expressions.
func Nand(l, r Expr) Expr { return Binary{NAND, l, r} }

// Or constructs the disjunction of two expressions.
func Or(l, r Expr) Expr { return Binary{OR, l, r} }

// Nor constructs the negated disjunction of two expressions.
func Nor(l, r Expr) Expr { return Binary{NOR, l, r} }

// Xor constructs the exclusive disjunction of two expressions.
func Xor(l, r Expr) Expr { return Binary{XOR, l, r} }

// Implies constructs the implication from one expression to another.
func Implies(l, r Expr) Expr { return Binary{IMPLIES, l, r} }

// Iff constructs the equivalence of two expressions.
func Iff(l, r Expr) Expr { return Binary{IFF, l, r} }

// Ands folds one or more expressions into nested conjunctions.
func Ands(exprs ...Expr) Expr { return Fold(AND, exprs...) }

// Nands folds one or more expressions into nested negated conjunctions.
func Nands(exprs ...Expr) Expr { return Fold(NAND, exprs...) }

// Ors folds one or more expressions into nested disjunctions.
func Ors(exprs ...Expr) Expr { return Fold(OR, exprs...) }

// Nors folds one or more expressions into nested negated disjunctions.
func Nors(exprs ...Expr) Expr { return Fold(NOR, exprs...) }

// Xors folds one or more expressions into nested exclusive disjunctions.
func Xors(exprs ...Expr) Expr { return Fold(XOR, exprs...) }

// Impliess folds one or more expressions into nested implications.
func Impliess(exprs ...Expr) Expr { return Fold(IMPLIES, exprs...) }

// Iffs folds one or more expressions into nested equivalences.
func Iffs(exprs ...Expr) Expr { return Fold(IFF, exprs...) }

// Fold combines a non-empty sequence of expressions with a given connective,
// associating to the right.  For example, folding [a,b,c] with AND gives "a
// and (b and c)".  Folding an empty sequence is a usage error.
func Fold(op Connective, exprs ...Expr) Expr {
	if len(exprs) == 0 {
		panic(&UsageError{Op: "fold", Msg: fmt.Sprintf("no operands given for %s", op.Keyword())})
	}
	//
	result := exprs[len(exprs)-1]
	//
	for i := len(exprs) - 2; i >= 0; i-- {
		result = Binary{op, exprs[i], result}
	}
	//
	return result
}

// ============================================================================
// Structural queries
// ============================================================================

// Equal determines whether two expressions are structurally identical.
func Equal(l, r Expr) bool {
	switch l := l.(type) {
	case MetaVar:
		r, ok := r.(MetaVar)
		return ok && l.Name == r.Name
	case Var:
		r, ok := r.(Var)
		return ok && l.Name == r.Name
	case Const:
		r, ok := r.(Const)
		return ok && l.Value == r.Value
	case Negation:
		r, ok := r.(Negation)
		return ok && Equal(l.Inner, r.Inner)
	case Binary:
		r, ok := r.(Binary)
		return ok && l.Op == r.Op && Equal(l.Left, r.Left) && Equal(l.Right, r.Right)
	}
	//
	panic(unknownVariant(l))
}

// IsGround determines whether an expression is free of meta-variables.
func IsGround(e Expr) bool {
	return len(MetaVariables(e)) == 0
}

// MetaVariables returns the sorted set of meta-variable names occurring in an
// expression.
func MetaVariables(e Expr) []string {
	return collectNames(e, func(e Expr) (string, bool) {
		m, ok := e.(MetaVar)
		return m.Name, ok
	})
}

// Occurs determines whether a meta-variable with the given name occurs
// anywhere within an expression.
func Occurs(name string, e Expr) bool {
	switch e := e.(type) {
	case MetaVar:
		return e.Name == name
	case Var, Const:
		return false
	case Negation:
		return Occurs(name, e.Inner)
	case Binary:
		return Occurs(name, e.Left) || Occurs(name, e.Right)
	}
	//
	panic(unknownVariant(e))
}

// Size returns the number of nodes in an expression.
func Size(e Expr) uint {
	switch e := e.(type) {
	case MetaVar, Var, Const:
		return 1
	case Negation:
		return 1 + Size(e.Inner)
	case Binary:
		return 1 + Size(e.Left) + Size(e.Right)
	}
	//
	panic(unknownVariant(e))
}

func unknownVariant(e Expr) string {
	return fmt.Sprintf("unknown expression variant (%T)", e)
}
