package ir

import "github.com/rxwei/dlvm-core/token"

// Literal is the closed variant of literal forms the grammar accepts.
type Literal interface {
	literal()
}

// ScalarLit holds a scalar number or boolean constant.
type ScalarLit struct {
	// Value is either float64, int64, or bool.
	Value any
}

func (ScalarLit) literal() {}

// NullLit is the `null` literal.
type NullLit struct{}

func (NullLit) literal() {}

// UndefinedLit is the `undefined` literal.
type UndefinedLit struct{}

func (UndefinedLit) literal() {}

// ZeroLit is the `zero` literal.
type ZeroLit struct{}

func (ZeroLit) literal() {}

// ArrayLit is an `[ use, use, ... ]` literal.
type ArrayLit struct {
	Elems []Use
}

func (ArrayLit) literal() {}

// TupleLit is a `( use, use, ... )` literal.
type TupleLit struct {
	Elems []Use
}

func (TupleLit) literal() {}

// TensorLit is a `< use, use, ... >` literal.
type TensorLit struct {
	Elems []Use
}

func (TensorLit) literal() {}

// RecordLit is a `{ key = use, ... }` literal.
type RecordLit struct {
	Fields []RecordLitField
}

func (RecordLit) literal() {}

// RecordLitField is a single `key = use` pair in a RecordLit.
type RecordLitField struct {
	Key   string
	Value Use
}

// ElementKey is the closed variant of keys used by extract/insert/
// elementPointer (an index, a record field name, or a computed use).
type ElementKey interface {
	elementKey()
}

// IndexKey is a positional element key (tuple/array element index).
type IndexKey struct {
	Index int64
}

func (IndexKey) elementKey() {}

// NameKey is a record field-name element key.
type NameKey struct {
	Name string
}

func (NameKey) elementKey() {}

// ValueKey is a dynamically computed element key.
type ValueKey struct {
	Use Use
}

func (ValueKey) elementKey() {}

// ReductionCombinator is the closed variant of scan/reduce combinators.
type ReductionCombinator interface {
	combinator()
}

// FuncCombinator is a user function value used as a combinator.
type FuncCombinator struct {
	Use Use
}

func (FuncCombinator) combinator() {}

// OpCombinator is a built-in associative binary operator used as a combinator.
type OpCombinator struct {
	Op token.AssocOp
}

func (OpCombinator) combinator() {}
