package ir

import (
	"fmt"
	"strings"

	"github.com/rxwei/dlvm-core/token"
)

// Type is the closed variant of all type values the parser can produce.
//
// Canonical returns the structurally-resolved form of a type: it
// unwraps AliasType and resolves NamedRefType against the type that
// backs it, the way the function parser needs to when it checks that
// a function header's written type "is a function type" (spec §4.8).
type Type interface {
	Kind() Kind
	String() string
	Canonical() Type
	Equal(Type) bool
}

// VoidType is the type of instructions that produce no value.
type VoidType struct{}

func (VoidType) Kind() Kind        { return VoidKind }
func (VoidType) String() string    { return "void" }
func (t VoidType) Canonical() Type { return t }
func (t VoidType) Equal(o Type) bool {
	_, ok := o.Canonical().(VoidType)
	return ok
}

// InvalidType is returned when a type production failed; used as a
// placeholder so callers can keep going up to the point an error is
// actually raised.
type InvalidType struct{}

func (InvalidType) Kind() Kind          { return InvalidKind }
func (InvalidType) String() string      { return "invalid" }
func (t InvalidType) Canonical() Type   { return t }
func (InvalidType) Equal(o Type) bool {
	_, ok := o.(InvalidType)
	return ok
}

// ScalarType is a rank-0 tensor of a primitive data type.
type ScalarType struct {
	DT token.DataType
}

func (ScalarType) Kind() Kind        { return ScalarKind }
func (t ScalarType) String() string  { return t.DT.String() }
func (t ScalarType) Canonical() Type { return t }

// Equal treats a ScalarType as the same type as a rank-0 (empty-shape)
// TensorType of the same data type: the grammar only ever writes the
// former, but a reduction or a shape cast can produce the latter,
// and the two must unify (spec E2).
func (t ScalarType) Equal(o Type) bool {
	switch other := o.Canonical().(type) {
	case ScalarType:
		return other.DT == t.DT
	case TensorType:
		return len(other.Shape) == 0 && other.DT == t.DT
	default:
		return false
	}
}

// TensorShape is an ordered sequence of non-negative dimensions.
// An empty shape denotes a scalar.
type TensorShape []int64

func (s TensorShape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, "x")
}

func (s TensorShape) Equal(o TensorShape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// TensorType is a rank-N array of a primitive data type.
type TensorType struct {
	Shape TensorShape
	DT    token.DataType
}

func (TensorType) Kind() Kind        { return TensorKind }
func (t TensorType) Canonical() Type { return t }
func (t TensorType) String() string {
	if len(t.Shape) == 0 {
		return t.DT.String()
	}
	return fmt.Sprintf("<%s x %s>", t.Shape.String(), t.DT.String())
}
func (t TensorType) Equal(o Type) bool {
	if len(t.Shape) == 0 {
		if other, ok := o.Canonical().(ScalarType); ok {
			return other.DT == t.DT
		}
	}
	other, ok := o.Canonical().(TensorType)
	return ok && other.DT == t.DT && other.Shape.Equal(t.Shape)
}

// ArrayType is a fixed-size homogeneous array of an arbitrary element type.
type ArrayType struct {
	Count int64
	Elem  Type
}

func (ArrayType) Kind() Kind        { return ArrayKind }
func (t ArrayType) Canonical() Type { return t }
func (t ArrayType) String() string {
	return fmt.Sprintf("[%d x %s]", t.Count, t.Elem.String())
}
func (t ArrayType) Equal(o Type) bool {
	other, ok := o.Canonical().(ArrayType)
	return ok && other.Count == t.Count && other.Elem.Equal(t.Elem)
}

// TupleType groups a fixed sequence of heterogeneous types.
type TupleType struct {
	Elems []Type
}

func (TupleType) Kind() Kind        { return TupleKind }
func (t TupleType) Canonical() Type { return t }
func (t TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t TupleType) Equal(o Type) bool {
	other, ok := o.Canonical().(TupleType)
	if !ok || len(other.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

// FunctionType is the type of a function value: argument types mapping
// to a single result type.
type FunctionType struct {
	Args   []Type
	Result Type
}

func (FunctionType) Kind() Kind        { return FunctionKind }
func (t FunctionType) Canonical() Type { return t }
func (t FunctionType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
}
func (t FunctionType) Equal(o Type) bool {
	other, ok := o.Canonical().(FunctionType)
	if !ok || len(other.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return t.Result.Equal(other.Result)
}

// PointerType is a pointer to a value of type Pointee.
type PointerType struct {
	Pointee Type
}

func (PointerType) Kind() Kind        { return PointerKind }
func (t PointerType) Canonical() Type { return t }
func (t PointerType) String() string  { return "*" + t.Pointee.String() }
func (t PointerType) Equal(o Type) bool {
	other, ok := o.Canonical().(PointerType)
	return ok && t.Pointee.Equal(other.Pointee)
}

// NamedRefType is a nominal-type reference that has not yet been
// resolved against the symbol table. It is only ever transient during
// parsing: Canonical() resolves it to the type it refers to, and a
// fully-built module never keeps one around unresolved.
type NamedRefType struct {
	Name     string
	resolved Type
}

func (NamedRefType) Kind() Kind { return NamedRefKind }
func (t NamedRefType) String() string {
	if t.resolved != nil {
		return t.resolved.String()
	}
	return "%" + t.Name
}
func (t NamedRefType) Canonical() Type {
	if t.resolved == nil {
		return t
	}
	return t.resolved.Canonical()
}
func (t NamedRefType) Equal(o Type) bool {
	return t.Canonical().Equal(o.Canonical())
}

// ResolveNamedRefType binds a previously-unresolved named reference
// to the type it points at, returning the updated value.
func ResolveNamedRefType(t NamedRefType, resolved Type) NamedRefType {
	t.resolved = resolved
	return t
}

// AliasType wraps a module-level type alias.
type AliasType struct {
	Alias *TypeAlias
}

func (AliasType) Kind() Kind { return AliasKind }
func (t AliasType) String() string {
	return "%" + t.Alias.Name
}
func (t AliasType) Canonical() Type {
	if t.Alias.Underlying == nil {
		return t
	}
	return t.Alias.Underlying.Canonical()
}
func (t AliasType) Equal(o Type) bool {
	if other, ok := o.(AliasType); ok && other.Alias == t.Alias {
		return true
	}
	return t.Canonical().Equal(o.Canonical())
}

// TypeAlias is a module-level named type, possibly opaque (Underlying == nil).
type TypeAlias struct {
	Name       string
	Underlying Type
	Range      token.Range
}

// RecordType wraps a module-level struct (record) definition.
type RecordType struct {
	Record *Record
}

func (RecordType) Kind() Kind { return RecordKind }
func (t RecordType) String() string {
	return "%" + t.Record.Name
}
func (t RecordType) Canonical() Type { return t }
func (t RecordType) Equal(o Type) bool {
	other, ok := o.Canonical().(RecordType)
	return ok && other.Record == t.Record
}

// Record is a module-level nominal struct type.
type Record struct {
	Name   string
	Fields []RecordField
	Range  token.Range
}

// FieldType looks up a field's type by key, reporting whether it exists.
func (r *Record) FieldType(key string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Type, true
		}
	}
	return nil, false
}

// RecordField is a single key/type pair in a Record.
type RecordField struct {
	Key  string
	Type Type
}
