package ir

import "github.com/rxwei/dlvm-core/token"

// InstructionKind is the closed variant of opcode-specific instruction
// payloads. Each case knows its own opcode and how to derive its
// result type (spec §4.6, made concrete in SPEC_FULL.md §5).
type InstructionKind interface {
	Opcode() token.Op
	// ResultType derives the instruction's result type. It returns
	// InvalidType{} when the operands make the instruction ill-typed;
	// the caller raises invalid_operands in that case.
	ResultType() Type
}

// BranchInst is an unconditional jump to a basic block with arguments.
type BranchInst struct {
	Target *BasicBlock
	Args   []Use
}

func (BranchInst) Opcode() token.Op  { return token.OpBranch }
func (BranchInst) ResultType() Type  { return VoidType{} }

// CondBranchInst is a two-way conditional jump.
type CondBranchInst struct {
	Cond            Use
	Then            *BasicBlock
	ThenArgs        []Use
	Else            *BasicBlock
	ElseArgs        []Use
}

func (CondBranchInst) Opcode() token.Op { return token.OpConditional }
func (CondBranchInst) ResultType() Type { return VoidType{} }

// ReturnInst returns from the current function, optionally with a value.
type ReturnInst struct {
	Value Use // nil for a bare `return`
}

func (ReturnInst) Opcode() token.Op { return token.OpReturn }
func (ReturnInst) ResultType() Type { return VoidType{} }

// DataTypeCastInst reinterprets a tensor's elements as another data type.
type DataTypeCastInst struct {
	Operand Use
	To      token.DataType
}

func (DataTypeCastInst) Opcode() token.Op { return token.OpDataTypeCast }
func (i DataTypeCastInst) ResultType() Type {
	switch t := i.Operand.Type().Canonical().(type) {
	case ScalarType:
		return ScalarType{DT: i.To}
	case TensorType:
		return TensorType{Shape: t.Shape, DT: i.To}
	default:
		return InvalidType{}
	}
}

// ScanInst is an inclusive scan of an operand along a set of axes by a combinator.
type ScanInst struct {
	Operand     Use
	Combinator  ReductionCombinator
	Along       []int64
}

func (ScanInst) Opcode() token.Op { return token.OpScan }
func (i ScanInst) ResultType() Type {
	return i.Operand.Type()
}

// ReduceInst reduces an operand along a set of axes by a combinator.
type ReduceInst struct {
	Operand    Use
	Combinator ReductionCombinator
	Along      []int64
}

func (ReduceInst) Opcode() token.Op { return token.OpReduce }
func (i ReduceInst) ResultType() Type {
	t, ok := i.Operand.Type().Canonical().(TensorType)
	if !ok {
		return InvalidType{}
	}
	remove := make(map[int64]bool, len(i.Along))
	for _, a := range i.Along {
		if a < 0 || a >= int64(len(t.Shape)) {
			return InvalidType{}
		}
		remove[a] = true
	}
	var shape TensorShape
	for idx, d := range t.Shape {
		if !remove[int64(idx)] {
			shape = append(shape, d)
		}
	}
	return TensorType{Shape: shape, DT: t.DT}
}

// MatMulInst multiplies two rank>=2 tensors, contracting the inner dimensions.
type MatMulInst struct {
	LHS, RHS Use
}

func (MatMulInst) Opcode() token.Op { return token.OpMatrixMultiply }
func (i MatMulInst) ResultType() Type {
	lt, lok := i.LHS.Type().Canonical().(TensorType)
	rt, rok := i.RHS.Type().Canonical().(TensorType)
	if !lok || !rok || len(lt.Shape) < 2 || len(rt.Shape) < 2 || lt.DT != rt.DT {
		return InvalidType{}
	}
	ln, rn := len(lt.Shape), len(rt.Shape)
	if lt.Shape[ln-1] != rt.Shape[rn-2] {
		return InvalidType{}
	}
	shape := append(TensorShape{}, lt.Shape[:ln-1]...)
	shape = append(shape, rt.Shape[rn-1])
	return TensorType{Shape: shape, DT: lt.DT}
}

// ConcatInst concatenates operands along an axis.
type ConcatInst struct {
	Operands []Use
	Along    int64
}

func (ConcatInst) Opcode() token.Op { return token.OpConcatenate }
func (i ConcatInst) ResultType() Type {
	if len(i.Operands) == 0 {
		return InvalidType{}
	}
	first, ok := i.Operands[0].Type().Canonical().(TensorType)
	if !ok || i.Along < 0 || i.Along >= int64(len(first.Shape)) {
		return InvalidType{}
	}
	shape := append(TensorShape{}, first.Shape...)
	var total int64
	for _, op := range i.Operands {
		t, ok := op.Type().Canonical().(TensorType)
		if !ok || t.DT != first.DT || len(t.Shape) != len(first.Shape) {
			return InvalidType{}
		}
		for idx, d := range t.Shape {
			if int64(idx) == i.Along {
				continue
			}
			if d != first.Shape[idx] {
				return InvalidType{}
			}
		}
		total += t.Shape[i.Along]
	}
	shape[i.Along] = total
	return TensorType{Shape: shape, DT: first.DT}
}

// TransposeInst reverses a tensor's shape.
type TransposeInst struct {
	Operand Use
}

func (TransposeInst) Opcode() token.Op { return token.OpTranspose }
func (i TransposeInst) ResultType() Type {
	t, ok := i.Operand.Type().Canonical().(TensorType)
	if !ok {
		return InvalidType{}
	}
	shape := make(TensorShape, len(t.Shape))
	for idx, d := range t.Shape {
		shape[len(t.Shape)-1-idx] = d
	}
	return TensorType{Shape: shape, DT: t.DT}
}

// ShapeCastInst reinterprets a tensor's shape without changing its data type.
type ShapeCastInst struct {
	Operand Use
	To      TensorShape
}

func (ShapeCastInst) Opcode() token.Op { return token.OpShapeCast }
func (i ShapeCastInst) ResultType() Type {
	t, ok := i.Operand.Type().Canonical().(TensorType)
	if !ok {
		return InvalidType{}
	}
	return TensorType{Shape: i.To, DT: t.DT}
}

// BitCastInst reinterprets a value's bits as an arbitrary written type.
type BitCastInst struct {
	Operand Use
	To      Type
}

func (BitCastInst) Opcode() token.Op  { return token.OpBitCast }
func (i BitCastInst) ResultType() Type { return i.To }

// ExtractInst extracts a nested field/element from an aggregate.
type ExtractInst struct {
	Keys    []ElementKey
	Operand Use
}

func (ExtractInst) Opcode() token.Op { return token.OpExtract }
func (i ExtractInst) ResultType() Type {
	return walkKeys(i.Operand.Type(), i.Keys)
}

func walkKeys(t Type, keys []ElementKey) Type {
	cur := t
	for _, k := range keys {
		switch c := cur.Canonical().(type) {
		case TupleType:
			idx, ok := k.(IndexKey)
			if !ok || idx.Index < 0 || idx.Index >= int64(len(c.Elems)) {
				return InvalidType{}
			}
			cur = c.Elems[idx.Index]
		case ArrayType:
			if _, ok := k.(IndexKey); !ok {
				if _, ok := k.(ValueKey); !ok {
					return InvalidType{}
				}
			}
			cur = c.Elem
		case RecordType:
			name, ok := k.(NameKey)
			if !ok {
				return InvalidType{}
			}
			ft, ok := c.Record.FieldType(name.Name)
			if !ok {
				return InvalidType{}
			}
			cur = ft
		default:
			return InvalidType{}
		}
	}
	return cur
}

// InsertInst inserts a value into an aggregate at a key path, yielding
// the updated aggregate (same type as the "to" operand).
type InsertInst struct {
	Value Use
	To    Use
	Keys  []ElementKey
}

func (InsertInst) Opcode() token.Op { return token.OpInsert }
func (i InsertInst) ResultType() Type {
	if walkKeys(i.To.Type(), i.Keys).Kind() == InvalidKind {
		return InvalidType{}
	}
	return i.To.Type()
}

// ApplyInst calls a function value with arguments. Per spec §9 Open
// Question 1, the written result type is taken as authoritative and
// is not checked against the callee's prototype (see DESIGN.md).
type ApplyInst struct {
	Callee Use
	Args   []Use
	Result Type
}

func (ApplyInst) Opcode() token.Op  { return token.OpApply }
func (i ApplyInst) ResultType() Type { return i.Result }

// AllocStackInst allocates a fixed-size buffer on the stack.
type AllocStackInst struct {
	ElemType Type
	Count    int64
}

func (AllocStackInst) Opcode() token.Op { return token.OpAllocateStack }
func (i AllocStackInst) ResultType() Type {
	return PointerType{Pointee: i.ElemType}
}

// AllocHeapInst allocates a dynamically-sized buffer on the heap.
type AllocHeapInst struct {
	ElemType Type
	Count    Use
}

func (AllocHeapInst) Opcode() token.Op { return token.OpAllocateHeap }
func (i AllocHeapInst) ResultType() Type {
	return PointerType{Pointee: i.ElemType}
}

// AllocBoxInst allocates a reference-counted box.
type AllocBoxInst struct {
	BoxedType Type
}

func (AllocBoxInst) Opcode() token.Op { return token.OpAllocateBox }
func (i AllocBoxInst) ResultType() Type {
	return PointerType{Pointee: i.BoxedType}
}

// ProjectBoxInst projects the address of a boxed value.
type ProjectBoxInst struct {
	Operand Use
}

func (ProjectBoxInst) Opcode() token.Op { return token.OpProjectBox }
func (i ProjectBoxInst) ResultType() Type {
	p, ok := i.Operand.Type().Canonical().(PointerType)
	if !ok {
		return InvalidType{}
	}
	return p.Pointee
}

// RetainInst increments a box's reference count.
type RetainInst struct{ Operand Use }

func (RetainInst) Opcode() token.Op  { return token.OpRetain }
func (RetainInst) ResultType() Type { return VoidType{} }

// ReleaseInst decrements a box's reference count.
type ReleaseInst struct{ Operand Use }

func (ReleaseInst) Opcode() token.Op  { return token.OpRelease }
func (ReleaseInst) ResultType() Type { return VoidType{} }

// DeallocInst frees a heap or stack allocation.
type DeallocInst struct{ Operand Use }

func (DeallocInst) Opcode() token.Op  { return token.OpDeallocate }
func (DeallocInst) ResultType() Type { return VoidType{} }

// LoadInst dereferences a pointer.
type LoadInst struct{ Operand Use }

func (LoadInst) Opcode() token.Op { return token.OpLoad }
func (i LoadInst) ResultType() Type {
	p, ok := i.Operand.Type().Canonical().(PointerType)
	if !ok {
		return InvalidType{}
	}
	return p.Pointee
}

// StoreInst stores a value through a pointer.
type StoreInst struct {
	Value Use
	To    Use
}

func (StoreInst) Opcode() token.Op  { return token.OpStore }
func (StoreInst) ResultType() Type { return VoidType{} }

// ElementPtrInst computes the address of a nested field/element without
// dereferencing it.
type ElementPtrInst struct {
	Operand Use
	Keys    []ElementKey
}

func (ElementPtrInst) Opcode() token.Op { return token.OpElementPointer }
func (i ElementPtrInst) ResultType() Type {
	p, ok := i.Operand.Type().Canonical().(PointerType)
	if !ok {
		return InvalidType{}
	}
	elem := walkKeys(p.Pointee, i.Keys)
	if elem.Kind() == InvalidKind {
		return InvalidType{}
	}
	return PointerType{Pointee: elem}
}

// CopyInst copies a number of elements from one pointer to another.
type CopyInst struct {
	From, To, Count Use
}

func (CopyInst) Opcode() token.Op  { return token.OpCopy }
func (CopyInst) ResultType() Type { return VoidType{} }

// TrapInst aborts execution unconditionally.
type TrapInst struct{}

func (TrapInst) Opcode() token.Op  { return token.OpTrap }
func (TrapInst) ResultType() Type { return VoidType{} }

// BinaryInst applies an elementwise binary operator to two operands
// (zipWith(op, lhs, rhs)).
type BinaryInst struct {
	Op       token.AssocOp
	LHS, RHS Use
}

func (BinaryInst) Opcode() token.Op { return token.OpBinary }
func (i BinaryInst) ResultType() Type {
	if !i.LHS.Type().Equal(i.RHS.Type()) {
		return InvalidType{}
	}
	return i.LHS.Type()
}

// UnaryInst applies an elementwise unary operator to an operand
// (map(op, v)).
type UnaryInst struct {
	Op      token.AssocOp
	Operand Use
}

func (UnaryInst) Opcode() token.Op   { return token.OpUnary }
func (i UnaryInst) ResultType() Type { return i.Operand.Type() }
