package ir

import (
	"testing"

	"github.com/rxwei/dlvm-core/token"
)

func f32Tensor(shape ...int64) TensorType {
	return TensorType{Shape: TensorShape(shape), DT: token.Float32}
}

func constUse(t Type) Use { return LiteralUse{Typ: t, Lit: ZeroLit{}} }

func TestMatMulResultType(t *testing.T) {
	cases := []struct {
		name     string
		lhs, rhs Type
		want     Type
	}{
		{"2x3 by 3x4", f32Tensor(2, 3), f32Tensor(3, 4), f32Tensor(2, 4)},
		{"inner mismatch", f32Tensor(2, 3), f32Tensor(5, 4), InvalidType{}},
		{"rank too low", f32Tensor(3), f32Tensor(3, 4), InvalidType{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inst := MatMulInst{LHS: constUse(c.lhs), RHS: constUse(c.rhs)}
			got := inst.ResultType()
			if !got.Equal(c.want) {
				t.Errorf("ResultType() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestReduceResultType(t *testing.T) {
	inst := ReduceInst{Operand: constUse(f32Tensor(2, 3, 4)), Combinator: OpCombinator{Op: token.OpAdd}, Along: []int64{1}}
	want := f32Tensor(2, 4)
	got := inst.ResultType()
	if !got.Equal(want) {
		t.Errorf("ResultType() = %v, want %v", got, want)
	}
}

func TestReduceInvalidAxis(t *testing.T) {
	inst := ReduceInst{Operand: constUse(f32Tensor(2, 3)), Combinator: OpCombinator{Op: token.OpAdd}, Along: []int64{5}}
	if got := inst.ResultType(); got.Kind() != InvalidKind {
		t.Errorf("ResultType() = %v, want invalid", got)
	}
}

func TestConcatResultType(t *testing.T) {
	inst := ConcatInst{
		Operands: []Use{constUse(f32Tensor(2, 3)), constUse(f32Tensor(2, 5))},
		Along:    1,
	}
	want := f32Tensor(2, 8)
	got := inst.ResultType()
	if !got.Equal(want) {
		t.Errorf("ResultType() = %v, want %v", got, want)
	}
}

func TestConcatShapeMismatch(t *testing.T) {
	inst := ConcatInst{
		Operands: []Use{constUse(f32Tensor(2, 3)), constUse(f32Tensor(3, 3))},
		Along:    1,
	}
	if got := inst.ResultType(); got.Kind() != InvalidKind {
		t.Errorf("ResultType() = %v, want invalid", got)
	}
}

func TestDataTypeCastResultType(t *testing.T) {
	inst := DataTypeCastInst{Operand: constUse(f32Tensor(2, 2)), To: token.Int32}
	want := TensorType{Shape: TensorShape{2, 2}, DT: token.Int32}
	got := inst.ResultType()
	if !got.Equal(want) {
		t.Errorf("ResultType() = %v, want %v", got, want)
	}
}

func TestExtractAndInsert(t *testing.T) {
	rec := &Record{Fields: []RecordField{
		{Key: "x", Type: ScalarType{DT: token.Int32}},
		{Key: "y", Type: ScalarType{DT: token.Float32}},
	}}
	recType := RecordType{Record: rec}

	extract := ExtractInst{Keys: []ElementKey{NameKey{Name: "y"}}, Operand: constUse(recType)}
	got := extract.ResultType()
	if !got.Equal(ScalarType{DT: token.Float32}) {
		t.Errorf("extract ResultType() = %v, want f32", got)
	}

	insert := InsertInst{
		Value: constUse(ScalarType{DT: token.Float32}),
		To:    constUse(recType),
		Keys:  []ElementKey{NameKey{Name: "y"}},
	}
	if got := insert.ResultType(); !got.Equal(recType) {
		t.Errorf("insert ResultType() = %v, want %v", got, recType)
	}

	badExtract := ExtractInst{Keys: []ElementKey{NameKey{Name: "z"}}, Operand: constUse(recType)}
	if got := badExtract.ResultType(); got.Kind() != InvalidKind {
		t.Errorf("badExtract ResultType() = %v, want invalid", got)
	}
}

func TestBinaryInstOperandMismatch(t *testing.T) {
	inst := BinaryInst{Op: token.OpAdd, LHS: constUse(f32Tensor(2)), RHS: constUse(f32Tensor(3))}
	if got := inst.ResultType(); got.Kind() != InvalidKind {
		t.Errorf("ResultType() = %v, want invalid", got)
	}
}

func TestLoadStoreThroughPointer(t *testing.T) {
	ptr := PointerType{Pointee: ScalarType{DT: token.Int64}}
	load := LoadInst{Operand: constUse(ptr)}
	if got := load.ResultType(); !got.Equal(ScalarType{DT: token.Int64}) {
		t.Errorf("load ResultType() = %v, want i64", got)
	}
	badLoad := LoadInst{Operand: constUse(ScalarType{DT: token.Int64})}
	if got := badLoad.ResultType(); got.Kind() != InvalidKind {
		t.Errorf("badLoad ResultType() = %v, want invalid", got)
	}
}
