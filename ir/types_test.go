package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rxwei/dlvm-core/token"
)

func TestTypeEqual(t *testing.T) {
	f32 := ScalarType{DT: token.Float32}
	i32 := ScalarType{DT: token.Int32}
	tensor := TensorType{Shape: TensorShape{2, 3}, DT: token.Float32}

	cases := []struct {
		name string
		a, b Type
		want bool
	}{
		{"identical scalars", f32, ScalarType{DT: token.Float32}, true},
		{"different data types", f32, i32, false},
		{"identical tensors", tensor, TensorType{Shape: TensorShape{2, 3}, DT: token.Float32}, true},
		{"different shape", tensor, TensorType{Shape: TensorShape{3, 2}, DT: token.Float32}, false},
		{"tuple vs scalar", TupleType{Elems: []Type{f32}}, f32, false},
		{"alias resolves through", AliasType{Alias: &TypeAlias{Name: "T", Underlying: f32}}, f32, true},
		{"void equals void", VoidType{}, VoidType{}, true},
		{"pointer pointee compared", PointerType{Pointee: f32}, PointerType{Pointee: i32}, false},
		{"scalar equals rank-0 tensor", i32, TensorType{DT: token.Int32}, true},
		{"rank-0 tensor equals scalar, reversed", TensorType{DT: token.Float32}, f32, true},
		{"scalar vs rank-0 tensor, different data type", i32, TensorType{DT: token.Float32}, false},
		{"scalar vs rank>0 tensor", i32, TensorType{Shape: TensorShape{1}, DT: token.Int32}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("%s.Equal(%s) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestFunctionTypeString(t *testing.T) {
	ft := FunctionType{
		Args:   []Type{ScalarType{DT: token.Int32}, ScalarType{DT: token.Float32}},
		Result: ScalarType{DT: token.Bool},
	}
	if got, want := ft.String(), "(i32, f32) -> bool"; got != want {
		t.Errorf("FunctionType.String() = %q, want %q", got, want)
	}
}

func TestNamedRefTypeResolution(t *testing.T) {
	ref := NamedRefType{Name: "Foo"}
	if got, want := ref.String(), "%Foo"; got != want {
		t.Errorf("unresolved NamedRefType.String() = %q, want %q", got, want)
	}
	resolved := ResolveNamedRefType(ref, ScalarType{DT: token.Int64})
	if diff := cmp.Diff(ScalarType{DT: token.Int64}, resolved.Canonical(), cmpopts.EquateComparable()); diff != "" {
		t.Errorf("resolved.Canonical() mismatch:\n%s", diff)
	}
}

func TestRecordFieldType(t *testing.T) {
	r := &Record{
		Name: "Pair",
		Fields: []RecordField{
			{Key: "a", Type: ScalarType{DT: token.Int32}},
			{Key: "b", Type: ScalarType{DT: token.Float32}},
		},
	}
	got, ok := r.FieldType("b")
	if !ok {
		t.Fatal("FieldType(\"b\") not found")
	}
	if !got.Equal(ScalarType{DT: token.Float32}) {
		t.Errorf("FieldType(\"b\") = %v, want f32", got)
	}
	if _, ok := r.FieldType("c"); ok {
		t.Error("FieldType(\"c\") unexpectedly found")
	}
}
