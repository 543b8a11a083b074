package ir

// Kind identifies the variant of a Type value, mirroring the closed
// type taxonomy in the grammar (void | scalar | tensor | array | tuple
// | function | pointer | named_ref | alias | record).
type Kind uint

const (
	InvalidKind Kind = iota
	VoidKind
	ScalarKind
	TensorKind
	ArrayKind
	TupleKind
	FunctionKind
	PointerKind
	NamedRefKind
	AliasKind
	RecordKind
)

func (k Kind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case ScalarKind:
		return "scalar"
	case TensorKind:
		return "tensor"
	case ArrayKind:
		return "array"
	case TupleKind:
		return "tuple"
	case FunctionKind:
		return "function"
	case PointerKind:
		return "pointer"
	case NamedRefKind:
		return "named reference"
	case AliasKind:
		return "alias"
	case RecordKind:
		return "record"
	default:
		return "invalid"
	}
}
