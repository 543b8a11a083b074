// Package token defines the lexical tokens consumed by the parser.
//
// The lexer that produces these tokens is an external collaborator:
// this package only fixes the vocabulary of token kinds the grammar
// in package parser is written against.
package token

import "fmt"

// Pos is a byte offset into the source text.
type Pos int

// Range is a half-open source interval [Low, High).
type Range struct {
	Low, High Pos
}

// Join returns the smallest range covering both r and o.
func (r Range) Join(o Range) Range {
	jr := r
	if o.Low < jr.Low {
		jr.Low = o.Low
	}
	if o.High > jr.High {
		jr.High = o.High
	}
	return jr
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Low, r.High)
}

// IdentKind distinguishes the lexical category of an identifier.
type IdentKind int

const (
	// Global identifiers spell @foo.
	Global IdentKind = iota
	// Temporary identifiers spell %foo.
	Temporary
	// BasicBlock identifiers spell 'foo.
	BasicBlock
	// TypeIdent identifiers spell %Foo (nominal types).
	TypeIdent
	// Key identifiers spell #foo (record field keys).
	Key
)

func (k IdentKind) String() string {
	switch k {
	case Global:
		return "global identifier"
	case Temporary:
		return "temporary identifier"
	case BasicBlock:
		return "basic block identifier"
	case TypeIdent:
		return "type identifier"
	case Key:
		return "key identifier"
	default:
		return "identifier"
	}
}

// Punct enumerates punctuation token payloads.
type Punct int

const (
	Comma      Punct = iota // ,
	Semicolon               // ;
	Colon                   // :
	Equal                   // =
	Star                    // *
	Arrow                   // ->
	LParen                  // (
	RParen                  // )
	LBracket                // [
	RBracket                // ]
	LBrace                  // {
	RBrace                  // }
	LAngle                  // <
	RAngle                  // >
)

var punctStrings = map[Punct]string{
	Comma: ",", Semicolon: ";", Colon: ":", Equal: "=", Star: "*",
	Arrow: "->", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", LAngle: "<", RAngle: ">",
}

func (p Punct) String() string {
	if s, ok := punctStrings[p]; ok {
		return s
	}
	return "?"
}

// Keyword enumerates keyword token payloads.
type Keyword int

const (
	KwModule Keyword = iota
	KwStage
	KwRaw
	KwCanonical
	KwFunc
	KwType
	KwStruct
	KwExtern
	KwGradient
	KwFrom
	KwWrt
	KwKeeping
	KwSeedable
	KwVoid
	KwOpaque
	KwTrue
	KwFalse
	KwNull
	KwUndefined
	KwZero
	KwThen
	KwElse
	KwTo
	KwBy
	KwAlong
	KwAt
	KwCount
	KwScalar
	// KwX is the shape-dimension separator, e.g. the "x" in "[2 x i32]"
	// or "<2 x 3 x f32>". It is not enumerated among the keyword set in
	// spec §6 (which notes the list is not exhaustive); we lex it as an
	// ordinary keyword since it behaves exactly like one (see DESIGN.md).
	KwX
)

var keywordStrings = map[Keyword]string{
	KwModule: "module", KwStage: "stage", KwRaw: "raw", KwCanonical: "canonical",
	KwFunc: "func", KwType: "type", KwStruct: "struct", KwExtern: "extern",
	KwGradient: "gradient", KwFrom: "from", KwWrt: "wrt", KwKeeping: "keeping",
	KwSeedable: "seedable", KwVoid: "void", KwOpaque: "opaque", KwTrue: "true",
	KwFalse: "false", KwNull: "null", KwUndefined: "undefined", KwZero: "zero",
	KwThen: "then", KwElse: "else", KwTo: "to", KwBy: "by", KwAlong: "along",
	KwAt: "at", KwCount: "count", KwScalar: "scalar", KwX: "x",
}

func (k Keyword) String() string {
	if s, ok := keywordStrings[k]; ok {
		return s
	}
	return "?"
}

// Keywords maps a spelling to its keyword, for the lexer.
var Keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordStrings))
	for k, s := range keywordStrings {
		m[s] = k
	}
	return m
}()

// Attribute enumerates function attribute payloads.
type Attribute int

const (
	AttrInline Attribute = iota
	AttrNoInline
	AttrDifferentiable
)

func (a Attribute) String() string {
	switch a {
	case AttrInline:
		return "inline"
	case AttrNoInline:
		return "noinline"
	case AttrDifferentiable:
		return "differentiable"
	default:
		return "?"
	}
}

// AssocOp is an associative binary operator usable as a scan/reduce combinator.
type AssocOp int

const (
	OpAdd AssocOp = iota
	OpSub
	OpMul
	OpDiv
	OpMax
	OpMin
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg
)

var assocOpStrings = map[AssocOp]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
	OpMax: "max", OpMin: "min", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpNot: "not", OpNeg: "neg",
}

func (o AssocOp) String() string {
	if s, ok := assocOpStrings[o]; ok {
		return s
	}
	return "?"
}

// BinaryAssocOps is the set of operator spellings usable as `binaryOp`
// (and as a scan/reduce combinator); UnaryAssocOps is the set usable
// as `unaryOp`. The two are disjoint at the lexical level.
var BinaryAssocOps = map[string]AssocOp{
	"add": OpAdd, "sub": OpSub, "mul": OpMul, "div": OpDiv,
	"max": OpMax, "min": OpMin, "and": OpAnd, "or": OpOr, "xor": OpXor,
}

// UnaryAssocOps maps unary operator spellings to their AssocOp.
var UnaryAssocOps = map[string]AssocOp{
	"not": OpNot, "neg": OpNeg,
}

// Op enumerates the opcode family of an instruction.
type Op int

const (
	OpBranch Op = iota
	OpConditional
	OpReturn
	OpDataTypeCast
	OpScan
	OpReduce
	OpMatrixMultiply
	OpConcatenate
	OpTranspose
	OpShapeCast
	OpBitCast
	OpExtract
	OpInsert
	OpApply
	OpAllocateStack
	OpAllocateHeap
	OpAllocateBox
	OpProjectBox
	OpRetain
	OpRelease
	OpDeallocate
	OpLoad
	OpStore
	OpElementPointer
	OpCopy
	OpTrap
	OpBinary
	OpUnary
)

var opStrings = map[Op]string{
	OpBranch: "branch", OpConditional: "conditional", OpReturn: "return",
	OpDataTypeCast: "dataTypeCast", OpScan: "scan", OpReduce: "reduce",
	OpMatrixMultiply: "matrixMultiply", OpConcatenate: "concatenate",
	OpTranspose: "transpose", OpShapeCast: "shapeCast", OpBitCast: "bitCast",
	OpExtract: "extract", OpInsert: "insert", OpApply: "apply",
	OpAllocateStack: "allocateStack", OpAllocateHeap: "allocateHeap",
	OpAllocateBox: "allocateBox", OpProjectBox: "projectBox",
	OpRetain: "retain", OpRelease: "release", OpDeallocate: "deallocate",
	OpLoad: "load", OpStore: "store", OpElementPointer: "elementPointer",
	OpCopy: "copy", OpTrap: "trap", OpBinary: "binaryOp", OpUnary: "unaryOp",
}

func (o Op) String() string {
	if s, ok := opStrings[o]; ok {
		return s
	}
	return "?"
}

// Opcodes maps a spelling to its opcode, for the lexer.
var Opcodes = func() map[string]Op {
	m := make(map[string]Op, len(opStrings))
	for o, s := range opStrings {
		m[s] = o
	}
	return m
}()

// DataType is a primitive scalar kind, supplied by the lexer.
type DataType int

const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float16
	Float32
	Float64
)

var dataTypeStrings = map[DataType]string{
	Bool: "bool", Int8: "i8", Int16: "i16", Int32: "i32", Int64: "i64",
	UInt8: "u8", UInt16: "u16", UInt32: "u32", UInt64: "u64",
	Float16: "f16", Float32: "f32", Float64: "f64",
}

func (d DataType) String() string {
	if s, ok := dataTypeStrings[d]; ok {
		return s
	}
	return "?"
}

// DataTypes maps a spelling to its data type, for the lexer.
var DataTypes = func() map[string]DataType {
	m := make(map[string]DataType, len(dataTypeStrings))
	for d, s := range dataTypeStrings {
		m[s] = d
	}
	return m
}()

// Kind is the lexical category of a token.
type Kind int

const (
	Newline Kind = iota
	Eof
	PunctTok
	KeywordTok
	IdentTok
	AnonymousTok
	IntegerTok
	FloatTok
	StringTok
	DataTypeTok
	OpcodeTok
	AttributeTok
)

func (k Kind) String() string {
	switch k {
	case Newline:
		return "newline"
	case Eof:
		return "end of input"
	case PunctTok:
		return "punctuation"
	case KeywordTok:
		return "keyword"
	case IdentTok:
		return "identifier"
	case AnonymousTok:
		return "anonymous identifier"
	case IntegerTok:
		return "integer"
	case FloatTok:
		return "float"
	case StringTok:
		return "string literal"
	case DataTypeTok:
		return "data type"
	case OpcodeTok:
		return "opcode"
	case AttributeTok:
		return "attribute"
	default:
		return "?"
	}
}

// Token is a single lexical unit together with its source range.
type Token struct {
	Kind  Kind
	Range Range

	Punct     Punct
	Keyword   Keyword
	IdentKind IdentKind
	Name      string // identifier spelling, without sigil
	BBIndex   int    // AnonymousTok
	InstIndex int     // AnonymousTok
	IntVal    int64
	FloatVal  float64
	StrVal    string
	DataType  DataType
	Op        Op
	BinOp     AssocOp // set when Op == OpBinary/OpUnary, or used as scan/reduce combinator
	Attribute Attribute
}

// String renders a human-readable description of the token, for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case PunctTok:
		return fmt.Sprintf("%q", t.Punct.String())
	case KeywordTok:
		return fmt.Sprintf("%q", t.Keyword.String())
	case IdentTok:
		return fmt.Sprintf("%s %q", t.IdentKind, t.Name)
	case AnonymousTok:
		return fmt.Sprintf("#%d.%d", t.BBIndex, t.InstIndex)
	case OpcodeTok:
		return fmt.Sprintf("opcode %q", t.Op.String())
	default:
		return t.Kind.String()
	}
}
