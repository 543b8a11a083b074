package ir

import mapset "github.com/deckarep/golang-set"

// Stage declares which lowering level a module's IR is in. It is
// parsed but not otherwise interpreted by the core.
type Stage int

const (
	StageRaw Stage = iota
	StageCanonical
)

func (s Stage) String() string {
	if s == StageCanonical {
		return "canonical"
	}
	return "raw"
}

// Module is the root of a parsed program: a name, a lowering stage,
// and the type aliases, records, and functions it defines.
type Module struct {
	Name        string
	Stage       Stage
	TypeAliases []*TypeAlias
	Records     []*Record
	Functions   []*Function
}

// DeclarationKind distinguishes a function declaration (extern or
// gradient-of) from a function definition (DeclKind == nil).
type DeclarationKind interface {
	declarationKind()
}

// ExternalDecl marks a function as an external declaration with no body.
type ExternalDecl struct{}

func (ExternalDecl) declarationKind() {}

// GradientDecl marks a function as the (to-be-synthesized) derivative
// of another function.
type GradientDecl struct {
	Of       *Function
	From     *int
	Wrt      []int
	Keeping  []int
	Seedable bool
}

func (GradientDecl) declarationKind() {}

// Function is either a definition (DeclKind == nil, BasicBlocks non-empty)
// or a declaration (DeclKind != nil, BasicBlocks empty).
type Function struct {
	FuncName    string
	Attributes  mapset.Set
	DeclKind    DeclarationKind
	ArgTypes    []Type
	ResultType  Type
	BasicBlocks []*BasicBlock
	Module      *Module
}

// IsDeclaration reports whether the function lacks a body.
func (f *Function) IsDeclaration() bool {
	return f.DeclKind != nil
}

// BasicBlock is a single labeled block of instructions within a function.
type BasicBlock struct {
	BBName       string
	Arguments    []*Argument
	Instructions []*Instruction
	Parent       *Function
}

// Argument is a named, typed value bound at the head of a basic block.
type Argument struct {
	ArgName string
	Typ     Type
	Parent  *BasicBlock
}

// Instruction is a single statement within a basic block: an optional
// name (textual or anonymous-SSA), an opcode-specific kind, and a
// back-pointer to its containing block.
type Instruction struct {
	InstName  string // "" if unnamed
	Anonymous bool   // true if named via an anonymous SSA slot
	Kind      InstructionKind
	Parent    *BasicBlock
}
