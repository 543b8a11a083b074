package ir

import "github.com/rxwei/dlvm-core/token"

// Value is a definition site: a function, a function argument, a
// basic-block argument, or an instruction. Values are referenced
// weakly by uses via the symbol table.
type Value interface {
	// Name returns the textual name of the value, or "" if unnamed.
	Name() string
	// ValueType returns the type of the value at its definition site.
	ValueType() Type
}

func (f *Function) Name() string     { return f.FuncName }
func (f *Function) ValueType() Type  { return f.Type() }

// Type returns the function's signature as a FunctionType.
func (f *Function) Type() Type {
	return FunctionType{Args: f.ArgTypes, Result: f.ResultType}
}

func (a *Argument) Name() string    { return a.ArgName }
func (a *Argument) ValueType() Type { return a.Typ }

func (i *Instruction) Name() string {
	if i.Anonymous {
		return ""
	}
	return i.InstName
}
func (i *Instruction) ValueType() Type { return i.Type() }

// Type derives the instruction's result type from its InstructionKind.
func (i *Instruction) Type() Type {
	return i.Kind.ResultType()
}

// Opcode returns the instruction's opcode.
func (i *Instruction) Opcode() token.Op {
	return i.Kind.Opcode()
}
