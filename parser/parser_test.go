package parser

import (
	"errors"
	"testing"

	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
)

func mustParse(t *testing.T, src string) *ir.Module {
	t.Helper()
	p, err := NewFromSource([]byte(src))
	if err != nil {
		t.Fatalf("NewFromSource() error = %v", err)
	}
	mod, err := p.ParseModule()
	if err != nil {
		t.Fatalf("ParseModule() error = %v", err)
	}
	return mod
}

func parseErr(t *testing.T, src string) *perror.ParseError {
	t.Helper()
	p, err := NewFromSource([]byte(src))
	if err != nil {
		t.Fatalf("NewFromSource() error = %v", err)
	}
	_, err = p.ParseModule()
	if err == nil {
		t.Fatal("ParseModule() succeeded, want an error")
	}
	var pe *perror.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *perror.ParseError", err)
	}
	return pe
}

func TestParseSimpleReturn(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

func @id : (i32) -> i32 {
'entry(%x : i32):
return %x : i32
}
`)
	if mod.Name != "test" {
		t.Errorf("mod.Name = %q, want %q", mod.Name, "test")
	}
	if mod.Stage != ir.StageRaw {
		t.Errorf("mod.Stage = %v, want raw", mod.Stage)
	}
	if len(mod.Functions) != 1 {
		t.Fatalf("len(mod.Functions) = %d, want 1", len(mod.Functions))
	}
	fn := mod.Functions[0]
	if fn.FuncName != "id" {
		t.Errorf("fn.FuncName = %q, want %q", fn.FuncName, "id")
	}
	if len(fn.BasicBlocks) != 1 {
		t.Fatalf("len(fn.BasicBlocks) = %d, want 1", len(fn.BasicBlocks))
	}
	if len(fn.BasicBlocks[0].Instructions) != 1 {
		t.Fatalf("len(Instructions) = %d, want 1", len(fn.BasicBlocks[0].Instructions))
	}
}

func TestParseForwardBranchAndAnonymousSSA(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

func @f : (i32) -> i32 {
'entry(%x : i32):
branch 'next(%x : i32)
'next(%y : i32):
#1.0 = add %y : i32, %y : i32
return #1.0 : i32
}
`)
	fn := mod.Functions[0]
	if len(fn.BasicBlocks) != 2 {
		t.Fatalf("len(BasicBlocks) = %d, want 2", len(fn.BasicBlocks))
	}
	next := fn.BasicBlocks[1]
	if next.BBName != "next" {
		t.Fatalf("BasicBlocks[1].BBName = %q, want %q", next.BBName, "next")
	}
	if len(next.Instructions) != 2 {
		t.Fatalf("len(next.Instructions) = %d, want 2", len(next.Instructions))
	}
	if !next.Instructions[0].Anonymous {
		t.Error("next.Instructions[0] should be named via an anonymous slot")
	}
}

func TestParseApplyForwardCall(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

func @caller : () -> i32 {
'entry():
%r = apply @callee() : i32
return %r : i32
}

func @callee : () -> i32 {
'entry():
return 0 : i32
}
`)
	if len(mod.Functions) != 2 {
		t.Fatalf("len(mod.Functions) = %d, want 2", len(mod.Functions))
	}
}

func TestParseDuplicateFunctionName(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : () -> void {
'entry():
return
}

func @f : () -> void {
'entry():
return
}
`)
	if pe.Code != perror.RedefinedIdentifier {
		t.Errorf("Code = %v, want RedefinedIdentifier", pe.Code)
	}
}

func TestParseTypeMismatch(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : (i32) -> i32 {
'entry(%x : i32):
return %x : f32
}
`)
	if pe.Code != perror.TypeMismatch {
		t.Errorf("Code = %v, want TypeMismatch", pe.Code)
	}
}

func TestParseDeclarationCannotHaveBody(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

[extern]
func @f : (i32) -> i32 {
'entry(%x : i32):
return %x : i32
}
`)
	if pe.Code != perror.DeclarationCannotHaveBody {
		t.Errorf("Code = %v, want DeclarationCannotHaveBody", pe.Code)
	}
}

func TestParseExternDeclarationHasNoBody(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

[extern]
func @f : (i32) -> i32
`)
	fn := mod.Functions[0]
	if !fn.IsDeclaration() {
		t.Error("fn.IsDeclaration() = false, want true")
	}
	if len(fn.BasicBlocks) != 0 {
		t.Errorf("len(BasicBlocks) = %d, want 0", len(fn.BasicBlocks))
	}
}

func TestParseInvalidAnonymousIdentifierIndex(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : () -> i32 {
'entry():
return #0.5 : i32
}
`)
	if pe.Code != perror.InvalidAnonymousIdentifierIndex {
		t.Errorf("Code = %v, want InvalidAnonymousIdentifierIndex", pe.Code)
	}
}

func TestParseNotFunctionType(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : i32 {
'entry():
return 0 : i32
}
`)
	if pe.Code != perror.NotFunctionType {
		t.Errorf("Code = %v, want NotFunctionType", pe.Code)
	}
}

func TestParseMultiFieldRecord(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

struct %S {
#a : i32,
#b : f32
}
`)
	if len(mod.Records) != 1 {
		t.Fatalf("len(mod.Records) = %d, want 1", len(mod.Records))
	}
	rec := mod.Records[0]
	if len(rec.Fields) != 2 {
		t.Fatalf("len(rec.Fields) = %d, want 2", len(rec.Fields))
	}
	if rec.Fields[0].Key != "a" || rec.Fields[1].Key != "b" {
		t.Errorf("rec.Fields = %+v, want keys a, b", rec.Fields)
	}
}

func TestParseMultiFieldRecordTrailingComma(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

struct %S {
#a : i32,
#b : f32,
}
`)
	if len(mod.Records[0].Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(mod.Records[0].Fields))
	}
}

func TestParseTypeAliasOpaque(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

type %T = opaque
`)
	if len(mod.TypeAliases) != 1 {
		t.Fatalf("len(mod.TypeAliases) = %d, want 1", len(mod.TypeAliases))
	}
	if mod.TypeAliases[0].Underlying != nil {
		t.Errorf("TypeAliases[0].Underlying = %v, want nil (opaque)", mod.TypeAliases[0].Underlying)
	}
}

func TestParseTypeAliasRequiresEqual(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

type %T
`)
	if pe.Code != perror.UnexpectedToken {
		t.Errorf("Code = %v, want UnexpectedToken", pe.Code)
	}
}

func TestParseReduceToScalarMatchesDataTypeSignature(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

func @f : (<4 x i32>) -> i32 {
'entry(%t : <4 x i32>):
%r = reduce %t : <4 x i32> by add along 0
return %r : i32
}
`)
	fn := mod.Functions[0]
	if len(fn.BasicBlocks[0].Instructions) != 2 {
		t.Fatalf("len(Instructions) = %d, want 2", len(fn.BasicBlocks[0].Instructions))
	}
}

func TestParseGradientDeclaration(t *testing.T) {
	mod := mustParse(t, `module "test"
stage raw

func @f : (i32) -> i32 {
'entry(%x : i32):
return %x : i32
}

[gradient @f from 0 wrt 0 keeping 0 seedable]
func @g : (i32) -> i32
`)
	if len(mod.Functions) != 2 {
		t.Fatalf("len(mod.Functions) = %d, want 2", len(mod.Functions))
	}
	g := mod.Functions[1]
	decl, ok := g.DeclKind.(ir.GradientDecl)
	if !ok {
		t.Fatalf("g.DeclKind = %T, want ir.GradientDecl", g.DeclKind)
	}
	if decl.Of.FuncName != "f" {
		t.Errorf("decl.Of.FuncName = %q, want %q", decl.Of.FuncName, "f")
	}
	if decl.From == nil || *decl.From != 0 {
		t.Errorf("decl.From = %v, want pointer to 0", decl.From)
	}
	if len(decl.Wrt) != 1 || decl.Wrt[0] != 0 {
		t.Errorf("decl.Wrt = %v, want [0]", decl.Wrt)
	}
	if !decl.Seedable {
		t.Error("decl.Seedable = false, want true")
	}
}

func TestParseGradientDeclarationRequiresWrt(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : (i32) -> i32 {
'entry(%x : i32):
return %x : i32
}

[gradient @f]
func @g : (i32) -> i32
`)
	if pe.Code != perror.UnexpectedToken {
		t.Errorf("Code = %v, want UnexpectedToken", pe.Code)
	}
}

func TestParseUndefinedLocal(t *testing.T) {
	pe := parseErr(t, `module "test"
stage raw

func @f : () -> i32 {
'entry():
return %missing : i32
}
`)
	if pe.Code != perror.UndefinedIdentifier {
		t.Errorf("Code = %v, want UndefinedIdentifier", pe.Code)
	}
}
