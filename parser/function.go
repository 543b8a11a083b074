package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	mapset "github.com/deckarep/golang-set"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// parseFunction implements (spec §4.8):
//
//	function := attribute* ('[' declaration_kind ']')? 'func' global_id ':' type
//	            ('{' basic_block+ '}')?
//
// The function's prototype was already registered by the module-level
// pre-scan, so the global name lookup here always succeeds; what this
// parses now is the body (or the absence of one).
func (p *Parser) parseFunction() error {
	var attrs []token.Attribute
	for {
		t, ok := p.c.peek()
		if !ok || t.Kind != token.AttributeTok {
			break
		}
		p.c.advance()
		attrs = append(attrs, t.Attribute)
	}

	var declKind ir.DeclarationKind
	if _, ok := p.c.acceptPunct(token.LBracket); ok {
		dk, err := p.parseDeclarationKind()
		if err != nil {
			return err
		}
		declKind = dk
		if _, err := p.c.expectPunct(token.RBracket); err != nil {
			return err
		}
		p.c.skipNewlines()
	}

	funcTok, err := p.c.expectKeyword(token.KwFunc)
	if err != nil {
		return err
	}
	name, err := p.identifier(token.Global, false)
	if err != nil {
		return err
	}
	typ, sigRange, err := p.typeSignature()
	if err != nil {
		return err
	}
	fnType, ok := typ.Canonical().(ir.FunctionType)
	if !ok {
		return perror.NotFunctionTypef(funcTok.Range.Join(sigRange))
	}

	fnValue, err := p.sym.lookupGlobal(name.Range, name.Name)
	if err != nil {
		return err
	}
	fn := fnValue.(*ir.Function)
	fn.ArgTypes = fnType.Args
	fn.ResultType = fnType.Result
	fn.DeclKind = declKind
	set := mapset.NewSet()
	for _, a := range attrs {
		set.Add(a)
	}
	fn.Attributes = set

	hasBody := p.c.isPunct(token.LBrace)
	if declKind != nil {
		if hasBody {
			open, _ := p.c.peek()
			return perror.DeclarationCannotHaveBodyf(name.Range, open.Range)
		}
		return nil
	}
	return p.parseFunctionBody(fn)
}

func (p *Parser) parseFunctionBody(fn *ir.Function) error {
	if _, err := p.c.expectPunct(token.LBrace); err != nil {
		return err
	}
	p.c.skipNewlines()

	p.curFunc = &funcBuildState{fn: fn}
	if err := p.prescanBasicBlockLabels(); err != nil {
		p.curFunc = nil
		return err
	}

	index := 0
	for !p.c.isPunct(token.RBrace) {
		if err := p.parseBasicBlock(index); err != nil {
			p.curFunc = nil
			return err
		}
		index++
		p.c.skipNewlines()
	}
	if _, err := p.c.expectPunct(token.RBrace); err != nil {
		p.curFunc = nil
		return err
	}

	p.curFunc = nil
	p.sym.clearFunctionScope()
	return nil
}

// parseDeclarationKind implements `declaration_kind := 'extern' | gradient_decl`.
func (p *Parser) parseDeclarationKind() (ir.DeclarationKind, error) {
	if _, ok := p.c.acceptKeyword(token.KwExtern); ok {
		return ir.ExternalDecl{}, nil
	}
	if _, err := p.c.expectKeyword(token.KwGradient); err != nil {
		return nil, err
	}
	return p.parseGradientDecl()
}

// parseGradientDecl implements (spec §4.8):
//
//	gradient_decl := 'gradient' global_id ('from' int)? 'wrt' int (',' int)*
//	                 ('keeping' int_list)? 'seedable'?
func (p *Parser) parseGradientDecl() (ir.DeclarationKind, error) {
	of, err := p.identifier(token.Global, false)
	if err != nil {
		return nil, err
	}
	ofValue, err := p.sym.lookupGlobal(of.Range, of.Name)
	if err != nil {
		return nil, err
	}
	ofFn, ok := ofValue.(*ir.Function)
	if !ok {
		return nil, perror.NotFunctionTypef(of.Range)
	}

	decl := ir.GradientDecl{Of: ofFn}
	if _, ok := p.c.acceptKeyword(token.KwFrom); ok {
		from, err := p.integer()
		if err != nil {
			return nil, err
		}
		idx := int(from.IntVal)
		decl.From = &idx
	}

	if _, err := p.c.expectKeyword(token.KwWrt); err != nil {
		return nil, err
	}
	wrt, err := p.intList()
	if err != nil {
		return nil, err
	}
	decl.Wrt = toIntSlice(wrt)

	if _, ok := p.c.acceptKeyword(token.KwKeeping); ok {
		keeping, err := p.intList()
		if err != nil {
			return nil, err
		}
		decl.Keeping = toIntSlice(keeping)
	}
	if _, ok := p.c.acceptKeyword(token.KwSeedable); ok {
		decl.Seedable = true
	}
	return decl, nil
}

func toIntSlice(in []int64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
