package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// ParseModule is the parser's public entry point: it consumes the
// entire token stream and returns a fully-resolved *ir.Module, or the
// first parse error encountered (spec §1, §7).
func (p *Parser) ParseModule() (*ir.Module, error) {
	p.c.skipNewlines()
	if _, err := p.c.expectKeyword(token.KwModule); err != nil {
		return nil, err
	}
	name, err := p.stringLiteral()
	if err != nil {
		return nil, err
	}
	if err := p.c.oneOrMoreNewlines(); err != nil {
		return nil, err
	}

	if _, err := p.c.expectKeyword(token.KwStage); err != nil {
		return nil, err
	}
	stage, err := p.parseStage()
	if err != nil {
		return nil, err
	}
	if err := p.c.oneOrMoreNewlines(); err != nil {
		return nil, err
	}

	mod := &ir.Module{Name: name.StrVal, Stage: stage}

	if err := p.prescanFunctionPrototypes(mod); err != nil {
		return nil, err
	}

	for {
		t, ok := p.c.peek()
		if !ok || t.Kind == token.Eof {
			break
		}
		if err := p.parseTopLevelItem(mod); err != nil {
			return nil, err
		}
		p.c.skipNewlines()
	}
	return mod, nil
}

func (p *Parser) parseStage() (ir.Stage, error) {
	if _, ok := p.c.acceptKeyword(token.KwRaw); ok {
		return ir.StageRaw, nil
	}
	if _, err := p.c.expectKeyword(token.KwCanonical); err != nil {
		return 0, err
	}
	return ir.StageCanonical, nil
}

// prescanFunctionPrototypes registers a prototype for every
// module-level function before any function body is parsed, so that
// one function can `apply` another defined later in the same module
// (spec §3, §6). Only the name is known at this point; attributes,
// ArgTypes and ResultType are filled in when the function's own header
// is reached by parseFunction.
func (p *Parser) prescanFunctionPrototypes(mod *ir.Module) error {
	return preserved(p.c, func() error {
		depth := 0
		for {
			t, ok := p.c.peek()
			if !ok {
				return nil
			}
			switch {
			case t.Kind == token.PunctTok && t.Punct == token.LBrace:
				depth++
				p.c.advance()
			case t.Kind == token.PunctTok && t.Punct == token.RBrace:
				if depth > 0 {
					depth--
				}
				p.c.advance()
			case depth == 0 && t.Kind == token.KeywordTok && t.Keyword == token.KwFunc:
				p.c.advance()
				nameTok, ok := p.c.peek()
				if !ok || nameTok.Kind != token.IdentTok || nameTok.IdentKind != token.Global {
					continue
				}
				p.c.advance()
				fn := &ir.Function{FuncName: nameTok.Name, Module: mod}
				if err := p.sym.defineGlobal(nameTok.Range, nameTok.Name, fn); err != nil {
					return err
				}
				mod.Functions = append(mod.Functions, fn)
			default:
				p.c.advance()
			}
		}
	})
}

// parseTopLevelItem implements `top_level := type_alias | struct_decl | function`.
func (p *Parser) parseTopLevelItem(mod *ir.Module) error {
	if p.c.isKeyword(token.KwType) {
		return p.parseTypeAlias(mod)
	}
	if p.c.isKeyword(token.KwStruct) {
		return p.parseStructDecl(mod)
	}
	if p.isFunctionIntroducer() {
		return p.parseFunction()
	}
	t, ok := p.c.peek()
	if !ok {
		return perror.UnexpectedEndOfInputf(p.c.endRange(), "a type alias, a struct, or a function")
	}
	return perror.UnexpectedTokenf(t.Range, "a type alias, a struct, or a function", t)
}

// isFunctionIntroducer reports whether the cursor is positioned at the
// start of a `function` production: an attribute, a declaration-kind
// bracket, or the 'func' keyword itself.
func (p *Parser) isFunctionIntroducer() bool {
	t, ok := p.c.peek()
	if !ok {
		return false
	}
	if t.Kind == token.AttributeTok {
		return true
	}
	if t.Kind == token.PunctTok && t.Punct == token.LBracket {
		return true
	}
	return t.Kind == token.KeywordTok && t.Keyword == token.KwFunc
}

// parseTypeAlias implements `type_alias := 'type' type_ident '=' ('opaque' | type)`.
// 'opaque' means the alias has no underlying type (spec §4.9).
func (p *Parser) parseTypeAlias(mod *ir.Module) error {
	kwTok, err := p.c.expectKeyword(token.KwType)
	if err != nil {
		return err
	}
	name, err := p.identifier(token.TypeIdent, true)
	if err != nil {
		return err
	}
	if _, err := p.c.expectPunct(token.Equal); err != nil {
		return err
	}
	alias := &ir.TypeAlias{Name: name.Name, Range: kwTok.Range.Join(name.Range)}
	if opaqueTok, ok := p.c.acceptKeyword(token.KwOpaque); ok {
		alias.Range = alias.Range.Join(opaqueTok.Range)
	} else {
		underlying, rng, err := p.parseType()
		if err != nil {
			return err
		}
		alias.Underlying = underlying
		alias.Range = alias.Range.Join(rng)
	}
	if err := p.sym.defineNominalType(name.Range, name.Name, ir.AliasType{Alias: alias}); err != nil {
		return err
	}
	mod.TypeAliases = append(mod.TypeAliases, alias)
	return nil
}

// parseStructDecl implements:
//
//	struct_decl := 'struct' type_ident '{' (key ':' type (',' key ':' type)* ','?)? '}'
func (p *Parser) parseStructDecl(mod *ir.Module) error {
	kwTok, err := p.c.expectKeyword(token.KwStruct)
	if err != nil {
		return err
	}
	name, err := p.identifier(token.TypeIdent, true)
	if err != nil {
		return err
	}
	if _, err := p.c.expectPunct(token.LBrace); err != nil {
		return err
	}
	p.c.skipNewlines()
	rec := &ir.Record{Name: name.Name, Range: kwTok.Range.Join(name.Range)}
	for !p.c.isPunct(token.RBrace) {
		key, err := p.identifier(token.Key, false)
		if err != nil {
			return err
		}
		typ, _, err := p.typeSignature()
		if err != nil {
			return err
		}
		rec.Fields = append(rec.Fields, ir.RecordField{Key: key.Name, Type: typ})
		p.c.skipNewlines()
		if p.c.isPunct(token.RBrace) {
			break
		}
		if _, err := p.c.expectPunct(token.Comma); err != nil {
			return err
		}
		p.c.skipNewlines()
	}
	if _, err := p.c.expectPunct(token.RBrace); err != nil {
		return err
	}
	if err := p.sym.defineNominalType(name.Range, name.Name, ir.RecordType{Record: rec}); err != nil {
		return err
	}
	mod.Records = append(mod.Records, rec)
	return nil
}
