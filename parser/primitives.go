package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// integer consumes one IntegerTok token (spec §4.3).
func (p *Parser) integer() (token.Token, error) {
	return p.c.expectKind(token.IntegerTok, "an integer")
}

// dataType consumes one DataTypeTok token.
func (p *Parser) dataType() (token.Token, error) {
	return p.c.expectKind(token.DataTypeTok, "a data type")
}

// stringLiteral consumes one StringTok token.
func (p *Parser) stringLiteral() (token.Token, error) {
	return p.c.expectKind(token.StringTok, "a string literal")
}

// identifier consumes an identifier token of the requested lexical
// kind. When isDefinition is true and the kind corresponds to a
// tracked scope, it also checks uniqueness in the matching symbol
// table (spec §4.3).
func (p *Parser) identifier(kind token.IdentKind, isDefinition bool) (token.Token, error) {
	t, err := p.c.expectKind(token.IdentTok, kind.String())
	if err != nil {
		return t, err
	}
	if t.IdentKind != kind {
		return t, perror.UnexpectedIdentifierKindf(t.Range, kind, t)
	}
	if !isDefinition {
		return t, nil
	}
	switch kind {
	case token.Global:
		if _, ok := p.sym.globals[t.Name]; ok {
			return t, perror.RedefinedIdentifierf(t.Range, t.Name)
		}
	case token.Temporary:
		if _, ok := p.sym.locals[t.Name]; ok {
			return t, perror.RedefinedIdentifierf(t.Range, t.Name)
		}
	case token.BasicBlock:
		if _, ok := p.sym.basicBlocks[t.Name]; ok {
			return t, perror.RedefinedIdentifierf(t.Range, t.Name)
		}
	case token.TypeIdent:
		if _, ok := p.sym.nominalTypes[t.Name]; ok {
			return t, perror.RedefinedIdentifierf(t.Range, t.Name)
		}
	}
	return t, nil
}

// typeSignature parses `: type` (spec §4.3).
func (p *Parser) typeSignature() (ir.Type, token.Range, error) {
	colon, err := p.c.expectPunct(token.Colon)
	if err != nil {
		return nil, token.Range{}, err
	}
	p.c.skipNewlines()
	typ, rng, err := p.parseType()
	if err != nil {
		return nil, token.Range{}, err
	}
	return typ, colon.Range.Join(rng), nil
}
