package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// parseUse implements the `use` production (spec §4.5): a typed
// reference to a value, dispatching on the leading token.
func (p *Parser) parseUse() (ir.Use, error) {
	t, ok := p.c.peek()
	if !ok {
		return nil, perror.UnexpectedEndOfInputf(p.c.endRange(), "a use of value")
	}
	switch {
	case t.Kind == token.IdentTok:
		return p.parseIdentUse(t)
	case t.Kind == token.AnonymousTok:
		return p.parseAnonymousUse(t)
	case isLiteralLeading(t):
		lit, litRange, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		typ, sigRange, err := p.typeSignature()
		if err != nil {
			return nil, err
		}
		_ = litRange.Join(sigRange)
		return ir.LiteralUse{Typ: typ, Lit: lit}, nil
	default:
		return nil, perror.UnexpectedTokenf(t.Range, "a use of value", t)
	}
}

func isLiteralLeading(t token.Token) bool {
	switch t.Kind {
	case token.FloatTok, token.IntegerTok:
		return true
	case token.PunctTok:
		switch t.Punct {
		case token.LBracket, token.LParen, token.LAngle, token.LBrace:
			return true
		}
	case token.KeywordTok:
		switch t.Keyword {
		case token.KwTrue, token.KwFalse, token.KwNull, token.KwUndefined, token.KwZero:
			return true
		}
	}
	return false
}

// parseIdentUse resolves an identifier-ref use: only global or
// temporary identifier kinds are valid here (spec §4.5).
func (p *Parser) parseIdentUse(t token.Token) (ir.Use, error) {
	if t.IdentKind != token.Global && t.IdentKind != token.Temporary {
		return nil, perror.UnexpectedIdentifierKindf(t.Range, token.Temporary, t)
	}
	p.c.advance()
	var value ir.Value
	var err error
	if t.IdentKind == token.Global {
		value, err = p.sym.lookupGlobal(t.Range, t.Name)
	} else {
		value, err = p.sym.lookupLocal(t.Range, t.Name)
	}
	if err != nil {
		return nil, err
	}
	written, sigRange, err := p.typeSignature()
	if err != nil {
		return nil, err
	}
	combined := t.Range.Join(sigRange)
	if !written.Equal(value.ValueType()) {
		return nil, perror.TypeMismatchf(combined, value.ValueType())
	}
	return ir.DefUse{Typ: written, Value: value}, nil
}

// parseAnonymousUse resolves a `#bbIndex.instIndex` reference (spec §3, §4.5).
func (p *Parser) parseAnonymousUse(t token.Token) (ir.Use, error) {
	if p.curFunc == nil || p.curBlock == nil {
		return nil, perror.AnonymousIdentifierNotInLocalf(t.Range)
	}
	p.c.advance()
	inst, err := p.resolveAnonymous(t)
	if err != nil {
		return nil, err
	}
	written, sigRange, err := p.typeSignature()
	if err != nil {
		return nil, err
	}
	combined := t.Range.Join(sigRange)
	if !written.Equal(inst.ValueType()) {
		return nil, perror.TypeMismatchf(combined, inst.ValueType())
	}
	return ir.DefUse{Typ: written, Value: inst}, nil
}

// useList implements `use_list` (spec §4.5): zero or more uses
// separated by commas (newline-wrappable), stopping when done reports true.
func (p *Parser) useList(done func() bool) ([]ir.Use, error) {
	var uses []ir.Use
	p.c.skipNewlines()
	if done() {
		return uses, nil
	}
	for {
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		uses = append(uses, use)
		p.c.skipNewlines()
		if done() {
			return uses, nil
		}
		if _, err := p.c.wrapPunct(token.Comma); err != nil {
			return nil, err
		}
	}
}
