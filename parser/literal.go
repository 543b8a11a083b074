package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// parseLiteral implements the `literal` production (spec §4.5):
// dispatches on the leading token.
func (p *Parser) parseLiteral() (ir.Literal, token.Range, error) {
	t, ok := p.c.peek()
	if !ok {
		return nil, token.Range{}, perror.UnexpectedEndOfInputf(p.c.endRange(), "a literal")
	}
	switch {
	case t.Kind == token.FloatTok:
		p.c.advance()
		return ir.ScalarLit{Value: t.FloatVal}, t.Range, nil
	case t.Kind == token.IntegerTok:
		p.c.advance()
		return ir.ScalarLit{Value: t.IntVal}, t.Range, nil
	case t.Kind == token.KeywordTok && t.Keyword == token.KwTrue:
		p.c.advance()
		return ir.ScalarLit{Value: true}, t.Range, nil
	case t.Kind == token.KeywordTok && t.Keyword == token.KwFalse:
		p.c.advance()
		return ir.ScalarLit{Value: false}, t.Range, nil
	case t.Kind == token.KeywordTok && t.Keyword == token.KwNull:
		p.c.advance()
		return ir.NullLit{}, t.Range, nil
	case t.Kind == token.KeywordTok && t.Keyword == token.KwUndefined:
		p.c.advance()
		return ir.UndefinedLit{}, t.Range, nil
	case t.Kind == token.KeywordTok && t.Keyword == token.KwZero:
		p.c.advance()
		return ir.ZeroLit{}, t.Range, nil
	case t.Kind == token.PunctTok && t.Punct == token.LBracket:
		return p.parseArrayLit()
	case t.Kind == token.PunctTok && t.Punct == token.LParen:
		return p.parseTupleLit()
	case t.Kind == token.PunctTok && t.Punct == token.LAngle:
		return p.parseTensorLit()
	case t.Kind == token.PunctTok && t.Punct == token.LBrace:
		return p.parseRecordLit()
	default:
		return nil, token.Range{}, perror.UnexpectedTokenf(t.Range, "a literal", t)
	}
}

func (p *Parser) parseArrayLit() (ir.Literal, token.Range, error) {
	open, _ := p.c.expectPunct(token.LBracket)
	elems, err := p.useList(func() bool { return p.c.isPunct(token.RBracket) })
	if err != nil {
		return nil, token.Range{}, err
	}
	close, err := p.c.expectPunct(token.RBracket)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.ArrayLit{Elems: elems}, open.Range.Join(close.Range), nil
}

func (p *Parser) parseTupleLit() (ir.Literal, token.Range, error) {
	open, _ := p.c.expectPunct(token.LParen)
	elems, err := p.useList(func() bool { return p.c.isPunct(token.RParen) })
	if err != nil {
		return nil, token.Range{}, err
	}
	close, err := p.c.expectPunct(token.RParen)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.TupleLit{Elems: elems}, open.Range.Join(close.Range), nil
}

func (p *Parser) parseTensorLit() (ir.Literal, token.Range, error) {
	open, _ := p.c.expectPunct(token.LAngle)
	elems, err := p.useList(func() bool { return p.c.isPunct(token.RAngle) })
	if err != nil {
		return nil, token.Range{}, err
	}
	close, err := p.c.expectPunct(token.RAngle)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.TensorLit{Elems: elems}, open.Range.Join(close.Range), nil
}

// parseRecordLit implements `{ key = use (, key = use)* }`. A trailing
// comma before `}` is tolerated because the loop below simply sees `}`
// and stops (spec §9 Open Question 2 — the leniency is intentional).
func (p *Parser) parseRecordLit() (ir.Literal, token.Range, error) {
	open, _ := p.c.expectPunct(token.LBrace)
	var fields []ir.RecordLitField
	for !p.c.isPunct(token.RBrace) {
		key, err := p.identifier(token.Key, false)
		if err != nil {
			return nil, token.Range{}, err
		}
		if _, err := p.c.expectPunct(token.Equal); err != nil {
			return nil, token.Range{}, err
		}
		use, err := p.parseUse()
		if err != nil {
			return nil, token.Range{}, err
		}
		fields = append(fields, ir.RecordLitField{Key: key.Name, Value: use})
		if _, ok := p.c.acceptPunct(token.Comma); !ok {
			break
		}
		p.c.skipNewlines()
	}
	close, err := p.c.expectPunct(token.RBrace)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.RecordLit{Fields: fields}, open.Range.Join(close.Range), nil
}
