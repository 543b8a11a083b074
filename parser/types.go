package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// parseType implements the `type` production (spec §4.4):
//
//	type := 'void'
//	      | data_type
//	      | '[' int 'x' type ']'
//	      | '<' non_scalar_shape 'x' data_type '>'
//	      | '(' type-list ')' ( '->' type )?
//	      | type_identifier
//	      | '*' type
func (p *Parser) parseType() (ir.Type, token.Range, error) {
	t, ok := p.c.peek()
	if !ok {
		return nil, token.Range{}, perror.UnexpectedEndOfInputf(p.c.endRange(), "a type")
	}
	switch {
	case t.Kind == token.KeywordTok && t.Keyword == token.KwVoid:
		p.c.advance()
		return ir.VoidType{}, t.Range, nil
	case t.Kind == token.DataTypeTok:
		p.c.advance()
		return ir.ScalarType{DT: t.DataType}, t.Range, nil
	case t.Kind == token.PunctTok && t.Punct == token.LBracket:
		return p.parseArrayType()
	case t.Kind == token.PunctTok && t.Punct == token.LAngle:
		return p.parseTensorType()
	case t.Kind == token.PunctTok && t.Punct == token.LParen:
		return p.parseTupleOrFuncType()
	case t.Kind == token.IdentTok && t.IdentKind == token.TypeIdent:
		p.c.advance()
		typ, err := p.sym.lookupNominalType(t.Range, t.Name)
		if err != nil {
			return nil, token.Range{}, err
		}
		return typ, t.Range, nil
	case t.Kind == token.PunctTok && t.Punct == token.Star:
		p.c.advance()
		elem, rng, err := p.parseType()
		if err != nil {
			return nil, token.Range{}, err
		}
		return ir.PointerType{Pointee: elem}, t.Range.Join(rng), nil
	default:
		return nil, token.Range{}, perror.UnexpectedTokenf(t.Range, "a type", t)
	}
}

func (p *Parser) parseArrayType() (ir.Type, token.Range, error) {
	open, _ := p.c.expectPunct(token.LBracket)
	count, err := p.integer()
	if err != nil {
		return nil, token.Range{}, err
	}
	if _, err := p.c.expectKeyword(token.KwX); err != nil {
		return nil, token.Range{}, err
	}
	elem, _, err := p.parseType()
	if err != nil {
		return nil, token.Range{}, err
	}
	close, err := p.c.expectPunct(token.RBracket)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.ArrayType{Count: count.IntVal, Elem: elem}, open.Range.Join(close.Range), nil
}

// nonScalarShape parses `int ('x' int)*` with backtracking on each
// continuation (spec §4.4): after each 'x', if the following token is
// not an integer, the 'x' is un-consumed so an outer 'x' (the one
// separating the shape from the element data type) is visible to the
// caller.
func (p *Parser) nonScalarShape() (ir.TensorShape, error) {
	first, err := p.integer()
	if err != nil {
		return nil, err
	}
	shape := ir.TensorShape{first.IntVal}
	for {
		dim, ok, err := backtracking(p.c, func() (int64, bool, error) {
			if !p.c.isKeyword(token.KwX) {
				return 0, false, nil
			}
			p.c.advance()
			t, ok := p.c.peek()
			if !ok || t.Kind != token.IntegerTok {
				return 0, false, nil
			}
			p.c.advance()
			return t.IntVal, true, nil
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return shape, nil
		}
		shape = append(shape, dim)
	}
}

func (p *Parser) parseTensorType() (ir.Type, token.Range, error) {
	open, _ := p.c.expectPunct(token.LAngle)
	shape, err := p.nonScalarShape()
	if err != nil {
		return nil, token.Range{}, err
	}
	if _, err := p.c.expectKeyword(token.KwX); err != nil {
		return nil, token.Range{}, err
	}
	dt, err := p.dataType()
	if err != nil {
		return nil, token.Range{}, err
	}
	close, err := p.c.expectPunct(token.RAngle)
	if err != nil {
		return nil, token.Range{}, err
	}
	return ir.TensorType{Shape: shape, DT: dt.DataType}, open.Range.Join(close.Range), nil
}

// parseTupleOrFuncType parses `(type-list)` and, if immediately
// followed by `->`, consumes the result type and becomes a function
// type instead of a tuple (spec §4.4).
func (p *Parser) parseTupleOrFuncType() (ir.Type, token.Range, error) {
	open, _ := p.c.expectPunct(token.LParen)
	var elems []ir.Type
	for !p.c.isPunct(token.RParen) {
		typ, _, err := p.parseType()
		if err != nil {
			return nil, token.Range{}, err
		}
		elems = append(elems, typ)
		if _, ok := p.c.acceptPunct(token.Comma); !ok {
			break
		}
		p.c.skipNewlines()
	}
	close, err := p.c.expectPunct(token.RParen)
	if err != nil {
		return nil, token.Range{}, err
	}
	if _, ok := p.c.acceptPunct(token.Arrow); ok {
		result, rng, err := p.parseType()
		if err != nil {
			return nil, token.Range{}, err
		}
		return ir.FunctionType{Args: elems, Result: result}, open.Range.Join(rng), nil
	}
	return ir.TupleType{Elems: elems}, open.Range.Join(close.Range), nil
}
