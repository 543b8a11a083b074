package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/token"
)

// parseElementKey parses one `<key>` (spec §4.6): a positional index,
// a record field name, or a dynamically computed use.
func (p *Parser) parseElementKey() (ir.ElementKey, error) {
	t, ok := p.c.peek()
	if ok && t.Kind == token.IntegerTok {
		p.c.advance()
		return ir.IndexKey{Index: t.IntVal}, nil
	}
	if ok && t.Kind == token.IdentTok && t.IdentKind == token.Key {
		p.c.advance()
		return ir.NameKey{Name: t.Name}, nil
	}
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.ValueKey{Use: use}, nil
}

// keyList parses `<key> (, <key>)*`.
func (p *Parser) keyList() ([]ir.ElementKey, error) {
	first, err := p.parseElementKey()
	if err != nil {
		return nil, err
	}
	keys := []ir.ElementKey{first}
	for {
		if _, ok := p.c.acceptPunct(token.Comma); !ok {
			return keys, nil
		}
		p.c.skipNewlines()
		k, err := p.parseElementKey()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
}

// intList parses `<int> (, <int>)*`, used by scan/reduce axes and by
// the gradient declaration's wrt/keeping lists.
func (p *Parser) intList() ([]int64, error) {
	first, err := p.integer()
	if err != nil {
		return nil, err
	}
	ints := []int64{first.IntVal}
	for {
		if _, ok := p.c.acceptPunct(token.Comma); !ok {
			return ints, nil
		}
		p.c.skipNewlines()
		t, err := p.integer()
		if err != nil {
			return nil, err
		}
		ints = append(ints, t.IntVal)
	}
}

// parseCombinator parses a scan/reduce combinator: either a use
// (a function value) or a bare associative binary-op token (spec
// §4.6, §9 Open Question 3 — no type check on a function combinator
// is performed here; left to later verification).
func (p *Parser) parseCombinator() (ir.ReductionCombinator, error) {
	if t, ok := p.c.peek(); ok && t.Kind == token.OpcodeTok && (t.Op == token.OpBinary) {
		p.c.advance()
		return ir.OpCombinator{Op: t.BinOp}, nil
	}
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.FuncCombinator{Use: use}, nil
}
