package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/token"
)

// blockBuildState tracks the basic block currently being parsed: its
// IR node and its position within the enclosing function, needed to
// validate anonymous SSA references against it (spec §3).
type blockBuildState struct {
	bb    *ir.BasicBlock
	index int
}

// funcBuildState tracks the function currently being parsed: its IR
// node and the blocks parsed so far, in order, so that later blocks
// (and anonymous references within them) can see earlier ones.
type funcBuildState struct {
	fn     *ir.Function
	blocks []*ir.BasicBlock
}

// prescanBasicBlockLabels registers every basic-block label that will
// be defined in this function body, before any block body is parsed,
// so that an early block's branch instruction can jump forward to a
// block defined later in the same function (spec §3, §6).
//
// It reads ahead over the whole `{ ... }` body without consuming it:
// the cursor is restored when done (see preserved).
func (p *Parser) prescanBasicBlockLabels() error {
	return preserved(p.c, func() error {
		depth := 0
		// A label is a block header only at the start of a line; a label
		// in the middle of a line (a branch target) is a reference.
		atLineStart := true
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
				if depth == 0 {
					return nil
				}
				depth--
				p.c.advance()
			case depth == 0 && atLineStart && t.Kind == token.IdentTok && t.IdentKind == token.BasicBlock:
				placeholder := &ir.BasicBlock{BBName: t.Name}
				if err := p.sym.defineBasicBlock(t.Range, t.Name, placeholder); err != nil {
					return err
				}
				p.c.advance()
			default:
				p.c.advance()
			}
			atLineStart = t.Kind == token.Newline
		}
	})
}

// parseBasicBlock implements `bb_header := <bb_id> '(' argument-list ')' ':' newline+`
// followed by the block's instructions, each ended by one or more
// newlines; a block with no instructions is accepted (spec §4.6).
func (p *Parser) parseBasicBlock(index int) error {
	label, err := p.identifier(token.BasicBlock, false)
	if err != nil {
		return err
	}
	bb := p.sym.basicBlocks[label.Name]
	bb.Parent = p.curFunc.fn

	if _, err := p.c.expectPunct(token.LParen); err != nil {
		return err
	}
	args, err := p.parseArgumentList()
	if err != nil {
		return err
	}
	bb.Arguments = args
	for _, a := range args {
		a.Parent = bb
	}
	if _, err := p.c.expectPunct(token.RParen); err != nil {
		return err
	}
	if _, err := p.c.expectPunct(token.Colon); err != nil {
		return err
	}
	if err := p.c.oneOrMoreNewlines(); err != nil {
		return err
	}

	p.curBlock = &blockBuildState{bb: bb, index: index}
	for p.isInstructionIntroducer() {
		if err := p.parseInstruction(); err != nil {
			return err
		}
		if err := p.c.oneOrMoreNewlines(); err != nil {
			return err
		}
	}
	p.curFunc.blocks = append(p.curFunc.blocks, bb)
	p.curFunc.fn.BasicBlocks = append(p.curFunc.fn.BasicBlocks, bb)
	p.curBlock = nil
	return nil
}

// parseArgumentList implements `(ident ':' type (',' ident ':' type)*)?`.
func (p *Parser) parseArgumentList() ([]*ir.Argument, error) {
	var args []*ir.Argument
	for !p.c.isPunct(token.RParen) {
		name, err := p.identifier(token.Temporary, true)
		if err != nil {
			return nil, err
		}
		typ, _, err := p.typeSignature()
		if err != nil {
			return nil, err
		}
		arg := &ir.Argument{ArgName: name.Name, Typ: typ}
		if err := p.sym.defineLocal(name.Range, name.Name, arg); err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.c.acceptPunct(token.Comma); !ok {
			break
		}
		p.c.skipNewlines()
	}
	return args, nil
}
