package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// isInstructionIntroducer reports whether the next token can start an
// instruction statement: a temp id, an anonymous slot, or an opcode
// (spec §4.7 — used by the basic-block loop to know when to stop).
func (p *Parser) isInstructionIntroducer() bool {
	t, ok := p.c.peek()
	if !ok {
		return false
	}
	switch t.Kind {
	case token.IdentTok:
		return t.IdentKind == token.Temporary
	case token.AnonymousTok, token.OpcodeTok:
		return true
	default:
		return false
	}
}

// parseInstruction implements one instruction statement (spec §4.6):
//
//	<temp_id> = <kind>
//	<anon_slot> = <kind>
//	<kind>                     // result unnamed; a non-void result is discarded
func (p *Parser) parseInstruction() error {
	var nameTok token.Token
	hasTempName, hasAnonName := false, false

	t, ok := p.c.peek()
	if !ok {
		return perror.UnexpectedEndOfInputf(p.c.endRange(), "an instruction")
	}
	if next, hasNext := p.c.peekNext(); hasNext && next.Kind == token.PunctTok && next.Punct == token.Equal {
		switch t.Kind {
		case token.IdentTok:
			if t.IdentKind != token.Temporary {
				return perror.UnexpectedIdentifierKindf(t.Range, token.Temporary, t)
			}
			var err error
			nameTok, err = p.identifier(token.Temporary, true)
			if err != nil {
				return err
			}
			hasTempName = true
		case token.AnonymousTok:
			nameTok = t
			p.c.advance()
			hasAnonName = true
		}
		if hasTempName || hasAnonName {
			if _, err := p.c.expectPunct(token.Equal); err != nil {
				return err
			}
		}
	}

	stmtStart, _ := p.c.peek()
	kind, err := p.parseInstructionKind()
	if err != nil {
		return err
	}
	resultType := kind.ResultType()
	if _, ok := resultType.(ir.InvalidType); ok {
		return perror.InvalidOperandsf(stmtStart.Range, kind.Opcode())
	}

	// An unnamed statement whose kind is non-void is accepted: the value
	// is simply discarded. Only the reverse (naming a void value) is a
	// diagnosed error.
	named := hasTempName || hasAnonName
	if named && resultType.Kind() == ir.VoidKind {
		return perror.CannotNameVoidValuef(nameTok.Range)
	}

	inst := &ir.Instruction{Kind: kind, Parent: p.curBlock.bb}
	if hasAnonName {
		if err := p.checkAnonymousDefinition(nameTok); err != nil {
			return err
		}
		inst.Anonymous = true
	}
	if hasTempName {
		inst.InstName = nameTok.Name
	}
	p.curBlock.bb.Instructions = append(p.curBlock.bb.Instructions, inst)
	if hasTempName {
		if err := p.sym.defineLocal(nameTok.Range, nameTok.Name, inst); err != nil {
			return err
		}
	}
	return nil
}

// checkAnonymousDefinition validates that a `#bbIndex.instIndex = ...`
// definition matches the position it is actually being defined at
// (spec §3: exact match, not just a valid back-reference).
func (p *Parser) checkAnonymousDefinition(t token.Token) error {
	wantBB := p.curBlock.index
	wantInst := len(p.curBlock.bb.Instructions)
	if t.BBIndex != wantBB || t.InstIndex != wantInst {
		return perror.InvalidAnonymousIdentifierIndexf(t.Range, t.BBIndex, t.InstIndex)
	}
	return nil
}

// resolveAnonymous validates and resolves a use of `#bbIndex.instIndex`
// against the function's layout so far (spec §3).
func (p *Parser) resolveAnonymous(t token.Token) (*ir.Instruction, error) {
	var target *ir.BasicBlock
	switch {
	case t.BBIndex == p.curBlock.index:
		target = p.curBlock.bb
	case t.BBIndex >= 0 && t.BBIndex < p.curBlock.index:
		target = p.curFunc.blocks[t.BBIndex]
	default:
		return nil, perror.InvalidAnonymousIdentifierIndexf(t.Range, t.BBIndex, t.InstIndex)
	}
	if t.InstIndex < 0 || t.InstIndex >= len(target.Instructions) {
		return nil, perror.InvalidAnonymousIdentifierIndexf(t.Range, t.BBIndex, t.InstIndex)
	}
	inst := target.Instructions[t.InstIndex]
	if !inst.Anonymous {
		return nil, perror.InvalidAnonymousIdentifierIndexf(t.Range, t.BBIndex, t.InstIndex)
	}
	return inst, nil
}

// parseInstructionKind dispatches on the opcode and returns its
// InstructionKind (spec §4.6 dispatch table).
func (p *Parser) parseInstructionKind() (ir.InstructionKind, error) {
	t, ok := p.c.peek()
	if !ok {
		return nil, perror.UnexpectedEndOfInputf(p.c.endRange(), "an instruction")
	}
	if t.Kind != token.OpcodeTok {
		return nil, perror.UnexpectedTokenf(t.Range, "an instruction", t)
	}
	p.c.advance()
	switch t.Op {
	case token.OpBranch:
		return p.parseBranch()
	case token.OpConditional:
		return p.parseConditional()
	case token.OpReturn:
		return p.parseReturn()
	case token.OpDataTypeCast:
		return p.parseDataTypeCast()
	case token.OpScan:
		return p.parseScanReduce(true)
	case token.OpReduce:
		return p.parseScanReduce(false)
	case token.OpMatrixMultiply:
		return p.parseMatMul()
	case token.OpConcatenate:
		return p.parseConcat()
	case token.OpTranspose:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.TransposeInst{Operand: use}, nil
	case token.OpShapeCast:
		return p.parseShapeCast()
	case token.OpBitCast:
		return p.parseBitCast()
	case token.OpExtract:
		return p.parseExtract()
	case token.OpInsert:
		return p.parseInsert()
	case token.OpApply:
		return p.parseApply()
	case token.OpAllocateStack:
		return p.parseAllocateStack()
	case token.OpAllocateHeap:
		return p.parseAllocateHeap()
	case token.OpAllocateBox:
		typ, _, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ir.AllocBoxInst{BoxedType: typ}, nil
	case token.OpProjectBox:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.ProjectBoxInst{Operand: use}, nil
	case token.OpRetain:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.RetainInst{Operand: use}, nil
	case token.OpRelease:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.ReleaseInst{Operand: use}, nil
	case token.OpDeallocate:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.DeallocInst{Operand: use}, nil
	case token.OpLoad:
		use, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		return ir.LoadInst{Operand: use}, nil
	case token.OpStore:
		return p.parseStore()
	case token.OpElementPointer:
		return p.parseElementPointer()
	case token.OpCopy:
		return p.parseCopy()
	case token.OpTrap:
		return ir.TrapInst{}, nil
	case token.OpBinary:
		return p.parseBinary(t.BinOp)
	case token.OpUnary:
		return p.parseUnary(t.BinOp)
	default:
		return nil, perror.UnexpectedTokenf(t.Range, "an opcode", t)
	}
}

func (p *Parser) parseBranch() (ir.InstructionKind, error) {
	bb, err := p.identifier(token.BasicBlock, false)
	if err != nil {
		return nil, err
	}
	target, err := p.sym.lookupBasicBlock(bb.Range, bb.Name)
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.useList(func() bool { return p.c.isPunct(token.RParen) })
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return ir.BranchInst{Target: target, Args: args}, nil
}

func (p *Parser) parseConditional() (ir.InstructionKind, error) {
	cond, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwThen); err != nil {
		return nil, err
	}
	thenBB, thenArgs, err := p.branchTarget()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwElse); err != nil {
		return nil, err
	}
	elseBB, elseArgs, err := p.branchTarget()
	if err != nil {
		return nil, err
	}
	return ir.CondBranchInst{Cond: cond, Then: thenBB, ThenArgs: thenArgs, Else: elseBB, ElseArgs: elseArgs}, nil
}

func (p *Parser) branchTarget() (*ir.BasicBlock, []ir.Use, error) {
	bb, err := p.identifier(token.BasicBlock, false)
	if err != nil {
		return nil, nil, err
	}
	target, err := p.sym.lookupBasicBlock(bb.Range, bb.Name)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.c.expectPunct(token.LParen); err != nil {
		return nil, nil, err
	}
	args, err := p.useList(func() bool { return p.c.isPunct(token.RParen) })
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.c.expectPunct(token.RParen); err != nil {
		return nil, nil, err
	}
	return target, args, nil
}

// parseReturn implements `return` | `return <use>`. The bare form is
// recognized iff the next token is a newline (spec §4.6, §9 Open
// Question 4): newlines must not be eagerly consumed before this check.
func (p *Parser) parseReturn() (ir.InstructionKind, error) {
	if t, ok := p.c.peek(); ok && t.Kind == token.Newline {
		return ir.ReturnInst{}, nil
	}
	if _, ok := p.c.peek(); !ok {
		return ir.ReturnInst{}, nil
	}
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.ReturnInst{Value: use}, nil
}

func (p *Parser) parseDataTypeCast() (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	dt, err := p.dataType()
	if err != nil {
		return nil, err
	}
	return ir.DataTypeCastInst{Operand: use, To: dt.DataType}, nil
}

func (p *Parser) parseScanReduce(isScan bool) (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwBy); err != nil {
		return nil, err
	}
	comb, err := p.parseCombinator()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwAlong); err != nil {
		return nil, err
	}
	along, err := p.intList()
	if err != nil {
		return nil, err
	}
	if isScan {
		return ir.ScanInst{Operand: use, Combinator: comb, Along: along}, nil
	}
	return ir.ReduceInst{Operand: use, Combinator: comb, Along: along}, nil
}

func (p *Parser) parseMatMul() (ir.InstructionKind, error) {
	lhs, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.wrapPunct(token.Comma); err != nil {
		return nil, err
	}
	rhs, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.MatMulInst{LHS: lhs, RHS: rhs}, nil
}

func (p *Parser) parseConcat() (ir.InstructionKind, error) {
	first, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	ops := []ir.Use{first}
	for {
		_, hasComma, err := backtracking(p.c, func() (struct{}, bool, error) {
			p.c.skipNewlines()
			if _, ok := p.c.acceptPunct(token.Comma); !ok {
				return struct{}{}, false, nil
			}
			p.c.skipNewlines()
			return struct{}{}, true, nil
		})
		if err != nil {
			return nil, err
		}
		if !hasComma {
			break
		}
		u, err := p.parseUse()
		if err != nil {
			return nil, err
		}
		ops = append(ops, u)
	}
	if _, err := p.c.expectKeyword(token.KwAlong); err != nil {
		return nil, err
	}
	along, err := p.integer()
	if err != nil {
		return nil, err
	}
	return ir.ConcatInst{Operands: ops, Along: along.IntVal}, nil
}

func (p *Parser) parseShapeCast() (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	if _, ok := p.c.acceptKeyword(token.KwScalar); ok {
		return ir.ShapeCastInst{Operand: use, To: ir.TensorShape{}}, nil
	}
	shape, err := p.nonScalarShape()
	if err != nil {
		return nil, err
	}
	return ir.ShapeCastInst{Operand: use, To: shape}, nil
}

func (p *Parser) parseBitCast() (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	typ, _, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ir.BitCastInst{Operand: use, To: typ}, nil
}

func (p *Parser) parseExtract() (ir.InstructionKind, error) {
	keys, err := p.keyList()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwFrom); err != nil {
		return nil, err
	}
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.ExtractInst{Keys: keys, Operand: use}, nil
}

func (p *Parser) parseInsert() (ir.InstructionKind, error) {
	value, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	to, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwAt); err != nil {
		return nil, err
	}
	keys, err := p.keyList()
	if err != nil {
		return nil, err
	}
	return ir.InsertInst{Value: value, To: to, Keys: keys}, nil
}

// parseApply implements `apply <global-or-temp-id>(use-list) : <type>`.
// The written type becomes the call's result type; it is not checked
// against the callee's declared result type, and the callee use keeps
// the callee's own type (spec §9 Open Question 1, see DESIGN.md).
func (p *Parser) parseApply() (ir.InstructionKind, error) {
	t, ok := p.c.peek()
	if !ok {
		return nil, perror.UnexpectedEndOfInputf(p.c.endRange(), "a function reference")
	}
	if t.Kind != token.IdentTok || (t.IdentKind != token.Global && t.IdentKind != token.Temporary) {
		return nil, perror.UnexpectedIdentifierKindf(t.Range, token.Global, t)
	}
	p.c.advance()
	var callee ir.Value
	var err error
	if t.IdentKind == token.Global {
		callee, err = p.sym.lookupGlobal(t.Range, t.Name)
	} else {
		callee, err = p.sym.lookupLocal(t.Range, t.Name)
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.useList(func() bool { return p.c.isPunct(token.RParen) })
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	resultType, _, err := p.typeSignature()
	if err != nil {
		return nil, err
	}
	calleeUse := ir.DefUse{Typ: callee.ValueType(), Value: callee}
	return ir.ApplyInst{Callee: calleeUse, Args: args, Result: resultType}, nil
}

func (p *Parser) parseAllocateStack() (ir.InstructionKind, error) {
	typ, _, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwCount); err != nil {
		return nil, err
	}
	count, err := p.integer()
	if err != nil {
		return nil, err
	}
	return ir.AllocStackInst{ElemType: typ, Count: count.IntVal}, nil
}

func (p *Parser) parseAllocateHeap() (ir.InstructionKind, error) {
	typ, _, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwCount); err != nil {
		return nil, err
	}
	count, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.AllocHeapInst{ElemType: typ, Count: count}, nil
}

func (p *Parser) parseStore() (ir.InstructionKind, error) {
	value, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	to, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.StoreInst{Value: value, To: to}, nil
}

func (p *Parser) parseElementPointer() (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwAt); err != nil {
		return nil, err
	}
	keys, err := p.keyList()
	if err != nil {
		return nil, err
	}
	return ir.ElementPtrInst{Operand: use, Keys: keys}, nil
}

func (p *Parser) parseCopy() (ir.InstructionKind, error) {
	if _, err := p.c.expectKeyword(token.KwFrom); err != nil {
		return nil, err
	}
	from, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwTo); err != nil {
		return nil, err
	}
	to, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.expectKeyword(token.KwCount); err != nil {
		return nil, err
	}
	count, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.CopyInst{From: from, To: to, Count: count}, nil
}

func (p *Parser) parseBinary(op token.AssocOp) (ir.InstructionKind, error) {
	lhs, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	if _, err := p.c.wrapPunct(token.Comma); err != nil {
		return nil, err
	}
	rhs, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.BinaryInst{Op: op, LHS: lhs, RHS: rhs}, nil
}

func (p *Parser) parseUnary(op token.AssocOp) (ir.InstructionKind, error) {
	use, err := p.parseUse()
	if err != nil {
		return nil, err
	}
	return ir.UnaryInst{Op: op, Operand: use}, nil
}
