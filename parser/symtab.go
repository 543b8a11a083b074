package parser

import (
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// symbolTable is the four name->entity mappings the parser resolves
// against (spec §4.2): module-scoped globals and nominal types, plus
// function-scoped locals and basic-block labels.
type symbolTable struct {
	globals      map[string]ir.Value
	locals       map[string]ir.Value
	basicBlocks  map[string]*ir.BasicBlock
	nominalTypes map[string]ir.Type
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		globals:      make(map[string]ir.Value),
		locals:       make(map[string]ir.Value),
		basicBlocks:  make(map[string]*ir.BasicBlock),
		nominalTypes: make(map[string]ir.Type),
	}
}

func (s *symbolTable) defineGlobal(rng token.Range, name string, v ir.Value) error {
	if _, ok := s.globals[name]; ok {
		return perror.RedefinedIdentifierf(rng, name)
	}
	s.globals[name] = v
	return nil
}

func (s *symbolTable) lookupGlobal(rng token.Range, name string) (ir.Value, error) {
	v, ok := s.globals[name]
	if !ok {
		return nil, perror.UndefinedIdentifierf(rng, name)
	}
	return v, nil
}

func (s *symbolTable) defineLocal(rng token.Range, name string, v ir.Value) error {
	if _, ok := s.locals[name]; ok {
		return perror.RedefinedIdentifierf(rng, name)
	}
	s.locals[name] = v
	return nil
}

func (s *symbolTable) lookupLocal(rng token.Range, name string) (ir.Value, error) {
	v, ok := s.locals[name]
	if !ok {
		return nil, perror.UndefinedIdentifierf(rng, name)
	}
	return v, nil
}

func (s *symbolTable) defineBasicBlock(rng token.Range, name string, bb *ir.BasicBlock) error {
	if _, ok := s.basicBlocks[name]; ok {
		return perror.RedefinedIdentifierf(rng, name)
	}
	s.basicBlocks[name] = bb
	return nil
}

func (s *symbolTable) lookupBasicBlock(rng token.Range, name string) (*ir.BasicBlock, error) {
	bb, ok := s.basicBlocks[name]
	if !ok {
		return nil, perror.UndefinedIdentifierf(rng, name)
	}
	return bb, nil
}

func (s *symbolTable) defineNominalType(rng token.Range, name string, t ir.Type) error {
	if _, ok := s.nominalTypes[name]; ok {
		return perror.RedefinedIdentifierf(rng, name)
	}
	s.nominalTypes[name] = t
	return nil
}

func (s *symbolTable) lookupNominalType(rng token.Range, name string) (ir.Type, error) {
	t, ok := s.nominalTypes[name]
	if !ok {
		return nil, perror.UndefinedNominalTypef(rng, name)
	}
	return t, nil
}

// clearFunctionScope empties the function- and block-scoped mappings
// at the end of a function (spec §4.2, §8 property 5).
func (s *symbolTable) clearFunctionScope() {
	s.locals = make(map[string]ir.Value)
	s.basicBlocks = make(map[string]*ir.BasicBlock)
}
