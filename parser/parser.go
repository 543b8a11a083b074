// Package parser implements a hand-written recursive-descent parser
// for the textual SSA intermediate representation described in
// SPEC_FULL.md. Given a token stream (or source text, which is first
// handed to package lexer), it builds a fully-resolved *ir.Module:
// every global, local, basic-block label, and nominal-type reference
// is checked against a symbol table, and every use's written type
// signature is checked against the type of what it refers to.
//
// Parsing aborts at the first error: there is no recovery past a
// first fatal diagnostic (SPEC_FULL.md §1, spec §7).
package parser

import (
	"github.com/rxwei/dlvm-core/lexer"
	"github.com/rxwei/dlvm-core/token"
)

// Parser holds the token cursor and the symbol table for a single
// ParseModule call. It is not safe for concurrent or repeated use:
// create a fresh Parser per module (spec §5 — the symbol table is
// owned exclusively by one parse).
type Parser struct {
	c   *cursor
	sym *symbolTable

	// curFunc/curBlock track the function/block currently being
	// parsed, needed to validate anonymous SSA references (spec §3).
	curFunc  *funcBuildState
	curBlock *blockBuildState
}

// New creates a Parser from a pre-lexed token array.
func New(tokens []token.Token) *Parser {
	return &Parser{
		c:   newCursor(tokens),
		sym: newSymbolTable(),
	}
}

// NewFromSource lexes src and creates a Parser over the resulting
// tokens. The lexer is an assumed external collaborator per spec §1;
// this is the constructor's "or source text" branch (spec §6).
func NewFromSource(src []byte) (*Parser, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return New(tokens), nil
}
