package parser

import (
	"github.com/rxwei/dlvm-core/parser/perror"
	"github.com/rxwei/dlvm-core/token"
)

// cursor owns an immutable token array and a mutable position into it
// (spec §4.1). It never mutates the underlying slice; backtracking is
// just restoring the position.
type cursor struct {
	tokens []token.Token
	pos    int
}

func newCursor(tokens []token.Token) *cursor {
	return &cursor{tokens: tokens}
}

// save/restore/commit implement the snapshot half of backtracking
// (spec §5): save before a speculative parse, restore on an absent
// result, do nothing (commit) on success.
func (c *cursor) save() int      { return c.pos }
func (c *cursor) restore(p int)  { c.pos = p }

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.tokens)
}

// peek returns the next token without consuming it, or false at end of input.
func (c *cursor) peek() (token.Token, bool) {
	if c.atEnd() {
		return token.Token{}, false
	}
	return c.tokens[c.pos], true
}

// peekNext returns the token after the next one, or false.
func (c *cursor) peekNext() (token.Token, bool) {
	if c.pos+1 >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[c.pos+1], true
}

// advance consumes and returns the next token. Callers must check
// atEnd()/peek() first; advancing past the end panics, by contract.
func (c *cursor) advance() token.Token {
	t := c.tokens[c.pos]
	c.pos++
	return t
}

func (c *cursor) endRange() token.Range {
	if len(c.tokens) == 0 {
		return token.Range{}
	}
	last := c.tokens[len(c.tokens)-1]
	return token.Range{Low: last.Range.High, High: last.Range.High}
}

// expectKind consumes the next token if its Kind equals k, else fails.
func (c *cursor) expectKind(k token.Kind, expected string) (token.Token, error) {
	t, ok := c.peek()
	if !ok {
		return token.Token{}, perror.UnexpectedEndOfInputf(c.endRange(), expected)
	}
	if t.Kind != k {
		return token.Token{}, perror.UnexpectedTokenf(t.Range, expected, t)
	}
	return c.advance(), nil
}

// acceptKind consumes the next token iff its Kind equals k.
func (c *cursor) acceptKind(k token.Kind) (token.Token, bool) {
	t, ok := c.peek()
	if !ok || t.Kind != k {
		return token.Token{}, false
	}
	return c.advance(), true
}

// expectPunct consumes punctuation p, failing otherwise.
func (c *cursor) expectPunct(p token.Punct) (token.Token, error) {
	t, ok := c.peek()
	if !ok {
		return token.Token{}, perror.UnexpectedEndOfInputf(c.endRange(), "'"+p.String()+"'")
	}
	if t.Kind != token.PunctTok || t.Punct != p {
		return token.Token{}, perror.UnexpectedTokenf(t.Range, "'"+p.String()+"'", t)
	}
	return c.advance(), nil
}

// acceptPunct consumes punctuation p iff present.
func (c *cursor) acceptPunct(p token.Punct) (token.Token, bool) {
	t, ok := c.peek()
	if !ok || t.Kind != token.PunctTok || t.Punct != p {
		return token.Token{}, false
	}
	return c.advance(), true
}

// expectKeyword consumes keyword k, failing otherwise.
func (c *cursor) expectKeyword(k token.Keyword) (token.Token, error) {
	t, ok := c.peek()
	if !ok {
		return token.Token{}, perror.UnexpectedEndOfInputf(c.endRange(), "'"+k.String()+"'")
	}
	if t.Kind != token.KeywordTok || t.Keyword != k {
		return token.Token{}, perror.UnexpectedTokenf(t.Range, "'"+k.String()+"'", t)
	}
	return c.advance(), nil
}

// acceptKeyword consumes keyword k iff present.
func (c *cursor) acceptKeyword(k token.Keyword) (token.Token, bool) {
	t, ok := c.peek()
	if !ok || t.Kind != token.KeywordTok || t.Keyword != k {
		return token.Token{}, false
	}
	return c.advance(), true
}

// isKeyword reports whether the next token is keyword k, without consuming it.
func (c *cursor) isKeyword(k token.Keyword) bool {
	t, ok := c.peek()
	return ok && t.Kind == token.KeywordTok && t.Keyword == k
}

// isPunct reports whether the next token is punctuation p, without consuming it.
func (c *cursor) isPunct(p token.Punct) bool {
	t, ok := c.peek()
	return ok && t.Kind == token.PunctTok && t.Punct == p
}

// skipNewlines consumes any run of newline tokens.
func (c *cursor) skipNewlines() {
	for {
		if _, ok := c.acceptKind(token.Newline); !ok {
			return
		}
	}
}

// oneOrMoreNewlines expects at least one newline, then consumes any
// further run of them.
func (c *cursor) oneOrMoreNewlines() error {
	if _, err := c.expectKind(token.Newline, "a newline"); err != nil {
		return err
	}
	c.skipNewlines()
	return nil
}

// wrapPunct consumes any newlines, expects punctuation p, then consumes
// any newlines again. Used wherever the grammar permits line-breaks
// around a token (commas, braces, arrows — spec §4.1).
func (c *cursor) wrapPunct(p token.Punct) (token.Token, error) {
	c.skipNewlines()
	t, err := c.expectPunct(p)
	if err != nil {
		return t, err
	}
	c.skipNewlines()
	return t, nil
}

// backtracking runs f; if f returns (zero, false, nil) ("absent"), the
// cursor is restored to its position before the call. An error from f
// propagates unchanged without being treated as absent (spec §5/§7:
// backtracking does not swallow errors).
func backtracking[T any](c *cursor, f func() (T, bool, error)) (T, bool, error) {
	save := c.save()
	v, ok, err := f()
	if err != nil {
		return v, false, err
	}
	if !ok {
		c.restore(save)
	}
	return v, ok, nil
}

// preserved runs f for its side effects on the symbol table, then
// unconditionally restores the cursor position. Used by the two
// pre-scans (function prototypes, basic-block labels) that need to
// read ahead without consuming.
func preserved(c *cursor, f func() error) error {
	save := c.save()
	err := f()
	c.restore(save)
	return err
}
