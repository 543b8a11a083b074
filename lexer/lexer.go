// Package lexer turns source bytes into the token stream package
// parser consumes. No third-party scanner/lexer library appears
// anywhere in the retrieved reference corpus (see DESIGN.md); like
// package token, it is built on the standard library alone.
package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/rxwei/dlvm-core/token"
)

// LexError is returned for a byte sequence the lexer cannot turn into
// a token.
type LexError struct {
	Pos     token.Pos
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.Message, e.Pos)
}

type lexer struct {
	src    []byte
	pos    int
	tokens []token.Token
}

// Lex tokenizes src in full, or returns the first LexError encountered.
func Lex(src []byte) ([]token.Token, error) {
	l := &lexer{src: src}
	for !l.atEnd() {
		if err := l.lexOne(); err != nil {
			return nil, err
		}
	}
	l.emit(token.Token{Kind: token.Eof, Range: token.Range{Low: token.Pos(len(src)), High: token.Pos(len(src))}})
	return l.tokens, nil
}

func (l *lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) emit(t token.Token) { l.tokens = append(l.tokens, t) }

func (l *lexer) errorf(pos token.Pos, format string, a ...any) error {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, a...)}
}

func (l *lexer) lexOne() error {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '\n':
		l.pos++
		l.emit(token.Token{Kind: token.Newline, Range: rng(start, l.pos)})
		return nil
	case c == ' ' || c == '\t' || c == '\r':
		l.pos++
		return nil
	case c == '/' && l.peekByteAt(1) == '/':
		for !l.atEnd() && l.src[l.pos] != '\n' {
			l.pos++
		}
		return nil
	case c == '"':
		return l.lexString()
	case c == '@':
		return l.lexIdent(token.Global, start)
	case c == '\'':
		l.pos++
		return l.lexIdent(token.BasicBlock, start)
	case c == '#':
		return l.lexHash(start)
	case c == '%':
		return l.lexPercent(start)
	case isDigit(c) || (c == '-' && isDigit(l.peekByteAt(1))):
		return l.lexNumber(start)
	case isLetter(c):
		return l.lexWord(start)
	default:
		return l.lexPunct(start)
	}
}

func rng(low, high int) token.Range {
	return token.Range{Low: token.Pos(low), High: token.Pos(high)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isLetter(c) || isDigit(c) }

// lexIdent consumes a bare-name identifier after a sigil already
// positioned at start (for '@'/'\'' the sigil byte is skipped here or
// by the caller).
func (l *lexer) lexIdent(kind token.IdentKind, start int) error {
	if l.src[l.pos] == '@' {
		l.pos++
	}
	nameStart := l.pos
	for !l.atEnd() && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == nameStart {
		return l.errorf(token.Pos(start), "expected an identifier after sigil")
	}
	name := string(l.src[nameStart:l.pos])
	l.emit(token.Token{Kind: token.IdentTok, IdentKind: kind, Name: name, Range: rng(start, l.pos)})
	return nil
}

// lexPercent disambiguates `%temp` from `%TypeIdent`: a name starting
// with an upper-case letter is a nominal-type identifier, matching the
// convention the rest of the grammar's `%Foo` vs `%foo` spellings
// assume (see DESIGN.md).
func (l *lexer) lexPercent(start int) error {
	l.pos++
	nameStart := l.pos
	for !l.atEnd() && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == nameStart {
		return l.errorf(token.Pos(start), "expected an identifier after '%%'")
	}
	name := string(l.src[nameStart:l.pos])
	kind := token.Temporary
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		kind = token.TypeIdent
	}
	l.emit(token.Token{Kind: token.IdentTok, IdentKind: kind, Name: name, Range: rng(start, l.pos)})
	return nil
}

// lexHash disambiguates `#bb.inst` (an anonymous SSA reference) from
// `#name` (a record field key).
func (l *lexer) lexHash(start int) error {
	l.pos++
	if !l.atEnd() && isDigit(l.src[l.pos]) {
		bbStart := l.pos
		for !l.atEnd() && isDigit(l.src[l.pos]) {
			l.pos++
		}
		bbIndex, err := strconv.ParseInt(string(l.src[bbStart:l.pos]), 10, 64)
		if err != nil {
			return l.errorf(token.Pos(bbStart), "malformed anonymous identifier")
		}
		if l.atEnd() || l.src[l.pos] != '.' {
			return l.errorf(token.Pos(l.pos), "expected '.' in anonymous identifier")
		}
		l.pos++
		instStart := l.pos
		for !l.atEnd() && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == instStart {
			return l.errorf(token.Pos(l.pos), "expected an instruction index in anonymous identifier")
		}
		instIndex, err := strconv.ParseInt(string(l.src[instStart:l.pos]), 10, 64)
		if err != nil {
			return l.errorf(token.Pos(instStart), "malformed anonymous identifier")
		}
		l.emit(token.Token{
			Kind: token.AnonymousTok, BBIndex: int(bbIndex), InstIndex: int(instIndex),
			Range: rng(start, l.pos),
		})
		return nil
	}
	nameStart := l.pos
	for !l.atEnd() && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == nameStart {
		return l.errorf(token.Pos(start), "expected a key name or anonymous identifier after '#'")
	}
	name := string(l.src[nameStart:l.pos])
	l.emit(token.Token{Kind: token.IdentTok, IdentKind: token.Key, Name: name, Range: rng(start, l.pos)})
	return nil
}

func (l *lexer) lexString() error {
	start := l.pos
	l.pos++
	var sb []byte
	for {
		if l.atEnd() {
			return l.errorf(token.Pos(start), "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' && !l.atEndAt(1) {
			l.pos++
			sb = append(sb, escapeByte(l.src[l.pos]))
			l.pos++
			continue
		}
		sb = append(sb, c)
		l.pos++
	}
	l.emit(token.Token{Kind: token.StringTok, StrVal: string(sb), Range: rng(start, l.pos)})
	return nil
}

func (l *lexer) atEndAt(offset int) bool { return l.pos+offset >= len(l.src) }

func escapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (l *lexer) lexNumber(start int) error {
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for !l.atEnd() && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if !l.atEnd() && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		for !l.atEnd() && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if !l.atEnd() && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if !l.atEnd() && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for !l.atEnd() && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := string(l.src[start:l.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorf(token.Pos(start), "malformed float literal %q", text)
		}
		l.emit(token.Token{Kind: token.FloatTok, FloatVal: v, Range: rng(start, l.pos)})
		return nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.errorf(token.Pos(start), "malformed integer literal %q", text)
	}
	l.emit(token.Token{Kind: token.IntegerTok, IntVal: v, Range: rng(start, l.pos)})
	return nil
}

// lexWord consumes a bare run of letters/digits and classifies it as a
// data type, keyword, opcode, binary/unary operator, or attribute, in
// that priority order (the vocabularies are disjoint in practice).
func (l *lexer) lexWord(start int) error {
	for !l.atEnd() && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	word := string(l.src[start:l.pos])
	r := rng(start, l.pos)

	if dt, ok := token.DataTypes[word]; ok {
		l.emit(token.Token{Kind: token.DataTypeTok, DataType: dt, Range: r})
		return nil
	}
	if kw, ok := token.Keywords[word]; ok {
		l.emit(token.Token{Kind: token.KeywordTok, Keyword: kw, Range: r})
		return nil
	}
	if op, ok := token.Opcodes[word]; ok {
		l.emit(token.Token{Kind: token.OpcodeTok, Op: op, Range: r})
		return nil
	}
	if bo, ok := token.BinaryAssocOps[word]; ok {
		l.emit(token.Token{Kind: token.OpcodeTok, Op: token.OpBinary, BinOp: bo, Range: r})
		return nil
	}
	if uo, ok := token.UnaryAssocOps[word]; ok {
		l.emit(token.Token{Kind: token.OpcodeTok, Op: token.OpUnary, BinOp: uo, Range: r})
		return nil
	}
	switch word {
	case "inline":
		l.emit(token.Token{Kind: token.AttributeTok, Attribute: token.AttrInline, Range: r})
		return nil
	case "noinline":
		l.emit(token.Token{Kind: token.AttributeTok, Attribute: token.AttrNoInline, Range: r})
		return nil
	case "differentiable":
		l.emit(token.Token{Kind: token.AttributeTok, Attribute: token.AttrDifferentiable, Range: r})
		return nil
	}
	return l.errorf(token.Pos(start), "unrecognized word %q", word)
}

func (l *lexer) lexPunct(start int) error {
	c := l.src[l.pos]
	two := string(l.src[l.pos : l.pos+minInt(2, len(l.src)-l.pos)])
	if two == "->" {
		l.pos += 2
		l.emit(token.Token{Kind: token.PunctTok, Punct: token.Arrow, Range: rng(start, l.pos)})
		return nil
	}
	single := map[byte]token.Punct{
		',': token.Comma, ';': token.Semicolon, ':': token.Colon, '=': token.Equal,
		'*': token.Star, '(': token.LParen, ')': token.RParen, '[': token.LBracket,
		']': token.RBracket, '{': token.LBrace, '}': token.RBrace,
		'<': token.LAngle, '>': token.RAngle,
	}
	p, ok := single[c]
	if !ok {
		return l.errorf(token.Pos(start), "unrecognized character %q", string(c))
	}
	l.pos++
	l.emit(token.Token{Kind: token.PunctTok, Punct: p, Range: rng(start, l.pos)})
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
