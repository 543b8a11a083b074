package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rxwei/dlvm-core/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexSigils(t *testing.T) {
	toks, err := Lex([]byte("@foo %bar %Baz 'entry #3.1 #key\n"))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	want := []token.Kind{
		token.IdentTok, token.IdentTok, token.IdentTok, token.IdentTok,
		token.AnonymousTok, token.IdentTok, token.Newline, token.Eof,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch:\n%s", diff)
	}

	if toks[0].IdentKind != token.Global || toks[0].Name != "foo" {
		t.Errorf("toks[0] = %+v, want global %q", toks[0], "foo")
	}
	if toks[1].IdentKind != token.Temporary || toks[1].Name != "bar" {
		t.Errorf("toks[1] = %+v, want temporary %q", toks[1], "bar")
	}
	if toks[2].IdentKind != token.TypeIdent || toks[2].Name != "Baz" {
		t.Errorf("toks[2] = %+v, want type ident %q", toks[2], "Baz")
	}
	if toks[3].IdentKind != token.BasicBlock || toks[3].Name != "entry" {
		t.Errorf("toks[3] = %+v, want basic block %q", toks[3], "entry")
	}
	if toks[4].BBIndex != 3 || toks[4].InstIndex != 1 {
		t.Errorf("toks[4] = %+v, want #3.1", toks[4])
	}
	if toks[5].IdentKind != token.Key || toks[5].Name != "key" {
		t.Errorf("toks[5] = %+v, want key %q", toks[5], "key")
	}
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex([]byte("42 -7 3.14 1e10 -2.5e-3"))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = toks[:len(toks)-1] // drop Eof

	cases := []struct {
		kind token.Kind
		i    int64
		f    float64
	}{
		{token.IntegerTok, 42, 0},
		{token.IntegerTok, -7, 0},
		{token.FloatTok, 0, 3.14},
		{token.FloatTok, 0, 1e10},
		{token.FloatTok, 0, -2.5e-3},
	}
	if len(toks) != len(cases) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(cases))
	}
	for i, c := range cases {
		if toks[i].Kind != c.kind {
			t.Errorf("toks[%d].Kind = %v, want %v", i, toks[i].Kind, c.kind)
		}
		if c.kind == token.IntegerTok && toks[i].IntVal != c.i {
			t.Errorf("toks[%d].IntVal = %v, want %v", i, toks[i].IntVal, c.i)
		}
		if c.kind == token.FloatTok && toks[i].FloatVal != c.f {
			t.Errorf("toks[%d].FloatVal = %v, want %v", i, toks[i].FloatVal, c.f)
		}
	}
}

func TestLexKeywordsOpcodesDataTypes(t *testing.T) {
	toks, err := Lex([]byte("func void i32 branch add not"))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = toks[:len(toks)-1]

	if toks[0].Kind != token.KeywordTok || toks[0].Keyword != token.KwFunc {
		t.Errorf("toks[0] = %+v, want keyword func", toks[0])
	}
	if toks[1].Kind != token.KeywordTok || toks[1].Keyword != token.KwVoid {
		t.Errorf("toks[1] = %+v, want keyword void", toks[1])
	}
	if toks[2].Kind != token.DataTypeTok || toks[2].DataType != token.Int32 {
		t.Errorf("toks[2] = %+v, want data type i32", toks[2])
	}
	if toks[3].Kind != token.OpcodeTok || toks[3].Op != token.OpBranch {
		t.Errorf("toks[3] = %+v, want opcode branch", toks[3])
	}
	if toks[4].Kind != token.OpcodeTok || toks[4].Op != token.OpBinary || toks[4].BinOp != token.OpAdd {
		t.Errorf("toks[4] = %+v, want binaryOp add", toks[4])
	}
	if toks[5].Kind != token.OpcodeTok || toks[5].Op != token.OpUnary || toks[5].BinOp != token.OpNot {
		t.Errorf("toks[5] = %+v, want unaryOp not", toks[5])
	}
}

func TestLexString(t *testing.T) {
	toks, err := Lex([]byte(`"hello\nworld"`))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	if toks[0].Kind != token.StringTok || toks[0].StrVal != "hello\nworld" {
		t.Errorf("toks[0] = %+v, want string %q", toks[0], "hello\nworld")
	}
}

func TestLexPunctuationAndArrow(t *testing.T) {
	toks, err := Lex([]byte("(i32, f32) -> bool"))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	toks = toks[:len(toks)-1]
	want := []token.Kind{
		token.PunctTok, token.DataTypeTok, token.PunctTok, token.DataTypeTok,
		token.PunctTok, token.PunctTok, token.DataTypeTok,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("kinds mismatch:\n%s", diff)
	}
	if toks[5].Punct != token.Arrow {
		t.Errorf("toks[5].Punct = %v, want Arrow", toks[5].Punct)
	}
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	_, err := Lex([]byte("$"))
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex([]byte(`"abc`))
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLexAnonymousMalformed(t *testing.T) {
	_, err := Lex([]byte("#1"))
	if err == nil {
		t.Fatal("expected an error for a malformed anonymous identifier")
	}
}
