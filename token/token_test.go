package token

import "testing"

func TestKeywordRoundTrip(t *testing.T) {
	for spelling, kw := range Keywords {
		if got := kw.String(); got != spelling {
			t.Errorf("Keyword(%v).String() = %q, want %q", kw, got, spelling)
		}
	}
}

func TestOpcodeRoundTrip(t *testing.T) {
	for spelling, op := range Opcodes {
		if got := op.String(); got != spelling {
			t.Errorf("Op(%v).String() = %q, want %q", op, got, spelling)
		}
	}
}

func TestDataTypeRoundTrip(t *testing.T) {
	for spelling, dt := range DataTypes {
		if got := dt.String(); got != spelling {
			t.Errorf("DataType(%v).String() = %q, want %q", dt, got, spelling)
		}
	}
}

func TestBinaryAndUnaryAssocOpsDisjoint(t *testing.T) {
	for spelling := range BinaryAssocOps {
		if _, ok := UnaryAssocOps[spelling]; ok {
			t.Errorf("spelling %q present in both BinaryAssocOps and UnaryAssocOps", spelling)
		}
	}
}

func TestRangeJoin(t *testing.T) {
	cases := []struct {
		name string
		a, b Range
		want Range
	}{
		{"disjoint", Range{0, 2}, Range{5, 8}, Range{0, 8}},
		{"overlapping", Range{0, 5}, Range{3, 8}, Range{0, 8}},
		{"nested", Range{0, 10}, Range{2, 4}, Range{0, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Join(c.b); got != c.want {
				t.Errorf("Join() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestTokenStringAnonymous(t *testing.T) {
	tok := Token{Kind: AnonymousTok, BBIndex: 2, InstIndex: 5}
	if got, want := tok.String(), "#2.5"; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
