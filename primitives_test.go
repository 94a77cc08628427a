package parsec

import "testing"

func TestMatchConsumesLiteral(t *testing.T) {
	c := NewCursor([]byte("helloworld"))
	res := Parse(c, Match("hello"))
	if !res.Ok() {
		t.Fatalf("expected match to succeed: %v", res.Err)
	}
	if res.AST != Nil {
		t.Fatalf("expected Match to produce Nil, got %v", res.AST)
	}
	if c.Pos() != 5 {
		t.Fatalf("expected cursor at pos 5, got %d", c.Pos())
	}
}

func TestMatchFailsAndRestores(t *testing.T) {
	c := NewCursor([]byte("help"))
	res := Parse(c, Match("hello"))
	if res.Ok() {
		t.Fatalf("expected match to fail")
	}
	if c.Pos() != 0 {
		t.Fatalf("expected cursor restored to 0, got %d", c.Pos())
	}
}

func TestMatchCIIgnoresCase(t *testing.T) {
	c := NewCursor([]byte("HeLLo"))
	if res := Parse(c, MatchCI("hello")); !res.Ok() {
		t.Fatalf("expected case-insensitive match to succeed: %v", res.Err)
	}
}

func TestKeywordCIRequiresWordBoundary(t *testing.T) {
	c := NewCursor([]byte("ended"))
	if res := Parse(c, KeywordCI("end")); res.Ok() {
		t.Fatalf("expected keyword_ci(\"end\") to reject \"ended\"")
	}

	c2 := NewCursor([]byte("end."))
	if res := Parse(c2, KeywordCI("end")); !res.Ok() {
		t.Fatalf("expected keyword_ci(\"end\") to accept \"end.\": %v", res.Err)
	}
}

func TestSatisfyConsumesOneByte(t *testing.T) {
	c := NewCursor([]byte("9x"))
	res := Parse(c, Satisfy(isDigit, 1))
	if !res.Ok() {
		t.Fatalf("expected satisfy to succeed: %v", res.Err)
	}
	if res.AST.Sym.Name != "9" {
		t.Fatalf("expected symbol '9', got %q", res.AST.Sym.Name)
	}
	if c.Pos() != 1 {
		t.Fatalf("expected one byte consumed, got pos %d", c.Pos())
	}
}

func TestAnyCharMatchesEverythingButEOF(t *testing.T) {
	c := NewCursor([]byte(""))
	if res := Parse(c, AnyChar(1)); res.Ok() {
		t.Fatalf("expected any_char to fail at EOF")
	}
}

func TestIntegerRequiresAtLeastOneDigit(t *testing.T) {
	c := NewCursor([]byte("123abc"))
	res := Parse(c, Integer(1))
	if !res.Ok() || res.AST.Sym.Name != "123" {
		t.Fatalf("expected integer '123', got %+v err=%v", res.AST, res.Err)
	}

	c2 := NewCursor([]byte("abc"))
	if res := Parse(c2, Integer(1)); res.Ok() {
		t.Fatalf("expected integer to fail on non-digit input")
	}
}

func TestRealRequiresFractionalDigits(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
		want  string
	}{
		{"1.5", true, "1.5"},
		{"1.", false, ""},
		{"1.5e10", true, "1.5e10"},
		{"1.5e", true, "1.5"}, // dangling exponent marker is not consumed
		{"1.5e-3", true, "1.5e-3"},
	}
	for _, tc := range cases {
		c := NewCursor([]byte(tc.input))
		res := Parse(c, Real(1))
		if res.Ok() != tc.ok {
			t.Fatalf("Real(%q): ok = %v, want %v (err=%v)", tc.input, res.Ok(), tc.ok, res.Err)
		}
		if tc.ok && res.AST.Sym.Name != tc.want {
			t.Fatalf("Real(%q) = %q, want %q", tc.input, res.AST.Sym.Name, tc.want)
		}
	}
}

func TestCQuotedStringUnescapes(t *testing.T) {
	c := NewCursor([]byte(`"a\nb"`))
	res := Parse(c, CQuotedString(1))
	if !res.Ok() {
		t.Fatalf("expected string to parse: %v", res.Err)
	}
	if res.AST.Sym.Name != "a\nb" {
		t.Fatalf("expected unescaped 'a\\nb', got %q", res.AST.Sym.Name)
	}
}

func TestCQuotedStringFailsUnterminated(t *testing.T) {
	c := NewCursor([]byte(`"abc`))
	if res := Parse(c, CQuotedString(1)); res.Ok() {
		t.Fatalf("expected unterminated string to fail")
	}
}

func TestCharLiteralDoubledQuoteEscape(t *testing.T) {
	c := NewCursor([]byte("''''"))
	res := Parse(c, CharLiteral(1))
	if !res.Ok() || res.AST.Sym.Name != "'" {
		t.Fatalf("expected doubled-quote char literal to produce \"'\", got %+v err=%v", res.AST, res.Err)
	}
}

func TestCharLiteralPlainAndEscaped(t *testing.T) {
	c := NewCursor([]byte(`'x'`))
	if res := Parse(c, CharLiteral(1)); !res.Ok() || res.AST.Sym.Name != "x" {
		t.Fatalf("expected char literal 'x', got %+v err=%v", res.AST, res.Err)
	}

	c2 := NewCursor([]byte(`'\n'`))
	if res := Parse(c2, CharLiteral(1)); !res.Ok() || res.AST.Sym.Name != "\n" {
		t.Fatalf("expected escaped char literal, got %+v err=%v", res.AST, res.Err)
	}
}

func TestCIdentRejectsLeadingDigit(t *testing.T) {
	c := NewCursor([]byte("9abc"))
	if res := Parse(c, CIdent(1)); res.Ok() {
		t.Fatalf("expected cident to reject a leading digit")
	}
}

func TestCIdentConsumesWordChars(t *testing.T) {
	c := NewCursor([]byte("_foo_123 rest"))
	res := Parse(c, CIdent(1))
	if !res.Ok() || res.AST.Sym.Name != "_foo_123" {
		t.Fatalf("expected cident '_foo_123', got %+v err=%v", res.AST, res.Err)
	}
}

func TestUntilStopsBeforeDelimiterWithoutConsumingIt(t *testing.T) {
	c := NewCursor([]byte("abc;def"))
	res := Parse(c, Until(Match(";"), 1))
	if !res.Ok() || res.AST.Sym.Name != "abc" {
		t.Fatalf("expected until to capture 'abc', got %+v err=%v", res.AST, res.Err)
	}
	if b, ok := c.Peek(); !ok || b != ';' {
		t.Fatalf("expected delimiter still unconsumed, got %q", b)
	}
}

func TestUntilFailsWhenDelimiterNeverFound(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	if res := Parse(c, Until(Match(";"), 1)); res.Ok() {
		t.Fatalf("expected until to fail when delimiter never appears")
	}
}

func TestEOI(t *testing.T) {
	c := NewCursor([]byte(""))
	if res := Parse(c, EOI()); !res.Ok() {
		t.Fatalf("expected eoi to succeed at end of input")
	}

	c2 := NewCursor([]byte("x"))
	if res := Parse(c2, EOI()); res.Ok() {
		t.Fatalf("expected eoi to fail when input remains")
	}
}

func TestSucceedDoesNotConsumeAndDeepCopies(t *testing.T) {
	marker := Ast1(42, NewAST(1, 0, 0))
	c := NewCursor([]byte("xyz"))
	res := Parse(c, Succeed(marker))
	if !res.Ok() {
		t.Fatalf("expected succeed to always succeed")
	}
	if c.Pos() != 0 {
		t.Fatalf("expected succeed to consume nothing, pos = %d", c.Pos())
	}
	if res.AST == marker {
		t.Fatalf("expected succeed to return a deep copy, not the same pointer")
	}
	if res.AST.Tag != marker.Tag || res.AST.Child.Tag != marker.Child.Tag {
		t.Fatalf("expected the copy to preserve structure")
	}
}
