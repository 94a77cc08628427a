package parsec

import "testing"

const (
	eTagNum = iota + 1
	eTagAdd
	eTagSub
	eTagMul
	eTagDiv
	eTagNeg
	eTagPow // right-associative, for associativity tests
	eTagFieldWidth
)

func digitFactor() Parser {
	return Integer(eTagNum)
}

func opMatch(text string, tag int) Parser {
	return Map(Match(text), func(*AST) *AST { return &AST{Tag: tag} })
}

func TestExprBasicPrecedence(t *testing.T) {
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagAdd, Infix, LeftAssoc, opMatch("+", eTagAdd))
	spec.Altern(0, eTagSub, opMatch("-", eTagSub))
	spec.Insert(1, eTagMul, Infix, LeftAssoc, opMatch("*", eTagMul))
	spec.Altern(1, eTagDiv, opMatch("/", eTagDiv))

	c := NewCursor([]byte("1+2*3"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected expr to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagAdd {
		t.Fatalf("expected top node ADD (mul binds tighter), got %d", res.AST.Tag)
	}
	rhs := res.AST.Child.Next
	if rhs.Tag != eTagMul {
		t.Fatalf("expected right operand MUL, got %d", rhs.Tag)
	}
}

func TestExprLeftAssociativity(t *testing.T) {
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagSub, Infix, LeftAssoc, opMatch("-", eTagSub))

	c := NewCursor([]byte("1-2-3"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected expr to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagSub {
		t.Fatalf("expected top SUB, got %d", res.AST.Tag)
	}
	if res.AST.Child.Tag != eTagSub {
		t.Fatalf("expected left-nested SUB for left associativity, got %d", res.AST.Child.Tag)
	}
}

func TestExprRightAssociativity(t *testing.T) {
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagPow, Infix, RightAssoc, opMatch("^", eTagPow))

	c := NewCursor([]byte("1^2^3"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected expr to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagPow {
		t.Fatalf("expected top POW, got %d", res.AST.Tag)
	}
	rhs := res.AST.Child.Next
	if rhs.Tag != eTagPow {
		t.Fatalf("expected right-nested POW for right associativity, got %d", rhs.Tag)
	}
}

func TestExprPrefixChainsAtSameLevel(t *testing.T) {
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagMul, Infix, LeftAssoc, opMatch("*", eTagMul))
	spec.Insert(1, eTagNeg, Prefix, NonAssoc, opMatch("-", eTagNeg))

	c := NewCursor([]byte("--1*2"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected double negation to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagMul {
		t.Fatalf("expected top MUL, got %d", res.AST.Tag)
	}
	lhs := res.AST.Child
	if lhs.Tag != eTagNeg || lhs.Child.Tag != eTagNeg {
		t.Fatalf("expected a chain of two NEG nodes on the left, got %+v", lhs)
	}
}

func TestExprPrefixDoesNotSwallowSameLevelInfix(t *testing.T) {
	// NEG (prefix) and FIELD_WIDTH (infix) share level 0: "-1:5" must parse
	// as FIELD_WIDTH(NEG(1), 5), not NEG(FIELD_WIDTH(1, 5)) — the operand of
	// a prefix operator must not itself consume a same-level infix operator
	// before the prefix wraps it.
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagNeg, Prefix, NonAssoc, opMatch("-", eTagNeg))
	spec.Insert(0, eTagFieldWidth, Infix, LeftAssoc, opMatch(":", eTagFieldWidth))

	c := NewCursor([]byte("-1:5"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected expr to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagFieldWidth {
		t.Fatalf("expected top FIELD_WIDTH, got %d", res.AST.Tag)
	}
	if res.AST.Child.Tag != eTagNeg {
		t.Fatalf("expected left operand NEG, got %d", res.AST.Child.Tag)
	}
}

func TestExprAlternPanicsWithoutPriorInsert(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected Altern on a level with no prior infix Insert to panic")
		}
	}()
	spec := NewExpr(digitFactor())
	spec.Altern(0, eTagSub, opMatch("-", eTagSub))
}

func TestExprAlternTieBreakTriesMostRecentFirst(t *testing.T) {
	// Two alternatives that could both match a prefix of the input: the
	// multi-char one is Altern'd after the single-char one specifically so
	// it is tried first and shadows it, mirroring the Pascal relational
	// level's <= / <> / >= handling.
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagSub, Infix, LeftAssoc, opMatch("-", eTagSub))
	spec.Altern(0, eTagNeg, opMatch("->", eTagNeg))

	c := NewCursor([]byte("1->2"))
	res := Parse(c, spec.AsParser())
	if !res.Ok() {
		t.Fatalf("expected expr to parse: %v", res.Err)
	}
	if res.AST.Tag != eTagNeg {
		t.Fatalf("expected the multi-char operator to shadow the single-char one, got tag %d", res.AST.Tag)
	}
}

func TestExprFailsOnMissingOperand(t *testing.T) {
	spec := NewExpr(digitFactor())
	spec.Insert(0, eTagAdd, Infix, LeftAssoc, opMatch("+", eTagAdd))

	c := NewCursor([]byte("1+"))
	res := Parse(c, spec.AsParser())
	if res.Ok() {
		t.Fatalf("expected expr to fail on a dangling infix operator")
	}
}
