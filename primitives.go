package parsec

import (
	"strconv"
	"strings"
)

// --- match / matchRaw / matchCI / keywordCI ---

type matchParser struct {
	namedParser
	target       string
	ci           bool
	displayQuote bool // true: errors quote the target via %q; false: raw
}

func (p *matchParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	for i := 0; i < len(p.target); i++ {
		b, ok := c.Peek()
		if !ok || !byteEq(b, p.target[i], p.ci) {
			c.Restore(snap)
			return failure(errExpected(c, p.name(), p.expectedText()))
		}
		c.Advance()
	}
	return success(Nil)
}

func (p *matchParser) expectedText() string {
	if p.displayQuote {
		return strconv.Quote(p.target)
	}
	return "'" + p.target + "'"
}

func byteEq(a, b byte, ci bool) bool {
	if !ci {
		return a == b
	}
	return asciiLower(a) == asciiLower(b)
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Match consumes s literally. Whitespace is not auto-skipped; clients wrap
// with their own token helper. Errors quote the target
// with Go-style escaping (strconv.Quote), which is the "client-expected
// preprocessing" MatchRaw skips.
func Match(s string) Parser {
	return &matchParser{namedParser{"match " + strconv.Quote(s)}, s, false, true}
}

// MatchRaw is Match without the display-friendly error quoting: the
// expected text is the raw target wrapped in plain single quotes. Useful
// for matching control bytes or other targets that would render oddly
// through strconv.Quote.
func MatchRaw(s string) Parser {
	return &matchParser{namedParser{"match_raw '" + s + "'"}, s, false, false}
}

// MatchCI is Match with ASCII case-insensitive comparison.
func MatchCI(s string) Parser {
	return &matchParser{namedParser{"match_ci '" + s + "'"}, s, true, false}
}

type keywordCIParser struct {
	namedParser
	target string
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func (p *keywordCIParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	for i := 0; i < len(p.target); i++ {
		b, ok := c.Peek()
		if !ok || asciiLower(b) != asciiLower(p.target[i]) {
			c.Restore(snap)
			return failure(errExpected(c, p.name(), "keyword '"+p.target+"'"))
		}
		c.Advance()
	}
	if next, ok := c.Peek(); ok && isIdentByte(next) {
		c.Restore(snap)
		return failure(errMessage(c, p.name(), "keyword '"+p.target+"' must end at a word boundary"))
	}
	return success(Nil)
}

// KeywordCI matches s case-insensitively, requiring that the next byte (if
// any) is not an identifier-continuation character — so keyword_ci("end")
// matches "end." but not "ended".
func KeywordCI(s string) Parser {
	return &keywordCIParser{namedParser{"keyword '" + s + "'"}, s}
}

// --- satisfy / any_char ---

type satisfyParser struct {
	namedParser
	pred func(byte) bool
	tag  int
}

func (p *satisfyParser) parse(c *Cursor) Result {
	b, ok := c.Peek()
	if !ok || !p.pred(b) {
		return failure(errExpected(c, p.name(), "a matching character"))
	}
	line, col := c.Line(), c.Col()
	c.Advance()
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(string(b)), Line: line, Col: col})
}

// Satisfy consumes one byte iff pred(byte) holds, producing a leaf node
// tagged tag with a single-character symbol. It fails on EOF or a false
// predicate.
func Satisfy(pred func(byte) bool, tag int) Parser {
	return &satisfyParser{namedParser{"satisfy"}, pred, tag}
}

// AnyChar matches any single byte; equivalent to Satisfy(always-true, tag).
func AnyChar(tag int) Parser {
	p := Satisfy(func(byte) bool { return true }, tag).(*satisfyParser)
	p.nm = "any_char"
	return p
}

// --- integer / real ---

type integerParser struct {
	namedParser
	tag int
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *integerParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	start := c.Pos()
	for {
		b, ok := c.Peek()
		if !ok || !isDigit(b) {
			break
		}
		c.Advance()
	}
	if c.Pos() == start {
		return failure(errExpected(c, p.name(), "an integer"))
	}
	text := string(c.consumedSince(start))
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(text), Line: line, Col: col})
}

// Integer consumes one or more decimal digits and produces a leaf node
// whose symbol is the digit text. It does not consume a leading sign:
// grammars that need signed literals compose Integer with their own
// Optional(Multi(TagNone, Match("+"), Match("-")))-style prefix or with the expression engine's
// prefix-NEG level, the way calc.c and pascal_expression.c both do.
func Integer(tag int) Parser {
	return &integerParser{namedParser{"integer"}, tag}
}

type realParser struct {
	namedParser
	tag int
}

func (p *realParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	start := c.Pos()
	snap := c.Snapshot()

	digits := func() bool {
		n := 0
		for {
			b, ok := c.Peek()
			if !ok || !isDigit(b) {
				break
			}
			c.Advance()
			n++
		}
		return n > 0
	}

	if !digits() {
		c.Restore(snap)
		return failure(errExpected(c, p.name(), "a real number"))
	}

	dot, ok := c.Peek()
	if !ok || dot != '.' {
		c.Restore(snap)
		return failure(errExpected(c, p.name(), "a real number"))
	}
	c.Advance()
	if !digits() {
		// "1." is not a real number: no fractional digits after the dot.
		c.Restore(snap)
		return failure(errMessage(c, p.name(), "Expected fractional digits after '.'"))
	}

	expSnap := c.Snapshot()
	if e, ok := c.Peek(); ok && (e == 'e' || e == 'E') {
		c.Advance()
		if sign, ok := c.Peek(); ok && (sign == '+' || sign == '-') {
			c.Advance()
		}
		if !digits() {
			// e/e± with no digits: the exponent never happened.
			c.Restore(expSnap)
		}
	}

	text := string(c.consumedSince(start))
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(text), Line: line, Col: col})
}

// Real consumes a decimal number with a mandatory fractional part and an
// optional signed exponent: digits '.' digits (('e'|'E') ('+'|'-')? digits)?.
// It fails if the dot has no following digits, or treats a dangling
// 'e'/'e±' with no digits as simply not part of the number.
func Real(tag int) Parser {
	return &realParser{namedParser{"real"}, tag}
}

// --- strings / chars / idents ---

type cStringParser struct {
	namedParser
	tag int
}

func (p *cStringParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	snap := c.Snapshot()
	open, ok := c.Peek()
	if !ok || open != '"' {
		return failure(errExpected(c, p.name(), "a quoted string"))
	}
	c.Advance()

	var sb strings.Builder
	for {
		b, ok := c.Peek()
		if !ok {
			c.Restore(snap)
			return failure(errMessage(c, p.name(), "unterminated string"))
		}
		if b == '"' {
			c.Advance()
			break
		}
		if b == '\\' {
			c.Advance()
			esc, ok := c.Peek()
			if !ok {
				c.Restore(snap)
				return failure(errMessage(c, p.name(), "unterminated string"))
			}
			c.Advance()
			sb.WriteByte(unescape(esc))
			continue
		}
		c.Advance()
		sb.WriteByte(b)
	}
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(sb.String()), Line: line, Col: col})
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '"', '\'':
		return b
	default:
		return b
	}
}

// CQuotedString parses a C-style double-quoted string with the standard
// backslash escapes (\n \t \r \\ \" \0), producing a leaf node whose
// symbol is the unescaped content.
func CQuotedString(tag int) Parser {
	return &cStringParser{namedParser{"string"}, tag}
}

type charLiteralParser struct {
	namedParser
	tag int
}

func (p *charLiteralParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	snap := c.Snapshot()
	open, ok := c.Peek()
	if !ok || open != '\'' {
		return failure(errExpected(c, p.name(), "a char literal"))
	}
	c.Advance()

	b, ok := c.Peek()
	if !ok {
		c.Restore(snap)
		return failure(errMessage(c, p.name(), "unterminated char literal"))
	}
	var ch byte
	if next, ok := c.PeekAt(1); b == '\'' && ok && next == '\'' {
		// Pascal-style doubled quote: '' inside a char literal is an
		// escaped literal quote character.
		c.Advance()
		c.Advance()
		ch = '\''
	} else if b == '\\' {
		c.Advance()
		esc, ok := c.Peek()
		if !ok {
			c.Restore(snap)
			return failure(errMessage(c, p.name(), "unterminated char literal"))
		}
		ch = unescape(esc)
		c.Advance()
	} else {
		ch = b
		c.Advance()
	}

	closeQuote, ok := c.Peek()
	if !ok || closeQuote != '\'' {
		c.Restore(snap)
		return failure(errExpected(c, p.name(), "closing \"'\""))
	}
	c.Advance()
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(string(ch)), Line: line, Col: col})
}

// CharLiteral parses a single-quoted character: 'x', a backslash escape
// like '\n', or the Pascal-style doubled quote '' meaning a literal quote
// character.
func CharLiteral(tag int) Parser {
	return &charLiteralParser{namedParser{"char_literal"}, tag}
}

type cidentParser struct {
	namedParser
	tag int
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (p *cidentParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	b, ok := c.Peek()
	if !ok || !isIdentStart(b) {
		return failure(errExpected(c, p.name(), "an identifier"))
	}
	start := c.Pos()
	c.Advance()
	for {
		nb, ok := c.Peek()
		if !ok || !isIdentByte(nb) {
			break
		}
		c.Advance()
	}
	text := string(c.consumedSince(start))
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(text), Line: line, Col: col})
}

// CIdent parses a C-style identifier: letter-or-underscore followed by
// letters, digits, or underscores. Reserved-word filtering, if any, is the
// client's concern.
func CIdent(tag int) Parser {
	return &cidentParser{namedParser{"cident"}, tag}
}

// --- until / eoi / succeed ---

type untilParser struct {
	namedParser
	delim Parser
	tag   int
}

func (p *untilParser) parse(c *Cursor) Result {
	line, col := c.Line(), c.Col()
	start := c.Pos()
	for {
		snap := c.Snapshot()
		res := p.delim.parse(c)
		c.Restore(snap)
		if res.Ok() {
			break
		}
		if c.AtEOF() {
			return failure(errMessage(c, p.name(), "delimiter never found"))
		}
		c.Advance()
	}
	text := string(c.consumedSince(start))
	return success(&AST{Tag: p.tag, Sym: c.Interner().Lookup(text), Line: line, Col: col})
}

// Until consumes bytes up to, but not including, the point where delim
// would succeed, producing one node tagged tag holding the consumed text.
// It never consumes the delimiter itself.
func Until(delim Parser, tag int) Parser {
	return &untilParser{namedParser{"until"}, delim, tag}
}

type eoiParser struct{ namedParser }

func (p *eoiParser) parse(c *Cursor) Result {
	if !c.AtEOF() {
		return failure(errExpected(c, p.name(), "end of input"))
	}
	return success(Nil)
}

// EOI succeeds only when the cursor is at the end of the buffer.
func EOI() Parser {
	return &eoiParser{namedParser{"eoi"}}
}

type succeedParser struct {
	namedParser
	ast *AST
}

func (p *succeedParser) parse(c *Cursor) Result {
	return success(p.ast.clone())
}

// Succeed always succeeds without consuming input, returning a deep copy
// of ast every time it is run. It is mainly
// used to inject an operator-tag marker, the way chainl1_fn's glue parser
// does in the C original (right(match("+"), succeed(ast1(T_ADD, nil)))).
func Succeed(ast *AST) Parser {
	return &succeedParser{namedParser{"succeed"}, ast}
}

// consumedSince returns buf[start:pos] — the bytes consumed since start.
func (c *Cursor) consumedSince(start int) []byte {
	return c.buf[start:c.pos]
}
