package parsec

import (
	"fmt"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

// stageToSiblings drains a staging list of intermediate child ASTs (built up
// by seq/gseq/many/sepBy while iterating) into a proper Child/Next sibling
// chain, skipping Nil entries. Using gods/singlylinkedlist as the staging
// structure (rather than a bare []*AST) mirrors how npillmayer-gorgo threads
// its rule bodies through the same collection type before committing them to
// a tree.
func stageToSiblings(staged *singlylinkedlist.List) *AST {
	var head, tail *AST
	it := staged.Iterator()
	for it.Next() {
		head, tail = appendSibling(head, tail, it.Value().(*AST))
	}
	return head
}

// --- seq / gseq ---

type seqParser struct {
	namedParser
	tag      int
	children []Parser
	gseq     bool // gseq: non-committed, doesn't restore on inner failure
}

func buildSeqName(kind string, ps []Parser) string {
	s := kind + " of "
	for i, p := range ps {
		if i > 0 {
			s += ", "
		}
		s += p.name()
	}
	return s
}

func (p *seqParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	staged := singlylinkedlist.New()
	for _, child := range p.children {
		res := child.parse(c)
		if !res.Ok() {
			if p.gseq {
				// Non-committed: the surrounding combinator already owns
				// the snapshot.
				return res
			}
			c.Restore(snap)
			msg := res.Err.Message
			if msg == "" {
				msg = "Failed to parse sequence."
			}
			return failure(wrapSubFailure(c, p.name(), msg, res.Err, stageToSiblings(staged)))
		}
		staged.Add(res.AST)
	}
	result := stageToSiblings(staged)
	if result == nil {
		result = Nil
	}
	if p.tag == TagNone {
		return success(result)
	}
	return success(Ast1(p.tag, result))
}

// Seq runs each of ps in order, gathering the non-nil children into a
// sibling list. If tag is TagNone, the list is returned directly; otherwise
// it's wrapped in a node tagged tag. This is a committed sequence: on
// failure the cursor is restored to the entry snapshot, and the children
// that already succeeded are attached to the returned Error as a partial
// AST.
func Seq(tag int, ps ...Parser) Parser {
	return &seqParser{namedParser{buildSeqName("sequence", ps)}, tag, ps, false}
}

// GSeq is Seq without the committed-sequence discipline: on a child's
// failure it does not restore the cursor, because the surrounding
// combinator is assumed to already own the snapshot. It exists as an
// internal composition helper — prefer Seq
// for ordinary grammar-building.
func GSeq(tag int, ps ...Parser) Parser {
	return &seqParser{namedParser{buildSeqName("gseq", ps)}, tag, ps, true}
}

// --- multi ---

type multiParser struct {
	namedParser
	tag      int
	children []Parser
}

func (p *multiParser) parse(c *Cursor) Result {
	var last Result
	for _, child := range p.children {
		snap := c.Snapshot()
		res := child.parse(c)
		if res.Ok() {
			if p.tag != TagNone {
				res.AST = Ast1(p.tag, res.AST)
			}
			return res
		}
		c.Restore(snap)
		last = res
	}
	return last
}

// Multi tries each alternative left to right, returning the first success
// (wrapped in a node tagged tag if tag != TagNone) or, if all fail, the
// failure of the last alternative — it must not concatenate errors
// Multi panics if given zero alternatives: a multi-parser
// with no choices is a grammar-construction bug, not a parse failure.
func Multi(tag int, ps ...Parser) Parser {
	if len(ps) == 0 {
		panic("parsec: multi called with no alternatives")
	}
	return &multiParser{namedParser{buildSeqName("any of", ps)}, tag, ps}
}

// --- left / right ---

type pairParser struct {
	namedParser
	p1, p2 Parser
	keep1  bool
}

func (p *pairParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	r1 := p.p1.parse(c)
	if !r1.Ok() {
		return r1
	}
	r2 := p.p2.parse(c)
	if !r2.Ok() {
		c.Restore(snap)
		kept := r1.AST
		if !p.keep1 {
			kept = Nil
		}
		return failure(wrapSubFailure(c, p.name(), "expected second part of "+p.name(), r2.Err, kept))
	}
	if p.keep1 {
		return r1
	}
	return r2
}

// Left runs a then b and returns a's AST, discarding b's.
func Left(a, b Parser) Parser {
	return &pairParser{namedParser{"left of " + a.name() + " and " + b.name()}, a, b, true}
}

// Right runs a then b and returns b's AST, discarding a's.
func Right(a, b Parser) Parser {
	return &pairParser{namedParser{"right of " + a.name() + " and " + b.name()}, a, b, false}
}

// --- many ---

type manyParser struct {
	namedParser
	inner Parser
}

func (p *manyParser) parse(c *Cursor) Result {
	staged := singlylinkedlist.New()
	for {
		snap := c.Snapshot()
		res := p.inner.parse(c)
		if !res.Ok() {
			c.Restore(snap)
			break
		}
		staged.Add(res.AST)
		if c.Pos() == snap.pos {
			// Zero-consumption guard: a successful match that consumed no
			// bytes would otherwise loop forever.
			tracer().Debugf("many: zero-consumption guard tripped for %s", p.inner.name())
			break
		}
	}
	head := stageToSiblings(staged)
	if head == nil {
		return success(Nil)
	}
	return success(head)
}

// Many parses zero or more repetitions of p, returning the sibling list of
// results (or Nil if empty). It is guaranteed to terminate even if p
// succeeds without consuming input.
func Many(p Parser) Parser {
	return &manyParser{namedParser{"many " + p.name()}, p}
}

// --- optional ---

type optionalParser struct {
	namedParser
	inner Parser
}

func (p *optionalParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	res := p.inner.parse(c)
	if res.Ok() {
		return res
	}
	c.Restore(snap)
	return success(Nil)
}

// Optional tries p once; on failure it restores the cursor and succeeds
// with Nil instead of propagating the failure.
func Optional(p Parser) Parser {
	return &optionalParser{namedParser{"optional " + p.name()}, p}
}

// --- between ---

type betweenParser struct {
	namedParser
	open, p, close Parser
}

func (p *betweenParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	rOpen := p.open.parse(c)
	if !rOpen.Ok() {
		return rOpen
	}
	rInner := p.p.parse(c)
	if !rInner.Ok() {
		c.Restore(snap)
		return rInner
	}
	rClose := p.close.parse(c)
	if !rClose.Ok() {
		c.Restore(snap)
		return failure(&Error{
			Kind:       KindMissingClose,
			Message:    "missing closing " + p.close.name(),
			Line:       c.Line(),
			Col:        c.Col(),
			ParserName: p.name(),
			Cause:      rClose.Err,
			PartialAST: rInner.AST,
		})
	}
	return rInner
}

// Between parses open, then p, then close, yielding p's AST and discarding
// open's and close's. The cursor is restored to entry on any inner
// failure.
func Between(open, p, close Parser) Parser {
	return &betweenParser{namedParser{"between " + open.name() + " and " + close.name()}, open, p, close}
}

// --- sep_by / sep_end_by ---

type sepByParser struct {
	namedParser
	p, sep  Parser
	atEnd   bool // sep_end_by: permit and consume a trailing separator
}

func (p *sepByParser) parse(c *Cursor) Result {
	first := p.p.parse(c)
	if !first.Ok() {
		return success(Nil)
	}
	staged := singlylinkedlist.New()
	staged.Add(first.AST)

	for {
		snap := c.Snapshot()
		sepRes := p.sep.parse(c)
		if !sepRes.Ok() {
			c.Restore(snap)
			break
		}
		itemRes := p.p.parse(c)
		if !itemRes.Ok() {
			c.Restore(snap)
			break
		}
		staged.Add(itemRes.AST)
	}

	if p.atEnd {
		snap := c.Snapshot()
		sepRes := p.sep.parse(c)
		if !sepRes.Ok() {
			c.Restore(snap)
		}
	}

	return success(stageToSiblings(staged))
}

// SepBy parses zero or more p separated by sep, never consuming a trailing
// separator. It never fails: zero matches of p yields Nil.
func SepBy(p, sep Parser) Parser {
	return &sepByParser{namedParser{p.name() + " separated by " + sep.name()}, p, sep, false}
}

// SepEndBy is SepBy but additionally consumes one trailing separator, if
// present.
func SepEndBy(p, sep Parser) Parser {
	return &sepByParser{namedParser{p.name() + " separated and ended by " + sep.name()}, p, sep, true}
}

// --- chainl1 ---

type chainl1Parser struct {
	namedParser
	p, op Parser
}

func (p *chainl1Parser) parse(c *Cursor) Result {
	res := p.p.parse(c)
	if !res.Ok() {
		return res
	}
	left := res.AST

	for {
		snap := c.Snapshot()
		opRes := p.op.parse(c)
		if !opRes.Ok() {
			c.Restore(snap)
			break
		}
		opTag := opRes.AST.Tag

		rhsRes := p.p.parse(c)
		if !rhsRes.Ok() {
			c.Restore(snap)
			return failure(wrapSubFailure(c, p.name(), "Expected operand after operator in chainl1", rhsRes.Err, left))
		}
		left = Ast2(opTag, left, rhsRes.AST)
	}
	return success(left)
}

// ChainL1 parses one p, then repeatedly (op, p), left-folding each step
// into ast2(op_tag, acc, rhs) where op_tag is the Tag of the AST op
// produced. A successfully-parsed op with no following operand is a hard
// failure carrying the message "Expected operand after operator in
// chainl1".
func ChainL1(p, op Parser) Parser {
	return &chainl1Parser{namedParser{"chainl1 of " + p.name() + " with " + op.name()}, p, op}
}

// --- not / peek ---

type notParser struct {
	namedParser
	inner Parser
}

func (p *notParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	res := p.inner.parse(c)
	c.Restore(snap)
	if res.Ok() {
		return failure(&Error{
			Kind:       KindNotViolation,
			Message:    "not combinator failed",
			Line:       c.Line(),
			Col:        c.Col(),
			ParserName: p.name(),
		})
	}
	return success(Nil)
}

// Not succeeds with Nil, without consuming, iff p fails; it fails iff p
// succeeds. The cursor is always restored.
func Not(p Parser) Parser {
	return &notParser{namedParser{"not " + p.name()}, p}
}

type peekParser struct {
	namedParser
	inner Parser
}

func (p *peekParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	res := p.inner.parse(c)
	c.Restore(snap)
	return res
}

// Peek runs p under a snapshot and always restores the cursor, propagating
// p's result either way. Idempotent: running it twice at the same cursor
// yields identical results.
func Peek(p Parser) Parser {
	return &peekParser{namedParser{"peek " + p.name()}, p}
}

// --- map / errmap / flatMap / expect ---

type mapParser struct {
	namedParser
	inner Parser
	f     func(*AST) *AST
}

func (p *mapParser) parse(c *Cursor) Result {
	res := p.inner.parse(c)
	if !res.Ok() {
		return res
	}
	return success(p.f(res.AST))
}

// Map transforms a successful AST via f; failures propagate untouched.
func Map(p Parser, f func(*AST) *AST) Parser {
	return &mapParser{namedParser{"map over " + p.name()}, p, f}
}

type errMapParser struct {
	namedParser
	inner Parser
	f     func(*Error) *Error
}

func (p *errMapParser) parse(c *Cursor) Result {
	res := p.inner.parse(c)
	if res.Ok() {
		return res
	}
	return failure(p.f(res.Err))
}

// ErrMap transforms a failure's Error via f; successes propagate untouched.
func ErrMap(p Parser, f func(*Error) *Error) Parser {
	return &errMapParser{namedParser{"errmap over " + p.name()}, p, f}
}

type flatMapParser struct {
	namedParser
	inner Parser
	f     func(*AST) Parser
}

func (p *flatMapParser) parse(c *Cursor) Result {
	snap := c.Snapshot()
	res := p.inner.parse(c)
	if !res.Ok() {
		return res
	}
	next := p.f(res.AST)
	if next == nil {
		panic("parsec: flatMap function returned a nil parser")
	}
	final := next.parse(c)
	if !final.Ok() {
		c.Restore(snap)
	}
	return final
}

// FlatMap parses p, calls f on its AST to build a new parser, and parses
// that. f must not return nil: doing so is a grammar-construction bug, not
// a parse failure, and panics.
func FlatMap(p Parser, f func(*AST) Parser) Parser {
	return &flatMapParser{namedParser{"flatMap over " + p.name()}, p, f}
}

type expectParser struct {
	namedParser
	inner Parser
	msg   string
}

func (p *expectParser) parse(c *Cursor) Result {
	res := p.inner.parse(c)
	if res.Ok() {
		return res
	}
	msg := p.msg
	if res.Err.Unexpected != "" {
		msg = fmt.Sprintf("%s but found '%s'", p.msg, res.Err.Unexpected)
	}
	return failure(&Error{
		Kind:       KindWrappedContext,
		Message:    msg,
		Line:       c.Line(),
		Col:        c.Col(),
		ParserName: p.name(),
		Cause:      res.Err,
	})
}

// Expect runs p; on failure it builds a new Error whose message is msg,
// optionally suffixed with "but found '<unexpected>'" from the inner
// failure, with the inner Error attached as Cause.
func Expect(p Parser, msg string) Parser {
	return &expectParser{namedParser{"expect " + p.name()}, p, msg}
}

// --- lazy ---

type lazyParser struct {
	cell *Parser
}

func (p *lazyParser) parse(c *Cursor) Result {
	if *p.cell == nil {
		panic("parsec: lazy cell dereferenced before it was filled")
	}
	return (*p.cell).parse(c)
}

func (p *lazyParser) name() string {
	if *p.cell == nil {
		return "lazy(unfilled)"
	}
	return "lazy(" + (*p.cell).name() + ")"
}

// Lazy dereferences cell at dispatch time, allowing recursive grammars
// without a cycle in the combinator graph itself: build the recursive
// child combinators referencing Lazy(&cell), finish building the full
// parser, then assign it into cell. Parsing before cell is filled panics;
// naming an unfilled Lazy reports "lazy(unfilled)".
func Lazy(cell *Parser) Parser {
	return &lazyParser{cell}
}
