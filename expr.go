package parsec

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Fixity says whether an operator alternative binds as a prefix operator
// (no left operand) or an infix operator (between two operands).
type Fixity int

const (
	// Prefix operators have no left operand: NEG, NOT, unary ADDR.
	Prefix Fixity = iota
	// Infix operators sit between a left and right operand.
	Infix
)

// Assoc says which side an infix operator's repeated application groups
// toward. Prefix alternatives ignore Assoc.
type Assoc int

const (
	// LeftAssoc: a - b - c parses as (a - b) - c.
	LeftAssoc Assoc = iota
	// RightAssoc: a = b = c parses as a = (b = c).
	RightAssoc
	// NonAssoc: a chain of two operators at the same level is a hard error.
	NonAssoc
)

// alt is one operator alternative registered at a given precedence level:
// its matcher op (e.g. match("+")), the AST tag to build when it fires, and
// (for infix alternatives) the associativity.
type alt struct {
	tag   int
	op    Parser
	assoc Assoc
}

// level holds every alternative registered at one numeric precedence —
// prefix and infix buckets are kept separate because, per
// original_source/examples/pascal_parser/pascal_expression.c, a single
// level legitimately carries both (level 7 there holds NEG/POS/NOT/ADDR as
// prefix and FIELD_WIDTH as infix).
type level struct {
	prefixAlts []alt
	infixAlts  []alt
}

// ExprSpec is a Pratt-style operator-precedence table built by repeated
// calls to Insert and Altern, then used as a Parser via AsParser. Level
// numbers are dense: 0 is the loosest-binding (parsed first / tried last in
// the climb... see parseLevel), and higher numbers bind tighter.
type ExprSpec struct {
	namedParser
	base   Parser
	levels []level
}

// NewExpr creates an expression spec whose operand (the tightest-binding
// atom — parenthesized sub-expressions, literals, identifiers) is base.
// Precedence levels are added afterward with Insert and Altern.
func NewExpr(base Parser) *ExprSpec {
	return &ExprSpec{namedParser{"expression"}, base, nil}
}

func (e *ExprSpec) ensureLevel(n int) {
	for len(e.levels) <= n {
		e.levels = append(e.levels, level{})
	}
}

// Insert registers a new operator alternative at precedence n (0 = loosest).
// fixity chooses the prefix or infix bucket at that level; assoc is
// meaningful only for Infix. tag is the AST tag assigned to the node built
// when this alternative fires.
func (e *ExprSpec) Insert(n, tag int, fixity Fixity, assoc Assoc, op Parser) *ExprSpec {
	e.ensureLevel(n)
	a := alt{tag: tag, op: op, assoc: assoc}
	if fixity == Prefix {
		e.levels[n].prefixAlts = append(e.levels[n].prefixAlts, a)
	} else {
		e.levels[n].infixAlts = append(e.levels[n].infixAlts, a)
	}
	return e
}

// Altern adds another infix alternative to a precedence level already
// established by a prior Insert call, with the same associativity as the
// most recent infix alternative registered at that level (every observed
// call site in the source grammars shares associativity within a level's
// infix bucket). It panics if level n has no infix bucket yet: Altern
// extends, it does not create.
func (e *ExprSpec) Altern(n, tag int, op Parser) *ExprSpec {
	if n >= len(e.levels) || len(e.levels[n].infixAlts) == 0 {
		panic(fmt.Sprintf("parsec: expr_altern called on level %d with no prior infix Insert", n))
	}
	assoc := e.levels[n].infixAlts[len(e.levels[n].infixAlts)-1].assoc
	e.levels[n].infixAlts = append(e.levels[n].infixAlts, alt{tag: tag, op: op, assoc: assoc})
	return e
}

// AsParser returns e as an ordinary Parser, for embedding inside Seq,
// Lazy, etc.
func (e *ExprSpec) AsParser() Parser { return e }

func (e *ExprSpec) parse(c *Cursor) Result {
	return e.parseLevel(c, 0)
}

// climbFrame is pushed onto the arraystack once an infix alternative has
// matched, and popped once its right-hand operand has been parsed (or has
// failed): it records the level of the operator whose right-hand side is in
// progress. The fold itself is driven by parseLevel's recursion; errors and
// traces do not read the frames.
type climbFrame struct {
	level int
}

// parseLevel parses a prefix-or-base operand, possibly wrapped in prefix
// operators whose own level is >= minLevel, then repeatedly extends it with
// infix operators whose level is >= minLevel, highest level first,
// reverse-insertion order within a level as the tie-break: the most
// recently inserted alternative at a level is tried first.
func (e *ExprSpec) parseLevel(c *Cursor, minLevel int) Result {
	frames := arraystack.New()
	defer frames.Clear()

	left, err := e.parsePrefixOrBase(c, minLevel, frames)
	if err != nil {
		return failure(err)
	}

	nonAssocLevel := -1
	for {
		matchedLevel := -1
		var matched alt
		var snap Snapshot
		for lvl := len(e.levels) - 1; lvl >= minLevel; lvl-- {
			alts := e.levels[lvl].infixAlts
			for i := len(alts) - 1; i >= 0; i-- {
				trySnap := c.Snapshot()
				res := alts[i].op.parse(c)
				if res.Ok() {
					matchedLevel, matched, snap = lvl, alts[i], trySnap
					goto found
				}
				c.Restore(trySnap)
			}
		}
	found:
		if matchedLevel < 0 {
			break
		}
		if matchedLevel == nonAssocLevel {
			// A second operator at a NonAssoc level that just fired.
			c.Restore(snap)
			err := errMessage(c, e.name(), "Non-associative operator cannot be chained")
			err.PartialAST = left
			return failure(err)
		}
		frames.Push(climbFrame{matchedLevel})

		nextMin := matchedLevel + 1
		if matched.assoc == RightAssoc {
			nextMin = matchedLevel
		}
		rhsRes := e.parseLevel(c, nextMin)
		if !rhsRes.Ok() {
			c.Restore(snap)
			if f, ok := frames.Pop(); ok {
				_ = f
			}
			partial := Ast2(matched.tag, left, Nil)
			return failure(wrapSubFailure(c, e.name(), "Expected right-hand operand after infix operator", rhsRes.Err, partial))
		}
		// A NonAssoc operator must not itself be chained: its RHS is parsed
		// at matchedLevel+1, and the next turn of this loop rejects another
		// operator at matchedLevel.
		nonAssocLevel = -1
		if matched.assoc == NonAssoc {
			nonAssocLevel = matchedLevel
		}
		left = Ast2(matched.tag, left, rhsRes.AST)
		frames.Pop()
	}

	return success(left)
}

// parsePrefixOrBase tries every prefix alternative at level >= minLevel
// (highest level, then reverse-insertion order, matching the infix scan).
// The operand recurses into parsePrefixOrBase itself, not parseLevel, so a
// chain of same-level prefixes (e.g. "- -1") still nests correctly without
// that recursion also running the infix loop and swallowing a same-level
// infix operator (e.g. the ':' field-width operator sharing a level with
// unary minus) before the prefix gets a chance to wrap it. The infix loop
// only ever runs once, in the outer parseLevel call. If no prefix
// alternative matches, falls through to base.
func (e *ExprSpec) parsePrefixOrBase(c *Cursor, minLevel int, frames *arraystack.Stack) (*AST, *Error) {
	for lvl := len(e.levels) - 1; lvl >= minLevel; lvl-- {
		alts := e.levels[lvl].prefixAlts
		for i := len(alts) - 1; i >= 0; i-- {
			snap := c.Snapshot()
			res := alts[i].op.parse(c)
			if res.Ok() {
				operand, err := e.parsePrefixOrBase(c, lvl, frames)
				if err != nil {
					c.Restore(snap)
					return nil, wrapSubFailure(c, e.name(), "Expected operand after prefix operator", err, nil)
				}
				return Ast1(alts[i].tag, operand), nil
			}
			c.Restore(snap)
		}
	}

	res := e.base.parse(c)
	if !res.Ok() {
		return nil, wrapSubFailure(c, e.name(), "Expected an operand", res.Err, nil)
	}
	return res.AST, nil
}
