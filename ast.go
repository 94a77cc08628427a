package parsec

// TagNone is the grammar-agnostic passthrough tag: a node tagged TagNone
// carries no semantic meaning to the core.
const TagNone = 0

// AST is a child-sibling tree node: an N-ary node's children form a linked
// list via Next, starting at Child. Tag is a small integer the client
// assigns meaning to; the core never switches on it.
type AST struct {
	Tag   int
	Sym   *Symbol
	Child *AST
	Next  *AST
	Line  int
	Col   int
}

// Nil is the distinguished sentinel meaning "no tree here". It is shared
// process-wide, never mutated, and every combinator special-cases it
// instead of treating it as an ordinary node. There is no destructor to
// special-case it against (Go is garbage collected), but the identity
// check ("== Nil") still matters: combinators use it to decide whether a
// child contributed a real node to a sibling list.
var Nil = &AST{Tag: TagNone}

// NewAST allocates a fresh node at the given position, with no children.
func NewAST(tag, line, col int) *AST {
	return &AST{Tag: tag, Line: line, Col: col}
}

// Ast1 wraps a single child under a new node of tag. If child is Nil the
// new node still gets Nil as its Child (an empty wrapper), matching the
// "typ == 0 means pass the list through untouched" rule used by seq/gseq
// for tag == TagNone, which callers reach for a tagged wrapper around a
// single already-built subtree.
func Ast1(tag int, child *AST) *AST {
	return &AST{Tag: tag, Child: child, Line: child.Line, Col: child.Col}
}

// Ast2 builds a binary node of tag whose Child list is [lhs, rhs]. lhs must
// not already have a sibling (fresh subtree roots only); Ast2 links
// lhs.Next = rhs to form the pair.
func Ast2(tag int, lhs, rhs *AST) *AST {
	lhs.Next = rhs
	return &AST{Tag: tag, Child: lhs, Line: lhs.Line, Col: lhs.Col}
}

// clone deep-copies a, preserving Tag/Sym/Line/Col but allocating new
// Child/Next nodes. Symbols are not copied: they are immutable and
// interned, so sharing the pointer is correct. clone is total on Nil: cloning Nil returns Nil itself, never a
// new node, so identity checks against Nil keep working after a copy.
func (a *AST) clone() *AST {
	if a == nil || a == Nil {
		return Nil
	}
	n := &AST{Tag: a.Tag, Sym: a.Sym, Line: a.Line, Col: a.Col}
	if a.Child != nil {
		n.Child = a.Child.clone()
	}
	if a.Next != nil {
		n.Next = a.Next.clone()
	}
	return n
}

// appendSibling splices node onto the end of a (possibly nil) sibling
// list, returning the new (head, tail) pair. Passing a Nil node is a
// no-op: Nil never joins a sibling list. This is the helper seq, gseq,
// many, sepBy and sepEndBy all share to avoid repeating the "walk to the
// last Next" loop from the C original's seq_fn/gseq_fn.
func appendSibling(head, tail, node *AST) (*AST, *AST) {
	if node == Nil {
		return head, tail
	}
	if head == nil {
		return node, node
	}
	tail.Next = node
	for tail.Next != nil {
		tail = tail.Next
	}
	return head, tail
}
