// Package parsec is a parser combinator engine: small, first-class parser
// values compose into larger parsers, which an interpreter runs against an
// input buffer to produce a typed AST or a structured Error.
//
// The three subsystems that matter are the combinator interpreter
// (backtracking and input snapshot/restore across a tree of parsers, some
// self-referential via Lazy), the operator-precedence expression engine
// (NewExpr/Insert/Altern, a Pratt-style climbing parser over the same
// combinator vocabulary), and the AST/symbol model (a child-sibling tree
// sharing an interner, plus the Nil sentinel).
//
// Grammars — calculators, JSON, Pascal expressions, and so on — are built
// entirely on top of this package; none of that grammar-specific knowledge
// belongs here. See the examples/ directory for consumers.
package parsec
