package parsec

// Result is the outcome of running a Parser: either AST is set and Err is
// nil (success), or Err is set and AST is the zero value (failure). This is
// the Go-idiomatic replacement for the C original's tagged
// success/failure union — it's also exactly the shape psec's
// `(Stream, *parseError)` return pair already uses ("nil error means
// success"), just packaged as a single value.
type Result struct {
	AST *AST
	Err *Error
}

func success(ast *AST) Result { return Result{AST: ast} }
func failure(err *Error) Result { return Result{Err: err} }

// Ok reports whether the result represents success.
func (r Result) Ok() bool { return r.Err == nil }

// Parser is a first-class, composable parser value. The dispatch method is
// unexported: the set of combinator kinds is closed, and the
// public API surface is the constructor functions below (Match, Seq, Many,
// ...), not arbitrary user-defined Parser implementations — mirroring how
// the C original's `kind` enum is closed even though `dispatch` is a
// function pointer.
type Parser interface {
	parse(c *Cursor) Result
	name() string
}

// Parse runs p against c from its current position, returning the parser's
// result. This is the single interpreter entry point.
func Parse(c *Cursor, p Parser) Result {
	tracer().Debugf("parse: %s at %d:%d", p.name(), c.Line(), c.Col())
	return p.parse(c)
}

// namedParser is embedded by every combinator type that just needs a fixed
// descriptive name for error-reporting.
type namedParser struct {
	nm string
}

func (n namedParser) name() string { return n.nm }
