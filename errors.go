package parsec

import "fmt"

// ErrorKind classifies why a parse failed.
type ErrorKind int

const (
	// KindUnexpectedInput: a primitive predicate failed.
	KindUnexpectedInput ErrorKind = iota
	// KindMissingClose: a sequence expected a specific closing token.
	KindMissingClose
	// KindSubParserFailure: a composite's child failed; Cause is set.
	KindSubParserFailure
	// KindWrappedContext: introduced by Expect or ErrMap.
	KindWrappedContext
	// KindNotViolation: Not succeeded on something it disallows.
	KindNotViolation
)

// Error is the structured failure value the interpreter returns. Invariant
// violations that are logic bugs rather than parse failures (a nil
// sub-parser from FlatMap, an empty Multi) are not represented as Error —
// they panic, matching the C original's abort().
type Error struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Col        int
	ParserName string
	Unexpected string
	Cause      *Error
	PartialAST *AST
}

// Error implements the error interface. It composes a location prefix, the
// message (with an inline cause and up to the first ~10 bytes of
// unexpected input when present), matching psec's parseError.Error()
// layering of prefix + message + expectation.
func (e *Error) Error() string {
	prefix := fmt.Sprintf("line %d col %d", e.Line, e.Col)
	msg := e.Message
	if e.ParserName != "" {
		msg = fmt.Sprintf("%s: %s", e.ParserName, msg)
	}
	if e.Unexpected != "" {
		msg = fmt.Sprintf("%s but found '%s'", msg, e.Unexpected)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %s)", prefix, msg, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// snippet returns up to the first 10 bytes of the cursor's remaining input,
// for an Error's Unexpected field: up to the first ~10 characters of the
// unexpected input.
func snippet(c *Cursor) string {
	rem := c.Remaining()
	n := 10
	if len(rem) < n {
		n = len(rem)
	}
	return string(rem[:n])
}

// errExpected builds a KindUnexpectedInput Error at the cursor's current
// location.
func errExpected(c *Cursor, parserName, expected string) *Error {
	return &Error{
		Kind:       KindUnexpectedInput,
		Message:    "Expected " + expected,
		Line:       c.Line(),
		Col:        c.Col(),
		ParserName: parserName,
		Unexpected: snippet(c),
	}
}

// errMessage builds an Error carrying a free-form message instead of an
// "Expected X" template.
func errMessage(c *Cursor, parserName, msg string) *Error {
	return &Error{
		Kind:       KindUnexpectedInput,
		Message:    msg,
		Line:       c.Line(),
		Col:        c.Col(),
		ParserName: parserName,
		Unexpected: snippet(c),
	}
}

// wrapSubFailure builds a KindSubParserFailure Error enclosing cause, with
// an optional partial AST (the best-effort tree built before the failing
// child).
func wrapSubFailure(c *Cursor, parserName, msg string, cause *Error, partial *AST) *Error {
	return &Error{
		Kind:       KindSubParserFailure,
		Message:    msg,
		Line:       c.Line(),
		Col:        c.Col(),
		ParserName: parserName,
		Cause:      cause,
		PartialAST: partial,
	}
}
