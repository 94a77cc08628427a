package parsec

// Snapshot is the restorable portion of a Cursor's state: byte offset plus
// line/column. Composite combinators save one before trying a child and
// restore it to backtrack.
type Snapshot struct {
	pos, line, col int
}

// Cursor holds the input buffer and the read position, with the line/col
// bookkeeping needed for Error locations. A Cursor is not safe for
// concurrent use: parsing is single-threaded and synchronous.
//
// Cursor is a small mutable value rather than an immutable, memoized linked
// list with one node per byte consumed: Snapshot/Restore copy three ints
// instead of walking or allocating a chain, so a long input doesn't pin one
// heap node per byte for the lifetime of the parse.
type Cursor struct {
	buf      []byte
	pos      int
	line     int
	col      int
	filename string
	syms     *Interner
}

// CursorOption configures a Cursor at construction time.
type CursorOption func(*Cursor)

// WithFilename records a source name, returned by Filename. Error values
// and traces report only line and column; they do not include it.
func WithFilename(name string) CursorOption {
	return func(c *Cursor) { c.filename = name }
}

// WithInterner supplies a shared Interner instead of a fresh one. Useful
// when several Cursors (e.g. one per included file) should share a symbol
// table.
func WithInterner(in *Interner) CursorOption {
	return func(c *Cursor) { c.syms = in }
}

// NewCursor builds a Cursor positioned at the start of buf, line 1 column 1.
func NewCursor(buf []byte, opts ...CursorOption) *Cursor {
	c := &Cursor{buf: buf, line: 1, col: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.syms == nil {
		c.syms = NewInterner()
	}
	return c
}

// Filename reports the cursor's source name, or "" if none was set.
func (c *Cursor) Filename() string { return c.filename }

// Interner returns the symbol table this cursor's leaves intern into.
func (c *Cursor) Interner() *Interner { return c.syms }

// Line returns the current 1-based line.
func (c *Cursor) Line() int { return c.line }

// Col returns the current 1-based column.
func (c *Cursor) Col() int { return c.col }

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// AtEOF reports whether the cursor has consumed the entire buffer.
func (c *Cursor) AtEOF() bool { return c.pos >= len(c.buf) }

// Peek returns the next unconsumed byte without advancing. ok is false at
// EOF.
func (c *Cursor) Peek() (b byte, ok bool) {
	if c.AtEOF() {
		return 0, false
	}
	return c.buf[c.pos], true
}

// PeekAt returns the byte offset bytes ahead of the current position,
// without advancing. ok is false if that offset is out of range.
func (c *Cursor) PeekAt(offset int) (b byte, ok bool) {
	p := c.pos + offset
	if p < 0 || p >= len(c.buf) {
		return 0, false
	}
	return c.buf[p], true
}

// Remaining returns the unconsumed suffix of the buffer. Callers must treat
// it as read-only.
func (c *Cursor) Remaining() []byte { return c.buf[c.pos:] }

// Advance consumes and returns one byte, updating line/col: a newline
// resets col to 1 and increments line, any other byte just advances col.
// Advance panics at EOF; callers must check AtEOF or Peek first.
func (c *Cursor) Advance() byte {
	b := c.buf[c.pos]
	c.pos++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// Snapshot captures the current position for a later Restore.
func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{pos: c.pos, line: c.line, col: c.col}
}

// Restore writes back a previously captured Snapshot. Invariant: 0 ≤
// s.pos ≤ len(buf), guaranteed because Snapshot only ever captures values
// Advance produced.
func (c *Cursor) Restore(s Snapshot) {
	c.pos = s.pos
	c.line = s.line
	c.col = s.col
}
