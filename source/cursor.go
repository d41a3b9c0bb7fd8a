package source

// Checkpoint is a cursor position saved with Cursor.Mark.
// A checkpoint is valid until it is discarded, either explicitly or by resetting to an outer one.
type Checkpoint struct {
	pos    int
	serial uint32
}

// Pos returns saved byte position.
func (cp Checkpoint) Pos() int {
	return cp.pos
}

// Cursor is a read-only view of a source with a current position.
// Cursor never copies source content and never moves backward except by Reset to a live checkpoint.
// Cursor also records the furthest byte examined since the last Seek or ResetLookahead,
// the incremental machinery uses this to decide which tokens an edit may affect.
type Cursor struct {
	src       *Source
	content   []byte
	pos       int
	lookahead int
	marks     []Checkpoint
	serial    uint32
}

// NewCursor creates a cursor positioned at the start of s.
func NewCursor(s *Source) *Cursor {
	return &Cursor{src: s, content: s.Content()}
}

func (c *Cursor) Source() *Source {
	return c.src
}

// Content returns the whole source content, callers must not modify it.
func (c *Cursor) Content() []byte {
	return c.content
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.content)
}

// Seek moves the cursor to an arbitrary position (e.g. when the parser resumes after an edit).
// All checkpoints are discarded.
func (c *Cursor) Seek(pos int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(c.content) {
		pos = len(c.content)
	}
	c.pos = pos
	c.lookahead = pos
	c.marks = c.marks[:0]
}

// Peek returns the byte at current position, false at end of source.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the byte n bytes after current position, false beyond the end of source.
func (c *Cursor) PeekAt(n int) (byte, bool) {
	i := c.pos + n
	c.Examine(i + 1)
	if i < 0 || i >= len(c.content) {
		return 0, false
	}
	return c.content[i], true
}

// Advance moves the cursor n bytes forward, stopping at end of source.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	c.pos += n
	if c.pos > len(c.content) {
		c.pos = len(c.content)
	}
	c.Examine(c.pos)
}

// Skip advances past bytes satisfying pred and returns the number of skipped bytes.
// The first rejected byte is not examined, the caller looks at it anyway.
func (c *Cursor) Skip(pred func(byte) bool) int {
	start := c.pos
	for c.pos < len(c.content) && pred(c.content[c.pos]) {
		c.pos++
	}
	c.Examine(c.pos)
	return c.pos - start
}

// Examine extends the examined range to end (exclusive).
// Examining end of source counts as examining one byte past it, so appending text
// invalidates tokens that stopped at end of source.
func (c *Cursor) Examine(end int) {
	if end > len(c.content)+1 {
		end = len(c.content) + 1
	}
	if end > c.lookahead {
		c.lookahead = end
	}
}

// Lookahead returns the exclusive end of the examined range.
func (c *Cursor) Lookahead() int {
	return c.lookahead
}

// ResetLookahead starts a new examined range at current position.
func (c *Cursor) ResetLookahead() {
	c.lookahead = c.pos
}

// Mark saves current position.
func (c *Cursor) Mark() Checkpoint {
	c.serial++
	cp := Checkpoint{c.pos, c.serial}
	c.marks = append(c.marks, cp)
	return cp
}

func (c *Cursor) markIndex(cp Checkpoint) int {
	for i := len(c.marks) - 1; i >= 0; i-- {
		if c.marks[i].serial == cp.serial {
			return i
		}
	}
	return -1
}

// Reset moves the cursor back to a live checkpoint, discarding all checkpoints marked after it.
// Returns false and leaves the cursor intact if cp was discarded.
// The examined range is kept: bytes looked at before the reset still affected the outcome.
func (c *Cursor) Reset(cp Checkpoint) bool {
	i := c.markIndex(cp)
	if i < 0 {
		return false
	}

	c.marks = c.marks[:i+1]
	c.pos = cp.pos
	return true
}

// Discard drops cp and all checkpoints marked after it.
func (c *Cursor) Discard(cp Checkpoint) {
	i := c.markIndex(cp)
	if i >= 0 {
		c.marks = c.marks[:i]
	}
}

// LineCol returns line and column of current position.
func (c *Cursor) LineCol() (line, col int) {
	return c.src.LineCol(c.pos)
}

// SourcePos returns resolved current position.
func (c *Cursor) SourcePos() Pos {
	return NewPos(c.src, c.pos)
}
