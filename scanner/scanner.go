/*
Package scanner implements the Veld external scanner: a stateful tokenizer called by the parser
whenever a token cannot be recognized by a context-free rule.

Scanner state consists of a stack of lexical modes (root normal mode at the bottom) and a stack of
indentation columns. Both are encoded to a Snapshot after every token, so the parser can resume
scanning at any token boundary after an edit.

A Scanner is not safe for concurrent use. Every parse session creates its own Scanner,
while sources and snapshots may be shared.

Mode-entering tokens (string, raw string, and block comment openers, interpolation starts)
are accepted only if the construct closes before end of input. Otherwise the scanner returns
a single Unterminated token spanning the rest of the input and leaves the mode stack intact.
*/
package scanner

import (
	"go.uber.org/zap"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/lexer"
	"github.com/apconduct/veld/source"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithLimits sets resource limits, zero fields take default values.
func WithLimits(l Limits) Option {
	return func(s *Scanner) {
		s.limits = l.normalized()
	}
}

// WithTabWidth sets the column width of a tab stop used for indentation, default is 8.
func WithTabWidth(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.tabWidth = n
		}
	}
}

// WithLogger sets a logger for diagnostics, default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// Scanner is the scanner handle.
type Scanner struct {
	modes     *ModeStack
	indents   IndentStack
	limits    Limits
	tabWidth  int
	log       *zap.Logger
	destroyed bool
}

// New creates a scanner holding only the root mode and no open indentation blocks.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		limits:   DefaultLimits(),
		tabWidth: 8,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.modes = newModeStack(s.limits.MaxDepth)
	return s
}

// Destroy releases scanner state. Any later call except Destroy fails with ErrDestroyed.
func (s *Scanner) Destroy() {
	s.destroyed = true
	s.modes = nil
	s.indents.cols = nil
}

// Limits returns nesting and snapshot limits the scanner was created with.
func (s *Scanner) Limits() Limits {
	return s.limits
}

// Depth returns the number of modes entered above the root mode.
func (s *Scanner) Depth() int {
	if s.destroyed {
		return 0
	}
	return s.modes.Depth()
}

// Top returns current lexical mode.
func (s *Scanner) Top() lexer.Mode {
	if s.destroyed {
		return lexer.Mode{}
	}
	return s.modes.Top()
}

// Modes returns entered modes, bottom first, root excluded.
func (s *Scanner) Modes() []lexer.Mode {
	if s.destroyed {
		return nil
	}
	return s.modes.Modes()
}

// Indents returns open indentation columns, bottom first.
func (s *Scanner) Indents() []int {
	return s.indents.Cols()
}

// Scan recognizes one token of a kind from cs at cursor position.
// On success the cursor is advanced past the token and the mode transition is applied.
// Returns false and leaves the cursor and state intact if no candidate matches.
// Returns an error only for internal-consistency faults (see veld.IsInternalFault).
// Unterminated tokens are returned even if not in cs: they are the only way to report
// an unclosed construct while still producing a best-effort tree.
func (s *Scanner) Scan(c *source.Cursor, cs lexer.CandidateSet) (lexer.Token, bool, error) {
	if s.destroyed {
		return lexer.Token{}, false, destroyedError()
	}

	c.ResetLookahead()
	cp := c.Mark()
	defer c.Discard(cp)

	tok, ok, e := s.scan(c, cs)
	if e != nil {
		s.log.Error("scanner fault", zap.Int("pos", c.Pos()), zap.Error(e))
	}
	if e != nil || !ok {
		c.Reset(cp)
		return lexer.Token{}, false, e
	}

	tok.Lookahead = c.Lookahead()
	return tok, true, nil
}

func (s *Scanner) scan(c *source.Cursor, cs lexer.CandidateSet) (lexer.Token, bool, error) {
	top := s.modes.Top()

	if s.modes.Depth() == 0 && cs.HasAny(grammar.Newline, grammar.Indent, grammar.Dedent) {
		tok, ok := s.scanLayout(c, cs)
		if ok {
			return tok, true, nil
		}
	}

	if top.Kind.SkipsSpace() {
		c.Skip(IsSpace)
	}
	pos := c.Pos()
	content := c.Content()

	if term, ok := top.Terminator(); ok && cs.Has(term) {
		m, ok := lexer.Classify(content, pos, top, cs.Only(term))
		c.Examine(m.Lookahead)
		if ok {
			return s.accept(c, m)
		}
	}

	m, ok := lexer.Classify(content, pos, top, cs)
	c.Examine(m.Lookahead)
	if !ok {
		return lexer.Token{}, false, nil
	}
	return s.accept(c, m)
}

func (s *Scanner) accept(c *source.Cursor, m lexer.Match) (lexer.Token, bool, error) {
	if m.Len <= 0 {
		return lexer.Token{}, false, zeroWidthError(c, m)
	}

	content := c.Content()
	start := c.Pos()
	top := s.modes.Top()
	tok := lexer.Token{Kind: m.Kind, Start: start, End: start + m.Len}

	switch m.Transition.Op {
	case lexer.Push:
		closed, e := s.probe(c, tok.End, m.Transition.Mode)
		if e != nil {
			return lexer.Token{}, false, e
		}

		if !closed {
			s.log.Debug("unterminated construct",
				zap.Stringer("mode", m.Transition.Mode), zap.Int("start", start))
			c.Advance(len(content) - start)
			return s.unterminated(start, len(content), m.Transition.Mode.Kind), true, nil
		}

		e = s.modes.Push(m.Transition.Mode)
		if e != nil {
			return lexer.Token{}, false, e
		}

	case lexer.Pop:
		_, e := s.modes.Pop()
		if e != nil {
			return lexer.Token{}, false, e
		}

	default:
		if s.modes.Depth() > 0 && isContent(m.Kind) && tok.End >= len(content) {
			// only reachable after restoring a state whose closing delimiter was edited away
			s.log.Debug("content reaches end of input", zap.Stringer("mode", top), zap.Int("start", start))
			s.modes.Reset()
			c.Advance(m.Len)
			return s.unterminated(start, tok.End, top.Kind), true, nil
		}
	}

	c.Advance(m.Len)
	return tok, true, nil
}

func (s *Scanner) unterminated(start, end int, construct lexer.ModeKind) lexer.Token {
	return lexer.Token{Kind: grammar.Unterminated, Start: start, End: end, Construct: construct}
}

func isContent(k grammar.TokenKind) bool {
	return k == grammar.StringText || k == grammar.RawStringText || k == grammar.BlockCommentText
}

// IsSpace tells whether b is whitespace skipped between tokens in code modes.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func skipSpace(content []byte, pos int) int {
	for pos < len(content) && IsSpace(content[pos]) {
		pos++
	}
	return pos
}

var probeSets [lexer.ModeKindCount]lexer.CandidateSet

func init() {
	for mk := lexer.ModeKind(0); mk.Valid(); mk++ {
		probeSets[mk] = lexer.DefaultCandidates(mk, false)
	}
}

// probe tells whether the construct entered with mode right before pos closes before end of input.
// Bytes matching no rule are skipped, the way parser error recovery would skip them.
// Examined bytes extend cursor lookahead, so an edit anywhere inside the construct invalidates its opener.
func (s *Scanner) probe(c *source.Cursor, pos int, mode lexer.Mode) (bool, error) {
	content := c.Content()
	base := s.modes.Depth()
	limit := s.limits.MaxDepth
	if base+1 > limit {
		return false, modeOverflowError(mode, limit)
	}

	stack := []lexer.Mode{mode}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind.SkipsSpace() {
			pos = skipSpace(content, pos)
		}
		if pos >= len(content) {
			c.Examine(pos + 1)
			return false, nil
		}

		m, ok := lexer.Classify(content, pos, top, probeSets[top.Kind])
		c.Examine(m.Lookahead)
		if !ok {
			pos++
			continue
		}

		switch m.Transition.Op {
		case lexer.Push:
			if base+len(stack)+1 > limit {
				return false, modeOverflowError(m.Transition.Mode, limit)
			}
			stack = append(stack, m.Transition.Mode)
		case lexer.Pop:
			stack = stack[:len(stack)-1]
		}
		pos += m.Len
	}

	return true, nil
}

// scanLayout recognizes a whitespace run containing a line break in the root mode.
// The run becomes one newline, indent, or dedent token depending on the column of the next line.
// At end of input the next column is 0. A dedent token closes every level deeper than that column,
// a column falling between open levels is then opened as a level.
func (s *Scanner) scanLayout(c *source.Cursor, cs lexer.CandidateSet) (lexer.Token, bool) {
	content := c.Content()
	start := c.Pos()
	pos := start
	col := 0
	newline := false

loop:
	for ; pos < len(content); pos++ {
		switch content[pos] {
		case '\n':
			newline = true
			col = 0
		case ' ':
			col++
		case '\t':
			col += s.tabWidth - col%s.tabWidth
		case '\r', '\f':
		default:
			break loop
		}
	}
	c.Examine(pos + 1)

	if !newline {
		return lexer.Token{}, false
	}
	if pos >= len(content) {
		col = 0
	}

	tok := lexer.Token{Start: start, End: pos}
	top := s.indents.Top()
	switch {
	case col > top && cs.Has(grammar.Indent):
		if s.indents.Push(col) != nil {
			return lexer.Token{}, false
		}
		tok.Kind = grammar.Indent
		tok.Levels = 1

	case col < top && cs.Has(grammar.Dedent):
		tok.Kind = grammar.Dedent
		tok.Levels = s.indents.PopTo(col)
		// A column between two open levels starts a block of its own,
		// later lines at the same column continue it.
		if col > s.indents.Top() {
			_ = s.indents.Push(col)
		}

	case col == top && cs.Has(grammar.Newline):
		tok.Kind = grammar.Newline

	default:
		return lexer.Token{}, false
	}

	c.Advance(pos - start)
	return tok, true
}

// Serialize encodes scanner state. Fails with ErrSerializationOverflow if the encoding
// exceeds Limits.SnapshotCapacity, state is never truncated.
func (s *Scanner) Serialize() ([]byte, error) {
	if s.destroyed {
		return nil, destroyedError()
	}

	data := encodeState(nil, s.modes.Modes(), s.indents.cols)
	if len(data) > s.limits.SnapshotCapacity {
		e := serializationOverflowError(len(data), s.limits.SnapshotCapacity)
		s.log.Error("cannot serialize scanner state", zap.Error(e))
		return nil, e
	}
	return data, nil
}

// Deserialize restores state encoded by Serialize. Empty data restores the initial state.
// On failure the state is left unchanged.
func (s *Scanner) Deserialize(data []byte) error {
	if s.destroyed {
		return destroyedError()
	}

	if len(data) == 0 {
		s.modes.Reset()
		s.indents.Reset()
		return nil
	}

	if len(data) > s.limits.SnapshotCapacity {
		return serializationOverflowError(len(data), s.limits.SnapshotCapacity)
	}

	modes, cols, e := decodeState(data, s.limits.MaxDepth)
	if e != nil {
		s.log.Error("cannot deserialize scanner state", zap.Error(e))
		return e
	}

	s.modes.Reset()
	s.modes.modes = append(s.modes.modes, modes...)
	s.indents.cols = append(s.indents.cols[:0], cols...)
	return nil
}

// Snapshot serializes state into an immutable value.
func (s *Scanner) Snapshot() (Snapshot, error) {
	data, e := s.Serialize()
	if e != nil {
		return Snapshot{}, e
	}
	return Snapshot{string(data)}, nil
}

// Restore restores state saved by Snapshot.
func (s *Scanner) Restore(snap Snapshot) error {
	return s.Deserialize([]byte(snap.data))
}
