/*
Package incremental keeps a token log with scanner snapshots and revalidates it after source edits.

Every logged token carries the scanner state captured before and after it was scanned.
After an edit only tokens whose examined bytes overlap the edit are scanned again,
the rest of the log is reused shifted by the length change.
The result is always equal to tokenizing the edited source from scratch.

The driver used here is a plain tokenizer: it offers the scanner every kind lexically legal
in the current mode and turns unrecognized input into one-rune invalid tokens.
*/
package incremental

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/lexer"
	"github.com/apconduct/veld/scanner"
	"github.com/apconduct/veld/source"
)

type config struct {
	layout   bool
	limits   scanner.Limits
	tabWidth int
	log      *zap.Logger
}

// Option configures tokenization.
type Option func(*config)

// WithLayout enables newline, indent, and dedent tokens in the root mode.
func WithLayout(on bool) Option {
	return func(c *config) {
		c.layout = on
	}
}

func WithLimits(l scanner.Limits) Option {
	return func(c *config) {
		c.limits = l
	}
}

func WithTabWidth(n int) Option {
	return func(c *config) {
		c.tabWidth = n
	}
}

// WithLogger sets a logger shared by the driver and its scanners.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		limits: scanner.DefaultLimits(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *config) newScanner() *scanner.Scanner {
	return scanner.New(
		scanner.WithLimits(c.limits),
		scanner.WithTabWidth(c.tabWidth),
		scanner.WithLogger(c.log),
	)
}

// Entry is a logged token with scanner states around it.
type Entry struct {
	Token  lexer.Token
	Before scanner.Snapshot
	After  scanner.Snapshot
}

func (e Entry) shift(delta int) Entry {
	e.Token = e.Token.Shift(delta)
	return e
}

// Log is an immutable token log of a source.
type Log struct {
	src     *source.Source
	cfg     config
	entries []Entry
	final   scanner.Snapshot
}

// Tokenize scans the whole source.
// Returns an error only if the scanner reports an internal fault or cannot serialize its state.
func Tokenize(src *source.Source, opts ...Option) (*Log, error) {
	l := &Log{src: src, cfg: newConfig(opts)}
	d, e := newDriver(&l.cfg, src, 0, scanner.Snapshot{})
	if e != nil {
		return nil, e
	}
	defer d.close()

	for {
		entry, ok, e := d.next()
		if e != nil {
			return nil, e
		}
		if !ok {
			break
		}
		l.entries = append(l.entries, entry)
	}

	l.final, e = d.s.Snapshot()
	if e != nil {
		return nil, e
	}
	return l, nil
}

func (l *Log) Source() *source.Source {
	return l.src
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entry returns i-th entry.
func (l *Log) Entry(i int) Entry {
	return l.entries[i]
}

// Entries returns a copy of all entries.
func (l *Log) Entries() []Entry {
	result := make([]Entry, len(l.entries))
	copy(result, l.entries)
	return result
}

// Tokens returns logged tokens.
func (l *Log) Tokens() []lexer.Token {
	result := make([]lexer.Token, len(l.entries))
	for i, e := range l.entries {
		result[i] = e.Token
	}
	return result
}

// Final returns scanner state at end of input.
func (l *Log) Final() scanner.Snapshot {
	return l.final
}

// scanStart returns the position where scanning of i-th entry started,
// whitespace skipped before a token belongs to its scan.
func (l *Log) scanStart(i int) int {
	if i == 0 {
		return 0
	}
	return l.entries[i-1].Token.End
}

// stateBefore returns scanner state at scanStart(i).
func (l *Log) stateBefore(i int) scanner.Snapshot {
	if i < len(l.entries) {
		return l.entries[i].Before
	}
	if len(l.entries) > 0 {
		return l.entries[len(l.entries)-1].After
	}
	return scanner.Snapshot{}
}

type driver struct {
	cfg *config
	s   *scanner.Scanner
	c   *source.Cursor
}

func newDriver(cfg *config, src *source.Source, from int, state scanner.Snapshot) (*driver, error) {
	s := cfg.newScanner()
	e := s.Restore(state)
	if e != nil {
		s.Destroy()
		return nil, e
	}

	c := source.NewCursor(src)
	c.Seek(from)
	return &driver{cfg, s, c}, nil
}

func (d *driver) close() {
	d.s.Destroy()
}

// next scans one entry, returns false at end of input.
func (d *driver) next() (Entry, bool, error) {
	before, e := d.s.Snapshot()
	if e != nil {
		return Entry{}, false, e
	}

	cs := lexer.DefaultCandidates(d.s.Top().Kind, d.cfg.layout && d.s.Depth() == 0)
	tok, ok, e := d.s.Scan(d.c, cs)
	if e != nil {
		return Entry{}, false, e
	}

	if !ok {
		tok, ok = d.skipInvalid(cs)
		if !ok {
			return Entry{}, false, nil
		}
	}

	after, e := d.s.Snapshot()
	if e != nil {
		return Entry{}, false, e
	}
	return Entry{tok, before, after}, true, nil
}

// skipInvalid turns one rune the scanner rejected into an invalid token.
// Lookahead of the failed scan is kept, an edit there may make the rune valid.
func (d *driver) skipInvalid(cs lexer.CandidateSet) (lexer.Token, bool) {
	if d.s.Top().Kind.SkipsSpace() {
		d.c.Skip(scanner.IsSpace)
	}
	if d.c.AtEnd() {
		return lexer.Token{}, false
	}

	start := d.c.Pos()
	if ce := d.cfg.log.Check(zap.DebugLevel, "invalid input"); ce != nil {
		ce.Write(zap.Error(scanner.NoMatchError(d.c, cs)))
	}
	_, n := utf8.DecodeRune(d.c.Content()[start:])
	d.c.Advance(n)
	return lexer.Token{
		Kind:      grammar.Invalid,
		Start:     start,
		End:       start + n,
		Lookahead: d.c.Lookahead(),
	}, true
}
