package lexer

import (
	"github.com/apconduct/veld/grammar"
	"github.com/apconduct/veld/source"
)

// Token is a classified span of source bytes. It refers to the source by offsets and never copies it.
type Token struct {
	Kind grammar.TokenKind

	// Start and End are byte offsets, End is exclusive.
	Start, End int

	// Lookahead is the exclusive end of bytes examined while recognizing the token.
	// An edit before Lookahead may change the token.
	Lookahead int

	// Construct is the unclosed mode kind of an Unterminated token.
	Construct ModeKind

	// Levels is the number of indentation levels opened (Indent) or closed (Dedent).
	Levels int
}

func (t Token) Len() int {
	return t.End - t.Start
}

// Text returns token bytes as a subslice of content.
func (t Token) Text(content []byte) []byte {
	return content[t.Start:t.End]
}

// Shift returns the token moved by delta bytes.
func (t Token) Shift(delta int) Token {
	t.Start += delta
	t.End += delta
	t.Lookahead += delta
	return t
}

// Pos resolves token start inside s.
func (t Token) Pos(s *source.Source) source.Pos {
	return source.NewPos(s, t.Start)
}

// SameLexeme tells whether two tokens have the same kind and span, ignoring lookahead.
func (t Token) SameLexeme(o Token) bool {
	return t.Kind == o.Kind && t.Start == o.Start && t.End == o.End &&
		t.Construct == o.Construct && t.Levels == o.Levels
}
