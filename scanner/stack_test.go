package scanner

import (
	"testing"

	"github.com/apconduct/veld"
	"github.com/apconduct/veld/internal/test"
	"github.com/apconduct/veld/lexer"
)

func TestModeStackUnderflow(t *testing.T) {
	s := newModeStack(2)
	_, e := s.Pop()
	test.ExpectErrorCode(t, ErrModeUnderflow, e)
	test.Assert(t, veld.IsInternalFault(e), "underflow must be an internal fault")
	test.Assert(t, veld.ErrorCode(e) != ErrNoMatch, "underflow must differ from no-match")
	test.ExpectInt(t, 0, s.Depth())
	test.Expect(t, s.Top().Kind == lexer.NormalMode, lexer.NormalMode, s.Top().Kind)

	test.ExpectNoError(t, s.Push(lexer.Mode{Kind: lexer.StringMode}))
	m, e := s.Pop()
	test.ExpectNoError(t, e)
	test.Expect(t, m.Kind == lexer.StringMode, lexer.StringMode, m.Kind)
	_, e = s.Pop()
	test.ExpectErrorCode(t, ErrModeUnderflow, e)
}

func TestModeStackOverflow(t *testing.T) {
	s := newModeStack(2)
	test.ExpectNoError(t, s.Push(lexer.Mode{Kind: lexer.StringMode}))
	test.ExpectNoError(t, s.Push(lexer.Mode{Kind: lexer.InterpolationMode}))

	e := s.Push(lexer.Mode{Kind: lexer.StringMode})
	test.ExpectErrorCode(t, ErrModeOverflow, e)
	test.Assert(t, veld.IsInternalFault(e), "overflow must be an internal fault")
	test.ExpectInt(t, 2, s.Depth())
	test.Expect(t, s.Top().Kind == lexer.InterpolationMode, lexer.InterpolationMode, s.Top().Kind)

	s.Reset()
	test.ExpectInt(t, 0, s.Depth())
	test.ExpectInt(t, 0, len(s.Modes()))
}

func TestIndentStackOrder(t *testing.T) {
	var s IndentStack
	test.ExpectInt(t, 0, s.Top())
	test.ExpectErrorCode(t, ErrIndentOrder, s.Push(0))

	test.ExpectNoError(t, s.Push(2))
	test.ExpectNoError(t, s.Push(5))
	e := s.Push(5)
	test.ExpectErrorCode(t, ErrIndentOrder, e)
	test.Assert(t, veld.IsInternalFault(e), "indentation order fault must be internal")
	test.ExpectErrorCode(t, ErrIndentOrder, s.Push(3))
	test.ExpectInt(t, 2, s.Len())

	test.ExpectInt(t, 1, s.PopTo(3))
	test.ExpectInt(t, 2, s.Top())
	test.ExpectInt(t, 1, s.PopTo(0))
	test.ExpectInt(t, 0, s.Len())
}
