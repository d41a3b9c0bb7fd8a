package scanner

import "github.com/apconduct/veld/lexer"

// ModeStack is a stack of lexical modes with the root normal mode at the bottom.
// The root mode is never popped.
type ModeStack struct {
	modes []lexer.Mode
	limit int
}

func newModeStack(limit int) *ModeStack {
	return &ModeStack{
		modes: []lexer.Mode{{Kind: lexer.NormalMode}},
		limit: limit,
	}
}

// Push enters mode m. Fails with ErrModeOverflow if nesting would exceed the limit.
func (s *ModeStack) Push(m lexer.Mode) error {
	if s.Depth() >= s.limit {
		return modeOverflowError(m, s.limit)
	}

	s.modes = append(s.modes, m)
	return nil
}

// Pop leaves the top mode. Fails with ErrModeUnderflow if only the root mode remains.
func (s *ModeStack) Pop() (lexer.Mode, error) {
	if len(s.modes) <= 1 {
		return lexer.Mode{}, modeUnderflowError()
	}

	top := s.modes[len(s.modes)-1]
	s.modes = s.modes[:len(s.modes)-1]
	return top, nil
}

func (s *ModeStack) Top() lexer.Mode {
	return s.modes[len(s.modes)-1]
}

// Depth returns the number of modes entered above the root mode.
func (s *ModeStack) Depth() int {
	return len(s.modes) - 1
}

// Modes returns a copy of entered modes, bottom first, root excluded.
func (s *ModeStack) Modes() []lexer.Mode {
	result := make([]lexer.Mode, len(s.modes)-1)
	copy(result, s.modes[1:])
	return result
}

// Reset drops every mode except the root.
func (s *ModeStack) Reset() {
	s.modes = s.modes[:1]
}

// IndentStack holds columns of open indentation blocks, strictly increasing from the bottom.
// Column 0 is implicit and never stored.
type IndentStack struct {
	cols []int
}

// Top returns the innermost block column, 0 if no block is open.
func (s *IndentStack) Top() int {
	if len(s.cols) == 0 {
		return 0
	}
	return s.cols[len(s.cols)-1]
}

func (s *IndentStack) Len() int {
	return len(s.cols)
}

// Push opens a block at col, which must be deeper than Top.
func (s *IndentStack) Push(col int) error {
	if col <= s.Top() {
		return indentOrderError(col, s.Top())
	}

	s.cols = append(s.cols, col)
	return nil
}

// PopTo closes blocks deeper than col and returns the number of closed blocks.
func (s *IndentStack) PopTo(col int) int {
	n := 0
	for len(s.cols) > 0 && s.cols[len(s.cols)-1] > col {
		s.cols = s.cols[:len(s.cols)-1]
		n++
	}
	return n
}

// Cols returns a copy of open block columns, bottom first.
func (s *IndentStack) Cols() []int {
	result := make([]int, len(s.cols))
	copy(result, s.cols)
	return result
}

func (s *IndentStack) Reset() {
	s.cols = s.cols[:0]
}
