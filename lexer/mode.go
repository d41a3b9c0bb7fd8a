package lexer

import "github.com/apconduct/veld/grammar"

// ModeKind is a lexical context.
type ModeKind uint8

const (
	// NormalMode is the root mode, it is always at the bottom of a mode stack.
	NormalMode ModeKind = iota
	StringMode
	InterpolationMode
	RawStringMode
	BlockCommentMode

	// ModeKindCount is the number of mode kinds.
	ModeKindCount
)

var modeNames = [ModeKindCount]string{
	NormalMode:        "normal",
	StringMode:        "string",
	InterpolationMode: "interpolation",
	RawStringMode:     "raw-string",
	BlockCommentMode:  "block-comment",
}

func (mk ModeKind) Valid() bool {
	return mk < ModeKindCount
}

func (mk ModeKind) String() string {
	if mk.Valid() {
		return modeNames[mk]
	}
	return "-invalid-"
}

// SkipsSpace tells whether whitespace between tokens is insignificant in this mode.
func (mk ModeKind) SkipsSpace() bool {
	return mk == NormalMode || mk == InterpolationMode
}

// Mode is a lexical mode together with data recorded when it was entered.
type Mode struct {
	Kind ModeKind

	// Hashes is the number of '#' in a raw string delimiter, zero for other modes.
	Hashes uint8
}

// Terminator returns the token kind that closes this mode, false for the root mode.
func (m Mode) Terminator() (grammar.TokenKind, bool) {
	switch m.Kind {
	case StringMode:
		return grammar.StringEnd, true
	case InterpolationMode:
		return grammar.InterpolationEnd, true
	case RawStringMode:
		return grammar.RawStringEnd, true
	case BlockCommentMode:
		return grammar.BlockCommentEnd, true
	}
	return 0, false
}

func (m Mode) String() string {
	if m.Kind == RawStringMode {
		return m.Kind.String() + "(" + string(rawDelimiter(m.Hashes)) + ")"
	}
	return m.Kind.String()
}

// TransitionOp tells how a recognized token changes the mode stack.
type TransitionOp uint8

const (
	Stay TransitionOp = iota
	Push
	Pop
)

// Transition is reported by the classifier, the caller applies it.
type Transition struct {
	Op   TransitionOp
	Mode Mode
}

func rawDelimiter(hashes uint8) []byte {
	result := make([]byte, 0, int(hashes)+1)
	result = append(result, '"')
	for i := uint8(0); i < hashes; i++ {
		result = append(result, '#')
	}
	return result
}
