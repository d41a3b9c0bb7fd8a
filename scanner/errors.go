package scanner

import (
	"github.com/apconduct/veld"
	"github.com/apconduct/veld/lexer"
	"github.com/apconduct/veld/source"
)

// Error codes used by scanner.
const (
	// ErrNoMatch indicates that no candidate token kind matches at current position.
	// Scan itself reports this as a false flag, the code is used by consumers that turn it into an error.
	ErrNoMatch = veld.LexicalErrors + iota
)

// Internal-consistency faults, these halt processing.
const (
	// ErrModeOverflow indicates nesting deeper than Limits.MaxDepth.
	ErrModeOverflow = veld.ScannerErrors + iota
	// ErrModeUnderflow indicates an attempt to pop the root mode.
	ErrModeUnderflow
	// ErrZeroWidth indicates a rule reporting an empty token.
	ErrZeroWidth
	// ErrDestroyed indicates use of a destroyed scanner.
	ErrDestroyed
	// ErrIndentOrder indicates an indentation push not deeper than the current level.
	ErrIndentOrder
)

// Snapshot faults.
const (
	// ErrSerializationOverflow indicates that encoded state exceeds Limits.SnapshotCapacity.
	ErrSerializationOverflow = veld.StateErrors + iota
	// ErrCorruptSnapshot indicates data that cannot be decoded into a reachable state.
	ErrCorruptSnapshot
)

// NoMatchError creates ErrNoMatch error at current cursor position.
func NoMatchError(c *source.Cursor, cs lexer.CandidateSet) *veld.Error {
	return veld.FormatErrorPos(c.SourcePos(), ErrNoMatch, "no token of %d candidate kinds matches", cs.Len())
}

func modeOverflowError(m lexer.Mode, limit int) *veld.Error {
	return veld.FormatError(ErrModeOverflow, "cannot enter %s mode: nesting exceeds %d levels", m, limit)
}

func modeUnderflowError() *veld.Error {
	return veld.FormatError(ErrModeUnderflow, "cannot leave root mode")
}

func zeroWidthError(c *source.Cursor, m lexer.Match) *veld.Error {
	return veld.FormatErrorPos(c.SourcePos(), ErrZeroWidth, "empty %s token", m.Kind)
}

func destroyedError() *veld.Error {
	return veld.FormatError(ErrDestroyed, "scanner is destroyed")
}

func indentOrderError(col, top int) *veld.Error {
	return veld.FormatError(ErrIndentOrder, "indentation column %d is not deeper than %d", col, top)
}

func serializationOverflowError(size, capacity int) *veld.Error {
	return veld.FormatError(ErrSerializationOverflow, "scanner state needs %d bytes, capacity is %d", size, capacity)
}

func corruptSnapshotError(reason string) *veld.Error {
	return veld.FormatError(ErrCorruptSnapshot, "corrupt scanner snapshot: %s", reason)
}
