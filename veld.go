/*
Package veld is the external scanner of the Veld language grammar.

The grammar itself (rules, precedence, parse tables) is produced by an external grammar compiler;
this module implements the hand-written part that the generated parser calls into whenever
a token cannot be described by a context-free lexical rule.

Consists of subpackages:
  - source: source buffer with line index and the cursor the scanner advances;
  - grammar: closed enumeration of token kinds, language handle, and node type metadata;
  - lexer: lexical modes, tokens, candidate token sets, and the lexeme classifier;
  - scanner: mode stack, indentation counters, scanner state machine, and state serializer;
  - incremental: token log with state snapshots and the revalidation bridge used after edits;
  - cmd/veldscan: console utility tokenizing Veld sources.

Typical usage is:

1. Create a scanner with scanner.New for every parse session, scanners are never shared.

2. Call Scan with a cursor over the source and the set of token kinds acceptable
in the current parser state.

3. Store Snapshot values with completed tokens and feed them back with Restore
when resuming at an arbitrary position, or let incremental.Log do the bookkeeping.
*/
package veld

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors = 101 // used by lexer and scanner for user input errors
	ScannerErrors = 201 // used by scanner for internal-consistency faults
	StateErrors   = 301 // used by scanner for snapshot encoding faults
	EditErrors    = 401 // used by incremental
)

// Error is the error type used by veld subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ErrorCode returns the code of the first *Error found in e's chain or 0.
func ErrorCode(e error) int {
	var ve *Error
	if errors.As(e, &ve) {
		return ve.Code
	}
	return 0
}

// IsInternalFault reports whether e signals a scanner or grammar defect rather than bad input.
// Such errors must stop processing.
func IsInternalFault(e error) bool {
	code := ErrorCode(e)
	return code >= ScannerErrors && code < StateErrors
}

// IsStateFault reports whether e signals a snapshot that cannot be encoded or decoded.
func IsStateFault(e error) bool {
	code := ErrorCode(e)
	return code >= StateErrors && code < EditErrors
}
