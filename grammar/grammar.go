// Package grammar defines the part of the Veld grammar the external scanner depends on:
// closed enumeration of token kinds, their static lexical rules, and mode transition flags.
package grammar

import "sort"

// TokenKind is a token type known to the scanner. The set is closed: every kind has a descriptor returned by Token.
type TokenKind uint8

const (
	Identifier TokenKind = iota
	Keyword
	Number
	Operator
	LambdaArrow
	Comment
	BlockCommentStart
	BlockCommentText
	BlockCommentEnd
	StringStart
	StringText
	InterpolationStart
	InterpolationEnd
	StringEnd
	RawStringStart
	RawStringText
	RawStringEnd
	Newline
	Indent
	Dedent

	// Unterminated spans a construct that is not closed before end of input.
	Unterminated
	// Invalid spans bytes skipped by error recovery, the scanner itself never returns it.
	Invalid

	// KindCount is the number of token kinds, not a kind itself.
	KindCount
)

// TokenFlags describes token properties.
type TokenFlags int

const (
	// LiteralToken has fixed text.
	LiteralToken TokenFlags = 1 << iota
	// EntersMode pushes a lexical mode.
	EntersMode
	// ExitsMode pops a lexical mode.
	ExitsMode
	// LayoutToken is derived from line breaks and indentation.
	LayoutToken
	// AsideToken carries no syntax (comments).
	AsideToken
	// ErrorToken marks a broken lexeme and is never requested by the parser.
	ErrorToken
)

// Token describes a token kind.
type Token struct {
	Name    string
	Literal string
	Flags   TokenFlags
}

// tokens is indexed by TokenKind.
var tokens = [KindCount]Token{
	Identifier:         {"identifier", "", 0},
	Keyword:            {"keyword", "", 0},
	Number:             {"number_literal", "", 0},
	Operator:           {"operator", "", 0},
	LambdaArrow:        {"lambda_arrow", "=>", LiteralToken},
	Comment:            {"comment", "", AsideToken},
	BlockCommentStart:  {"block_comment_start", "#=", LiteralToken | EntersMode | AsideToken},
	BlockCommentText:   {"block_comment_text", "", AsideToken},
	BlockCommentEnd:    {"block_comment_end", "=#", LiteralToken | ExitsMode | AsideToken},
	StringStart:        {"string_start", `"`, LiteralToken | EntersMode},
	StringText:         {"string_text", "", 0},
	InterpolationStart: {"interpolation_start", "${", LiteralToken | EntersMode},
	InterpolationEnd:   {"interpolation_end", "}", LiteralToken | ExitsMode},
	StringEnd:          {"string_end", `"`, LiteralToken | ExitsMode},
	RawStringStart:     {"raw_string_start", "", EntersMode},
	RawStringText:      {"raw_string_text", "", 0},
	RawStringEnd:       {"raw_string_end", "", ExitsMode},
	Newline:            {"newline", "", LayoutToken},
	Indent:             {"indent", "", LayoutToken},
	Dedent:             {"dedent", "", LayoutToken},
	Unterminated:       {"unterminated", "", ErrorToken},
	Invalid:            {"invalid", "", ErrorToken},
}

func (k TokenKind) Valid() bool {
	return k < KindCount
}

func (k TokenKind) String() string {
	if k.Valid() {
		return tokens[k].Name
	}
	return "-invalid-"
}

func (k TokenKind) Flags() TokenFlags {
	if k.Valid() {
		return tokens[k].Flags
	}
	return 0
}

func (k TokenKind) Is(f TokenFlags) bool {
	return k.Flags()&f != 0
}

// Token returns kind descriptor, zero value for invalid kinds.
func (k TokenKind) Token() Token {
	if k.Valid() {
		return tokens[k]
	}
	return Token{}
}

var kindNames map[string]TokenKind

func init() {
	kindNames = make(map[string]TokenKind, KindCount)
	for i, t := range tokens {
		kindNames[t.Name] = TokenKind(i)
	}
	sort.SliceStable(operators, func(i, j int) bool {
		return len(operators[i]) > len(operators[j])
	})
}

// KindByName finds token kind by its name.
func KindByName(name string) (TokenKind, bool) {
	k, f := kindNames[name]
	return k, f
}

var keywords = []string{
	"let", "fn", "proc", "if", "then", "else", "end", "return",
	"struct", "pub", "enum", "kind", "do",
	"true", "false", "not", "and", "or",
	"bool", "f64", "str", "i32",
}

var operators = []string{
	"==", "!=", "<=", ">=", "&&", "||", "->",
	"+", "-", "*", "/", "%", "^", "<", ">", "=", "!",
	"(", ")", ",", ":", ".",
}

// Keywords returns a copy of reserved words. A keyword also matches the identifier rule,
// the parser decides by candidate order which one it wants.
func Keywords() []string {
	return append([]string(nil), keywords...)
}

// Operators returns a copy of operator and punctuation literals, longest first.
func Operators() []string {
	return append([]string(nil), operators...)
}
